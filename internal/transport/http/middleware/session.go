package middleware

import (
	"context"
	"net/http"

	"hrconsole/internal/domain/session"
	"hrconsole/internal/requestctx"
	"hrconsole/internal/transport/http/api"
	"hrconsole/internal/view"
)

type ctxKey string

const ctxKeyIdentity ctxKey = "identity"

// Session injects the console identity into the request context when one
// exists. It never rejects; gating belongs to RequireSession and
// RequireCapability.
func Session(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := store.Identity()
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyIdentity, identity)
			ctx = requestctx.WithActorRole(ctx, identity.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetIdentity(ctx context.Context) (session.Identity, bool) {
	identity, ok := ctx.Value(ctxKeyIdentity).(session.Identity)
	return identity, ok
}

func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetIdentity(r.Context()); !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "sign in required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireCapability gates a route on the composed shell. The shell is the
// single source of capability truth, so role conditionals never leak into
// handlers.
func RequireCapability(capability string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := GetIdentity(r.Context())
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "sign in required", GetRequestID(r.Context()))
				return
			}
			shell := view.Compose(identity.Role, identity.Access)
			if !shell.Allows(capability) {
				api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
