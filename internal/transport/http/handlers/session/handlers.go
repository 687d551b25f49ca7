package sessionhandler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrconsole/internal/domain/cache"
	"hrconsole/internal/domain/session"
	"hrconsole/internal/transport/http/api"
	"hrconsole/internal/transport/http/middleware"
	"hrconsole/internal/transport/http/shared"
	"hrconsole/internal/upstream"
	"hrconsole/internal/view"
)

type Handler struct {
	Sessions *session.Store
	Client   *upstream.Client
	Cache    *cache.Cache

	// LoginLimiter throttles the one unauthenticated mutation route.
	LoginLimiter func(http.Handler) http.Handler
}

func NewHandler(sessions *session.Store, client *upstream.Client, c *cache.Cache) *Handler {
	return &Handler{Sessions: sessions, Client: client, Cache: c}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	if h.LoginLimiter != nil {
		r.With(h.LoginLimiter).Post("/session/login", h.handleLogin)
	} else {
		r.Post("/session/login", h.handleLogin)
	}
	r.Post("/session/logout", h.handleLogout)
	r.Get("/session/me", h.handleMe)
	r.Get("/session/status", h.handleStatus)
	r.With(middleware.RequireCapability(view.CapCompaniesManage)).Post("/session/company", h.handleSelectCompany)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid request body", requestID)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		api.Fail(w, http.StatusBadRequest, "validation_error", "email and password are required", requestID)
		return
	}

	result, err := h.Client.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		shared.WriteError(w, err, requestID)
		return
	}
	h.Client.SetToken(result.Token)
	if err := h.Sessions.Establish(result); err != nil {
		api.Fail(w, http.StatusInternalServerError, "session_persist_failed", "could not persist the session", requestID)
		return
	}

	identity, _ := h.Sessions.Identity()
	api.Success(w, meResponse(identity), requestID)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	// Upstream revocation is best effort; the local wipe happens regardless
	// so no pre-logout data can survive a failed remote call.
	if err := h.Client.Logout(r.Context()); err != nil {
		log.Printf("upstream logout failed: %v", err)
	}
	h.Client.SetToken("")
	if err := h.Sessions.Logout(); err != nil {
		api.Fail(w, http.StatusInternalServerError, "logout_failed", "could not clear local state", requestID)
		return
	}
	api.Success(w, map[string]bool{"loggedOut": true}, requestID)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "sign in required", requestID)
		return
	}
	api.Success(w, meResponse(identity), requestID)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	api.Success(w, map[string]bool{"loading": h.Cache.Loading()}, middleware.GetRequestID(r.Context()))
}

type selectCompanyRequest struct {
	CompanyID string `json:"companyId"`
}

func (h *Handler) handleSelectCompany(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req selectCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.CompanyID) == "" {
		api.Fail(w, http.StatusBadRequest, "validation_error", "companyId is required", requestID)
		return
	}

	companies, ok := h.Cache.CachedCompanies()
	if !ok {
		var err error
		companies, err = h.Cache.FetchCompanies(r.Context())
		if err != nil {
			shared.WriteError(w, err, requestID)
			return
		}
	}
	for _, company := range companies {
		if company.ID == req.CompanyID {
			if err := h.Sessions.SelectCompany(company); err != nil {
				api.Fail(w, http.StatusInternalServerError, "company_switch_failed", "could not switch company", requestID)
				return
			}
			identity, _ := h.Sessions.Identity()
			api.Success(w, meResponse(identity), requestID)
			return
		}
	}
	api.Fail(w, http.StatusNotFound, "not_found", "company not found", requestID)
}

func meResponse(identity session.Identity) map[string]any {
	shell := view.Compose(identity.Role, identity.Access)
	return map[string]any{
		"role":        identity.Role,
		"permissions": identity.Permissions,
		"restricted":  identity.Access.Restricted(),
		"company":     identity.Company,
		"shell":       shell,
	}
}
