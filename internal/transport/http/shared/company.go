package shared

import (
	"net/http"

	"hrconsole/internal/transport/http/api"
	"hrconsole/internal/transport/http/middleware"
)

// ActiveCompanyID resolves the company scope every directory page operates
// in. Without an active company there is nothing to render, so the request
// is rejected here.
func ActiveCompanyID(w http.ResponseWriter, r *http.Request) (string, bool) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok || identity.Company == nil || identity.Company.ID == "" {
		api.Fail(w, http.StatusBadRequest, "no_company", "no active company selected", middleware.GetRequestID(r.Context()))
		return "", false
	}
	return identity.Company.ID, true
}
