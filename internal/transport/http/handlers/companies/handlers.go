package companieshandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrconsole/internal/domain/cache"
	"hrconsole/internal/domain/directory"
	"hrconsole/internal/domain/forms"
	"hrconsole/internal/domain/reports"
	"hrconsole/internal/transport/http/api"
	"hrconsole/internal/transport/http/middleware"
	"hrconsole/internal/transport/http/shared"
	"hrconsole/internal/upstream"
	"hrconsole/internal/view"
)

type Handler struct {
	Cache     *cache.Cache
	Companies *forms.Companies
	Client    *upstream.Client
}

func NewHandler(c *cache.Cache, companies *forms.Companies, client *upstream.Client) *Handler {
	return &Handler{Cache: c, Companies: companies, Client: client}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/companies", func(r chi.Router) {
		r.Use(middleware.RequireCapability(view.CapCompaniesManage))
		r.Get("/", h.handleList)
		r.Post("/", h.handleRegister)
		r.Route("/{companyID}", func(r chi.Router) {
			r.Put("/", h.handleUpdate)
			r.Get("/form", h.handleEditForm)
			r.Put("/permissions", h.handlePermissions)
			r.Put("/custom-fields", h.handleCustomFields)
			r.Get("/export", h.handleExport)
		})
	})
}

// handleList renders from cache when an entry exists and fetches
// otherwise; registration and edits invalidate the entry, so a stale list
// cannot follow a mutation.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	companies, ok := h.Cache.CachedCompanies()
	if !ok {
		var err error
		companies, err = h.Cache.FetchCompanies(r.Context())
		if err != nil {
			shared.WriteError(w, err, requestID)
			return
		}
	}
	api.Success(w, companies, requestID)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload upstream.CompanyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid request body", requestID)
		return
	}
	company, err := h.Companies.Register(r.Context(), payload)
	if err != nil {
		shared.WriteError(w, err, requestID)
		return
	}
	api.Created(w, company, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload upstream.CompanyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid request body", requestID)
		return
	}
	company, err := h.Companies.Update(r.Context(), chi.URLParam(r, "companyID"), payload)
	if err != nil {
		shared.WriteError(w, err, requestID)
		return
	}
	api.Success(w, company, requestID)
}

// handleEditForm seeds the edit draft from the cached entity with every
// nested record defaulted.
func (h *Handler) handleEditForm(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	companyID := chi.URLParam(r, "companyID")

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
		if company.ID == companyID {
			api.Success(w, forms.SeedCompany(company), requestID)
			return
		}
	}
	api.Fail(w, http.StatusNotFound, "not_found", "company not found", requestID)
}

type permissionsRequest struct {
	Permissions []string `json:"permissions"`
}

func (h *Handler) handlePermissions(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req permissionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid request body", requestID)
		return
	}
	if err := h.Companies.UpdatePermissions(r.Context(), chi.URLParam(r, "companyID"), req.Permissions); err != nil {
		shared.WriteError(w, err, requestID)
		return
	}
	api.Success(w, map[string]bool{"updated": true}, requestID)
}

type customFieldsRequest struct {
	CustomFields []directory.CustomFieldDef `json:"customFields"`
}

func (h *Handler) handleCustomFields(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req customFieldsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid request body", requestID)
		return
	}
	if err := h.Companies.UpdateCustomFields(r.Context(), chi.URLParam(r, "companyID"), req.CustomFields); err != nil {
		shared.WriteError(w, err, requestID)
		return
	}
	api.Success(w, map[string]bool{"updated": true}, requestID)
}

// handleExport passes the upstream's company data export through as a
// downloadable JSON artifact.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	companyID := chi.URLParam(r, "companyID")

	raw, err := h.Client.ExportCompanyData(r.Context(), companyID)
	if err != nil {
		shared.WriteError(w, err, requestID)
		return
	}
	shared.WriteArtifact(w, reports.Artifact{
		Filename:    "company-" + companyID + "-" + time.Now().Format("2006-01-02") + ".json",
		ContentType: "application/json",
		Data:        raw,
	})
}
