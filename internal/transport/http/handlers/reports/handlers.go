package reportshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrconsole/internal/domain/cache"
	"hrconsole/internal/domain/directory"
	"hrconsole/internal/domain/reports"
	"hrconsole/internal/transport/http/middleware"
	"hrconsole/internal/transport/http/shared"
	"hrconsole/internal/upstream"
	"hrconsole/internal/view"
)

// rosterLimit is deliberately far above any realistic company headcount so
// the roster export covers the whole directory in one request.
const rosterLimit = 10000

type Handler struct {
	Cache  *cache.Cache
	Client *upstream.Client
}

func NewHandler(c *cache.Cache, client *upstream.Client) *Handler {
	return &Handler{Cache: c, Client: client}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequireCapability(view.CapReportsExport))
		r.Get("/roster", h.handleRoster)
		r.Get("/company-summary", h.handleCompanySummary)
	})
}

// references reads the joinable collections through the cache so the
// export carries the same display names the directory pages render.
func (h *Handler) references(r *http.Request, companyID string) ([]directory.Department, []directory.Shift, []directory.Manager, error) {
	departments, ok := h.Cache.CachedDepartments(companyID)
	if !ok {
		var err error
		if departments, err = h.Cache.FetchDepartments(r.Context(), companyID); err != nil {
			return nil, nil, nil, err
		}
	}
	shifts, ok := h.Cache.CachedShifts(companyID)
	if !ok {
		var err error
		if shifts, err = h.Cache.FetchShifts(r.Context(), companyID); err != nil {
			return nil, nil, nil, err
		}
	}
	managers, ok := h.Cache.CachedManagers(companyID)
	if !ok {
		var err error
		if managers, err = h.Cache.FetchManagers(r.Context(), companyID); err != nil {
			return nil, nil, nil, err
		}
	}
	return departments, shifts, managers, nil
}

// handleRoster exports the full employee list as a workbook. The export
// bypasses the paginated cache and asks upstream for everything, because a
// roster covering one page would be useless.
func (h *Handler) handleRoster(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	companyID, ok := shared.ActiveCompanyID(w, r)
	if !ok {
		return
	}
	identity, _ := middleware.GetIdentity(r.Context())

	page, err := h.Client.ListEmployees(r.Context(), companyID, upstream.EmployeeQuery{Page: 1, Limit: rosterLimit})
	if err != nil {
		shared.WriteError(w, err, requestID)
		return
	}
	departments, shifts, managers, err := h.references(r, companyID)
	if err != nil {
		shared.WriteError(w, err, requestID)
		return
	}

	artifact, err := reports.RosterXLSX(identity.Company.Name, directory.ResolveEmployees(page.Items, departments, shifts, managers))
	if err != nil {
		shared.WriteError(w, err, requestID)
		return
	}
	shared.WriteArtifact(w, artifact)
}

func (h *Handler) handleCompanySummary(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	companyID, ok := shared.ActiveCompanyID(w, r)
	if !ok {
		return
	}
	identity, _ := middleware.GetIdentity(r.Context())

	departments, shifts, managers, err := h.references(r, companyID)
	if err != nil {
		shared.WriteError(w, err, requestID)
		return
	}
	var employees []directory.Employee
	headcount := 0
	page, cached := h.Cache.CachedEmployees(companyID)
	if cached {
		employees = page.Items
		headcount = page.Total
	} else {
		if page, err = h.Cache.FetchEmployees(r.Context(), companyID, upstream.EmployeeQuery{Page: 1, Limit: 10}); err != nil {
			shared.WriteError(w, err, requestID)
			return
		}
		employees = page.Items
		headcount = page.Total
	}

	resolved := directory.ResolveDepartments(departments, managers, employees)
	artifact, err := reports.CompanySummaryPDF(*identity.Company, resolved, shifts, headcount)
	if err != nil {
		shared.WriteError(w, err, requestID)
		return
	}
	shared.WriteArtifact(w, artifact)
}
