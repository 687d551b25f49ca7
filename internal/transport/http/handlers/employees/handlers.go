package employeeshandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrconsole/internal/domain/cache"
	"hrconsole/internal/domain/directory"
	"hrconsole/internal/domain/forms"
	"hrconsole/internal/transport/http/api"
	"hrconsole/internal/transport/http/middleware"
	"hrconsole/internal/transport/http/shared"
	"hrconsole/internal/upstream"
	"hrconsole/internal/view"
)

type Handler struct {
	Cache        *cache.Cache
	Employees    *forms.Employees
	DefaultLimit int
	MaxLimit     int
}

func NewHandler(c *cache.Cache, employees *forms.Employees, defaultLimit, maxLimit int) *Handler {
	return &Handler{Cache: c, Employees: employees, DefaultLimit: defaultLimit, MaxLimit: maxLimit}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Use(middleware.RequireCapability(view.CapEmployeesManage))
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/form", h.handleNewForm)
		r.Put("/{employeeID}", h.handleUpdate)
		r.Get("/{employeeID}/form", h.handleEditForm)
	})
}

type pageResponse struct {
	Items       []directory.ResolvedEmployee `json:"items"`
	CurrentPage int                          `json:"currentPage"`
	TotalPages  int                          `json:"totalPages"`
	Total       int                          `json:"total"`
}

// handleList serves the paginated employee table. The cached page is
// reused only when the requested query matches the one that produced it;
// any other page, limit or search term goes upstream.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	companyID, ok := shared.ActiveCompanyID(w, r)
	if !ok {
		return
	}

	query := shared.ParseEmployeeQuery(r, h.DefaultLimit, h.MaxLimit)

	var page upstream.EmployeePage
	cached, haveCached := h.Cache.CachedEmployees(companyID)
	last, haveQuery := h.Cache.LastEmployeeQuery(companyID)
	if haveCached && haveQuery && last == query {
		page = cached
	} else {
		var err error
		page, err = h.Cache.FetchEmployees(r.Context(), companyID, query)
		if err != nil {
			shared.WriteError(w, err, requestID)
			return
		}
	}

	departments, _ := h.Cache.CachedDepartments(companyID)
	shifts, _ := h.Cache.CachedShifts(companyID)
	managers, _ := h.Cache.CachedManagers(companyID)
	api.Success(w, pageResponse{
		Items:       directory.ResolveEmployees(page.Items, departments, shifts, managers),
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
		Total:       page.Total,
	}, requestID)
}

// Browser forms submit dates as plain strings, so the employment dates
// ride in as text and are parsed here before the payload is validated.
type employmentDetailsRequest struct {
	directory.EmploymentDetails
	JoinDate string `json:"joinDate"`
	ExitDate string `json:"exitDate"`
}

type employeeRequest struct {
	upstream.EmployeePayload
	EmploymentDetails employmentDetailsRequest `json:"employmentDetails"`
}

func decodeEmployee(r *http.Request) (upstream.EmployeePayload, error) {
	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return upstream.EmployeePayload{}, err
	}

	joinDate, err := shared.ParseDatePtr(req.EmploymentDetails.JoinDate)
	if err != nil {
		return upstream.EmployeePayload{}, &forms.ValidationError{Issues: []forms.Issue{
			{Field: "employmentDetails.joinDate", Reason: "must be an ISO date"},
		}}
	}
	exitDate, err := shared.ParseDatePtr(req.EmploymentDetails.ExitDate)
	if err != nil {
		return upstream.EmployeePayload{}, &forms.ValidationError{Issues: []forms.Issue{
			{Field: "employmentDetails.exitDate", Reason: "must be an ISO date"},
		}}
	}

	draft := forms.Seeded(req.EmployeePayload).Apply(func(p *upstream.EmployeePayload) {
		p.EmploymentDetails = req.EmploymentDetails.EmploymentDetails
		p.EmploymentDetails.JoinDate = joinDate
		p.EmploymentDetails.ExitDate = exitDate
	})
	return draft.Value(), nil
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	companyID, ok := shared.ActiveCompanyID(w, r)
	if !ok {
		return
	}

	payload, err := decodeEmployee(r)
	if err != nil {
		var validation *forms.ValidationError
		if errors.As(err, &validation) {
			shared.WriteError(w, err, requestID)
			return
		}
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid request body", requestID)
		return
	}
	employee, err := h.Employees.Create(r.Context(), companyID, payload)
	if err != nil {
		shared.WriteError(w, err, requestID)
		return
	}
	api.Created(w, employee, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	companyID, ok := shared.ActiveCompanyID(w, r)
	if !ok {
		return
	}

	payload, err := decodeEmployee(r)
	if err != nil {
		var validation *forms.ValidationError
		if errors.As(err, &validation) {
			shared.WriteError(w, err, requestID)
			return
		}
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid request body", requestID)
		return
	}
	employee, err := h.Employees.Update(r.Context(), companyID, chi.URLParam(r, "employeeID"), payload)
	if err != nil {
		shared.WriteError(w, err, requestID)
		return
	}
	api.Success(w, employee, requestID)
}

// handleNewForm seeds a creation draft with every nested record defaulted,
// so the form never renders a missing sub-record.
func (h *Handler) handleNewForm(w http.ResponseWriter, r *http.Request) {
	api.Success(w, forms.SeedEmployee(directory.Employee{}), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEditForm(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	companyID, ok := shared.ActiveCompanyID(w, r)
	if !ok {
		return
	}
	employeeID := chi.URLParam(r, "employeeID")

	if page, ok := h.Cache.CachedEmployees(companyID); ok {
		for _, emp := range page.Items {
			if emp.ID == employeeID {
				api.Success(w, forms.SeedEmployee(emp), requestID)
				return
			}
		}
	}
	api.Fail(w, http.StatusNotFound, "not_found", "employee not found on the current page", requestID)
}
