package directoryhandler

import (
	"encoding/json"
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
	Cache       *cache.Cache
	Departments *forms.Departments
	Shifts      *forms.Shifts
}

func NewHandler(c *cache.Cache, departments *forms.Departments, shifts *forms.Shifts) *Handler {
	return &Handler{Cache: c, Departments: departments, Shifts: shifts}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/departments", func(r chi.Router) {
		r.Use(middleware.RequireCapability(view.CapDepartmentsManage))
		r.Get("/", h.handleListDepartments)
		r.Post("/", h.handleCreateDepartment)
		r.Route("/{departmentID}", func(r chi.Router) {
			r.Put("/", h.handleUpdateDepartment)
			r.Delete("/", h.handleDeleteDepartment)
			r.Put("/manager", h.handleAssignStaff(forms.SlotManager))
			r.Put("/hr", h.handleAssignStaff(forms.SlotHR))
		})
	})
	r.Route("/shifts", func(r chi.Router) {
		r.Use(middleware.RequireCapability(view.CapShiftsManage))
		r.Get("/", h.handleListShifts)
		r.Post("/", h.handleCreateShift)
		r.Put("/{shiftID}", h.handleUpdateShift)
		r.Delete("/{shiftID}", h.handleDeleteShift)
	})
	r.With(middleware.RequireCapability(view.CapEmployeesManage)).Get("/managers", h.handleListManagers)
}

// handleListDepartments renders the resolved department table. Manager and
// HR names join against whatever is cached right now; missing collections
// fall back to the Not Assigned sentinel rather than blocking the render.
func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	companyID, ok := shared.ActiveCompanyID(w, r)
	if !ok {
		return
	}

	departments, ok := h.Cache.CachedDepartments(companyID)
	if !ok {
		var err error
		departments, err = h.Cache.FetchDepartments(r.Context(), companyID)
		if err != nil {
			shared.WriteError(w, err, requestID)
			return
		}
	}
	managers, _ := h.Cache.CachedManagers(companyID)
	var employees []directory.Employee
	if page, ok := h.Cache.CachedEmployees(companyID); ok {
		employees = page.Items
	}
	api.Success(w, directory.ResolveDepartments(departments, managers, employees), requestID)
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	companyID, ok := shared.ActiveCompanyID(w, r)
	if !ok {
		return
	}

	var payload upstream.DepartmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid request body", requestID)
		return
	}
	department, err := h.Departments.Create(r.Context(), companyID, payload)
	if err != nil {
		shared.WriteError(w, err, requestID)
		return
	}
	api.Created(w, department, requestID)
}

func (h *Handler) handleUpdateDepartment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	companyID, ok := shared.ActiveCompanyID(w, r)
	if !ok {
		return
	}

	var payload upstream.DepartmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid request body", requestID)
		return
	}
	department, err := h.Departments.Update(r.Context(), companyID, chi.URLParam(r, "departmentID"), payload)
	if err != nil {
		shared.WriteError(w, err, requestID)
		return
	}
	api.Success(w, department, requestID)
}

func (h *Handler) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	companyID, ok := shared.ActiveCompanyID(w, r)
	if !ok {
		return
	}
	if err := h.Departments.Delete(r.Context(), companyID, chi.URLParam(r, "departmentID")); err != nil {
		shared.WriteError(w, err, requestID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, requestID)
}

// handleAssignStaff replaces a department's manager or HR. The response
// carries a replaced flag so the frontend can show the discard warning it
// should already have shown before submitting.
func (h *Handler) handleAssignStaff(slot string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetRequestID(r.Context())
		companyID, ok := shared.ActiveCompanyID(w, r)
		if !ok {
			return
		}

		var person upstream.PersonPayload
		if err := json.NewDecoder(r.Body).Decode(&person); err != nil {
			api.Fail(w, http.StatusBadRequest, "bad_request", "invalid request body", requestID)
			return
		}
		result, err := h.Departments.AssignStaff(r.Context(), companyID, chi.URLParam(r, "departmentID"), slot, person)
		if err != nil {
			shared.WriteError(w, err, requestID)
			return
		}
		api.Success(w, result, requestID)
	}
}

func (h *Handler) handleListShifts(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	companyID, ok := shared.ActiveCompanyID(w, r)
	if !ok {
		return
	}

	shifts, ok := h.Cache.CachedShifts(companyID)
	if !ok {
		var err error
		shifts, err = h.Cache.FetchShifts(r.Context(), companyID)
		if err != nil {
			shared.WriteError(w, err, requestID)
			return
		}
	}
	api.Success(w, shifts, requestID)
}

func (h *Handler) handleCreateShift(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	companyID, ok := shared.ActiveCompanyID(w, r)
	if !ok {
		return
	}

	var payload upstream.ShiftPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid request body", requestID)
		return
	}
	shift, err := h.Shifts.Create(r.Context(), companyID, payload)
	if err != nil {
		shared.WriteError(w, err, requestID)
		return
	}
	api.Created(w, shift, requestID)
}

func (h *Handler) handleUpdateShift(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	companyID, ok := shared.ActiveCompanyID(w, r)
	if !ok {
		return
	}

	var payload upstream.ShiftPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid request body", requestID)
		return
	}
	shift, err := h.Shifts.Update(r.Context(), companyID, chi.URLParam(r, "shiftID"), payload)
	if err != nil {
		shared.WriteError(w, err, requestID)
		return
	}
	api.Success(w, shift, requestID)
}

func (h *Handler) handleDeleteShift(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	companyID, ok := shared.ActiveCompanyID(w, r)
	if !ok {
		return
	}
	if err := h.Shifts.Delete(r.Context(), companyID, chi.URLParam(r, "shiftID")); err != nil {
		shared.WriteError(w, err, requestID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, requestID)
}

func (h *Handler) handleListManagers(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	companyID, ok := shared.ActiveCompanyID(w, r)
	if !ok {
		return
	}

	managers, ok := h.Cache.CachedManagers(companyID)
	if !ok {
		var err error
		managers, err = h.Cache.FetchManagers(r.Context(), companyID)
		if err != nil {
			shared.WriteError(w, err, requestID)
			return
		}
	}
	api.Success(w, managers, requestID)
}
