package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"hrconsole/internal/domain/directory"
)

// Error is a rejected upstream call. The operation that triggered it is
// aborted; there are no retries.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream %d %s: %s", e.Status, e.Code, e.Message)
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     *apiError       `json:"error,omitempty"`
	RequestID string          `json:"requestId,omitempty"`
}

// Client talks to the upstream HR API. The bearer token is set after login
// and cleared on logout.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any, headers map[string]string) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upstream request: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &Error{Status: resp.StatusCode, Code: "bad_envelope", Message: "upstream response was not a valid envelope"}
	}
	if resp.StatusCode >= 400 || !env.Success {
		apiErr := &Error{Status: resp.StatusCode, Code: "upstream_error", Message: "upstream request failed"}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// LoginResult carries the identity the upstream grants. SubAdminPermissions
// is nil for everyone except restricted subadmins; a subadmin with a nil
// list is treated as unrestricted.
type LoginResult struct {
	Token               string             `json:"token"`
	Role                string             `json:"role"`
	SubAdminPermissions []string           `json:"subAdminPermissions"`
	Company             *directory.Company `json:"company"`
}

func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var result LoginResult
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &result, nil)
	return result, err
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil, nil)
}

func (c *Client) ListCompanies(ctx context.Context) ([]directory.Company, error) {
	var companies []directory.Company
	err := c.do(ctx, http.MethodGet, "/api/v1/companies", nil, &companies, nil)
	return companies, err
}

func (c *Client) RegisterCompany(ctx context.Context, payload CompanyPayload) (directory.Company, error) {
	var company directory.Company
	err := c.do(ctx, http.MethodPost, "/api/v1/companies", payload, &company, nil)
	return company, err
}

func (c *Client) UpdateCompany(ctx context.Context, companyID string, payload CompanyPayload) (directory.Company, error) {
	var company directory.Company
	err := c.do(ctx, http.MethodPut, "/api/v1/companies/"+companyID, payload, &company, nil)
	return company, err
}

func (c *Client) UpdateCompanyPermissions(ctx context.Context, companyID string, permissions []string) error {
	return c.do(ctx, http.MethodPut, "/api/v1/companies/"+companyID+"/permissions", map[string]any{
		"permissions": permissions,
	}, nil, nil)
}

func (c *Client) UpdateCompanyCustomFields(ctx context.Context, companyID string, fields []directory.CustomFieldDef) error {
	return c.do(ctx, http.MethodPut, "/api/v1/companies/"+companyID+"/custom-fields", map[string]any{
		"customFields": fields,
	}, nil, nil)
}

func (c *Client) ExportCompanyData(ctx context.Context, companyID string) (json.RawMessage, error) {
	var raw json.RawMessage
	err := c.do(ctx, http.MethodGet, "/api/v1/companies/"+companyID+"/export", nil, &raw, nil)
	return raw, err
}

func (c *Client) ListDepartments(ctx context.Context, companyID string) ([]directory.Department, error) {
	var departments []directory.Department
	err := c.do(ctx, http.MethodGet, "/api/v1/companies/"+companyID+"/departments", nil, &departments, nil)
	return departments, err
}

func (c *Client) CreateDepartment(ctx context.Context, companyID string, payload DepartmentPayload) (directory.Department, error) {
	var department directory.Department
	err := c.do(ctx, http.MethodPost, "/api/v1/companies/"+companyID+"/departments", payload, &department, nil)
	return department, err
}

func (c *Client) UpdateDepartment(ctx context.Context, companyID, departmentID string, payload DepartmentPayload) (directory.Department, error) {
	var department directory.Department
	err := c.do(ctx, http.MethodPut, "/api/v1/companies/"+companyID+"/departments/"+departmentID, payload, &department, nil)
	return department, err
}

func (c *Client) DeleteDepartment(ctx context.Context, companyID, departmentID string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/companies/"+companyID+"/departments/"+departmentID, nil, nil, nil)
}

// AssignDepartmentStaff replaces a department's manager or HR assignment.
// The payload always describes a complete new person record; the upstream
// discards the previous assignee.
func (c *Client) AssignDepartmentStaff(ctx context.Context, companyID, departmentID, slot string, payload PersonPayload) (directory.Department, error) {
	var department directory.Department
	path := "/api/v1/companies/" + companyID + "/departments/" + departmentID + "/" + slot
	err := c.do(ctx, http.MethodPut, path, payload, &department, nil)
	return department, err
}

func (c *Client) ListShifts(ctx context.Context, companyID string) ([]directory.Shift, error) {
	var shifts []directory.Shift
	err := c.do(ctx, http.MethodGet, "/api/v1/companies/"+companyID+"/shifts", nil, &shifts, nil)
	return shifts, err
}

func (c *Client) CreateShift(ctx context.Context, companyID string, payload ShiftPayload) (directory.Shift, error) {
	var shift directory.Shift
	err := c.do(ctx, http.MethodPost, "/api/v1/companies/"+companyID+"/shifts", payload, &shift, nil)
	return shift, err
}

func (c *Client) UpdateShift(ctx context.Context, companyID, shiftID string, payload ShiftPayload) (directory.Shift, error) {
	var shift directory.Shift
	err := c.do(ctx, http.MethodPut, "/api/v1/companies/"+companyID+"/shifts/"+shiftID, payload, &shift, nil)
	return shift, err
}

func (c *Client) DeleteShift(ctx context.Context, companyID, shiftID string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/companies/"+companyID+"/shifts/"+shiftID, nil, nil, nil)
}

func (c *Client) ListManagers(ctx context.Context, companyID string) ([]directory.Manager, error) {
	var managers []directory.Manager
	err := c.do(ctx, http.MethodGet, "/api/v1/companies/"+companyID+"/managers", nil, &managers, nil)
	return managers, err
}

// EmployeeQuery is the paginated employee list contract. A changed search
// must be issued with Page reset to 1; the cache layer enforces that.
type EmployeeQuery struct {
	Page   int
	Limit  int
	Search string
}

type EmployeePage struct {
	Items       []directory.Employee `json:"items"`
	CurrentPage int                  `json:"currentPage"`
	TotalPages  int                  `json:"totalPages"`
	Total       int                  `json:"total"`
}

func (c *Client) ListEmployees(ctx context.Context, companyID string, query EmployeeQuery) (EmployeePage, error) {
	values := url.Values{}
	values.Set("page", strconv.Itoa(query.Page))
	values.Set("limit", strconv.Itoa(query.Limit))
	if query.Search != "" {
		values.Set("search", query.Search)
	}
	var page EmployeePage
	err := c.do(ctx, http.MethodGet, "/api/v1/companies/"+companyID+"/employees?"+values.Encode(), nil, &page, nil)
	return page, err
}

func (c *Client) CreateEmployee(ctx context.Context, companyID string, payload EmployeePayload) (directory.Employee, error) {
	var employee directory.Employee
	err := c.do(ctx, http.MethodPost, "/api/v1/companies/"+companyID+"/employees", payload, &employee, nil)
	return employee, err
}

func (c *Client) UpdateEmployee(ctx context.Context, companyID, employeeID string, payload EmployeePayload) (directory.Employee, error) {
	var employee directory.Employee
	err := c.do(ctx, http.MethodPut, "/api/v1/companies/"+companyID+"/employees/"+employeeID, payload, &employee, nil)
	return employee, err
}

// BatchRowResult is the upstream's per-row verdict for a bulk create.
type BatchRowResult struct {
	Email   string `json:"email"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type BatchResult struct {
	Created int              `json:"created"`
	Failed  int              `json:"failed"`
	Results []BatchRowResult `json:"results"`
}

// BulkCreateEmployees submits one whole import batch. The idempotency key
// guards against double submission of the same upload.
func (c *Client) BulkCreateEmployees(ctx context.Context, companyID string, batch []EmployeePayload, idempotencyKey string) (BatchResult, error) {
	var result BatchResult
	err := c.do(ctx, http.MethodPost, "/api/v1/companies/"+companyID+"/employees/bulk", map[string]any{
		"employees": batch,
	}, &result, map[string]string{"Idempotency-Key": idempotencyKey})
	return result, err
}
