package cache

import (
	"context"
	"encoding/json"
	"sync"

	"hrconsole/internal/domain/directory"
	"hrconsole/internal/platform/metrics"
	"hrconsole/internal/platform/storage"
	"hrconsole/internal/upstream"
)

const (
	entityCompanies   = "companies"
	entityDepartments = "departments"
	entityEmployees   = "employees"
	entityManagers    = "managers"
	entityShifts      = "shifts"
)

// Upstream is the slice of the API client the cache fetches through.
type Upstream interface {
	ListCompanies(ctx context.Context) ([]directory.Company, error)
	ListDepartments(ctx context.Context, companyID string) ([]directory.Department, error)
	ListManagers(ctx context.Context, companyID string) ([]directory.Manager, error)
	ListShifts(ctx context.Context, companyID string) ([]directory.Shift, error)
	ListEmployees(ctx context.Context, companyID string, query upstream.EmployeeQuery) (upstream.EmployeePage, error)
}

// Cache holds the company-scoped copies of the upstream collections. It is
// never authoritative: entries are replaced wholesale on fetch, dropped
// wholesale on invalidation, and mirrored to durable storage so a restart
// can render before the first fetch completes.
type Cache struct {
	upstream Upstream
	store    storage.Store
	metrics  *metrics.Metrics
	loads    *LoadTracker

	mu            sync.RWMutex
	companies     []directory.Company
	hasCompanies  bool
	departments   map[string][]directory.Department
	managers      map[string][]directory.Manager
	shifts        map[string][]directory.Shift
	employeePages map[string]upstream.EmployeePage
	employeeQuery map[string]upstream.EmployeeQuery
}

func New(up Upstream, store storage.Store, m *metrics.Metrics) *Cache {
	return &Cache{
		upstream:      up,
		store:         store,
		metrics:       m,
		loads:         NewLoadTracker(),
		departments:   make(map[string][]directory.Department),
		managers:      make(map[string][]directory.Manager),
		shifts:        make(map[string][]directory.Shift),
		employeePages: make(map[string]upstream.EmployeePage),
		employeeQuery: make(map[string]upstream.EmployeeQuery),
	}
}

// Loading reports whether any upstream fetch is still in flight. It is
// backed by a counter, so a fast fetch finishing never hides the spinner
// while a slower one is pending.
func (c *Cache) Loading() bool {
	return c.loads.Loading()
}

func storageKey(entity, companyID string) string {
	return "cache/" + entity + "/" + companyID
}

func (c *Cache) persist(entity, companyID string, value any) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return
	}
	// Best-effort mirror; a failed write only costs the next restart a fetch.
	_ = c.store.Set(storageKey(entity, companyID), string(encoded))
}

func (c *Cache) hydrate(entity, companyID string, out any) bool {
	raw, err := c.store.Get(storageKey(entity, companyID))
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(raw), out) == nil
}

func (c *Cache) discard(entity, companyID string) {
	_ = c.store.Delete(storageKey(entity, companyID))
}

// CachedCompanies returns the superadmin's company list if cached.
func (c *Cache) CachedCompanies() ([]directory.Company, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hasCompanies {
		c.metrics.CacheHits.WithLabelValues(entityCompanies).Inc()
		return c.companies, true
	}
	var companies []directory.Company
	if c.hydrate(entityCompanies, "all", &companies) {
		c.companies = companies
		c.hasCompanies = true
		c.metrics.CacheHits.WithLabelValues(entityCompanies).Inc()
		return companies, true
	}
	c.metrics.CacheMisses.WithLabelValues(entityCompanies).Inc()
	return nil, false
}

func (c *Cache) FetchCompanies(ctx context.Context) ([]directory.Company, error) {
	done := c.loads.Begin()
	defer done()

	companies, err := c.upstream.ListCompanies(ctx)
	if err != nil {
		c.metrics.CacheFetches.WithLabelValues(entityCompanies, "error").Inc()
		return nil, err
	}
	c.metrics.CacheFetches.WithLabelValues(entityCompanies, "ok").Inc()

	c.mu.Lock()
	c.companies = companies
	c.hasCompanies = true
	c.persist(entityCompanies, "all", companies)
	c.mu.Unlock()
	return companies, nil
}

func (c *Cache) InvalidateCompanies() {
	c.mu.Lock()
	c.companies = nil
	c.hasCompanies = false
	c.discard(entityCompanies, "all")
	c.mu.Unlock()
	c.metrics.CacheInvalidates.WithLabelValues(entityCompanies).Inc()
}

func (c *Cache) CachedDepartments(companyID string) ([]directory.Department, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if departments, ok := c.departments[companyID]; ok {
		c.metrics.CacheHits.WithLabelValues(entityDepartments).Inc()
		return departments, true
	}
	var departments []directory.Department
	if c.hydrate(entityDepartments, companyID, &departments) {
		c.departments[companyID] = departments
		c.metrics.CacheHits.WithLabelValues(entityDepartments).Inc()
		return departments, true
	}
	c.metrics.CacheMisses.WithLabelValues(entityDepartments).Inc()
	return nil, false
}

func (c *Cache) FetchDepartments(ctx context.Context, companyID string) ([]directory.Department, error) {
	done := c.loads.Begin()
	defer done()

	departments, err := c.upstream.ListDepartments(ctx, companyID)
	if err != nil {
		c.metrics.CacheFetches.WithLabelValues(entityDepartments, "error").Inc()
		return nil, err
	}
	c.metrics.CacheFetches.WithLabelValues(entityDepartments, "ok").Inc()

	c.mu.Lock()
	c.departments[companyID] = departments
	c.persist(entityDepartments, companyID, departments)
	c.mu.Unlock()
	return departments, nil
}

func (c *Cache) InvalidateDepartments(companyID string) {
	c.mu.Lock()
	delete(c.departments, companyID)
	c.discard(entityDepartments, companyID)
	c.mu.Unlock()
	c.metrics.CacheInvalidates.WithLabelValues(entityDepartments).Inc()
}

func (c *Cache) CachedManagers(companyID string) ([]directory.Manager, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if managers, ok := c.managers[companyID]; ok {
		c.metrics.CacheHits.WithLabelValues(entityManagers).Inc()
		return managers, true
	}
	var managers []directory.Manager
	if c.hydrate(entityManagers, companyID, &managers) {
		c.managers[companyID] = managers
		c.metrics.CacheHits.WithLabelValues(entityManagers).Inc()
		return managers, true
	}
	c.metrics.CacheMisses.WithLabelValues(entityManagers).Inc()
	return nil, false
}

func (c *Cache) FetchManagers(ctx context.Context, companyID string) ([]directory.Manager, error) {
	done := c.loads.Begin()
	defer done()

	managers, err := c.upstream.ListManagers(ctx, companyID)
	if err != nil {
		c.metrics.CacheFetches.WithLabelValues(entityManagers, "error").Inc()
		return nil, err
	}
	c.metrics.CacheFetches.WithLabelValues(entityManagers, "ok").Inc()

	c.mu.Lock()
	c.managers[companyID] = managers
	c.persist(entityManagers, companyID, managers)
	c.mu.Unlock()
	return managers, nil
}

func (c *Cache) InvalidateManagers(companyID string) {
	c.mu.Lock()
	delete(c.managers, companyID)
	c.discard(entityManagers, companyID)
	c.mu.Unlock()
	c.metrics.CacheInvalidates.WithLabelValues(entityManagers).Inc()
}

func (c *Cache) CachedShifts(companyID string) ([]directory.Shift, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if shifts, ok := c.shifts[companyID]; ok {
		c.metrics.CacheHits.WithLabelValues(entityShifts).Inc()
		return shifts, true
	}
	var shifts []directory.Shift
	if c.hydrate(entityShifts, companyID, &shifts) {
		c.shifts[companyID] = shifts
		c.metrics.CacheHits.WithLabelValues(entityShifts).Inc()
		return shifts, true
	}
	c.metrics.CacheMisses.WithLabelValues(entityShifts).Inc()
	return nil, false
}

func (c *Cache) FetchShifts(ctx context.Context, companyID string) ([]directory.Shift, error) {
	done := c.loads.Begin()
	defer done()

	shifts, err := c.upstream.ListShifts(ctx, companyID)
	if err != nil {
		c.metrics.CacheFetches.WithLabelValues(entityShifts, "error").Inc()
		return nil, err
	}
	c.metrics.CacheFetches.WithLabelValues(entityShifts, "ok").Inc()

	c.mu.Lock()
	c.shifts[companyID] = shifts
	c.persist(entityShifts, companyID, shifts)
	c.mu.Unlock()
	return shifts, nil
}

func (c *Cache) InvalidateShifts(companyID string) {
	c.mu.Lock()
	delete(c.shifts, companyID)
	c.discard(entityShifts, companyID)
	c.mu.Unlock()
	c.metrics.CacheInvalidates.WithLabelValues(entityShifts).Inc()
}

// CachedEmployees returns the last fetched employee page for a company.
func (c *Cache) CachedEmployees(companyID string) (upstream.EmployeePage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if page, ok := c.employeePages[companyID]; ok {
		c.metrics.CacheHits.WithLabelValues(entityEmployees).Inc()
		return page, true
	}
	var page upstream.EmployeePage
	if c.hydrate(entityEmployees, companyID, &page) {
		c.employeePages[companyID] = page
		c.metrics.CacheHits.WithLabelValues(entityEmployees).Inc()
		return page, true
	}
	c.metrics.CacheMisses.WithLabelValues(entityEmployees).Inc()
	return upstream.EmployeePage{}, false
}

// FetchEmployees runs a paginated fetch. A query whose search term differs
// from the previous fetch for the company is forced back to page 1.
func (c *Cache) FetchEmployees(ctx context.Context, companyID string, query upstream.EmployeeQuery) (upstream.EmployeePage, error) {
	done := c.loads.Begin()
	defer done()

	if query.Page < 1 {
		query.Page = 1
	}
	c.mu.Lock()
	if previous, ok := c.employeeQuery[companyID]; ok && previous.Search != query.Search {
		query.Page = 1
	}
	c.mu.Unlock()

	page, err := c.upstream.ListEmployees(ctx, companyID, query)
	if err != nil {
		c.metrics.CacheFetches.WithLabelValues(entityEmployees, "error").Inc()
		return upstream.EmployeePage{}, err
	}
	c.metrics.CacheFetches.WithLabelValues(entityEmployees, "ok").Inc()

	c.mu.Lock()
	c.employeePages[companyID] = page
	c.employeeQuery[companyID] = query
	c.persist(entityEmployees, companyID, page)
	c.mu.Unlock()
	return page, nil
}

// LastEmployeeQuery exposes the query that produced the cached page, so a
// refetch after a mutation can reuse it.
func (c *Cache) LastEmployeeQuery(companyID string) (upstream.EmployeeQuery, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	query, ok := c.employeeQuery[companyID]
	return query, ok
}

func (c *Cache) InvalidateEmployees(companyID string) {
	c.mu.Lock()
	delete(c.employeePages, companyID)
	c.discard(entityEmployees, companyID)
	c.mu.Unlock()
	c.metrics.CacheInvalidates.WithLabelValues(entityEmployees).Inc()
}

// InvalidateCompanyScope drops every cache slice that depends on a company.
// Switching the active company must go through here: dependent entries are
// invalidated, never merged.
func (c *Cache) InvalidateCompanyScope(companyID string) {
	c.InvalidateDepartments(companyID)
	c.InvalidateManagers(companyID)
	c.InvalidateShifts(companyID)
	c.InvalidateEmployees(companyID)
}

// Reset clears every cached collection from memory. The persisted copies
// go with the session wipe: logout calls Reset and then clears the whole
// store, so no pre-logout data survives either way.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.companies = nil
	c.hasCompanies = false
	c.departments = make(map[string][]directory.Department)
	c.managers = make(map[string][]directory.Manager)
	c.shifts = make(map[string][]directory.Shift)
	c.employeePages = make(map[string]upstream.EmployeePage)
	c.employeeQuery = make(map[string]upstream.EmployeeQuery)
	c.mu.Unlock()
}
