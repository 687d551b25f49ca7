package cache

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"hrconsole/internal/domain/directory"
	"hrconsole/internal/platform/metrics"
	"hrconsole/internal/platform/storage"
	"hrconsole/internal/upstream"
)

type fakeUpstream struct {
	companies   []directory.Company
	departments []directory.Department
	managers    []directory.Manager
	shifts      []directory.Shift
	page        upstream.EmployeePage

	departmentCalls int
	employeeQueries []upstream.EmployeeQuery
}

func (f *fakeUpstream) ListCompanies(ctx context.Context) ([]directory.Company, error) {
	return f.companies, nil
}

func (f *fakeUpstream) ListDepartments(ctx context.Context, companyID string) ([]directory.Department, error) {
	f.departmentCalls++
	return f.departments, nil
}

func (f *fakeUpstream) ListManagers(ctx context.Context, companyID string) ([]directory.Manager, error) {
	return f.managers, nil
}

func (f *fakeUpstream) ListShifts(ctx context.Context, companyID string) ([]directory.Shift, error) {
	return f.shifts, nil
}

func (f *fakeUpstream) ListEmployees(ctx context.Context, companyID string, query upstream.EmployeeQuery) (upstream.EmployeePage, error) {
	f.employeeQueries = append(f.employeeQueries, query)
	return f.page, nil
}

func newTestCache(up *fakeUpstream, store storage.Store) *Cache {
	return New(up, store, metrics.New(prometheus.NewRegistry()))
}

func TestFetchDepartmentsPopulatesCache(t *testing.T) {
	up := &fakeUpstream{departments: []directory.Department{{ID: "d1", Name: "Engineering"}}}
	c := newTestCache(up, storage.NewMemoryStore())

	if _, ok := c.CachedDepartments("c1"); ok {
		t.Fatal("expected a cold cache")
	}
	fetched, err := c.FetchDepartments(context.Background(), "c1")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(fetched) != 1 || fetched[0].Name != "Engineering" {
		t.Fatalf("unexpected departments: %+v", fetched)
	}

	cached, ok := c.CachedDepartments("c1")
	if !ok || len(cached) != 1 {
		t.Fatal("expected the fetched slice to be cached")
	}
	if up.departmentCalls != 1 {
		t.Fatalf("expected a single upstream call, got %d", up.departmentCalls)
	}
}

func TestCacheHydratesFromStorageAfterRestart(t *testing.T) {
	store := storage.NewMemoryStore()
	up := &fakeUpstream{departments: []directory.Department{{ID: "d1", Name: "Engineering"}}}
	first := newTestCache(up, store)
	if _, err := first.FetchDepartments(context.Background(), "c1"); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	// A fresh cache over the same store simulates a restart.
	restarted := newTestCache(&fakeUpstream{}, store)
	cached, ok := restarted.CachedDepartments("c1")
	if !ok {
		t.Fatal("expected the persisted entry to hydrate")
	}
	if cached[0].ID != "d1" {
		t.Fatalf("unexpected hydrated entry: %+v", cached)
	}
}

func TestInvalidateDropsMemoryAndStorage(t *testing.T) {
	store := storage.NewMemoryStore()
	up := &fakeUpstream{departments: []directory.Department{{ID: "d1"}}}
	c := newTestCache(up, store)
	if _, err := c.FetchDepartments(context.Background(), "c1"); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	c.InvalidateDepartments("c1")
	if _, ok := c.CachedDepartments("c1"); ok {
		t.Fatal("expected the entry to be gone from memory and storage")
	}
}

func TestFetchEmployeesResetsPageWhenSearchChanges(t *testing.T) {
	up := &fakeUpstream{page: upstream.EmployeePage{CurrentPage: 1}}
	c := newTestCache(up, storage.NewMemoryStore())
	ctx := context.Background()

	if _, err := c.FetchEmployees(ctx, "c1", upstream.EmployeeQuery{Page: 3, Limit: 10}); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if _, err := c.FetchEmployees(ctx, "c1", upstream.EmployeeQuery{Page: 3, Limit: 10, Search: "anna"}); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if len(up.employeeQueries) != 2 {
		t.Fatalf("expected two upstream queries, got %d", len(up.employeeQueries))
	}
	if up.employeeQueries[0].Page != 3 {
		t.Fatalf("first query should keep its page, got %d", up.employeeQueries[0].Page)
	}
	if up.employeeQueries[1].Page != 1 {
		t.Fatalf("a changed search must reset to page 1, got %d", up.employeeQueries[1].Page)
	}

	last, ok := c.LastEmployeeQuery("c1")
	if !ok || last.Search != "anna" || last.Page != 1 {
		t.Fatalf("unexpected recorded query: %+v", last)
	}
}

func TestFetchEmployeesKeepsPageForSameSearch(t *testing.T) {
	up := &fakeUpstream{}
	c := newTestCache(up, storage.NewMemoryStore())
	ctx := context.Background()

	if _, err := c.FetchEmployees(ctx, "c1", upstream.EmployeeQuery{Page: 1, Limit: 10, Search: "anna"}); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if _, err := c.FetchEmployees(ctx, "c1", upstream.EmployeeQuery{Page: 4, Limit: 10, Search: "anna"}); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if up.employeeQueries[1].Page != 4 {
		t.Fatalf("paging within the same search must be honored, got %d", up.employeeQueries[1].Page)
	}
}

func TestInvalidateCompanyScopeDropsEveryDependentSlice(t *testing.T) {
	up := &fakeUpstream{
		departments: []directory.Department{{ID: "d1"}},
		shifts:      []directory.Shift{{ID: "s1"}},
		managers:    []directory.Manager{{Employee: directory.Employee{ID: "m1"}}},
	}
	c := newTestCache(up, storage.NewMemoryStore())
	ctx := context.Background()
	if _, err := c.FetchDepartments(ctx, "c1"); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if _, err := c.FetchShifts(ctx, "c1"); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if _, err := c.FetchManagers(ctx, "c1"); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if _, err := c.FetchEmployees(ctx, "c1", upstream.EmployeeQuery{Page: 1, Limit: 10}); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	c.InvalidateCompanyScope("c1")

	if _, ok := c.CachedDepartments("c1"); ok {
		t.Fatal("departments survived a company scope invalidation")
	}
	if _, ok := c.CachedShifts("c1"); ok {
		t.Fatal("shifts survived a company scope invalidation")
	}
	if _, ok := c.CachedManagers("c1"); ok {
		t.Fatal("managers survived a company scope invalidation")
	}
	if _, ok := c.CachedEmployees("c1"); ok {
		t.Fatal("employees survived a company scope invalidation")
	}
}

func TestResetClearsEveryCollection(t *testing.T) {
	store := storage.NewMemoryStore()
	up := &fakeUpstream{companies: []directory.Company{{ID: "c1"}}}
	c := newTestCache(up, store)
	if _, err := c.FetchCompanies(context.Background()); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	c.Reset()
	_ = store.Clear()
	if _, ok := c.CachedCompanies(); ok {
		t.Fatal("expected an empty cache after reset")
	}
}
