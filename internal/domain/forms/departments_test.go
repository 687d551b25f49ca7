package forms

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"hrconsole/internal/domain/cache"
	"hrconsole/internal/domain/directory"
	"hrconsole/internal/platform/metrics"
	"hrconsole/internal/platform/storage"
	"hrconsole/internal/upstream"
)

// fakeHR is a scripted upstream. It serves whatever collections it holds
// and counts the requests it saw per method and path suffix.
type fakeHR struct {
	departments []directory.Department
	managers    []directory.Manager
	shifts      []directory.Shift
	calls       map[string]int
}

func (f *fakeHR) handler(t *testing.T) http.Handler {
	t.Helper()
	f.calls = map[string]int{}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls[r.Method+" "+r.URL.Path]++
		respond := func(data any) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
		}
		switch {
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/departments"):
			respond(f.departments)
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/managers"):
			respond(f.managers)
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/shifts"):
			respond(f.shifts)
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/departments"):
			respond(directory.Department{ID: "d-new", Name: "Created"})
		case r.Method == http.MethodPut && (strings.HasSuffix(r.URL.Path, "/manager") || strings.HasSuffix(r.URL.Path, "/hr")):
			respond(f.departments[0])
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/shifts"):
			respond(directory.Shift{ID: "s-new"})
		case r.Method == http.MethodDelete:
			respond(map[string]bool{"deleted": true})
		default:
			respond(nil)
		}
	})
}

func newControllerFixture(t *testing.T, fake *fakeHR) (*upstream.Client, *cache.Cache, func()) {
	t.Helper()
	server := httptest.NewServer(fake.handler(t))
	client := upstream.New(server.URL, time.Second)
	c := cache.New(client, storage.NewMemoryStore(), metrics.New(prometheus.NewRegistry()))
	return client, c, server.Close
}

func TestCreateDepartmentValidatesBeforeAnyCall(t *testing.T) {
	fake := &fakeHR{}
	client, c, done := newControllerFixture(t, fake)
	defer done()

	controller := NewDepartments(client, c)
	_, err := controller.Create(context.Background(), "c1", upstream.DepartmentPayload{})
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if len(validation.Issues) != 1 || validation.Issues[0].Field != "name" {
		t.Fatalf("unexpected issues: %+v", validation.Issues)
	}
	if len(fake.calls) != 0 {
		t.Fatalf("a rejected draft must not reach the network, saw %v", fake.calls)
	}
}

func TestCreateDepartmentRefetchesBeforeSuccess(t *testing.T) {
	fake := &fakeHR{departments: []directory.Department{{ID: "d1", Name: "Engineering"}}}
	client, c, done := newControllerFixture(t, fake)
	defer done()

	controller := NewDepartments(client, c)
	department, err := controller.Create(context.Background(), "c1", upstream.DepartmentPayload{Name: "Created"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if department.ID != "d-new" {
		t.Fatalf("unexpected department: %+v", department)
	}

	if fake.calls["GET /api/v1/companies/c1/departments"] != 1 {
		t.Fatal("the department list must be refetched before success is reported")
	}
	if _, ok := c.CachedDepartments("c1"); !ok {
		t.Fatal("the cache must hold the fresh list")
	}
}

func TestAssignStaffReportsReplacement(t *testing.T) {
	fake := &fakeHR{departments: []directory.Department{{ID: "d1", Name: "Engineering", ManagerID: "m-old"}}}
	client, c, done := newControllerFixture(t, fake)
	defer done()
	if _, err := c.FetchDepartments(context.Background(), "c1"); err != nil {
		t.Fatalf("seed fetch failed: %v", err)
	}

	controller := NewDepartments(client, c)
	person := upstream.PersonPayload{FirstName: "Nina", Email: "nina@acme.test"}

	result, err := controller.AssignStaff(context.Background(), "c1", "d1", SlotManager, person)
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if !result.Replaced {
		t.Fatal("an occupied manager slot must be reported as replaced")
	}

	// The HR slot is empty, so the same assignment there is not a replacement.
	result, err = controller.AssignStaff(context.Background(), "c1", "d1", SlotHR, person)
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if result.Replaced {
		t.Fatal("an empty hr slot must not be reported as replaced")
	}
}

func TestAssignStaffRefreshesManagers(t *testing.T) {
	fake := &fakeHR{departments: []directory.Department{{ID: "d1", Name: "Engineering"}}}
	client, c, done := newControllerFixture(t, fake)
	defer done()

	controller := NewDepartments(client, c)
	person := upstream.PersonPayload{FirstName: "Nina", Email: "nina@acme.test"}
	if _, err := controller.AssignStaff(context.Background(), "c1", "d1", SlotManager, person); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if fake.calls["GET /api/v1/companies/c1/managers"] != 1 {
		t.Fatal("an assignment creates a person, so managers must be refetched")
	}
}
