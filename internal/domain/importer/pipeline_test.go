package importer

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

type bulkCapture struct {
	batch          []upstream.EmployeePayload
	idempotencyKey string
	listFetches    int
}

func fakeImportUpstream(t *testing.T, capture *bulkCapture) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond := func(data any) {
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
		}
		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/employees/bulk"):
			capture.idempotencyKey = r.Header.Get("Idempotency-Key")
			var body struct {
				Employees []upstream.EmployeePayload `json:"employees"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			capture.batch = body.Employees
			respond(upstream.BatchResult{Created: len(body.Employees) - 1, Failed: 1})
		case strings.HasSuffix(r.URL.Path, "/employees"):
			capture.listFetches++
			respond(upstream.EmployeePage{CurrentPage: 1})
		case strings.HasSuffix(r.URL.Path, "/departments"):
			respond([]directory.Department{{ID: "d1", Name: "Engineering"}})
		case strings.HasSuffix(r.URL.Path, "/shifts"):
			respond([]directory.Shift{{ID: "s1", Name: "Day"}})
		case strings.HasSuffix(r.URL.Path, "/managers"):
			respond([]directory.Manager{})
		default:
			respond(nil)
		}
	}))
}

func TestPipelineRunSubmitsOneBatch(t *testing.T) {
	capture := &bulkCapture{}
	server := fakeImportUpstream(t, capture)
	defer server.Close()

	client := upstream.New(server.URL, time.Second)
	c := cache.New(client, storage.NewMemoryStore(), metrics.New(prometheus.NewRegistry()))
	pipeline := NewPipeline(client, c, metrics.New(prometheus.NewRegistry()))

	file := strings.Join([]string{
		"Full Name,Official Email,Department",
		"Asha Rao,asha@acme.test,Engineering",
		"Asha Again,asha@acme.test,Engineering",
		"Ravi Menon,ravi@acme.test,Sales",
		"No Email,,Engineering",
	}, "\n")

	summary, err := pipeline.Run(context.Background(), "c1", "upload.csv", strings.NewReader(file))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if summary.Parsed != 4 || summary.Dropped != 2 || summary.Submitted != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Created != 1 || summary.Failed != 1 {
		t.Fatalf("batch result not adopted: %+v", summary)
	}
	if len(capture.batch) != 2 {
		t.Fatalf("expected 2 submitted payloads, got %d", len(capture.batch))
	}
	if capture.idempotencyKey == "" {
		t.Fatal("expected an idempotency key")
	}
	if capture.batch[0].EmploymentDetails.DepartmentID != "d1" {
		t.Fatal("department reference not resolved from the cached collections")
	}
	if capture.listFetches != 1 {
		t.Fatalf("the employee list must be refreshed exactly once, got %d", capture.listFetches)
	}
}

func TestPipelineRejectsEmptyBatch(t *testing.T) {
	capture := &bulkCapture{}
	server := fakeImportUpstream(t, capture)
	defer server.Close()

	client := upstream.New(server.URL, time.Second)
	c := cache.New(client, storage.NewMemoryStore(), metrics.New(prometheus.NewRegistry()))
	pipeline := NewPipeline(client, c, metrics.New(prometheus.NewRegistry()))

	file := "Full Name,Official Email\nNo Email,\n"
	_, err := pipeline.Run(context.Background(), "c1", "upload.csv", strings.NewReader(file))
	if !errors.Is(err, ErrEmptyBatch) {
		t.Fatalf("expected ErrEmptyBatch, got %v", err)
	}
	if capture.batch != nil {
		t.Fatal("an empty batch must never reach the upstream")
	}
}
