package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hrconsole/internal/platform/metrics"
	"hrconsole/internal/requestctx"
)

type logEntry struct {
	Timestamp string `json:"ts"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	Status    int    `json:"status"`
	Duration  int64  `json:"durationMs"`
	RequestID string `json:"requestId"`
	Role      string `json:"role,omitempty"`
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func Logger(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			entry := logEntry{
				Timestamp: time.Now().UTC().Format(time.RFC3339),
				Method:    r.Method,
				Path:      r.URL.Path,
				Status:    recorder.status,
				Duration:  time.Since(start).Milliseconds(),
				RequestID: GetRequestID(r.Context()),
				Role:      requestctx.GetActorRole(r.Context()),
			}
			payload, _ := json.Marshal(entry)
			log.Println(string(payload))

			if m != nil {
				m.RequestsTotal.WithLabelValues(r.Method, strconv.Itoa(recorder.status/100)+"xx").Inc()
				m.RequestDuration.WithLabelValues(routeArea(r.URL.Path)).Observe(time.Since(start).Seconds())
			}
		})
	}
}

// routeArea buckets paths by their first segment under the API prefix, so
// the duration histogram stays low-cardinality.
func routeArea(path string) string {
	trimmed := strings.TrimPrefix(path, "/api/v1/")
	trimmed = strings.TrimPrefix(trimmed, "/")
	if idx := strings.IndexByte(trimmed, '/'); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	if trimmed == "" {
		return "root"
	}
	return trimmed
}
