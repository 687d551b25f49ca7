package shared

import (
	"errors"
	"net/http"

	"hrconsole/internal/domain/forms"
	"hrconsole/internal/domain/importer"
	"hrconsole/internal/domain/reports"
	"hrconsole/internal/transport/http/api"
	"hrconsole/internal/upstream"
)

// WriteError maps core errors onto the response envelope. Validation
// failures come back field-keyed; upstream rejections keep their status
// and code; everything else is a plain 502 because the gateway itself has
// no failure of its own to report.
func WriteError(w http.ResponseWriter, err error, requestID string) {
	var validation *forms.ValidationError
	if errors.As(err, &validation) {
		api.FailWithDetails(w, http.StatusBadRequest, "validation_error", "payload validation failed",
			map[string]any{"fields": validation.Issues}, requestID)
		return
	}
	var remote *upstream.Error
	if errors.As(err, &remote) {
		status := remote.Status
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		api.Fail(w, status, remote.Code, remote.Message, requestID)
		return
	}
	if errors.Is(err, importer.ErrEmptyBatch) || errors.Is(err, importer.ErrNoHeader) {
		api.Fail(w, http.StatusBadRequest, "import_rejected", err.Error(), requestID)
		return
	}
	if errors.Is(err, reports.ErrNoEmployees) {
		api.Fail(w, http.StatusBadRequest, "export_empty", err.Error(), requestID)
		return
	}
	api.Fail(w, http.StatusBadGateway, "upstream_unreachable", "the HR service could not be reached", requestID)
}

// WriteArtifact streams a generated download.
func WriteArtifact(w http.ResponseWriter, artifact reports.Artifact) {
	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+artifact.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact.Data)
}
