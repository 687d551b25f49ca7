package importshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrconsole/internal/domain/importer"
	"hrconsole/internal/domain/reports"
	"hrconsole/internal/transport/http/api"
	"hrconsole/internal/transport/http/middleware"
	"hrconsole/internal/transport/http/shared"
	"hrconsole/internal/view"
)

type Handler struct {
	Pipeline       *importer.Pipeline
	MaxUploadBytes int64
}

func NewHandler(pipeline *importer.Pipeline, maxUploadBytes int64) *Handler {
	return &Handler{Pipeline: pipeline, MaxUploadBytes: maxUploadBytes}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/imports", func(r chi.Router) {
		r.Use(middleware.RequireCapability(view.CapImportsRun))
		r.Post("/employees", h.handleImport)
		r.Get("/template", h.handleTemplate)
	})
}

// handleImport accepts one CSV or XLSX upload and reports a single
// aggregate summary for the whole file. Partial failures are reported, not
// rolled back: rows the HR service accepted stay created.
func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	companyID, ok := shared.ActiveCompanyID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "a file upload named 'file' is required", requestID)
		return
	}
	defer file.Close()

	summary, err := h.Pipeline.Run(r.Context(), companyID, header.Filename, file)
	if err != nil {
		shared.WriteError(w, err, requestID)
		return
	}
	api.Success(w, summary, requestID)
}

func (h *Handler) handleTemplate(w http.ResponseWriter, r *http.Request) {
	artifact, err := reports.ImportTemplateCSV()
	if err != nil {
		shared.WriteError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	shared.WriteArtifact(w, artifact)
}
