package httpadapter

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mtb-io/mercury-ci/internal/core/collection"
	"github.com/mtb-io/mercury-ci/internal/core/domain"
	"github.com/mtb-io/mercury-ci/internal/core/ports"
	"github.com/mtb-io/mercury-ci/internal/observability/metrics"
)

// RouterConfig carries the traffic-control knobs so tests can tighten them
// without environment plumbing.
type RouterConfig struct {
	RateLimitRPS   int
	RateLimitBurst int
	MaxConcurrent  int
}

type Router struct {
	cfg RouterConfig

	ingestUC   ports.FileIngestor
	analyzeUC  ports.FileAnalyzer
	briefingUC ports.BriefingGenerator
	reportUC   ports.ReportGenerator
	exporter   ports.ResultExporter

	files     *collection.Files
	briefings *collection.Briefings
	reports   *collection.Reports

	metrics *metrics.HTTPServerMetrics
}

func NewRouter(
	cfg RouterConfig,
	ingestUC ports.FileIngestor,
	analyzeUC ports.FileAnalyzer,
	briefingUC ports.BriefingGenerator,
	reportUC ports.ReportGenerator,
	exporter ports.ResultExporter,
	files *collection.Files,
	briefings *collection.Briefings,
	reports *collection.Reports,
	m *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		cfg:        cfg,
		ingestUC:   ingestUC,
		analyzeUC:  analyzeUC,
		briefingUC: briefingUC,
		reportUC:   reportUC,
		exporter:   exporter,
		files:      files,
		briefings:  briefings,
		reports:    reports,
		metrics:    m,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", rt.healthz)
	mux.HandleFunc("GET /openapi.json", rt.openAPISpec)
	mux.Handle("GET /metrics", rt.metrics.Handler())

	mux.HandleFunc("POST /v1/files", rt.uploadFile)
	mux.HandleFunc("GET /v1/files", rt.listFiles)
	mux.HandleFunc("GET /v1/files/{id}", rt.getFile)
	mux.HandleFunc("DELETE /v1/files/{id}", rt.deleteFile)
	mux.HandleFunc("POST /v1/files/{id}/analyze", rt.analyzeFile)
	mux.HandleFunc("GET /v1/files/{id}/export", rt.exportFile)
	mux.HandleFunc("GET /v1/files/{id}/download", rt.downloadFile)

	mux.HandleFunc("POST /v1/briefings", rt.generateBriefing)
	mux.HandleFunc("GET /v1/briefings", rt.listBriefings)
	mux.HandleFunc("GET /v1/briefings/archive", rt.listBriefingArchive)
	mux.HandleFunc("DELETE /v1/briefings/{id}", rt.deleteBriefing)

	mux.HandleFunc("POST /v1/reports", rt.generateReport)
	mux.HandleFunc("GET /v1/reports", rt.listReports)
	mux.HandleFunc("DELETE /v1/reports/{id}", rt.deleteReport)

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.cfg.MaxConcurrent, 50*time.Millisecond)
	handler = rateLimitMiddleware(handler, rt.cfg.RateLimitRPS, rt.cfg.RateLimitBurst)
	handler = rt.metrics.Middleware("api", handler)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) uploadFile(w http.ResponseWriter, r *http.Request) {
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	uploaded, err := rt.ingestUC.Upload(r.Context(), fileHeader.Filename, file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, uploaded)
}

func (rt *Router) listFiles(w http.ResponseWriter, r *http.Request) {
	files, err := rt.files.Load(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": files})
}

func (rt *Router) getFile(w http.ResponseWriter, r *http.Request) {
	file, err := rt.files.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, file)
}

func (rt *Router) deleteFile(w http.ResponseWriter, r *http.Request) {
	if err := rt.ingestUC.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) downloadFile(w http.ResponseWriter, r *http.Request) {
	rc, file, err := rt.ingestUC.Download(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, rc)
}

func (rt *Router) analyzeFile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	file, err := rt.analyzeUC.AnalyzeByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	rt.metrics.RecordAnalysis(string(file.Status), time.Since(start))
	writeJSON(w, http.StatusOK, file)
}

func (rt *Router) exportFile(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "json"
	}

	data, mimeType, filename, err := rt.exporter.Export(r.Context(), r.PathValue("id"), format)
	if err != nil {
		writeError(w, err)
		return
	}
	rt.metrics.RecordExport(format)

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (rt *Router) generateBriefing(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date    string   `json:"date"`
		Company string   `json:"company"`
		Sources []string `json:"sources"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Date) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date is required"})
		return
	}

	briefing, err := rt.briefingUC.Generate(r.Context(), domain.BriefingRequest{
		Date:    req.Date,
		Company: req.Company,
		Sources: req.Sources,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	rt.metrics.RecordBriefing()
	writeJSON(w, http.StatusCreated, briefing)
}

func (rt *Router) listBriefings(w http.ResponseWriter, r *http.Request) {
	briefings, err := rt.briefings.Load(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"briefings": briefings})
}

func (rt *Router) listBriefingArchive(w http.ResponseWriter, r *http.Request) {
	archived, err := rt.briefings.LoadArchive(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"briefings": archived})
}

func (rt *Router) deleteBriefing(w http.ResponseWriter, r *http.Request) {
	if err := rt.briefings.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) generateReport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReportType string   `json:"reportType"`
		Sections   []string `json:"sections"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	report, err := rt.reportUC.Generate(r.Context(), req.ReportType, req.Sections)
	if err != nil {
		writeError(w, err)
		return
	}
	rt.metrics.RecordReport(report.ReportType)
	writeJSON(w, http.StatusCreated, report)
}

func (rt *Router) listReports(w http.ResponseWriter, r *http.Request) {
	reports, err := rt.reports.Load(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reports": reports})
}

func (rt *Router) deleteReport(w http.ResponseWriter, r *http.Request) {
	if err := rt.reports.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
