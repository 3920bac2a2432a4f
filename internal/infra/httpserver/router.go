package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	appanalysis "github.com/bryanwahyu/resume-insight/internal/application/analysis"
	"github.com/bryanwahyu/resume-insight/internal/config"
	domain "github.com/bryanwahyu/resume-insight/internal/domain/analysis"
	"github.com/bryanwahyu/resume-insight/internal/middleware"
)

type Router struct {
	svc      *appanalysis.Service
	cfg      *config.Config
	checkers map[string]middleware.HealthChecker
}

func NewRouter(svc *appanalysis.Service, cfg *config.Config, checkers map[string]middleware.HealthChecker, log zerolog.Logger) http.Handler {
	r := &Router{svc: svc, cfg: cfg, checkers: checkers}
	mux := chi.NewRouter()

	mux.Use(middleware.Logging(log))
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.RateLimit(30, 1))
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.Origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	mux.Post("/upload", r.wrap(r.handleUpload))
	mux.Post("/analyze", r.wrap(r.handleAnalyze))
	mux.With(middleware.BearerAuth(cfg.Server.AdminToken)).
		Get("/analyses", r.wrap(r.handleAnalysesList))
	mux.Get("/health", r.handleHealth)
	mux.Get("/debug/config", r.handleDebugConfig)
	mux.Get("/metrics", middleware.MetricsHandler)

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// httpError carries a status for user-correctable failures so wrap can
// map them without stringly matching.
type httpError struct {
	status int
	msg    string
}

func (e *httpError) Error() string { return e.msg }

func badRequest(msg string) error { return &httpError{status: http.StatusBadRequest, msg: msg} }

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		var he *httpError
		var inc *domain.IncompleteError
		switch {
		case errors.As(err, &he):
			writeJSON(w, he.status, map[string]any{"error": he.msg})
		case errors.As(err, &inc):
			// Never discard the raw reply: return it with the partial
			// result so the drift can be diagnosed.
			middleware.IncrementAnalysesIncomplete()
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error":          "AI could not provide a complete analysis. Please try again.",
				"raw_ai_output":  inc.Raw,
				"parsed_partial": inc.Partial,
			})
		case errors.Is(err, domain.ErrEmptyDocument):
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Could not extract text from resume."})
		case errors.Is(err, domain.ErrNotConfigured):
			middleware.IncrementAnalysesFailed()
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error": "GROQ_API_KEY not configured on server. Set it in environment or .env to enable analysis.",
			})
		default:
			middleware.IncrementAnalysesFailed()
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		}
	}
}

// POST /upload
// Multipart field "resume": a .pdf or .docx document up to the configured
// size limit. Returns the structured analysis plus the raw model output.
func (r *Router) handleUpload(w http.ResponseWriter, req *http.Request) error {
	maxBytes := r.cfg.MaxUploadBytes()
	req.Body = http.MaxBytesReader(w, req.Body, maxBytes)

	file, header, err := req.FormFile("resume")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return badRequest("File exceeds the upload size limit.")
		}
		return badRequest("No file uploaded")
	}
	defer file.Close()
	// The multipart form may have spilled to temp files; always release.
	defer func() {
		if req.MultipartForm != nil {
			_ = req.MultipartForm.RemoveAll()
		}
	}()

	if header.Filename == "" {
		return badRequest("Empty filename")
	}
	if err := middleware.ValidateResumeExtension(header.Filename); err != nil {
		return badRequest(err.Error())
	}
	if err := middleware.ValidateResumeMIME(header.Header.Get("Content-Type")); err != nil {
		return badRequest(err.Error())
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return badRequest("failed to read uploaded file")
	}

	report, err := r.svc.AnalyzeUpload(req.Context(), middleware.SanitizeFilename(header.Filename), data)
	if err != nil {
		return err
	}

	middleware.IncrementAnalyses()
	return writeJSON(w, http.StatusOK, report)
}

// POST /analyze
// Body: {"resume_text": "..."}. Free-form coaching reply, not parsed.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		ResumeText string `json:"resume_text"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest("invalid JSON body")
	}
	if body.ResumeText == "" {
		return badRequest("No resume text provided")
	}

	reply, err := r.svc.AnalyzeText(req.Context(), body.ResumeText)
	if err != nil {
		return err
	}

	return writeJSON(w, http.StatusOK, map[string]any{
		"ai_suggestions": reply,
		"model":          r.svc.Model,
	})
}

// GET /analyses?page=&page_size=
func (r *Router) handleAnalysesList(w http.ResponseWriter, req *http.Request) error {
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))

	list, err := r.svc.List(req.Context(), middleware.ValidatePage(page), middleware.ValidatePageSize(size))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// GET /health
func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	checks, healthy := middleware.RunChecks(req.Context(), r.checkers)

	status := "ok"
	code := http.StatusOK
	if !healthy {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	body := map[string]any{
		"status":        status,
		"has_groq_key":  r.cfg.HasGroqKey(),
		"max_upload_mb": r.cfg.Upload.MaxMB,
	}
	if r.cfg.HasGroqKey() {
		body["model"] = r.cfg.Groq.Model
		body["model_fallbacks"] = r.cfg.Groq.FallbackModels
	} else {
		body["model"] = nil
		body["model_fallbacks"] = []string{}
	}
	if len(checks) > 0 {
		body["checks"] = checks
	}
	writeJSON(w, code, body)
}

// GET /debug/config
// Restricted diagnostic snapshot; no full secrets, disabled outside
// development-like environments.
func (r *Router) handleDebugConfig(w http.ResponseWriter, req *http.Request) {
	if !r.cfg.DevLike() {
		writeJSON(w, http.StatusForbidden, map[string]any{
			"error": "Debug endpoint is disabled in non-dev environments.",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"groq_key_present": r.cfg.HasGroqKey(),
		"groq_key_masked":  r.cfg.MaskedGroqKey(),
		"model":            r.cfg.Groq.Model,
		"model_fallbacks":  r.cfg.Groq.FallbackModels,
		"temperature":      r.cfg.Groq.Temperature,
		"top_p":            r.cfg.Groq.TopP,
		"accepted_aliases": config.KeyAliases,
		"app_env":          r.cfg.AppEnv,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
