// Package api provides the HTTP server of CoverageGuide.
//
// It exposes the static content and one JSON endpoint per session operation. Every request is
// delegated to the flow.Manager; the HTML shell is mounted at the root when configured.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/BTreeMap/CoverageGuide/internal/flow"
	"github.com/BTreeMap/CoverageGuide/internal/models"
	"github.com/BTreeMap/CoverageGuide/internal/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// Server routes HTTP requests to the session manager.
type Server struct {
	mgr     *flow.Manager
	shell   http.Handler
	origins []string
	handler http.Handler
}

// Opts holds optional server settings.
type Opts struct {
	Shell          http.Handler
	AllowedOrigins []string
}

// Option configures the server.
type Option func(*Opts)

// WithShell mounts the HTML shell at "/".
func WithShell(h http.Handler) Option {
	return func(o *Opts) { o.Shell = h }
}

// WithAllowedOrigins sets the CORS origins. Defaults to "*".
func WithAllowedOrigins(origins []string) Option {
	return func(o *Opts) { o.AllowedOrigins = origins }
}

// NewServer builds the router.
func NewServer(mgr *flow.Manager, opts ...Option) *Server {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	s := &Server{mgr: mgr, shell: cfg.Shell, origins: cfg.AllowedOrigins}
	s.handler = s.routes()
	slog.Debug("api.NewServer: routes registered", "variant", mgr.Variant(), "shell", cfg.Shell != nil, "origins", cfg.AllowedOrigins)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(telemetry.Middleware)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/content", func(r chi.Router) {
			r.Get("/coverages", s.coveragesHandler)
			r.Get("/coverages/grouped", s.groupedCoveragesHandler)
			r.Get("/timeline", s.timelineHandler)
			r.Get("/quiz/size", s.quizSizeHandler)
		})
		r.Post("/sessions", s.createSessionHandler)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.getSessionHandler)
			r.Delete("/", s.endSessionHandler)
			r.Post("/tab", s.selectTabHandler)
			r.Post("/filter", s.setFilterHandler)

			r.Get("/chat", s.chatTranscriptHandler)
			r.Post("/chat", s.chatSendHandler)
			r.Delete("/chat", s.chatClearHandler)

			r.Get("/quiz", s.quizViewHandler)
			r.Post("/quiz/select", s.quizSelectHandler)
			r.Post("/quiz/submit", s.quizSubmitHandler)
			r.Post("/quiz/next", s.quizNextHandler)
			r.Post("/quiz/restart", s.quizRestartHandler)

			r.Get("/scenario", s.scenarioViewHandler)
			r.Post("/scenario/toggle", s.scenarioToggleHandler)
			r.Post("/scenario/results", s.scenarioResultsHandler)
			r.Post("/scenario/dialogue", s.scenarioDialogueHandler)
			r.Post("/scenario/choose", s.scenarioChooseHandler)
			r.Post("/scenario/advance", s.scenarioAdvanceHandler)
			r.Get("/scenario/portrait", s.scenarioPortraitHandler)
		})
	})

	if s.shell != nil {
		r.Get("/", s.shell.ServeHTTP)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(r)
}

// requestLogger logs every request with slog once it completes.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Debug("Server: request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"requestID", middleware.GetReqID(r.Context()),
			"traceID", telemetry.TraceID(r.Context()))
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, models.Success(map[string]string{"variant": string(s.mgr.Variant())}))
}
