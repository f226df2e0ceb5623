// Package api serves document analysis and the feedback box over HTTP.
package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pthm/doclint/internal/engine"
	"github.com/pthm/doclint/internal/feedback"
)

// Server is the HTTP API server for doclint.
type Server struct {
	router         chi.Router
	engine         *engine.Engine
	source         engine.SuggestionSource
	store          feedback.Store
	log            *slog.Logger
	maxUploadBytes int64
}

// Options configures a Server.
type Options struct {
	Engine         *engine.Engine
	Source         engine.SuggestionSource
	Store          feedback.Store
	Logger         *slog.Logger
	MaxUploadBytes int64
}

// NewServer creates and configures the HTTP server. A nil store keeps
// feedback in memory and a nil engine uses the defaults.
func NewServer(opts Options) *Server {
	s := &Server{
		engine:         opts.Engine,
		source:         opts.Source,
		store:          opts.Store,
		log:            opts.Logger,
		maxUploadBytes: opts.MaxUploadBytes,
	}
	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.engine == nil {
		s.engine = engine.New(engine.WithLogger(s.log))
	}
	if s.store == nil {
		s.store = feedback.NewMemoryStore()
	}
	if s.maxUploadBytes <= 0 {
		s.maxUploadBytes = 20 << 20
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Post("/upload", s.handleUpload)
	r.Post("/feedback", s.handleSubmitFeedback)
	r.Get("/feedbacks", s.handleListFeedback)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
