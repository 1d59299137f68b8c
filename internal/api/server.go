package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lexreed/docgraph/internal/config"
	"github.com/lexreed/docgraph/internal/summary"
	"github.com/lexreed/docgraph/internal/task"
)

// Server is the HTTP API server for docgraph.
type Server struct {
	router chi.Router
	runner *task.Runner
	claude *summary.ClaudeClient
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server. claude may be nil when
// summaries are disabled.
func NewServer(runner *task.Runner, claude *summary.ClaudeClient, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		runner: runner,
		claude: claude,
		log:    log,
		cfg:    cfg,
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

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/hierarchy", s.handleBuildHierarchy)

		r.Post("/api/tasks", s.handleSubmitTask)
		r.Get("/api/tasks", s.handleListTasks)
		r.Get("/api/tasks/{taskID}", s.handleTaskStatus)
		r.Get("/api/tasks/{taskID}/result", s.handleTaskResult)

		r.Get("/api/documents", s.handleListDocuments)
		r.Get("/api/documents/{docID}", s.handleGetDocument)
		r.Delete("/api/documents/{docID}", s.handleDeleteDocument)

		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
