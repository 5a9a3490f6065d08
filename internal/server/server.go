package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/armtrack/armtrack/internal/analysis"
	"github.com/armtrack/armtrack/internal/config"
	"github.com/armtrack/armtrack/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db       *storage.DB
	analyzer *analysis.Analyzer
	cfg      config.AnalysisConfig
	log      *slog.Logger
	apiKey   string
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, analyzer *analysis.Analyzer, cfg *config.Config, log *slog.Logger) *Server {
	s := &Server{
		db:       db,
		analyzer: analyzer,
		cfg:      cfg.Analysis,
		log:      log,
		apiKey:   cfg.Auth.APIKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/api/health", s.handleHealth)

	// Mutation endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/users", s.handleCreateUser)
		r.With(MaxBodyBytes(analysisBodyLimit(s.cfg.MaxFrames))).
			Post("/api/v1/analyses", s.handleCreateAnalysis)
	})

	// Read endpoints
	s.router.Get("/api/v1/users/{id}", s.handleGetUser)
	s.router.Get("/api/v1/users/{id}/progress", s.handleUserProgress)
	s.router.Get("/api/v1/users/{id}/analyses", s.handleListUserAnalyses)
	s.router.Get("/api/v1/users/{id}/rank", s.handleUserRank)
	s.router.Get("/api/v1/analyses/{id}", s.handleGetAnalysis)
	s.router.Get("/api/v1/analyses/{id}/chart", s.handleAnalysisChart)
	s.router.Get("/api/v1/leaderboard", s.handleLeaderboard)
	s.router.Get("/api/v1/stats", s.handleGlobalStats)
}

// analysisBodyLimit sizes the request cap for a full-length session: a frame
// is 132 JSON floats, well under 4KB, plus slack for the envelope.
func analysisBodyLimit(maxFrames int) int64 {
	return int64(maxFrames)*4096 + 1<<20
}
