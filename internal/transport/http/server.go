package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"emistat/internal/config"
	"emistat/internal/metrics"
	"emistat/internal/stats"
)

// Server serves the ranked reports computed from one unified dataset. The
// dataset is loaded once at startup; requests never mutate it.
type Server struct {
	stats    *stats.Stats
	logger   *slog.Logger
	cfg      config.ServerConfig
	validate *validator.Validate
}

// NewServer creates a report API server around a ready statistics engine.
func NewServer(logger *slog.Logger, cfg config.ServerConfig, st *stats.Stats) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		stats:    st,
		logger:   logger,
		cfg:      cfg,
		validate: validator.New(),
	}
}

// Router assembles the chi router with the full middleware chain.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))
	if s.cfg.RateLimit.Enabled {
		r.Use(rateLimiter(s.cfg.RateLimit))
	}

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Route("/api/reports", func(r chi.Router) {
		r.Get("/gdp", s.handleGDP)
		r.Get("/emissions", s.handleEmissions)
		r.Get("/emission-change", s.handleEmissionChange)
	})
	return r
}

// reportQuery carries the optional query parameters of the report routes.
// Zero values mean "not restricted", matching the statistics engine.
type reportQuery struct {
	K    int `validate:"min=0"`
	From int `validate:"min=0"`
	To   int `validate:"min=0"`
}

func (s *Server) parseReportQuery(r *http.Request) (reportQuery, error) {
	var (
		q   reportQuery
		err error
	)
	if q.K, err = queryInt(r, "k"); err != nil {
		return q, err
	}
	if q.From, err = queryInt(r, "from"); err != nil {
		return q, err
	}
	if q.To, err = queryInt(r, "to"); err != nil {
		return q, err
	}
	if err := s.validate.Struct(q); err != nil {
		return q, fmt.Errorf("invalid query parameters: %w", err)
	}
	return q, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("query parameter %q must be an integer, got %q", name, raw)
	}
	return v, nil
}

// perYearResponse is the payload of the gdp and emissions routes.
type perYearResponse struct {
	Report  string              `json:"report"`
	TopK    int                 `json:"top_k"`
	From    int                 `json:"from,omitempty"`
	To      int                 `json:"to,omitempty"`
	Entries []stats.RankedEntry `json:"entries"`
}

// changeResponse is the payload of the emission-change route.
type changeResponse struct {
	Report    string              `json:"report"`
	TopK      int                 `json:"top_k"`
	Increases []stats.ChangeEntry `json:"increases"`
	Decreases []stats.ChangeEntry `json:"decreases"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "healthy"})
}

func (s *Server) handleGDP(w http.ResponseWriter, r *http.Request) {
	s.servePerYear(w, r, "gdp_per_capita", (*stats.Stats).GDPStatsPerYear)
}

func (s *Server) handleEmissions(w http.ResponseWriter, r *http.Request) {
	s.servePerYear(w, r, "emissions_per_capita", (*stats.Stats).EmissionStatsPerYear)
}

func (s *Server) servePerYear(w http.ResponseWriter, r *http.Request, report string,
	query func(*stats.Stats, stats.YearRange) ([]stats.RankedEntry, error)) {

	q, err := s.parseReportQuery(r)
	if err != nil {
		metrics.ReportsServed.WithLabelValues(report, "rejected").Inc()
		s.renderProblem(w, r, err, newProblem(http.StatusBadRequest, err.Error()))
		return
	}

	engine := s.stats.WithTopK(q.K)
	entries, err := query(engine, stats.YearRange{From: q.From, To: q.To})
	if err != nil {
		metrics.ReportsServed.WithLabelValues(report, "error").Inc()
		s.renderProblem(w, r, err, problemFromError(err))
		return
	}

	metrics.ReportsServed.WithLabelValues(report, "ok").Inc()
	render.JSON(w, r, perYearResponse{
		Report:  report,
		TopK:    engine.TopK(),
		From:    q.From,
		To:      q.To,
		Entries: entries,
	})
}

func (s *Server) handleEmissionChange(w http.ResponseWriter, r *http.Request) {
	const report = "emission_change"

	q, err := s.parseReportQuery(r)
	if err != nil {
		metrics.ReportsServed.WithLabelValues(report, "rejected").Inc()
		s.renderProblem(w, r, err, newProblem(http.StatusBadRequest, err.Error()))
		return
	}

	engine := s.stats.WithTopK(q.K)
	increases, decreases, err := engine.EmissionChangeStats()
	if err != nil {
		metrics.ReportsServed.WithLabelValues(report, "error").Inc()
		s.renderProblem(w, r, err, problemFromError(err))
		return
	}

	metrics.ReportsServed.WithLabelValues(report, "ok").Inc()
	render.JSON(w, r, changeResponse{
		Report:    report,
		TopK:      engine.TopK(),
		Increases: increases,
		Decreases: decreases,
	})
}
