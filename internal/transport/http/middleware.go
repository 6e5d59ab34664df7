package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"emistat/internal/config"
	"emistat/internal/metrics"
)

// requestLogger logs one line per request and feeds the request counter.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			metrics.HTTPRequests.WithLabelValues(r.URL.Path, strconv.Itoa(ww.Status())).Inc()
			logger.InfoContext(r.Context(), "http request",
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)))
		})
	}
}

// rateLimiter enforces a shared token bucket across all clients. The report
// API fronts an in-memory dataset, so a single global bucket is enough.
func rateLimiter(cfg config.RateLimitConfig) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeProblem(w, r, newProblem(http.StatusTooManyRequests,
					"request rate limit exceeded, retry later"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
