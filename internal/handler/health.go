package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"portfolio/internal/httputil"
)

// PingFunc checks that the backing store answers
type PingFunc func(ctx context.Context) error

// HealthCheck reports service liveness and store reachability
// GET /health
func HealthCheck(ping PingFunc, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if ping != nil {
			if err := ping(ctx); err != nil {
				logger.Warn("health check failed", "error", err)
				httputil.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status":   "degraded",
					"database": "unreachable",
				})
				return
			}
		}

		httputil.RespondJSON(w, http.StatusOK, map[string]string{
			"status":   "ok",
			"database": "ok",
		})
	}
}
