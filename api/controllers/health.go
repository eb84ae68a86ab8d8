package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/shivaganesh9515/nextgen-organic-backend/api/responses"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/config"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/db"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/logger"
)

const readinessTimeout = 3 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-NextGen-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady probes the datastore dependencies and reports each one
// individually. Any failed probe flips the response to 503.
func HealthReady(cfg *config.Config, logg *logger.Logger, database db.Pinger, cache db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		probe := func(name string, p db.Pinger) {
			if p == nil {
				checks[name] = "not configured"
				healthy = false
				return
			}
			if err := p.Ping(ctx); err != nil {
				if logg != nil {
					logg.Error(ctx, "readiness probe failed: "+name, err)
				}
				checks[name] = "unreachable"
				healthy = false
				return
			}
			checks[name] = "ok"
		}

		probe("postgres", database)
		probe("redis", cache)

		w.Header().Set("X-NextGen-Env", cfg.App.Env)
		payload := map[string]any{"status": "ready", "checks": checks}
		if !healthy {
			payload["status"] = "degraded"
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, payload)
			return
		}
		responses.WriteSuccess(w, payload)
	}
}
