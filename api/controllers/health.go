package controllers

import (
	"net/http"

	"github.com/udyoglabs/dukaan-backend/api/responses"
	"github.com/udyoglabs/dukaan-backend/pkg/config"
	"github.com/udyoglabs/dukaan-backend/pkg/db"
	pkgerrors "github.com/udyoglabs/dukaan-backend/pkg/errors"
	"github.com/udyoglabs/dukaan-backend/pkg/logger"
	"github.com/udyoglabs/dukaan-backend/pkg/redis"
)

const envHeader = "X-Dukaan-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the datasources. Redis is optional and skipped when not
// wired.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		checks := map[string]string{}
		ready := true

		if dbP != nil {
			checks["database"] = "ok"
			if err := dbP.Ping(r.Context()); err != nil {
				checks["database"] = "unavailable"
				ready = false
			}
		}

		if redisClient != nil {
			checks["redis"] = "ok"
			if err := redisClient.Ping(r.Context()); err != nil {
				checks["redis"] = "unavailable"
				ready = false
			}
		}

		if !ready {
			err := pkgerrors.New(pkgerrors.CodeDependency, "dependencies unavailable").WithDetails(checks)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"status": "ready",
			"checks": checks,
		})
	}
}
