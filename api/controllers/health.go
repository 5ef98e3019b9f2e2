package controllers

import (
	"net/http"

	"github.com/fitdesk-hq/fitdesk-backend/api/responses"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/db"
	pkgerrors "github.com/fitdesk-hq/fitdesk-backend/pkg/errors"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/logger"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/redis"
)

// Liveness reports that the process is up.
func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

// Readiness checks the database and redis before declaring the service ready.
func Readiness(database *db.Client, cache redis.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if database != nil {
			if err := database.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}
		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
