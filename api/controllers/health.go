package controllers

import (
	"context"
	"net/http"

	"go.uber.org/multierr"

	"github.com/livemart/livemart-backend/api/responses"
	pkgerrors "github.com/livemart/livemart-backend/pkg/errors"
	"github.com/livemart/livemart-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive reports process liveness without touching any dependency.
func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady probes the datastore and cache. Any failing dependency turns
// the probe into a 503 naming the degraded components.
func HealthReady(database, cache pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]string{
			"database": "ok",
			"cache":    "ok",
		}

		var probeErr error
		if database == nil {
			components["database"] = "unconfigured"
		} else if err := database.Ping(r.Context()); err != nil {
			components["database"] = "down"
			probeErr = multierr.Append(probeErr, err)
		}

		if cache == nil {
			components["cache"] = "unconfigured"
		} else if err := cache.Ping(r.Context()); err != nil {
			components["cache"] = "down"
			probeErr = multierr.Append(probeErr, err)
		}

		if probeErr != nil {
			appErr := pkgerrors.Wrap(pkgerrors.CodeDependency, probeErr, "service degraded").
				WithDetails(components)
			responses.WriteError(r.Context(), logg, w, appErr)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"status":     "ready",
			"components": components,
		})
	}
}
