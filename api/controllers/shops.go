package controllers

import (
	"net/http"

	"github.com/livemart/livemart-backend/api/responses"
	"github.com/livemart/livemart-backend/api/validators"
	shopsvc "github.com/livemart/livemart-backend/internal/shops"
	pkgerrors "github.com/livemart/livemart-backend/pkg/errors"
	"github.com/livemart/livemart-backend/pkg/logger"
)

// ShopsNearby lists seller storefronts around a coordinate, closest first.
func ShopsNearby(svc shopsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shops service unavailable"))
			return
		}

		lat, err := validators.ParseQueryFloat(r, "lat", 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lng, err := validators.ParseQueryFloat(r, "lng", 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		radius, err := validators.ParseQueryFloat(r, "radius", 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shops, err := svc.NearbyShops(r.Context(), shopsvc.NearbyShopsInput{
			Lat:      lat,
			Lng:      lng,
			RadiusKM: radius,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, shops)
	}
}
