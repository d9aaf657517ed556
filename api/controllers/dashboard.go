package controllers

import (
	"net/http"

	"github.com/livemart/livemart-backend/api/responses"
	dashboardsvc "github.com/livemart/livemart-backend/internal/dashboard"
	pkgerrors "github.com/livemart/livemart-backend/pkg/errors"
	"github.com/livemart/livemart-backend/pkg/logger"
)

// SellerDashboard aggregates product, order and revenue stats for one seller.
// Retailer and wholesaler dashboards share the same computation.
func SellerDashboard(svc dashboardsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		sellerID, err := pathUUID(r, "user_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stats, err := svc.SellerDashboard(r.Context(), sellerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stats)
	}
}
