package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/livemart/livemart-backend/api/responses"
	"github.com/livemart/livemart-backend/api/validators"
	feedbacksvc "github.com/livemart/livemart-backend/internal/feedback"
	pkgerrors "github.com/livemart/livemart-backend/pkg/errors"
	"github.com/livemart/livemart-backend/pkg/logger"
)

type addFeedbackRequest struct {
	UserID    uuid.UUID `json:"user_id" validate:"required"`
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Comment   *string   `json:"comment,omitempty"`
}

// FeedbackAdd records a review and refreshes the product's mean rating.
func FeedbackAdd(svc feedbacksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "feedback service unavailable"))
			return
		}

		var payload addFeedbackRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.AddFeedback(r.Context(), feedbacksvc.AddFeedbackInput{
			UserID:    payload.UserID,
			ProductID: payload.ProductID,
			Rating:    payload.Rating,
			Comment:   payload.Comment,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, entry)
	}
}

// FeedbackList returns the reviews for one product, newest first.
func FeedbackList(svc feedbacksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "feedback service unavailable"))
			return
		}

		productID, err := pathUUID(r, "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := svc.ListFeedback(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, entries)
	}
}
