package feedback

import (
	"time"

	"github.com/google/uuid"

	"github.com/livemart/livemart-backend/pkg/db/models"
)

// FeedbackDTO is the transport shape for one product review.
type FeedbackDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name"`
	ProductID uuid.UUID `json:"product_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AddFeedbackInput holds the validated payload to submit a review.
type AddFeedbackInput struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
	Rating    int
	Comment   *string
}

func fromModel(f *models.Feedback) *FeedbackDTO {
	if f == nil {
		return nil
	}
	return &FeedbackDTO{
		ID:        f.ID,
		UserID:    f.UserID,
		UserName:  f.UserName,
		ProductID: f.ProductID,
		Rating:    f.Rating,
		Comment:   f.Comment,
		CreatedAt: f.CreatedAt,
	}
}
