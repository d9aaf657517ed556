package feedback

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/livemart/livemart-backend/pkg/db/models"
)

// Repository exposes feedback persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a feedback repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new review.
func (r *Repository) Create(ctx context.Context, entry *models.Feedback) (*models.Feedback, error) {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// ListByProduct returns all reviews for a product, newest first.
func (r *Repository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Feedback, error) {
	var out []models.Feedback
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RatingsForProduct returns every rating recorded for the product. The
// derived product rating is recomputed from this full scan.
func (r *Repository) RatingsForProduct(ctx context.Context, productID uuid.UUID) ([]int, error) {
	var ratings []int
	err := r.db.WithContext(ctx).
		Model(&models.Feedback{}).
		Where("product_id = ?", productID).
		Pluck("rating", &ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}
