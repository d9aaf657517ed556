package feedback

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/livemart/livemart-backend/pkg/db/models"
	pkgerrors "github.com/livemart/livemart-backend/pkg/errors"
)

// Service exposes review submission and listing.
type Service interface {
	AddFeedback(ctx context.Context, input AddFeedbackInput) (*FeedbackDTO, error)
	ListFeedback(ctx context.Context, productID uuid.UUID) ([]FeedbackDTO, error)
}

type repository interface {
	Create(ctx context.Context, entry *models.Feedback) (*models.Feedback, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Feedback, error)
	RatingsForProduct(ctx context.Context, productID uuid.UUID) ([]int, error)
}

type userFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type ratingUpdater interface {
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error
}

type service struct {
	repo    repository
	users   userFinder
	ratings ratingUpdater
}

// ServiceParams bundles the dependencies required to build a feedback service.
type ServiceParams struct {
	Repo    repository
	Users   userFinder
	Ratings ratingUpdater
}

// NewService constructs a feedback service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("feedback repository is required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user finder is required")
	}
	if params.Ratings == nil {
		return nil, fmt.Errorf("rating updater is required")
	}
	return &service{repo: params.Repo, users: params.Users, ratings: params.Ratings}, nil
}

// AddFeedback records the review and recomputes the product's rating as the
// mean of all its reviews, rounded to one decimal. A product id with no
// matching listing is tolerated; the rating write is then a no-op.
func (s *service) AddFeedback(ctx context.Context, input AddFeedbackInput) (*FeedbackDTO, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}

	entry, err := s.repo.Create(ctx, &models.Feedback{
		UserID:    user.ID,
		UserName:  user.Name,
		ProductID: input.ProductID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create feedback")
	}

	ratings, err := s.repo.RatingsForProduct(ctx, input.ProductID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "scan ratings")
	}
	if len(ratings) > 0 {
		sum := 0
		for _, r := range ratings {
			sum += r
		}
		mean := float64(sum) / float64(len(ratings))
		rounded := math.Round(mean*10) / 10
		if err := s.ratings.UpdateRating(ctx, input.ProductID, rounded); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product rating")
		}
	}

	return fromModel(entry), nil
}

func (s *service) ListFeedback(ctx context.Context, productID uuid.UUID) ([]FeedbackDTO, error) {
	entries, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list feedback")
	}
	out := make([]FeedbackDTO, 0, len(entries))
	for i := range entries {
		out = append(out, *fromModel(&entries[i]))
	}
	return out, nil
}
