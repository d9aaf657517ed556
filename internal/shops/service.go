package shops

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/livemart/livemart-backend/pkg/db/models"
	"github.com/livemart/livemart-backend/pkg/enums"
	pkgerrors "github.com/livemart/livemart-backend/pkg/errors"
)

const minSyntheticDistanceKM = 0.5

// ShopDTO is one seller presented as a nearby shop.
type ShopDTO struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"name"`
	Role       enums.UserRole `json:"role"`
	Address    *string        `json:"address,omitempty"`
	Phone      string         `json:"phone"`
	DistanceKM float64        `json:"distance_km"`
	Rating     float64        `json:"rating"`
}

// NearbyShopsInput captures the locator query. A zero radius falls back to
// the configured default.
type NearbyShopsInput struct {
	Lat      float64
	Lng      float64
	RadiusKM float64
}

type sellerLister interface {
	ListByRoles(ctx context.Context, roles ...enums.UserRole) ([]models.User, error)
}

// Service locates nearby shops. Distances and ratings are synthesized until
// real geo data lands; the caller's coordinates only shape the radius window.
type Service interface {
	NearbyShops(ctx context.Context, input NearbyShopsInput) ([]ShopDTO, error)
}

type service struct {
	sellers       sellerLister
	defaultRadius float64
	rng           *rand.Rand
}

// ServiceParams bundles the dependencies required to build a shops service.
// Rand defaults to a time-seeded source when nil.
type ServiceParams struct {
	Sellers       sellerLister
	DefaultRadius float64
	Rand          *rand.Rand
}

// NewService constructs a shop locator with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Sellers == nil {
		return nil, fmt.Errorf("seller lister is required")
	}
	if params.DefaultRadius <= 0 {
		return nil, fmt.Errorf("default radius must be positive")
	}
	rng := params.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &service{
		sellers:       params.Sellers,
		defaultRadius: params.DefaultRadius,
		rng:           rng,
	}, nil
}

func (s *service) NearbyShops(ctx context.Context, input NearbyShopsInput) ([]ShopDTO, error) {
	radius := input.RadiusKM
	if radius <= 0 {
		radius = s.defaultRadius
	}

	sellers, err := s.sellers.ListByRoles(ctx, enums.UserRoleRetailer, enums.UserRoleWholesaler)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list sellers")
	}

	shops := make([]ShopDTO, 0, len(sellers))
	for i := range sellers {
		seller := &sellers[i]
		shops = append(shops, ShopDTO{
			ID:         seller.ID,
			Name:       seller.Name,
			Role:       seller.Role,
			Address:    seller.Address,
			Phone:      seller.Phone,
			DistanceKM: minSyntheticDistanceKM + s.rng.Float64()*(radius-minSyntheticDistanceKM),
			Rating:     3.5 + s.rng.Float64()*1.5,
		})
	}

	sort.Slice(shops, func(i, j int) bool {
		return shops[i].DistanceKM < shops[j].DistanceKM
	})
	return shops, nil
}
