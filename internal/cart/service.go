package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/livemart/livemart-backend/pkg/db/models"
	pkgerrors "github.com/livemart/livemart-backend/pkg/errors"
)

// Service exposes cart operations.
type Service interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) error
	UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

type repository interface {
	ListJoined(ctx context.Context, userID uuid.UUID) ([]Row, error)
	FindItem(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error)
	Insert(ctx context.Context, item *models.CartItem) error
	SetQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (bool, error)
	DeleteItem(ctx context.Context, userID, itemID uuid.UUID) (bool, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo repository
}

// NewService constructs a cart service with the provided repository.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	rows, err := s.repo.ListJoined(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}

	cart := &CartDTO{
		UserID:   userID,
		Items:    make([]CartItemDTO, 0, len(rows)),
		Subtotal: decimal.Zero,
	}
	for _, row := range rows {
		lineTotal := row.Price.Mul(decimal.NewFromInt(int64(row.Quantity)))
		cart.Items = append(cart.Items, CartItemDTO{
			ItemID:      row.ID,
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Price:       row.Price,
			Quantity:    row.Quantity,
			LineTotal:   lineTotal,
			ImageURL:    row.ImageURL,
			Unit:        row.Unit,
			SellerName:  row.SellerName,
			Stock:       row.Stock,
			Available:   row.Available,
			AddedAt:     row.AddedAt,
		})
		cart.Subtotal = cart.Subtotal.Add(lineTotal)
	}
	return cart, nil
}

// AddItem merges into an existing (user, product) row when one exists,
// otherwise inserts. There is no stock ceiling here; checkout settles stock.
func (s *service) AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) error {
	existing, err := s.repo.FindItem(ctx, userID, input.ProductID)
	switch {
	case err == nil:
		updated, err := s.repo.SetQuantity(ctx, userID, existing.ID, existing.Quantity+input.Quantity)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "merge cart item")
		}
		if !updated {
			return pkgerrors.New(pkgerrors.CodeInternal, "cart row vanished during merge")
		}
		return nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		item := &models.CartItem{
			UserID:    userID,
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
		}
		if err := s.repo.Insert(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert cart item")
		}
		return nil

	default:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup cart item")
	}
}

func (s *service) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) error {
	updated, err := s.repo.SetQuantity(ctx, userID, itemID, quantity)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart item")
	}
	if !updated {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return nil
}

func (s *service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	deleted, err := s.repo.DeleteItem(ctx, userID, itemID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove cart item")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return nil
}

func (s *service) ClearCart(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Clear(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	return nil
}
