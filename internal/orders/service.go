package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/livemart/livemart-backend/internal/cart"
	"github.com/livemart/livemart-backend/internal/payments"
	"github.com/livemart/livemart-backend/pkg/db/models"
	"github.com/livemart/livemart-backend/pkg/enums"
	pkgerrors "github.com/livemart/livemart-backend/pkg/errors"
	"github.com/livemart/livemart-backend/pkg/pagination"
)

// Service exposes order placement and history operations.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*OrderDTO, error)
	ListUserOrders(ctx context.Context, input ListOrdersInput) (*OrderListResult, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*OrderDTO, error)
}

type repository interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, input ListOrdersInput) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (bool, error)
	DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) error
	FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type cartClearer interface {
	Clear(ctx context.Context, userID uuid.UUID) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type orderNotifier interface {
	OrderPlaced(ctx context.Context, userID, orderID uuid.UUID, total decimal.Decimal) error
}

// ServiceParams bundles the dependencies required to build an orders service.
// The repo factories default to the real GORM-backed implementations.
type ServiceParams struct {
	TxRunner    txRunner
	Repo        repository
	RepoFactory func(tx *gorm.DB) repository
	CartFactory func(tx *gorm.DB) cartClearer
	Processor   payments.Processor
	Notifier    orderNotifier
}

type service struct {
	tx        txRunner
	repo      repository
	repoFor   func(tx *gorm.DB) repository
	cartFor   func(tx *gorm.DB) cartClearer
	processor payments.Processor
	notifier  orderNotifier
}

// NewService constructs an orders service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.TxRunner == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	if params.Processor == nil {
		return nil, fmt.Errorf("payment processor is required")
	}
	if params.Notifier == nil {
		return nil, fmt.Errorf("notifier is required")
	}
	repoFor := params.RepoFactory
	if repoFor == nil {
		repoFor = func(tx *gorm.DB) repository {
			return NewRepository(tx)
		}
	}
	cartFor := params.CartFactory
	if cartFor == nil {
		cartFor = func(tx *gorm.DB) cartClearer {
			return cart.NewRepository(tx)
		}
	}
	return &service{
		tx:        params.TxRunner,
		repo:      params.Repo,
		repoFor:   repoFor,
		cartFor:   cartFor,
		processor: params.Processor,
		notifier:  params.Notifier,
	}, nil
}

// Create settles payment first, then persists the order, stock decrements and
// cart clear atomically. A payment failure leaves nothing behind.
func (s *service) Create(ctx context.Context, input CreateOrderInput) (*OrderDTO, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order requires at least one item")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}

	orderID := uuid.New()

	if _, err := s.processor.Charge(ctx, payments.ChargeInput{
		UserID:  input.UserID,
		OrderID: orderID,
		Amount:  input.TotalAmount,
		Method:  input.PaymentMethod,
	}); err != nil {
		if appErr := pkgerrors.As(err); appErr != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodePaymentFailed, err, "charge payment")
	}

	var created *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repoFor(tx)

		order := &models.Order{
			ID:              orderID,
			UserID:          input.UserID,
			DeliveryAddress: input.DeliveryAddress,
			PaymentMethod:   input.PaymentMethod,
			PaymentStatus:   enums.PaymentStatusCompleted,
			OrderStatus:     enums.OrderStatusPlaced,
			TotalAmount:     input.TotalAmount,
		}

		for i, line := range input.Items {
			product, err := repo.FindProduct(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
			}

			if err := repo.DecrementStock(ctx, product.ID, line.Quantity); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decrement stock")
			}

			quantity := decimal.NewFromInt(int64(line.Quantity))
			order.Items = append(order.Items, models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				Price:       product.Price,
				Total:       product.Price.Mul(quantity),
				Position:    i,
			})
		}

		persisted, err := repo.Create(ctx, order)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
		}
		created = persisted

		if err := s.cartFor(tx).Clear(ctx, input.UserID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Delivery is best-effort; the log-backed sender never fails.
	_ = s.notifier.OrderPlaced(ctx, created.UserID, created.ID, created.TotalAmount)

	return fromModel(created), nil
}

func (s *service) ListUserOrders(ctx context.Context, input ListOrdersInput) (*OrderListResult, error) {
	orders, err := s.repo.ListByUser(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}

	result := &OrderListResult{Orders: make([]OrderDTO, 0, len(orders))}

	paginated := input.Pagination.Limit > 0 || input.Pagination.Cursor != ""
	pageSize := pagination.NormalizeLimit(input.Pagination.Limit)
	if paginated && len(orders) > pageSize {
		last := orders[pageSize-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
		orders = orders[:pageSize]
	}

	for i := range orders {
		result.Orders = append(result.Orders, *fromModel(&orders[i]))
	}
	return result, nil
}

func (s *service) GetOrder(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	return fromModel(order), nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*OrderDTO, error) {
	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order status")
	}
	if !updated {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload order")
	}
	return fromModel(order), nil
}
