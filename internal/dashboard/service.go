package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/livemart/livemart-backend/pkg/db/models"
	"github.com/livemart/livemart-backend/pkg/enums"
	pkgerrors "github.com/livemart/livemart-backend/pkg/errors"
)

// maxRecentOrders caps how many matched orders the rollup carries.
const maxRecentOrders = 10

// OrderSummary is the compact order view shown on the seller dashboard.
type OrderSummary struct {
	ID            uuid.UUID           `json:"id"`
	UserID        uuid.UUID           `json:"user_id"`
	OrderStatus   enums.OrderStatus   `json:"order_status"`
	PaymentStatus enums.PaymentStatus `json:"payment_status"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	CreatedAt     time.Time           `json:"created_at"`
}

// DashboardDTO is the rollup returned to sellers.
type DashboardDTO struct {
	SellerID     uuid.UUID       `json:"seller_id"`
	ProductCount int64           `json:"product_count"`
	OrderCount   int             `json:"order_count"`
	Revenue      decimal.Decimal `json:"revenue"`
	RecentOrders []OrderSummary  `json:"recent_orders"`
}

type productReader interface {
	CountBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error)
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type orderScanner interface {
	ListAll(ctx context.Context) ([]models.Order, error)
}

// Service computes seller dashboards.
type Service interface {
	SellerDashboard(ctx context.Context, sellerID uuid.UUID) (*DashboardDTO, error)
}

type service struct {
	products productReader
	orders   orderScanner
}

// ServiceParams bundles the dependencies required to build a dashboard service.
type ServiceParams struct {
	Products productReader
	Orders   orderScanner
}

// NewService constructs a dashboard service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Products == nil {
		return nil, fmt.Errorf("product reader is required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("order scanner is required")
	}
	return &service{products: params.Products, orders: params.Orders}, nil
}

// SellerDashboard walks every order and resolves each line's product to test
// seller ownership. The scan is deliberately straightforward; at current
// volumes the point lookups are cheaper to reason about than a bespoke
// aggregate query.
func (s *service) SellerDashboard(ctx context.Context, sellerID uuid.UUID) (*DashboardDTO, error) {
	productCount, err := s.products.CountBySeller(ctx, sellerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count products")
	}

	allOrders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "scan orders")
	}

	dto := &DashboardDTO{
		SellerID:     sellerID,
		ProductCount: productCount,
		Revenue:      decimal.Zero,
		RecentOrders: make([]OrderSummary, 0, maxRecentOrders),
	}

	for i := range allOrders {
		order := &allOrders[i]
		matched := false
		for _, item := range order.Items {
			product, err := s.products.FindProductByID(ctx, item.ProductID)
			if err != nil {
				// snapshot lines may outlive their product rows
				continue
			}
			if product.SellerID != sellerID {
				continue
			}
			matched = true
			dto.Revenue = dto.Revenue.Add(item.Total)
		}
		if !matched {
			continue
		}
		dto.OrderCount++
		if len(dto.RecentOrders) < maxRecentOrders {
			dto.RecentOrders = append(dto.RecentOrders, OrderSummary{
				ID:            order.ID,
				UserID:        order.UserID,
				OrderStatus:   order.OrderStatus,
				TotalAmount:   order.TotalAmount,
				PaymentStatus: order.PaymentStatus,
				CreatedAt:     order.CreatedAt,
			})
		}
	}
	return dto, nil
}
