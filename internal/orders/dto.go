package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/livemart/livemart-backend/pkg/db/models"
	"github.com/livemart/livemart-backend/pkg/enums"
	"github.com/livemart/livemart-backend/pkg/pagination"
)

// OrderItemInput is one requested line of a new order, in cart order.
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateOrderInput holds the validated payload to place an order. TotalAmount
// is the client-computed figure and is stored as supplied.
type CreateOrderInput struct {
	UserID          uuid.UUID
	Items           []OrderItemInput
	DeliveryAddress string
	PaymentMethod   enums.PaymentMethod
	TotalAmount     decimal.Decimal
}

// OrderItemDTO is the transport shape for one snapshot line.
type OrderItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

// OrderDTO is the transport shape for an order with its lines.
type OrderDTO struct {
	ID              uuid.UUID           `json:"id"`
	UserID          uuid.UUID           `json:"user_id"`
	Items           []OrderItemDTO      `json:"items"`
	DeliveryAddress string              `json:"delivery_address"`
	PaymentMethod   enums.PaymentMethod `json:"payment_method"`
	PaymentStatus   enums.PaymentStatus `json:"payment_status"`
	OrderStatus     enums.OrderStatus   `json:"order_status"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// OrderListResult carries one page of orders plus the cursor for the next.
type OrderListResult struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// ListOrdersInput captures the inputs for the order history endpoint.
type ListOrdersInput struct {
	UserID     uuid.UUID
	Pagination pagination.Params
}

func fromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}
	dto := &OrderDTO{
		ID:              o.ID,
		UserID:          o.UserID,
		Items:           make([]OrderItemDTO, 0, len(o.Items)),
		DeliveryAddress: o.DeliveryAddress,
		PaymentMethod:   o.PaymentMethod,
		PaymentStatus:   o.PaymentStatus,
		OrderStatus:     o.OrderStatus,
		TotalAmount:     o.TotalAmount,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	for _, item := range o.Items {
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Total:       item.Total,
		})
	}
	return dto
}
