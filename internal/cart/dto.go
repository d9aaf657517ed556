package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItemDTO is one cart row joined with its live product snapshot.
type CartItemDTO struct {
	ItemID      uuid.UUID       `json:"item_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
	ImageURL    *string         `json:"image_url,omitempty"`
	Unit        string          `json:"unit"`
	SellerName  string          `json:"seller_name"`
	Stock       int             `json:"stock"`
	Available   bool            `json:"available"`
	AddedAt     time.Time       `json:"added_at"`
}

// CartDTO is the full cart view for a user.
type CartDTO struct {
	UserID   uuid.UUID       `json:"user_id"`
	Items    []CartItemDTO   `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// AddItemInput holds the validated payload to add a product to a cart.
type AddItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}
