package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/livemart/livemart-backend/pkg/db/models"
)

// Row is a cart item joined with its product columns. Items whose product no
// longer exists do not appear; the join drops them.
type Row struct {
	ID          uuid.UUID       `gorm:"column:id"`
	ProductID   uuid.UUID       `gorm:"column:product_id"`
	Quantity    int             `gorm:"column:quantity"`
	AddedAt     time.Time       `gorm:"column:added_at"`
	ProductName string          `gorm:"column:product_name"`
	Price       decimal.Decimal `gorm:"column:price"`
	ImageURL    *string         `gorm:"column:image_url"`
	Unit        string          `gorm:"column:unit"`
	SellerName  string          `gorm:"column:seller_name"`
	Stock       int             `gorm:"column:stock"`
	Available   bool            `gorm:"column:available"`
}

// Repository exposes cart persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListJoined returns the user's cart rows joined with live product data,
// oldest additions first.
func (r *Repository) ListJoined(ctx context.Context, userID uuid.UUID) ([]Row, error) {
	var rows []Row
	err := r.db.WithContext(ctx).
		Table("cart_items").
		Select(`cart_items.id, cart_items.product_id, cart_items.quantity, cart_items.added_at,
			products.name AS product_name, products.price, products.image_url, products.unit,
			products.seller_name, products.stock, products.available`).
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.added_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindItem loads the cart row for (user, product) when one exists.
func (r *Repository) FindItem(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Insert persists a new cart row.
func (r *Repository) Insert(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// SetQuantity overwrites the quantity of the identified row and reports
// whether a row matched.
func (r *Repository) SetQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		UpdateColumn("quantity", quantity)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteItem removes one cart row and reports whether a row matched.
func (r *Repository) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Delete(&models.CartItem{}, "id = ? AND user_id = ?", itemID, userID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Clear drops every cart row for the user. Clearing an empty cart is a no-op.
func (r *Repository) Clear(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.CartItem{}, "user_id = ?", userID).Error
}
