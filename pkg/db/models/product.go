package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a seller listing. CategoryID and SellerID are plain
// columns, not enforced foreign keys; dangling references are possible.
// SellerName is a creation-time snapshot and is not kept in sync with the
// seller record. Rating is derived from feedback and overwritten on each
// new review.
type Product struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name        string          `gorm:"column:name;not null"`
	Description string          `gorm:"column:description;not null"`
	CategoryID  uuid.UUID       `gorm:"column:category_id;type:uuid;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Stock       int             `gorm:"column:stock;not null"`
	ImageURL    *string         `gorm:"column:image_url"`
	Unit        string          `gorm:"column:unit;not null;default:'piece'"`
	Available   bool            `gorm:"column:available;not null;default:true"`
	SellerID    uuid.UUID       `gorm:"column:seller_id;type:uuid;not null"`
	SellerName  string          `gorm:"column:seller_name;not null"`
	Rating      float64         `gorm:"column:rating;not null;default:0"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
