package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Feedback is one user review of a product. UserName is denormalized at
// submission time. The product's rating is the full-scan mean of all rows
// for that product.
type Feedback struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	UserName  string    `gorm:"column:user_name;not null"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	Rating    int       `gorm:"column:rating;not null"`
	Comment   *string   `gorm:"column:comment"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName pins the singular name used by the schema migrations; GORM
// would otherwise pluralize to "feedbacks".
func (Feedback) TableName() string { return "feedback" }

func (f *Feedback) BeforeCreate(*gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
