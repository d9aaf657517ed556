package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/livemart/livemart-backend/pkg/enums"
)

// User represents the canonical identity entity.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Email        string         `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	Name         string         `gorm:"column:name;not null"`
	Phone        string         `gorm:"column:phone;not null"`
	Role         enums.UserRole `gorm:"column:role;type:text;not null"`
	Address      *string        `gorm:"column:address"`
	Lat          *float64       `gorm:"column:lat"`
	Lng          *float64       `gorm:"column:lng"`
	Verified     bool           `gorm:"column:verified;not null;default:false"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
}

// BeforeCreate assigns the semantic id when the caller did not.
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
