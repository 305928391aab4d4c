package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer is a billable party. Dues is the outstanding credit balance grown
// by credit-tender sales and reduced by external payments.
type Customer struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name      string          `gorm:"column:name;not null"`
	Phone     string          `gorm:"column:phone"`
	Email     string          `gorm:"column:email"`
	Dues      decimal.Decimal `gorm:"column:dues;type:numeric(12,2);not null;default:0"`
	IsWalkIn  bool            `gorm:"column:is_walk_in;not null;default:false"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
