package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tillpointhq/tillpoint-backend/pkg/enums"
)

// SaleItem snapshots one cart line at commit time, price override included.
type SaleItem struct {
	ID               uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	SaleID           uuid.UUID          `gorm:"column:sale_id;type:uuid;not null;index"`
	ProductID        uuid.UUID          `gorm:"column:product_id;type:uuid;not null"`
	Name             string             `gorm:"column:name;not null"`
	Quantity         int                `gorm:"column:quantity;not null"`
	UnitPrice        decimal.Decimal    `gorm:"column:unit_price;type:numeric(12,2);not null"`
	ItemDiscount     decimal.Decimal    `gorm:"column:item_discount;type:numeric(12,2);not null;default:0"`
	ItemDiscountType enums.DiscountType `gorm:"column:item_discount_type;not null;default:'percentage'"`
}
