package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tillpointhq/tillpoint-backend/pkg/enums"
)

// Sale is the committed record of a settled checkout. Monetary aggregates are
// snapshots of the pricing run that produced the sale; they are never
// recomputed from the items afterwards.
type Sale struct {
	ID                     uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	CustomerID             uuid.UUID        `gorm:"column:customer_id;type:uuid;not null;index"`
	OperatorID             *uuid.UUID       `gorm:"column:operator_id;type:uuid"`
	Status                 enums.SaleStatus `gorm:"column:status;not null;default:'completed'"`
	Currency               string           `gorm:"column:currency;not null;default:'USD'"`
	SubtotalBeforeDiscount decimal.Decimal  `gorm:"column:subtotal_before_discount;type:numeric(12,2);not null"`
	ItemDiscount           decimal.Decimal  `gorm:"column:item_discount;type:numeric(12,2);not null"`
	CartDiscount           decimal.Decimal  `gorm:"column:cart_discount;type:numeric(12,2);not null"`
	TaxAmount              decimal.Decimal  `gorm:"column:tax_amount;type:numeric(12,2);not null"`
	TotalAmount            decimal.Decimal  `gorm:"column:total_amount;type:numeric(12,2);not null"`
	Items                  []SaleItem       `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	Payments               []SalePayment    `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	CreatedAt              time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
