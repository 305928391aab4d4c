package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tillpointhq/tillpoint-backend/pkg/enums"
	"github.com/tillpointhq/tillpoint-backend/pkg/types"
)

// SalePayment records one tender applied to a sale. Code uses the stored
// ledger code set, not the till label (see enums.PaymentCodeFor).
type SalePayment struct {
	ID      uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	SaleID  uuid.UUID            `gorm:"column:sale_id;type:uuid;not null;index"`
	Code    enums.PaymentCode    `gorm:"column:code;not null"`
	Amount  decimal.Decimal      `gorm:"column:amount;type:numeric(12,2);not null"`
	Details *types.TenderDetails `gorm:"column:details;type:jsonb;serializer:json"`
}
