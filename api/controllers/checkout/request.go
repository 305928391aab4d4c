package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	checkoutsvc "github.com/tillpointhq/tillpoint-backend/internal/checkout"
	"github.com/tillpointhq/tillpoint-backend/pkg/enums"
	"github.com/tillpointhq/tillpoint-backend/pkg/types"
)

// CartItemRequest is one submitted cart line.
type CartItemRequest struct {
	ProductID    uuid.UUID        `json:"product_id" validate:"required"`
	Quantity     int              `json:"quantity" validate:"required,min=1"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	Discount     decimal.Decimal  `json:"discount"`
	DiscountType string           `json:"discount_type" validate:"omitempty,oneof=percentage amount"`
}

// QuoteRequest prices a cart without opening a session.
type QuoteRequest struct {
	Items            []CartItemRequest `json:"items" validate:"required,min=1,dive"`
	CartDiscount     decimal.Decimal   `json:"cart_discount"`
	CartDiscountType string            `json:"cart_discount_type" validate:"omitempty,oneof=percentage amount"`
	TaxRate          *decimal.Decimal  `json:"tax_rate,omitempty"`
}

// OpenRequest opens a settlement session.
type OpenRequest struct {
	QuoteRequest
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
}

// TenderRequest applies one payment entry to a session. PresentedAmount is
// only meaningful for cash and drives the change figure in the response.
type TenderRequest struct {
	Method          string               `json:"method" validate:"required,oneof=cash card cheque gift_voucher credit"`
	Amount          decimal.Decimal      `json:"amount" validate:"required"`
	PresentedAmount *decimal.Decimal     `json:"presented_amount,omitempty"`
	Details         *types.TenderDetails `json:"details,omitempty"`
}

func toCartInput(req QuoteRequest) checkoutsvc.CartInput {
	input := checkoutsvc.CartInput{
		CartDiscount:     req.CartDiscount,
		CartDiscountType: enums.DiscountType(req.CartDiscountType),
		TaxRate:          req.TaxRate,
	}
	if req.CartDiscountType == "" {
		input.CartDiscountType = enums.DiscountTypePercentage
	}
	for _, item := range req.Items {
		discountType := enums.DiscountType(item.DiscountType)
		if item.DiscountType == "" {
			discountType = enums.DiscountTypePercentage
		}
		input.Items = append(input.Items, checkoutsvc.CartItemInput{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			Discount:     item.Discount,
			DiscountType: discountType,
		})
	}
	return input
}
