package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/tillpointhq/tillpoint-backend/pkg/enums"
)

// Totals is the settlement-facing output of a pricing run. Every figure is
// rounded to two places; Total is the sum of the rounded tax base and rounded
// tax so the committed record always satisfies total == base + tax.
type Totals struct {
	SubtotalBeforeDiscount    decimal.Decimal
	ItemDiscount              decimal.Decimal
	Subtotal                  decimal.Decimal
	CartDiscount              decimal.Decimal
	SubtotalAfterCartDiscount decimal.Decimal
	Tax                       decimal.Decimal
	Total                     decimal.Decimal
}

// Calculate walks the fixed discount pipeline: item discounts first, then the
// cart discount, then tax on what remains. The order is part of the contract;
// swapping item and cart discounts changes the total whenever both are set.
func (c *Cart) Calculate() Totals {
	subtotalBefore := decimal.Zero
	itemDiscount := decimal.Zero

	for _, item := range c.items {
		line := item.lineTotal()
		subtotalBefore = subtotalBefore.Add(line)
		itemDiscount = itemDiscount.Add(itemDiscountFor(item, line))
	}

	subtotal := subtotalBefore.Sub(itemDiscount)

	cartDiscount := c.cartDiscountAmount(subtotal)
	afterCart := subtotal.Sub(cartDiscount)

	tax := afterCart.Mul(c.taxRate).Div(oneHundred)

	roundedAfterCart := afterCart.Round(2)
	roundedTax := tax.Round(2)

	return Totals{
		SubtotalBeforeDiscount:    subtotalBefore.Round(2),
		ItemDiscount:              itemDiscount.Round(2),
		Subtotal:                  subtotal.Round(2),
		CartDiscount:              cartDiscount.Round(2),
		SubtotalAfterCartDiscount: roundedAfterCart,
		Tax:                       roundedTax,
		Total:                     roundedAfterCart.Add(roundedTax),
	}
}

// itemDiscountFor reproduces the till's aggregate item discount: the discount
// value is applied as a percentage of the line total even when the line was
// entered with a fixed-amount discount. Operators relying on fixed amounts
// must convert them to an equivalent percentage first. Kept byte-for-byte
// compatible with the legacy terminal; see DESIGN.md before changing.
func itemDiscountFor(item LineItem, lineTotal decimal.Decimal) decimal.Decimal {
	return lineTotal.Mul(item.Discount).Div(oneHundred)
}

func (c *Cart) subtotalAfterItemDiscounts() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range c.items {
		line := item.lineTotal()
		subtotal = subtotal.Add(line.Sub(itemDiscountFor(item, line)))
	}
	return subtotal
}

func (c *Cart) cartDiscountAmount(subtotal decimal.Decimal) decimal.Decimal {
	switch c.cartDiscountType {
	case enums.DiscountTypeAmount:
		if c.cartDiscount.GreaterThan(subtotal) {
			return subtotal
		}
		return c.cartDiscount
	default:
		return subtotal.Mul(c.cartDiscount).Div(oneHundred)
	}
}
