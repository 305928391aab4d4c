package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tillpointhq/tillpoint-backend/pkg/enums"
	pkgerrors "github.com/tillpointhq/tillpoint-backend/pkg/errors"
)

var (
	// ErrInvalidQuantity rejects line quantities below one.
	ErrInvalidQuantity = pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	// ErrInvalidPrice rejects non-positive unit prices.
	ErrInvalidPrice = pkgerrors.New(pkgerrors.CodeValidation, "unit price must be greater than zero")
	// ErrInvalidDiscount rejects negative discount values.
	ErrInvalidDiscount = pkgerrors.New(pkgerrors.CodeValidation, "discount cannot be negative")
	// ErrInvalidTaxRate rejects tax rates outside [0,100].
	ErrInvalidTaxRate = pkgerrors.New(pkgerrors.CodeValidation, "tax rate must be between 0 and 100")
	// ErrLineNotFound is returned when editing a product the cart does not hold.
	ErrLineNotFound = pkgerrors.New(pkgerrors.CodeNotFound, "product is not in the cart")
)

var oneHundred = decimal.NewFromInt(100)

// LineItem is one cart line. UnitPrice may be an operator override and is not
// required to match the catalog price.
type LineItem struct {
	ProductID    uuid.UUID
	Name         string
	UnitPrice    decimal.Decimal
	Quantity     int
	Discount     decimal.Decimal
	DiscountType enums.DiscountType
}

func (li LineItem) validate() error {
	if li.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if li.UnitPrice.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidPrice
	}
	if li.Discount.IsNegative() {
		return ErrInvalidDiscount
	}
	return nil
}

// lineTotal is quantity times unit price, before any discount.
func (li LineItem) lineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Cart holds the lines being rung up plus the cart-level discount and tax
// inputs. One line per product: re-adding merges into the existing line.
type Cart struct {
	items            []LineItem
	cartDiscount     decimal.Decimal
	cartDiscountType enums.DiscountType
	taxRate          decimal.Decimal
}

// NewCart returns an empty cart with a percentage cart discount of zero.
func NewCart() *Cart {
	return &Cart{cartDiscountType: enums.DiscountTypePercentage}
}

// AddItem validates the line and merges it into the cart. When the product is
// already present the existing line absorbs the added quantity and takes the
// incoming price and discount, instead of a duplicate line appearing.
func (c *Cart) AddItem(item LineItem) error {
	if !item.DiscountType.IsValid() {
		item.DiscountType = enums.DiscountTypePercentage
	}
	if err := item.validate(); err != nil {
		return err
	}

	for i := range c.items {
		if c.items[i].ProductID == item.ProductID {
			c.items[i].Quantity += item.Quantity
			c.items[i].UnitPrice = item.UnitPrice
			c.items[i].Discount = item.Discount
			c.items[i].DiscountType = item.DiscountType
			if item.Name != "" {
				c.items[i].Name = item.Name
			}
			return nil
		}
	}

	c.items = append(c.items, item)
	return nil
}

// UpdateItem replaces the line for the product, keeping merge-on-add
// semantics intact. The replacement is validated before the cart changes.
func (c *Cart) UpdateItem(item LineItem) error {
	if !item.DiscountType.IsValid() {
		item.DiscountType = enums.DiscountTypePercentage
	}
	if err := item.validate(); err != nil {
		return err
	}

	for i := range c.items {
		if c.items[i].ProductID == item.ProductID {
			c.items[i] = item
			return nil
		}
	}
	return ErrLineNotFound
}

// RemoveItem drops the line for the product if present.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.items)
}

// SetCartDiscount applies the cart-level discount, clamping at input time:
// percentages are capped at 100 and fixed amounts at the current subtotal
// after item discounts. Negative values clamp to zero.
func (c *Cart) SetCartDiscount(value decimal.Decimal, discountType enums.DiscountType) {
	if !discountType.IsValid() {
		discountType = enums.DiscountTypePercentage
	}
	if value.IsNegative() {
		value = decimal.Zero
	}

	switch discountType {
	case enums.DiscountTypePercentage:
		if value.GreaterThan(oneHundred) {
			value = oneHundred
		}
	case enums.DiscountTypeAmount:
		if subtotal := c.subtotalAfterItemDiscounts(); value.GreaterThan(subtotal) {
			value = subtotal
		}
	}

	c.cartDiscount = value
	c.cartDiscountType = discountType
}

// CartDiscount returns the clamped cart-level discount and its type.
func (c *Cart) CartDiscount() (decimal.Decimal, enums.DiscountType) {
	return c.cartDiscount, c.cartDiscountType
}

// SetTaxRate validates and stores the tax percentage.
func (c *Cart) SetTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(oneHundred) {
		return ErrInvalidTaxRate
	}
	c.taxRate = rate
	return nil
}

// TaxRate returns the stored tax percentage.
func (c *Cart) TaxRate() decimal.Decimal {
	return c.taxRate
}
