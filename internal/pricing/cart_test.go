package pricing

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tillpointhq/tillpoint-backend/pkg/enums"
)

func line(productID uuid.UUID, price string, qty int, discount string, discountType enums.DiscountType) LineItem {
	return LineItem{
		ProductID:    productID,
		Name:         "test item",
		UnitPrice:    decimal.RequireFromString(price),
		Quantity:     qty,
		Discount:     decimal.RequireFromString(discount),
		DiscountType: discountType,
	}
}

func TestAddItemValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		item LineItem
		want error
	}{
		{"zero quantity", line(uuid.New(), "10", 0, "0", enums.DiscountTypePercentage), ErrInvalidQuantity},
		{"negative quantity", line(uuid.New(), "10", -3, "0", enums.DiscountTypePercentage), ErrInvalidQuantity},
		{"zero price", line(uuid.New(), "0", 1, "0", enums.DiscountTypePercentage), ErrInvalidPrice},
		{"negative price", line(uuid.New(), "-5", 1, "0", enums.DiscountTypePercentage), ErrInvalidPrice},
		{"negative discount", line(uuid.New(), "10", 1, "-1", enums.DiscountTypePercentage), ErrInvalidDiscount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cart := NewCart()
			if err := cart.AddItem(tc.item); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if cart.Len() != 0 {
				t.Fatalf("rejected item must not enter the cart")
			}
		})
	}
}

func TestAddItemMergesByProduct(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	cart := NewCart()

	if err := cart.AddItem(line(productID, "100", 2, "5", enums.DiscountTypePercentage)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cart.AddItem(line(productID, "90", 3, "10", enums.DiscountTypePercentage)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cart.Len() != 1 {
		t.Fatalf("expected a single merged line, got %d", cart.Len())
	}

	merged := cart.Items()[0]
	if merged.Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", merged.Quantity)
	}
	if !merged.UnitPrice.Equal(decimal.RequireFromString("90")) {
		t.Fatalf("expected latest price to win, got %s", merged.UnitPrice)
	}
	if !merged.Discount.Equal(decimal.RequireFromString("10")) {
		t.Fatalf("expected latest discount to win, got %s", merged.Discount)
	}
}

func TestUpdateItemReplacesLine(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	cart := NewCart()
	if err := cart.AddItem(line(productID, "100", 2, "0", enums.DiscountTypePercentage)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := cart.UpdateItem(line(productID, "80", 1, "0", enums.DiscountTypePercentage)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated := cart.Items()[0]
	if updated.Quantity != 1 || !updated.UnitPrice.Equal(decimal.RequireFromString("80")) {
		t.Fatalf("expected replacement, got %+v", updated)
	}

	if err := cart.UpdateItem(line(uuid.New(), "80", 1, "0", enums.DiscountTypePercentage)); !errors.Is(err, ErrLineNotFound) {
		t.Fatalf("expected ErrLineNotFound, got %v", err)
	}
}

func TestRemoveItem(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	cart := NewCart()
	if err := cart.AddItem(line(productID, "10", 1, "0", enums.DiscountTypePercentage)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cart.RemoveItem(productID)
	if cart.Len() != 0 {
		t.Fatalf("expected empty cart after removal")
	}

	// removing an absent product is a no-op
	cart.RemoveItem(uuid.New())
}

func TestSetCartDiscountClamps(t *testing.T) {
	t.Parallel()

	cart := NewCart()
	if err := cart.AddItem(line(uuid.New(), "100", 1, "0", enums.DiscountTypePercentage)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cart.SetCartDiscount(decimal.RequireFromString("150"), enums.DiscountTypePercentage)
	if value, _ := cart.CartDiscount(); !value.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("percentage should clamp to 100, got %s", value)
	}

	cart.SetCartDiscount(decimal.RequireFromString("-20"), enums.DiscountTypePercentage)
	if value, _ := cart.CartDiscount(); !value.IsZero() {
		t.Fatalf("negative discount should clamp to zero, got %s", value)
	}

	// amount discounts clamp at the subtotal after item discounts
	cart.SetCartDiscount(decimal.RequireFromString("250"), enums.DiscountTypeAmount)
	if value, _ := cart.CartDiscount(); !value.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("amount should clamp to subtotal, got %s", value)
	}
}

func TestSetTaxRateBounds(t *testing.T) {
	t.Parallel()

	cart := NewCart()

	if err := cart.SetTaxRate(decimal.RequireFromString("-1")); !errors.Is(err, ErrInvalidTaxRate) {
		t.Fatalf("expected ErrInvalidTaxRate for negative rate, got %v", err)
	}
	if err := cart.SetTaxRate(decimal.RequireFromString("100.01")); !errors.Is(err, ErrInvalidTaxRate) {
		t.Fatalf("expected ErrInvalidTaxRate above 100, got %v", err)
	}
	if err := cart.SetTaxRate(decimal.RequireFromString("8.25")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cart.TaxRate().Equal(decimal.RequireFromString("8.25")) {
		t.Fatalf("tax rate not stored")
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	t.Parallel()

	cart := NewCart()
	if err := cart.AddItem(line(uuid.New(), "10", 1, "0", enums.DiscountTypePercentage)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items := cart.Items()
	items[0].Quantity = 99
	if cart.Items()[0].Quantity != 1 {
		t.Fatalf("mutating the returned slice must not touch the cart")
	}
}
