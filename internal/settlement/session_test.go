package settlement

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tillpointhq/tillpoint-backend/internal/pricing"
	"github.com/tillpointhq/tillpoint-backend/pkg/enums"
	"github.com/tillpointhq/tillpoint-backend/pkg/types"
)

// cartWithTotal builds a single-line cart whose total is the given price
// (quantity 1, no discounts, no tax).
func cartWithTotal(t *testing.T, price string) *pricing.Cart {
	t.Helper()
	cart := pricing.NewCart()
	err := cart.AddItem(pricing.LineItem{
		ProductID:    uuid.New(),
		Name:         "line",
		UnitPrice:    decimal.RequireFromString(price),
		Quantity:     1,
		DiscountType: enums.DiscountTypePercentage,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return cart
}

func TestNewSessionRejectsEmptyCart(t *testing.T) {
	t.Parallel()

	if _, err := NewSession(nil, nil); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart for nil cart, got %v", err)
	}
	if _, err := NewSession(pricing.NewCart(), nil); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart for empty cart, got %v", err)
	}
}

// Mirrors the reference tender sequence: cash 100.00 against 178.20 keeps the
// session collecting, card 78.20 settles it.
func TestTenderSequenceSettlesSession(t *testing.T) {
	t.Parallel()

	cart := cartWithTotal(t, "178.20")
	session, err := NewSession(cart, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := session.AddTender(enums.TenderMethodCash, decimal.RequireFromString("100.00"), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.State() != enums.SessionStateCollecting {
		t.Fatalf("expected session to stay collecting, got %s", session.State())
	}
	if session.Remaining().StringFixed(2) != "78.20" {
		t.Fatalf("expected remaining 78.20, got %s", session.Remaining().StringFixed(2))
	}

	if _, err := session.AddTender(enums.TenderMethodCard, decimal.RequireFromString("78.20"), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.State() != enums.SessionStateReadyToCommit {
		t.Fatalf("expected ready-to-commit, got %s", session.State())
	}
	if !session.Remaining().IsZero() {
		t.Fatalf("expected zero remaining, got %s", session.Remaining())
	}
}

func TestAddTenderGuards(t *testing.T) {
	t.Parallel()

	session, err := NewSession(cartWithTotal(t, "100"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := session.AddTender("paypal", decimal.NewFromInt(10), nil); !errors.Is(err, ErrInvalidTenderMethod) {
		t.Fatalf("expected ErrInvalidTenderMethod, got %v", err)
	}
	if _, err := session.AddTender(enums.TenderMethodCash, decimal.Zero, nil); !errors.Is(err, ErrInvalidTenderAmount) {
		t.Fatalf("expected ErrInvalidTenderAmount for zero, got %v", err)
	}
	if _, err := session.AddTender(enums.TenderMethodCash, decimal.NewFromInt(-5), nil); !errors.Is(err, ErrInvalidTenderAmount) {
		t.Fatalf("expected ErrInvalidTenderAmount for negative, got %v", err)
	}
	if _, err := session.AddTender(enums.TenderMethodCash, decimal.RequireFromString("100.01"), nil); !errors.Is(err, ErrOverpayment) {
		t.Fatalf("expected ErrOverpayment, got %v", err)
	}

	// none of the rejected tenders may have touched the balance
	if len(session.Tenders()) != 0 || !session.TotalPaid().IsZero() {
		t.Fatalf("rejected tenders must leave the session untouched")
	}
}

func TestCreditTenderRequiresCustomer(t *testing.T) {
	t.Parallel()

	session, err := NewSession(cartWithTotal(t, "100"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := session.AddTender(enums.TenderMethodCredit, decimal.NewFromInt(50), nil); !errors.Is(err, ErrMissingCustomerForCredit) {
		t.Fatalf("expected ErrMissingCustomerForCredit, got %v", err)
	}
	if session.State() != enums.SessionStateCollecting || !session.Remaining().Equal(decimal.NewFromInt(100)) {
		t.Fatalf("failed credit tender must not change the session")
	}

	if err := session.AttachCustomer(uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := session.AddTender(enums.TenderMethodCredit, decimal.NewFromInt(50), nil); err != nil {
		t.Fatalf("credit tender with customer should pass, got %v", err)
	}
	if !session.UsesCredit() {
		t.Fatalf("expected UsesCredit to report true")
	}
}

func TestTenderDetailsValidation(t *testing.T) {
	t.Parallel()

	cardDetails := &types.TenderDetails{Card: &types.CardDetails{CardType: "visa", Reference: "1234"}}
	chequeDetails := &types.TenderDetails{Cheque: &types.ChequeDetails{Number: "77", Bank: "First"}}
	voucherDetails := &types.TenderDetails{Voucher: &types.VoucherDetails{Number: "GV-9"}}
	mixed := &types.TenderDetails{Card: cardDetails.Card, Cheque: chequeDetails.Cheque}

	cases := []struct {
		name    string
		method  enums.TenderMethod
		details *types.TenderDetails
		wantErr bool
	}{
		{"nil details always pass", enums.TenderMethodCard, nil, false},
		{"card with card details", enums.TenderMethodCard, cardDetails, false},
		{"cheque with cheque details", enums.TenderMethodCheque, chequeDetails, false},
		{"voucher with voucher details", enums.TenderMethodGiftVoucher, voucherDetails, false},
		{"card with cheque details", enums.TenderMethodCard, chequeDetails, true},
		{"cash with card details", enums.TenderMethodCash, cardDetails, true},
		{"credit with voucher details", enums.TenderMethodCredit, voucherDetails, true},
		{"two variants at once", enums.TenderMethodCard, mixed, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateTenderDetails(tc.method, tc.details)
			if tc.wantErr && !errors.Is(err, ErrInvalidTenderDetails) {
				t.Fatalf("expected ErrInvalidTenderDetails, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestEnsureCommittable(t *testing.T) {
	t.Parallel()

	session, err := NewSession(cartWithTotal(t, "60"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := session.EnsureCommittable(); !errors.Is(err, ErrNoTender) {
		t.Fatalf("expected ErrNoTender before any tender, got %v", err)
	}

	if _, err := session.AddTender(enums.TenderMethodCash, decimal.NewFromInt(30), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := session.EnsureCommittable(); !errors.Is(err, ErrNotSettled) {
		t.Fatalf("expected ErrNotSettled while balance remains, got %v", err)
	}

	if _, err := session.AddTender(enums.TenderMethodCash, decimal.NewFromInt(30), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := session.EnsureCommittable(); err != nil {
		t.Fatalf("expected committable session, got %v", err)
	}
}

func TestTerminalStatesRejectMutation(t *testing.T) {
	t.Parallel()

	session, err := NewSession(cartWithTotal(t, "10"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := session.AddTender(enums.TenderMethodCash, decimal.NewFromInt(10), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := session.MarkCommitted(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := session.AddTender(enums.TenderMethodCash, decimal.NewFromInt(1), nil); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed after commit, got %v", err)
	}
	if err := session.Discard(); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed on discarding a committed session, got %v", err)
	}
	if err := session.AttachCustomer(uuid.New()); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed on attach after commit, got %v", err)
	}
}

func TestDiscardDropsTenders(t *testing.T) {
	t.Parallel()

	session, err := NewSession(cartWithTotal(t, "40"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := session.AddTender(enums.TenderMethodCash, decimal.NewFromInt(20), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := session.Discard(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.State() != enums.SessionStateDiscarded {
		t.Fatalf("expected discarded state, got %s", session.State())
	}
	if len(session.Tenders()) != 0 {
		t.Fatalf("discard must drop collected tenders")
	}
}

func TestComputeChange(t *testing.T) {
	t.Parallel()

	change := ComputeChange(decimal.RequireFromString("200"), decimal.RequireFromString("178.20"))
	if change.StringFixed(2) != "21.80" {
		t.Fatalf("expected change 21.80, got %s", change.StringFixed(2))
	}

	// shortfalls surface as negative change, not zero
	shortfall := ComputeChange(decimal.RequireFromString("150"), decimal.RequireFromString("178.20"))
	if shortfall.StringFixed(2) != "-28.20" {
		t.Fatalf("expected -28.20, got %s", shortfall.StringFixed(2))
	}
}

// Sessions are shared between concurrent requests for the same id, so the
// overpayment guard and the append must act as one critical section.
func TestConcurrentTendersNeverExceedTotal(t *testing.T) {
	t.Parallel()

	cart := cartWithTotal(t, "200.00")
	session, err := NewSession(cart, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const workers = 8
	var wg sync.WaitGroup
	accepted := make(chan struct{}, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := session.AddTender(enums.TenderMethodCash, decimal.RequireFromString("200.00"), nil); err == nil {
				accepted <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(accepted)

	if got := len(accepted); got != 1 {
		t.Fatalf("expected exactly one accepted tender, got %d", got)
	}
	if !session.TotalPaid().Equal(decimal.RequireFromString("200.00")) {
		t.Fatalf("total paid corrupted: %s", session.TotalPaid())
	}
	if !session.Remaining().IsZero() {
		t.Fatalf("remaining went negative or stale: %s", session.Remaining())
	}
	if session.State() != enums.SessionStateReadyToCommit {
		t.Fatalf("expected ready_to_commit, got %s", session.State())
	}
}

func TestConcurrentPartialTendersSumExactly(t *testing.T) {
	t.Parallel()

	cart := cartWithTotal(t, "100.00")
	session, err := NewSession(cart, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const workers = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := session.AddTender(enums.TenderMethodCash, decimal.RequireFromString("10.00"), nil); err != nil {
				t.Errorf("tender rejected: %v", err)
			}
		}()
	}
	wg.Wait()

	if !session.TotalPaid().Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("expected total paid 100.00, got %s", session.TotalPaid())
	}
	if len(session.Tenders()) != workers {
		t.Fatalf("expected %d tenders, got %d", workers, len(session.Tenders()))
	}
	if session.State() != enums.SessionStateReadyToCommit {
		t.Fatalf("expected ready_to_commit, got %s", session.State())
	}
}
