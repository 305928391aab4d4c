package settlement

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tillpointhq/tillpoint-backend/internal/pricing"
	"github.com/tillpointhq/tillpoint-backend/pkg/enums"
	pkgerrors "github.com/tillpointhq/tillpoint-backend/pkg/errors"
	"github.com/tillpointhq/tillpoint-backend/pkg/types"
)

var (
	// ErrEmptyCart rejects opening or finalizing a session over a cart with no lines.
	ErrEmptyCart = pkgerrors.New(pkgerrors.CodeValidation, "cart has no line items")
	// ErrOverpayment rejects a tender larger than the remaining balance.
	ErrOverpayment = pkgerrors.New(pkgerrors.CodeValidation, "tender amount exceeds remaining balance")
	// ErrMissingCustomerForCredit rejects credit tenders on sessions without a customer.
	ErrMissingCustomerForCredit = pkgerrors.New(pkgerrors.CodeValidation, "credit tender requires a customer")
	// ErrNoTender rejects finalizing a session with no accepted tenders.
	ErrNoTender = pkgerrors.New(pkgerrors.CodeValidation, "at least one tender is required")
	// ErrSessionClosed rejects mutating a committed or discarded session.
	ErrSessionClosed = pkgerrors.New(pkgerrors.CodeStateConflict, "session is closed")
	// ErrNotSettled rejects committing while a balance remains.
	ErrNotSettled = pkgerrors.New(pkgerrors.CodeStateConflict, "session balance is not fully covered")
)

// Session accumulates tenders against the totals of a priced cart until the
// balance is covered or the operator cancels. Validation failures leave the
// session untouched. A session is shared between concurrent requests for the
// same id, so every state access goes through the session mutex; the guards
// and the append in AddTender form one critical section, which is what keeps
// the remaining balance from going negative under concurrent tenders.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu         sync.Mutex
	cart       *pricing.Cart
	totals     pricing.Totals
	customerID *uuid.UUID
	state      enums.SessionState
	tenders    []Tender
	totalPaid  decimal.Decimal
}

// NewSession prices the cart and opens a collecting session. The totals are
// frozen at open; re-pricing requires a new session.
func NewSession(cart *pricing.Cart, customerID *uuid.UUID) (*Session, error) {
	if cart == nil || cart.Len() == 0 {
		return nil, ErrEmptyCart
	}
	return &Session{
		ID:         uuid.New(),
		CreatedAt:  time.Now().UTC(),
		cart:       cart,
		totals:     cart.Calculate(),
		customerID: customerID,
		state:      enums.SessionStateCollecting,
		totalPaid:  decimal.Zero,
	}, nil
}

// Cart returns the priced cart the session was opened over. The cart is not
// mutated after open.
func (s *Session) Cart() *pricing.Cart {
	return s.cart
}

// Totals returns the frozen pricing run.
func (s *Session) Totals() pricing.Totals {
	return s.totals
}

// State returns the current lifecycle state.
func (s *Session) State() enums.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CustomerID returns the attached customer, if any.
func (s *Session) CustomerID() *uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customerID
}

// AttachCustomer binds a customer to the session; required before any credit
// tender is accepted.
func (s *Session) AttachCustomer(customerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.IsTerminal() {
		return ErrSessionClosed
	}
	id := customerID
	s.customerID = &id
	return nil
}

// Tenders returns a copy of the accepted tenders in acceptance order.
func (s *Session) Tenders() []Tender {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Tender, len(s.tenders))
	copy(out, s.tenders)
	return out
}

// TotalPaid is the sum of accepted tender amounts.
func (s *Session) TotalPaid() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalPaid
}

// Remaining is the balance still owed. Tenders are capped at the remaining
// balance on acceptance, so this never goes negative.
func (s *Session) Remaining() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remainingLocked()
}

func (s *Session) remainingLocked() decimal.Decimal {
	return s.totals.Total.Sub(s.totalPaid)
}

// AddTender validates and appends a payment entry. When the balance reaches
// zero the session moves to ready-to-commit and the caller is expected to
// finalize the sale.
func (s *Session) AddTender(method enums.TenderMethod, amount decimal.Decimal, details *types.TenderDetails) (*Tender, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.IsTerminal() {
		return nil, ErrSessionClosed
	}
	if !method.IsValid() {
		return nil, ErrInvalidTenderMethod
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidTenderAmount
	}
	if amount.GreaterThan(s.remainingLocked()) {
		return nil, ErrOverpayment
	}
	if method == enums.TenderMethodCredit && s.customerID == nil {
		return nil, ErrMissingCustomerForCredit
	}
	if err := validateTenderDetails(method, details); err != nil {
		return nil, err
	}

	tender := Tender{
		ID:      uuid.New(),
		Method:  method,
		Amount:  amount.Round(2),
		Details: details,
		TakenAt: time.Now().UTC(),
	}
	s.tenders = append(s.tenders, tender)
	s.totalPaid = s.totalPaid.Add(tender.Amount)

	if !s.remainingLocked().IsPositive() {
		s.state = enums.SessionStateReadyToCommit
	}

	return &tender, nil
}

// EnsureCommittable verifies the finalize preconditions without mutating.
func (s *Session) EnsureCommittable() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureCommittableLocked()
}

func (s *Session) ensureCommittableLocked() error {
	if s.state.IsTerminal() {
		return ErrSessionClosed
	}
	if s.cart.Len() == 0 {
		return ErrEmptyCart
	}
	if len(s.tenders) == 0 {
		return ErrNoTender
	}
	if s.remainingLocked().IsPositive() {
		return ErrNotSettled
	}
	return nil
}

// MarkCommitted closes the session after the sale record is persisted.
func (s *Session) MarkCommitted() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureCommittableLocked(); err != nil {
		return err
	}
	s.state = enums.SessionStateCommitted
	return nil
}

// Discard cancels the session; accepted tenders are dropped and nothing is
// persisted.
func (s *Session) Discard() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.IsTerminal() {
		return ErrSessionClosed
	}
	s.state = enums.SessionStateDiscarded
	s.tenders = nil
	return nil
}

// UsesCredit reports whether any accepted tender is on credit.
func (s *Session) UsesCredit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tender := range s.tenders {
		if tender.Method == enums.TenderMethodCredit {
			return true
		}
	}
	return false
}
