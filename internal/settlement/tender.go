package settlement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tillpointhq/tillpoint-backend/pkg/enums"
	pkgerrors "github.com/tillpointhq/tillpoint-backend/pkg/errors"
	"github.com/tillpointhq/tillpoint-backend/pkg/types"
)

var (
	// ErrInvalidTenderAmount rejects zero or negative tender amounts.
	ErrInvalidTenderAmount = pkgerrors.New(pkgerrors.CodeValidation, "tender amount must be greater than zero")
	// ErrInvalidTenderMethod rejects unknown tender methods.
	ErrInvalidTenderMethod = pkgerrors.New(pkgerrors.CodeValidation, "unknown tender method")
	// ErrInvalidTenderDetails rejects detail payloads that do not match the method.
	ErrInvalidTenderDetails = pkgerrors.New(pkgerrors.CodeValidation, "tender details do not match the tender method")
)

// Tender is a single accepted payment entry within a session.
type Tender struct {
	ID      uuid.UUID
	Method  enums.TenderMethod
	Amount  decimal.Decimal
	Details *types.TenderDetails
	TakenAt time.Time
}

func validateTenderDetails(method enums.TenderMethod, details *types.TenderDetails) error {
	if details.IsEmpty() {
		return nil
	}
	if !details.HasSingleVariant() {
		return ErrInvalidTenderDetails
	}

	switch method {
	case enums.TenderMethodCard:
		if details.Card == nil {
			return ErrInvalidTenderDetails
		}
	case enums.TenderMethodCheque:
		if details.Cheque == nil {
			return ErrInvalidTenderDetails
		}
	case enums.TenderMethodGiftVoucher:
		if details.Voucher == nil {
			return ErrInvalidTenderDetails
		}
	default:
		// cash and credit tenders carry no details
		return ErrInvalidTenderDetails
	}
	return nil
}

// ComputeChange returns presented minus tendered for a cash tender. A negative
// result means the customer presented too little; it is surfaced as-is so the
// operator sees the shortfall instead of a silently clamped zero.
func ComputeChange(presented, tendered decimal.Decimal) decimal.Decimal {
	return presented.Sub(tendered).Round(2)
}
