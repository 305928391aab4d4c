package enums

import "fmt"

// TenderMethod describes how an operator collects a payment at the till.
type TenderMethod string

const (
	TenderMethodCash        TenderMethod = "cash"
	TenderMethodCard        TenderMethod = "card"
	TenderMethodCheque      TenderMethod = "cheque"
	TenderMethodGiftVoucher TenderMethod = "gift_voucher"
	TenderMethodCredit      TenderMethod = "credit"
)

var validTenderMethods = []TenderMethod{
	TenderMethodCash,
	TenderMethodCard,
	TenderMethodCheque,
	TenderMethodGiftVoucher,
	TenderMethodCredit,
}

// String implements fmt.Stringer.
func (m TenderMethod) String() string {
	return string(m)
}

// IsValid reports whether the value is a known TenderMethod.
func (m TenderMethod) IsValid() bool {
	for _, candidate := range validTenderMethods {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseTenderMethod converts raw input into a TenderMethod.
func ParseTenderMethod(value string) (TenderMethod, error) {
	for _, candidate := range validTenderMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid tender method %q", value)
}

// PaymentCode is the method code a sale record stores for a tender. The
// ledger's code set predates the till labels: cheque tenders are stored as
// "online" and gift vouchers as "cheque". The mapping is inherited from the
// legacy system and kept intact so historical reports stay comparable.
type PaymentCode string

const (
	PaymentCodeCash   PaymentCode = "cash"
	PaymentCodeCard   PaymentCode = "card"
	PaymentCodeOnline PaymentCode = "online"
	PaymentCodeCheque PaymentCode = "cheque"
	PaymentCodeCredit PaymentCode = "credit"
)

var paymentCodeByMethod = map[TenderMethod]PaymentCode{
	TenderMethodCash:        PaymentCodeCash,
	TenderMethodCard:        PaymentCodeCard,
	TenderMethodCheque:      PaymentCodeOnline,
	TenderMethodGiftVoucher: PaymentCodeCheque,
	TenderMethodCredit:      PaymentCodeCredit,
}

// String implements fmt.Stringer.
func (c PaymentCode) String() string {
	return string(c)
}

// PaymentCodeFor maps a till tender method onto the stored ledger code.
func PaymentCodeFor(method TenderMethod) (PaymentCode, error) {
	code, ok := paymentCodeByMethod[method]
	if !ok {
		return "", fmt.Errorf("no payment code for tender method %q", method)
	}
	return code, nil
}
