package types

// CardDetails carries the attributes recorded for a card tender. The card is
// not charged here; the terminal's standalone reader already did that.
type CardDetails struct {
	CardType  string `json:"card_type"`
	Reference string `json:"reference"`
}

// ChequeDetails carries the attributes recorded for a cheque tender.
type ChequeDetails struct {
	Number string `json:"number"`
	Bank   string `json:"bank"`
}

// VoucherDetails carries the attributes recorded for a gift voucher tender.
type VoucherDetails struct {
	Number string `json:"number"`
}

// TenderDetails is a tagged union keyed by tender method: exactly one of the
// variants may be set, and cash/credit tenders carry none.
type TenderDetails struct {
	Card    *CardDetails    `json:"card,omitempty"`
	Cheque  *ChequeDetails  `json:"cheque,omitempty"`
	Voucher *VoucherDetails `json:"voucher,omitempty"`
}

// IsEmpty reports whether no variant is set.
func (d *TenderDetails) IsEmpty() bool {
	return d == nil || (d.Card == nil && d.Cheque == nil && d.Voucher == nil)
}

func (d *TenderDetails) variantCount() int {
	if d == nil {
		return 0
	}
	count := 0
	if d.Card != nil {
		count++
	}
	if d.Cheque != nil {
		count++
	}
	if d.Voucher != nil {
		count++
	}
	return count
}

// HasSingleVariant reports whether at most one variant is populated.
func (d *TenderDetails) HasSingleVariant() bool {
	return d.variantCount() <= 1
}
