package enums

import "testing"

func TestParseTenderMethod(t *testing.T) {
	t.Parallel()

	for _, method := range []string{"cash", "card", "cheque", "gift_voucher", "credit"} {
		parsed, err := ParseTenderMethod(method)
		if err != nil {
			t.Fatalf("expected %q to parse, got %v", method, err)
		}
		if parsed.String() != method {
			t.Fatalf("round trip mismatch for %q", method)
		}
	}

	if _, err := ParseTenderMethod("paypal"); err == nil {
		t.Fatal("expected unknown method to fail")
	}
	if TenderMethod("paypal").IsValid() {
		t.Fatal("unknown method must not be valid")
	}
}

// Pins the asymmetric ledger mapping inherited from the legacy system:
// cheque tenders are stored as "online", gift vouchers as "cheque".
func TestPaymentCodeMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		method TenderMethod
		want   PaymentCode
	}{
		{TenderMethodCash, PaymentCodeCash},
		{TenderMethodCard, PaymentCodeCard},
		{TenderMethodCheque, PaymentCodeOnline},
		{TenderMethodGiftVoucher, PaymentCodeCheque},
		{TenderMethodCredit, PaymentCodeCredit},
	}

	for _, tc := range cases {
		code, err := PaymentCodeFor(tc.method)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tc.method, err)
		}
		if code != tc.want {
			t.Fatalf("method %s: expected code %s, got %s", tc.method, tc.want, code)
		}
	}

	if _, err := PaymentCodeFor(TenderMethod("paypal")); err == nil {
		t.Fatal("expected unmapped method to fail")
	}
}
