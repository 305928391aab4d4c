package checkout

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tillpointhq/tillpoint-backend/internal/pricing"
	"github.com/tillpointhq/tillpoint-backend/internal/settlement"
	"github.com/tillpointhq/tillpoint-backend/pkg/db/models"
	"github.com/tillpointhq/tillpoint-backend/pkg/types"
)

// TotalsResponse renders a pricing run with two-place figures.
type TotalsResponse struct {
	SubtotalBeforeDiscount    string `json:"subtotal_before_discount"`
	ItemDiscount              string `json:"item_discount"`
	Subtotal                  string `json:"subtotal"`
	CartDiscount              string `json:"cart_discount"`
	SubtotalAfterCartDiscount string `json:"subtotal_after_cart_discount"`
	TaxAmount                 string `json:"tax_amount"`
	Total                     string `json:"total"`
}

func newTotalsResponse(totals pricing.Totals) TotalsResponse {
	return TotalsResponse{
		SubtotalBeforeDiscount:    totals.SubtotalBeforeDiscount.StringFixed(2),
		ItemDiscount:              totals.ItemDiscount.StringFixed(2),
		Subtotal:                  totals.Subtotal.StringFixed(2),
		CartDiscount:              totals.CartDiscount.StringFixed(2),
		SubtotalAfterCartDiscount: totals.SubtotalAfterCartDiscount.StringFixed(2),
		TaxAmount:                 totals.Tax.StringFixed(2),
		Total:                     totals.Total.StringFixed(2),
	}
}

// TenderView renders one accepted tender.
type TenderView struct {
	ID      string               `json:"id"`
	Method  string               `json:"method"`
	Amount  string               `json:"amount"`
	Details *types.TenderDetails `json:"details,omitempty"`
	TakenAt time.Time            `json:"taken_at"`
}

// SessionResponse renders the settlement session state.
type SessionResponse struct {
	ID         string         `json:"id"`
	State      string         `json:"state"`
	CustomerID *string        `json:"customer_id,omitempty"`
	Totals     TotalsResponse `json:"totals"`
	TotalPaid  string         `json:"total_paid"`
	Remaining  string         `json:"remaining"`
	Tenders    []TenderView   `json:"tenders"`
}

func newSessionResponse(session *settlement.Session) SessionResponse {
	resp := SessionResponse{
		ID:        session.ID.String(),
		State:     session.State().String(),
		Totals:    newTotalsResponse(session.Totals()),
		TotalPaid: session.TotalPaid().StringFixed(2),
		Remaining: session.Remaining().StringFixed(2),
		Tenders:   []TenderView{},
	}
	if id := session.CustomerID(); id != nil {
		str := id.String()
		resp.CustomerID = &str
	}
	for _, tender := range session.Tenders() {
		resp.Tenders = append(resp.Tenders, TenderView{
			ID:      tender.ID.String(),
			Method:  tender.Method.String(),
			Amount:  tender.Amount.StringFixed(2),
			Details: tender.Details,
			TakenAt: tender.TakenAt,
		})
	}
	return resp
}

// TenderResponse renders the session after a tender, plus change for cash
// tenders when the presented amount was supplied.
type TenderResponse struct {
	Session SessionResponse `json:"session"`
	Change  *string         `json:"change,omitempty"`
}

func newTenderResponse(session *settlement.Session, change *decimal.Decimal) TenderResponse {
	resp := TenderResponse{Session: newSessionResponse(session)}
	if change != nil {
		str := change.StringFixed(2)
		resp.Change = &str
	}
	return resp
}

// SaleItemView renders one committed sale line.
type SaleItemView struct {
	ProductID        string `json:"product_id"`
	Name             string `json:"name"`
	Quantity         int    `json:"quantity"`
	UnitPrice        string `json:"unit_price"`
	ItemDiscount     string `json:"item_discount"`
	ItemDiscountType string `json:"item_discount_type"`
}

// SalePaymentView renders one committed payment with its stored ledger code.
type SalePaymentView struct {
	Code    string               `json:"method"`
	Amount  string               `json:"amount"`
	Details *types.TenderDetails `json:"details,omitempty"`
}

// SaleResponse renders a committed sale record.
type SaleResponse struct {
	ID                     string            `json:"id"`
	CustomerID             string            `json:"customer_id"`
	Status                 string            `json:"status"`
	Currency               string            `json:"currency"`
	SubtotalBeforeDiscount string            `json:"subtotal_before_discount"`
	ItemDiscount           string            `json:"item_discount"`
	CartDiscount           string            `json:"cart_discount"`
	TaxAmount              string            `json:"tax_amount"`
	TotalAmount            string            `json:"total_amount"`
	Items                  []SaleItemView    `json:"items"`
	Payments               []SalePaymentView `json:"payments"`
	CreatedAt              time.Time         `json:"created_at"`
}

// NewSaleResponse renders a sale for both checkout and reporting endpoints.
func NewSaleResponse(sale *models.Sale) SaleResponse {
	resp := SaleResponse{
		ID:                     sale.ID.String(),
		CustomerID:             sale.CustomerID.String(),
		Status:                 sale.Status.String(),
		Currency:               sale.Currency,
		SubtotalBeforeDiscount: sale.SubtotalBeforeDiscount.StringFixed(2),
		ItemDiscount:           sale.ItemDiscount.StringFixed(2),
		CartDiscount:           sale.CartDiscount.StringFixed(2),
		TaxAmount:              sale.TaxAmount.StringFixed(2),
		TotalAmount:            sale.TotalAmount.StringFixed(2),
		Items:                  []SaleItemView{},
		Payments:               []SalePaymentView{},
		CreatedAt:              sale.CreatedAt,
	}
	for _, item := range sale.Items {
		resp.Items = append(resp.Items, SaleItemView{
			ProductID:        item.ProductID.String(),
			Name:             item.Name,
			Quantity:         item.Quantity,
			UnitPrice:        item.UnitPrice.StringFixed(2),
			ItemDiscount:     item.ItemDiscount.StringFixed(2),
			ItemDiscountType: item.ItemDiscountType.String(),
		})
	}
	for _, payment := range sale.Payments {
		resp.Payments = append(resp.Payments, SalePaymentView{
			Code:    payment.Code.String(),
			Amount:  payment.Amount.StringFixed(2),
			Details: payment.Details,
		})
	}
	return resp
}
