package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tillpointhq/tillpoint-backend/internal/customers"
	"github.com/tillpointhq/tillpoint-backend/internal/pricing"
	"github.com/tillpointhq/tillpoint-backend/internal/sales"
	"github.com/tillpointhq/tillpoint-backend/internal/settlement"
	"github.com/tillpointhq/tillpoint-backend/pkg/db/models"
	"github.com/tillpointhq/tillpoint-backend/pkg/enums"
	pkgerrors "github.com/tillpointhq/tillpoint-backend/pkg/errors"
	"github.com/tillpointhq/tillpoint-backend/pkg/metrics"
	"github.com/tillpointhq/tillpoint-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productLoader interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Options carries terminal-wide settlement defaults.
type Options struct {
	DefaultTaxRate decimal.Decimal
	WalkInName     string
	Currency       string
}

// Service drives a checkout from quote through settlement to a committed sale.
type Service interface {
	Quote(ctx context.Context, input CartInput) (pricing.Totals, error)
	Open(ctx context.Context, input OpenInput) (*settlement.Session, error)
	Get(ctx context.Context, sessionID uuid.UUID) (*settlement.Session, error)
	AddTender(ctx context.Context, sessionID uuid.UUID, input TenderInput) (*settlement.Session, *settlement.Tender, error)
	Discard(ctx context.Context, sessionID uuid.UUID) error
	Finalize(ctx context.Context, sessionID uuid.UUID, operatorID *uuid.UUID) (*models.Sale, error)
}

type service struct {
	registry      *settlement.Registry
	products      productLoader
	customers     customers.Service
	customersRepo customers.Repository
	salesRepo     sales.Repository
	tx            txRunner
	metrics       *metrics.SalesMetrics
	opts          Options
}

// NewService builds the checkout service backed by the provided stack.
func NewService(
	registry *settlement.Registry,
	products productLoader,
	customerSvc customers.Service,
	customersRepo customers.Repository,
	salesRepo sales.Repository,
	tx txRunner,
	salesMetrics *metrics.SalesMetrics,
	opts Options,
) (Service, error) {
	if registry == nil {
		return nil, fmt.Errorf("settlement registry required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if customerSvc == nil {
		return nil, fmt.Errorf("customer service required")
	}
	if customersRepo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	if salesRepo == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		registry:      registry,
		products:      products,
		customers:     customerSvc,
		customersRepo: customersRepo,
		salesRepo:     salesRepo,
		tx:            tx,
		metrics:       salesMetrics,
		opts:          opts,
	}, nil
}

// CartItemInput is one submitted cart line. UnitPrice overrides the catalog
// price when set; otherwise the catalog price applies.
type CartItemInput struct {
	ProductID    uuid.UUID
	Quantity     int
	UnitPrice    *decimal.Decimal
	Discount     decimal.Decimal
	DiscountType enums.DiscountType
}

// CartInput is a full cart submission for pricing.
type CartInput struct {
	Items            []CartItemInput
	CartDiscount     decimal.Decimal
	CartDiscountType enums.DiscountType
	TaxRate          *decimal.Decimal
}

// OpenInput opens a settlement session over a cart.
type OpenInput struct {
	Cart       CartInput
	CustomerID *uuid.UUID
}

// TenderInput is one payment entry submitted by the operator.
type TenderInput struct {
	Method  enums.TenderMethod
	Amount  decimal.Decimal
	Details *types.TenderDetails
}

// Quote prices a cart without opening a session.
func (s *service) Quote(ctx context.Context, input CartInput) (pricing.Totals, error) {
	cart, err := s.buildCart(ctx, input)
	if err != nil {
		return pricing.Totals{}, err
	}
	return cart.Calculate(), nil
}

// Open prices the cart, verifies the customer when provided, and registers a
// collecting session.
func (s *service) Open(ctx context.Context, input OpenInput) (*settlement.Session, error) {
	cart, err := s.buildCart(ctx, input.Cart)
	if err != nil {
		return nil, err
	}

	if input.CustomerID != nil {
		if _, err := s.customers.Get(ctx, *input.CustomerID); err != nil {
			return nil, err
		}
	}

	session, err := settlement.NewSession(cart, input.CustomerID)
	if err != nil {
		return nil, err
	}
	s.registry.Put(session)
	return session, nil
}

// Get returns the live session for the id.
func (s *service) Get(ctx context.Context, sessionID uuid.UUID) (*settlement.Session, error) {
	return s.registry.Get(sessionID)
}

// AddTender applies a payment entry to the session.
func (s *service) AddTender(ctx context.Context, sessionID uuid.UUID, input TenderInput) (*settlement.Session, *settlement.Tender, error) {
	session, err := s.registry.Get(sessionID)
	if err != nil {
		return nil, nil, err
	}

	tender, err := session.AddTender(input.Method, input.Amount, input.Details)
	if err != nil {
		return nil, nil, err
	}

	s.metrics.IncTender(input.Method.String())
	return session, tender, nil
}

// Discard cancels the session and forgets it. Nothing is persisted.
func (s *service) Discard(ctx context.Context, sessionID uuid.UUID) error {
	session, err := s.registry.Get(sessionID)
	if err != nil {
		return err
	}
	if err := session.Discard(); err != nil {
		return err
	}
	s.registry.Remove(sessionID)
	s.metrics.IncDiscarded()
	return nil
}

// Finalize commits the settled session: the sale record, its items and
// payments, and any credit dues land in one transaction.
func (s *service) Finalize(ctx context.Context, sessionID uuid.UUID, operatorID *uuid.UUID) (*models.Sale, error) {
	session, err := s.registry.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.EnsureCommittable(); err != nil {
		return nil, err
	}

	customerID, err := s.resolveCustomer(ctx, session)
	if err != nil {
		return nil, err
	}

	sale, err := buildSale(session, customerID, operatorID, s.opts.Currency)
	if err != nil {
		return nil, err
	}

	creditTotal := creditTenderTotal(session)

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.salesRepo.WithTx(tx).Create(ctx, sale); err != nil {
			return err
		}
		if creditTotal.IsPositive() {
			return s.customersRepo.WithTx(tx).AddDues(ctx, customerID, creditTotal)
		}
		return nil
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist sale")
	}

	if err := session.MarkCommitted(); err != nil {
		return nil, err
	}
	s.registry.Remove(sessionID)

	total, _ := sale.TotalAmount.Float64()
	s.metrics.IncSale(total)

	return sale, nil
}

// resolveCustomer picks the sale's customer: the attached one when present,
// the walk-in default when no tender is on credit, an error otherwise.
func (s *service) resolveCustomer(ctx context.Context, session *settlement.Session) (uuid.UUID, error) {
	if id := session.CustomerID(); id != nil {
		if _, err := s.customers.Get(ctx, *id); err != nil {
			return uuid.Nil, err
		}
		return *id, nil
	}

	if session.UsesCredit() {
		return uuid.Nil, settlement.ErrMissingCustomerForCredit
	}

	walkIn, err := s.customers.EnsureWalkIn(ctx, s.opts.WalkInName)
	if err != nil {
		return uuid.Nil, err
	}
	return walkIn.ID, nil
}

func (s *service) buildCart(ctx context.Context, input CartInput) (*pricing.Cart, error) {
	if len(input.Items) == 0 {
		return nil, settlement.ErrEmptyCart
	}

	cart := pricing.NewCart()
	for _, item := range input.Items {
		product, err := s.products.Get(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.IsActive {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not available").
				WithDetails(map[string]any{"product_id": product.ID})
		}

		unitPrice := product.UnitPrice
		if item.UnitPrice != nil {
			unitPrice = *item.UnitPrice
		}

		if err := cart.AddItem(pricing.LineItem{
			ProductID:    product.ID,
			Name:         product.Name,
			UnitPrice:    unitPrice,
			Quantity:     item.Quantity,
			Discount:     item.Discount,
			DiscountType: item.DiscountType,
		}); err != nil {
			return nil, err
		}
	}

	taxRate := s.opts.DefaultTaxRate
	if input.TaxRate != nil {
		taxRate = *input.TaxRate
	}
	if err := cart.SetTaxRate(taxRate); err != nil {
		return nil, err
	}

	cart.SetCartDiscount(input.CartDiscount, input.CartDiscountType)
	return cart, nil
}

func buildSale(session *settlement.Session, customerID uuid.UUID, operatorID *uuid.UUID, currency string) (*models.Sale, error) {
	totals := session.Totals()
	if currency == "" {
		currency = "USD"
	}

	sale := &models.Sale{
		ID:                     uuid.New(),
		CustomerID:             customerID,
		OperatorID:             operatorID,
		Status:                 enums.SaleStatusCompleted,
		Currency:               currency,
		SubtotalBeforeDiscount: totals.SubtotalBeforeDiscount,
		ItemDiscount:           totals.ItemDiscount,
		CartDiscount:           totals.CartDiscount,
		TaxAmount:              totals.Tax,
		TotalAmount:            totals.Total,
	}

	for _, line := range session.Cart().Items() {
		sale.Items = append(sale.Items, models.SaleItem{
			ID:               uuid.New(),
			ProductID:        line.ProductID,
			Name:             line.Name,
			Quantity:         line.Quantity,
			UnitPrice:        line.UnitPrice.Round(2),
			ItemDiscount:     line.Discount,
			ItemDiscountType: line.DiscountType,
		})
	}

	for _, tender := range session.Tenders() {
		code, err := enums.PaymentCodeFor(tender.Method)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "map tender method")
		}
		sale.Payments = append(sale.Payments, models.SalePayment{
			ID:      uuid.New(),
			Code:    code,
			Amount:  tender.Amount,
			Details: tender.Details,
		})
	}

	return sale, nil
}

func creditTenderTotal(session *settlement.Session) decimal.Decimal {
	total := decimal.Zero
	for _, tender := range session.Tenders() {
		if tender.Method == enums.TenderMethodCredit {
			total = total.Add(tender.Amount)
		}
	}
	return total
}
