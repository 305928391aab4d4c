package products

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tillpointhq/tillpoint-backend/api/responses"
	"github.com/tillpointhq/tillpoint-backend/api/validators"
	productsvc "github.com/tillpointhq/tillpoint-backend/internal/products"
	"github.com/tillpointhq/tillpoint-backend/pkg/db/models"
	pkgerrors "github.com/tillpointhq/tillpoint-backend/pkg/errors"
	"github.com/tillpointhq/tillpoint-backend/pkg/logger"
)

// CreateRequest is the payload for a new catalog entry.
type CreateRequest struct {
	Name      string          `json:"name" validate:"required"`
	SKU       string          `json:"sku" validate:"required"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required"`
	IsActive  *bool           `json:"is_active,omitempty"`
}

// ProductResponse renders one catalog entry.
type ProductResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SKU       string    `json:"sku"`
	Category  string    `json:"category,omitempty"`
	UnitPrice string    `json:"unit_price"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func newProductResponse(product *models.Product) ProductResponse {
	return ProductResponse{
		ID:        product.ID.String(),
		Name:      product.Name,
		SKU:       product.SKU,
		Category:  product.Category,
		UnitPrice: product.UnitPrice.StringFixed(2),
		IsActive:  product.IsActive,
		CreatedAt: product.CreatedAt,
	}
}

// Create registers a catalog entry.
func Create(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload CreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), productsvc.UpsertInput{
			Name:      payload.Name,
			SKU:       payload.SKU,
			Category:  payload.Category,
			UnitPrice: payload.UnitPrice,
			IsActive:  payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newProductResponse(product))
	}
}

// Get returns one catalog entry by id.
func Get(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		product, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newProductResponse(product))
	}
}

// List returns the catalog. Inactive entries are included only when
// ?include_inactive=true.
func List(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		includeInactive := r.URL.Query().Get("include_inactive") == "true"

		items, err := svc.List(r.Context(), includeInactive)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]ProductResponse, 0, len(items))
		for i := range items {
			out = append(out, newProductResponse(&items[i]))
		}
		responses.WriteSuccess(w, out)
	}
}
