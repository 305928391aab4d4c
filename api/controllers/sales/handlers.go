package sales

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	checkoutctrl "github.com/tillpointhq/tillpoint-backend/api/controllers/checkout"
	"github.com/tillpointhq/tillpoint-backend/api/responses"
	salesvc "github.com/tillpointhq/tillpoint-backend/internal/sales"
	pkgerrors "github.com/tillpointhq/tillpoint-backend/pkg/errors"
	"github.com/tillpointhq/tillpoint-backend/pkg/logger"
)

// Get returns one committed sale with its items and payments.
func Get(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "saleID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sale id"))
			return
		}

		sale, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, checkoutctrl.NewSaleResponse(sale))
	}
}

// List returns committed sales, newest first. Supports customer_id, from, to
// (RFC 3339), limit and offset query filters.
func List(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := listParamsFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]checkoutctrl.SaleResponse, 0, len(items))
		for i := range items {
			out = append(out, checkoutctrl.NewSaleResponse(&items[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

func listParamsFromQuery(r *http.Request) (salesvc.ListParams, error) {
	var params salesvc.ListParams
	query := r.URL.Query()

	if raw := query.Get("customer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return params, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid customer_id filter")
		}
		params.CustomerID = &id
	}
	if raw := query.Get("from"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return params, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid from filter")
		}
		params.From = &ts
	}
	if raw := query.Get("to"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return params, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid to filter")
		}
		params.To = &ts
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return params, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid limit filter")
		}
		params.Limit = limit
	}
	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return params, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid offset filter")
		}
		params.Offset = offset
	}

	return params, nil
}
