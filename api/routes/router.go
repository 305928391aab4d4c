package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tillpointhq/tillpoint-backend/api/controllers"
	checkoutctrl "github.com/tillpointhq/tillpoint-backend/api/controllers/checkout"
	customerctrl "github.com/tillpointhq/tillpoint-backend/api/controllers/customers"
	productctrl "github.com/tillpointhq/tillpoint-backend/api/controllers/products"
	salectrl "github.com/tillpointhq/tillpoint-backend/api/controllers/sales"
	"github.com/tillpointhq/tillpoint-backend/api/middleware"
	checkoutsvc "github.com/tillpointhq/tillpoint-backend/internal/checkout"
	customersvc "github.com/tillpointhq/tillpoint-backend/internal/customers"
	productsvc "github.com/tillpointhq/tillpoint-backend/internal/products"
	salesvc "github.com/tillpointhq/tillpoint-backend/internal/sales"
	"github.com/tillpointhq/tillpoint-backend/pkg/config"
	"github.com/tillpointhq/tillpoint-backend/pkg/logger"
	pkgredis "github.com/tillpointhq/tillpoint-backend/pkg/redis"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Config    *config.Config
	Logger    *logger.Logger
	Checkout  checkoutsvc.Service
	Products  productsvc.Service
	Customers customersvc.Service
	Sales     salesvc.Service
	Idem      pkgredis.IdempotencyStore
	Probes    map[string]controllers.Pinger
	Registry  *prometheus.Registry
}

// New assembles the HTTP router: health and metrics stay open, everything
// under /api/v1 requires a bearer token.
func New(deps Dependencies) http.Handler {
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(middleware.Recoverer(logg))
	r.Use(middleware.RequestID(logg))
	r.Use(middleware.Logging(logg))
	r.Use(middleware.CORS())

	r.Get("/health/live", controllers.HealthLive())
	r.Get("/health/ready", controllers.HealthReady(logg, deps.Probes))

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(deps.Config.JWT, logg))
		r.Use(middleware.Idempotency(deps.Idem, logg, deps.Config.Sales.IdempotencyTTL))

		r.Post("/cart/quote", checkoutctrl.Quote(deps.Checkout, logg))

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkoutctrl.Open(deps.Checkout, logg))
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", checkoutctrl.GetSession(deps.Checkout, logg))
				r.Delete("/", checkoutctrl.Discard(deps.Checkout, logg))
				r.Post("/tenders", checkoutctrl.AddTender(deps.Checkout, logg))
				r.Post("/finalize", checkoutctrl.Finalize(deps.Checkout, logg))
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", productctrl.Create(deps.Products, logg))
			r.Get("/", productctrl.List(deps.Products, logg))
			r.Get("/{productID}", productctrl.Get(deps.Products, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Post("/", customerctrl.Create(deps.Customers, logg))
			r.Get("/", customerctrl.List(deps.Customers, logg))
			r.Get("/{customerID}", customerctrl.Get(deps.Customers, logg))
		})

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", salectrl.List(deps.Sales, logg))
			r.Get("/{saleID}", salectrl.Get(deps.Sales, logg))
		})
	})

	return r
}
