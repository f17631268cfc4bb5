package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/udyoglabs/dukaan-backend/api/controllers"
	"github.com/udyoglabs/dukaan-backend/api/middleware"
	authsvc "github.com/udyoglabs/dukaan-backend/internal/auth"
	"github.com/udyoglabs/dukaan-backend/internal/cart"
	"github.com/udyoglabs/dukaan-backend/internal/catalog"
	"github.com/udyoglabs/dukaan-backend/internal/invoice"
	"github.com/udyoglabs/dukaan-backend/internal/orders"
	"github.com/udyoglabs/dukaan-backend/internal/requests"
	"github.com/udyoglabs/dukaan-backend/internal/vendors"
	"github.com/udyoglabs/dukaan-backend/pkg/config"
	"github.com/udyoglabs/dukaan-backend/pkg/db"
	"github.com/udyoglabs/dukaan-backend/pkg/logger"
	"github.com/udyoglabs/dukaan-backend/pkg/redis"
)

// Services bundles the domain services the router exposes.
type Services struct {
	Auth     authsvc.Service
	Catalog  catalog.Service
	Vendors  vendors.Service
	Requests requests.Service
	Cart     cart.Service
	Orders   orders.Service
	Invoice  invoice.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUserLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(svcs.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(svcs.Catalog, logg))
			r.Post("/", controllers.CreateProduct(svcs.Catalog, logg))
			r.Get("/low-stock", controllers.ListLowStock(svcs.Catalog, logg))
			r.Get("/{productId}", controllers.GetProduct(svcs.Catalog, logg))
			r.Patch("/{productId}", controllers.UpdateProduct(svcs.Catalog, logg))
			r.Delete("/{productId}", controllers.DeleteProduct(svcs.Catalog, logg))
			r.Post("/{productId}/stock", controllers.AdjustStock(svcs.Catalog, logg))
		})

		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", controllers.ListVendors(svcs.Vendors, logg))
			r.Post("/", controllers.CreateVendor(svcs.Vendors, logg))
			r.Get("/{vendorId}", controllers.GetVendor(svcs.Vendors, logg))
			r.Patch("/{vendorId}", controllers.UpdateVendor(svcs.Vendors, logg))
			r.Post("/{vendorId}/deactivate", controllers.DeactivateVendor(svcs.Vendors, logg))
		})

		r.Route("/supply-requests", func(r chi.Router) {
			r.Get("/", controllers.ListSupplyRequests(svcs.Requests, logg))
			r.Post("/", controllers.CreateSupplyRequest(svcs.Requests, logg))
			r.Get("/{requestId}", controllers.GetSupplyRequest(svcs.Requests, logg))
			r.Post("/{requestId}/status", controllers.UpdateSupplyRequestStatus(svcs.Requests, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(svcs.Cart, logg))
			r.Delete("/", controllers.CartClear(svcs.Cart, logg))
			r.Post("/items", controllers.CartAddItem(svcs.Cart, logg))
			r.Patch("/items/{productId}", controllers.CartUpdateItem(svcs.Cart, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(svcs.Cart, logg))
			r.Put("/customer", controllers.CartSetCustomer(svcs.Cart, logg))
			r.Put("/discount", controllers.CartSetDiscount(svcs.Cart, logg))
			r.Get("/quote", controllers.CartQuote(svcs.Cart, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(svcs.Orders, logg))
			r.Post("/", controllers.CommitOrder(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.GetOrder(svcs.Orders, logg))
			r.Get("/{orderId}/invoice", controllers.GetInvoice(svcs.Invoice, logg))
		})
	})

	return r
}
