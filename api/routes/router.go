package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shivaganesh9515/nextgen-organic-backend/api/controllers"
	"github.com/shivaganesh9515/nextgen-organic-backend/api/middleware"
	authsvc "github.com/shivaganesh9515/nextgen-organic-backend/internal/auth"
	bulksvc "github.com/shivaganesh9515/nextgen-organic-backend/internal/bulkorders"
	cartsvc "github.com/shivaganesh9515/nextgen-organic-backend/internal/cart"
	catalogsvc "github.com/shivaganesh9515/nextgen-organic-backend/internal/catalog"
	checkoutsvc "github.com/shivaganesh9515/nextgen-organic-backend/internal/checkout"
	couponsvc "github.com/shivaganesh9515/nextgen-organic-backend/internal/coupons"
	vendorsvc "github.com/shivaganesh9515/nextgen-organic-backend/internal/vendors"
	wishlistsvc "github.com/shivaganesh9515/nextgen-organic-backend/internal/wishlist"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/config"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/db"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/enums"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/logger"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/metrics"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/redis"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Auth       authsvc.Service
	Cart       cartsvc.Service
	Catalog    catalogsvc.Service
	Checkout   checkoutsvc.Service
	Coupons    couponsvc.Service
	Vendors    vendorsvc.Service
	Wishlist   wishlistsvc.Service
	BulkOrders bulksvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	database db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	services Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.RateLimit.LoginWindow,
		cfg.RateLimit.LoginIPLimit,
		cfg.RateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.RateLimit.RegisterWindow,
		cfg.RateLimit.RegisterIPLimit,
		cfg.RateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, database, redisClient))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(
			middleware.AuthRateLimit(registerPolicy, redisClient, logg),
			middleware.Idempotency(redisClient, logg),
		).Post("/register", controllers.AuthRegister(services.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).
			Post("/login", controllers.AuthLogin(services.Auth, logg))
	})

	// Public storefront catalog.
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/products", controllers.ProductList(services.Catalog, logg))
		r.Get("/products/{productId}", controllers.ProductDetail(services.Catalog, logg))
		r.Get("/categories", controllers.CategoryList(services.Catalog, logg))
		r.Get("/vendors", controllers.VendorList(services.Catalog, logg))
		r.Get("/coupons", controllers.CouponList(services.Coupons, logg))
	})

	// Vendor onboarding is open to the public; review is admin-only below.
	r.Route("/api/v1/vendors/applications", func(r chi.Router) {
		r.With(middleware.Idempotency(redisClient, logg)).
			Post("/", controllers.VendorApplicationSubmit(services.Vendors, cfg.Uploads, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Get("/ping", controllers.PrivatePing())
		r.Get("/auth/me", controllers.AuthMe(services.Auth, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(services.Cart, logg))
			r.Post("/items", controllers.CartAddItem(services.Cart, logg))
			r.Patch("/items/{productId}", controllers.CartUpdateItem(services.Cart, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(services.Cart, logg))
			r.Delete("/", controllers.CartClear(services.Cart, logg))
			r.Get("/quote", controllers.CartQuote(services.Cart, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/start", controllers.CheckoutStart(services.Checkout, logg))
			r.Get("/", controllers.CheckoutCurrent(services.Checkout, logg))
			r.Post("/next", controllers.CheckoutNext(services.Checkout, logg))
			r.Post("/back", controllers.CheckoutBack(services.Checkout, logg))
			r.With(middleware.Idempotency(redisClient, logg)).
				Post("/submit", controllers.CheckoutSubmit(services.Checkout, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(services.Checkout, logg))
			r.Get("/{orderId}", controllers.OrderDetail(services.Checkout, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistFetch(services.Wishlist, logg))
			r.Post("/", controllers.WishlistAdd(services.Wishlist, logg))
			r.Delete("/{productId}", controllers.WishlistRemove(services.Wishlist, logg))
		})

		r.Route("/bulk-orders", func(r chi.Router) {
			r.With(middleware.Idempotency(redisClient, logg)).
				Post("/", controllers.BulkOrderCreate(services.BulkOrders, logg))
			r.Get("/", controllers.BulkOrderCustomerList(services.BulkOrders, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireVendorContext(logg))
				r.Get("/assigned", controllers.BulkOrderVendorList(services.BulkOrders, logg))
				r.With(middleware.Idempotency(redisClient, logg)).
					Patch("/{orderId}/respond", controllers.BulkOrderRespond(services.BulkOrders, logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(enums.RoleAdmin, logg))

		r.Get("/ping", controllers.AdminPing())
		r.Route("/applications", func(r chi.Router) {
			r.Get("/", controllers.AdminApplicationList(services.Vendors, logg))
			r.Get("/{applicationId}", controllers.AdminApplicationDetail(services.Vendors, logg))
			r.Post("/{applicationId}/approve", controllers.AdminApplicationApprove(services.Vendors, logg))
			r.Post("/{applicationId}/reject", controllers.AdminApplicationReject(services.Vendors, logg))
		})
	})

	return r
}
