package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/livemart/livemart-backend/api/controllers"
	"github.com/livemart/livemart-backend/api/middleware"
	"github.com/livemart/livemart-backend/internal/auth"
	"github.com/livemart/livemart-backend/internal/cart"
	"github.com/livemart/livemart-backend/internal/catalog"
	"github.com/livemart/livemart-backend/internal/dashboard"
	"github.com/livemart/livemart-backend/internal/feedback"
	"github.com/livemart/livemart-backend/internal/orders"
	"github.com/livemart/livemart-backend/internal/shops"
	"github.com/livemart/livemart-backend/pkg/config"
	"github.com/livemart/livemart-backend/pkg/db"
	"github.com/livemart/livemart-backend/pkg/logger"
	"github.com/livemart/livemart-backend/pkg/metrics"
	"github.com/livemart/livemart-backend/pkg/redis"
)

// NewRouter assembles the full HTTP surface. Auth, catalog reads, health and
// metrics are open; everything else sits behind a bearer token.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	database db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	authService auth.Service,
	registerService auth.RegisterService,
	catalogService catalog.Service,
	cartService cart.Service,
	orderService orders.Service,
	feedbackService feedback.Service,
	dashboardService dashboard.Service,
	shopService shops.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)
	if httpMetrics != nil {
		r.Use(middleware.Metrics(httpMetrics))
	}
	r.Use(middleware.CORS())

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	// A typed nil client must not reach the interface params below.
	var cache db.Pinger
	authLimiter := func(policy middleware.AuthRateLimitPolicy) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler { return next }
	}
	if redisClient != nil {
		cache = redisClient
		authLimiter = func(policy middleware.AuthRateLimitPolicy) func(http.Handler) http.Handler {
			return middleware.AuthRateLimit(policy, redisClient, logg)
		}
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(database, cache, logg))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/auth", func(r chi.Router) {
		r.With(authLimiter(registerPolicy)).Post("/register", controllers.AuthRegister(registerService, logg))
		r.With(authLimiter(loginPolicy)).Post("/login", controllers.AuthLogin(authService, logg))
		r.Post("/verify-otp", controllers.AuthVerifyOTP(authService, logg))
	})

	r.Get("/categories", controllers.ListCategories(catalogService, logg))
	r.Get("/products", controllers.ListProducts(catalogService, logg))
	r.Get("/products/{id}", controllers.GetProduct(catalogService, logg))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Post("/categories", controllers.CreateCategory(catalogService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSeller(logg))
			r.Post("/products", controllers.CreateProduct(catalogService, logg))
			r.Put("/products/{id}", controllers.UpdateProduct(catalogService, logg))
			r.Delete("/products/{id}", controllers.DeleteProduct(catalogService, logg))
		})

		r.Route("/cart/{user_id}", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Post("/", controllers.CartAddItem(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
			r.Put("/{item_id}", controllers.CartUpdateItem(cartService, logg))
			r.Delete("/{item_id}", controllers.CartRemoveItem(cartService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/detail/{id}", controllers.OrderDetail(orderService, logg))
			r.Put("/{id}/status", controllers.OrderUpdateStatus(orderService, logg))
			r.Post("/{user_id}", controllers.OrderCreate(orderService, logg))
			r.Get("/{user_id}", controllers.OrderHistory(orderService, logg))
		})

		r.Route("/feedback", func(r chi.Router) {
			r.Post("/", controllers.FeedbackAdd(feedbackService, logg))
			r.Get("/{product_id}", controllers.FeedbackList(feedbackService, logg))
		})

		r.Get("/shops", controllers.ShopsNearby(shopService, logg))

		r.Route("/dashboard", func(r chi.Router) {
			r.With(middleware.RequireRole("retailer", logg)).Get("/retailer/{user_id}", controllers.SellerDashboard(dashboardService, logg))
			r.With(middleware.RequireRole("wholesaler", logg)).Get("/wholesaler/{user_id}", controllers.SellerDashboard(dashboardService, logg))
		})
	})

	return r
}
