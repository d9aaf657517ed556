package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/livemart/livemart-backend/api/routes"
	"github.com/livemart/livemart-backend/internal/auth"
	"github.com/livemart/livemart-backend/internal/cart"
	"github.com/livemart/livemart-backend/internal/catalog"
	"github.com/livemart/livemart-backend/internal/dashboard"
	"github.com/livemart/livemart-backend/internal/feedback"
	"github.com/livemart/livemart-backend/internal/notify"
	"github.com/livemart/livemart-backend/internal/orders"
	"github.com/livemart/livemart-backend/internal/payments"
	"github.com/livemart/livemart-backend/internal/shops"
	"github.com/livemart/livemart-backend/internal/users"
	"github.com/livemart/livemart-backend/pkg/config"
	"github.com/livemart/livemart-backend/pkg/db"
	"github.com/livemart/livemart-backend/pkg/logger"
	"github.com/livemart/livemart-backend/pkg/metrics"
	"github.com/livemart/livemart-backend/pkg/migrate"
	"github.com/livemart/livemart-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	// The process starts even with stores unreachable; the readiness probe
	// reports the degraded components instead of crashing here.
	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "database unavailable, starting degraded", err)
		dbClient = nil
	} else {
		defer func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing database", err)
			}
		}()

		if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
			logg.Error(context.Background(), "failed to run dev migrations", err)
			os.Exit(1)
		}
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "redis unavailable, starting degraded", err)
		redisClient = nil
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	}

	var (
		dbPinger         db.Pinger
		authService      auth.Service
		registerService  auth.RegisterService
		catalogService   catalog.Service
		cartService      cart.Service
		orderService     orders.Service
		feedbackService  feedback.Service
		dashboardService dashboard.Service
		shopService      shops.Service
	)
	if dbClient != nil {
		dbPinger = dbClient

		userRepo := users.NewRepository(dbClient.DB())
		catalogRepo := catalog.NewRepository(dbClient.DB())
		cartRepo := cart.NewRepository(dbClient.DB())
		orderRepo := orders.NewRepository(dbClient.DB())
		feedbackRepo := feedback.NewRepository(dbClient.DB())
		otpSender := notify.NewSender(logg)

		authService, err = auth.NewService(auth.ServiceParams{
			UserRepo:  userRepo,
			JWTConfig: cfg.JWT,
		})
		if err != nil {
			fatal(logg, "failed to create auth service", err)
		}

		registerService, err = auth.NewRegisterService(auth.RegisterServiceParams{
			TxRunner:       dbClient,
			OTPSender:      otpSender,
			PasswordConfig: cfg.Password,
			JWTConfig:      cfg.JWT,
		})
		if err != nil {
			fatal(logg, "failed to create register service", err)
		}

		catalogService, err = catalog.NewService(catalog.ServiceParams{
			Repo:    catalogRepo,
			Sellers: userRepo,
		})
		if err != nil {
			fatal(logg, "failed to create catalog service", err)
		}

		cartService, err = cart.NewService(cartRepo)
		if err != nil {
			fatal(logg, "failed to create cart service", err)
		}

		orderService, err = orders.NewService(orders.ServiceParams{
			TxRunner:  dbClient,
			Repo:      orderRepo,
			Processor: payments.NewMockProcessor(logg),
			Notifier:  otpSender,
		})
		if err != nil {
			fatal(logg, "failed to create order service", err)
		}

		feedbackService, err = feedback.NewService(feedback.ServiceParams{
			Repo:    feedbackRepo,
			Users:   userRepo,
			Ratings: catalogRepo,
		})
		if err != nil {
			fatal(logg, "failed to create feedback service", err)
		}

		dashboardService, err = dashboard.NewService(dashboard.ServiceParams{
			Products: catalogRepo,
			Orders:   orderRepo,
		})
		if err != nil {
			fatal(logg, "failed to create dashboard service", err)
		}

		shopService, err = shops.NewService(shops.ServiceParams{
			Sellers:       userRepo,
			DefaultRadius: cfg.Shops.DefaultRadiusKM,
		})
		if err != nil {
			fatal(logg, "failed to create shop service", err)
		}
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"degraded": dbClient == nil || redisClient == nil,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbPinger,
			redisClient,
			httpMetrics,
			registry,
			authService,
			registerService,
			catalogService,
			cartService,
			orderService,
			feedbackService,
			dashboardService,
			shopService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func fatal(logg *logger.Logger, msg string, err error) {
	logg.Error(context.Background(), msg, err)
	os.Exit(1)
}
