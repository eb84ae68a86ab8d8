package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/shivaganesh9515/nextgen-organic-backend/api/routes"
	authsvc "github.com/shivaganesh9515/nextgen-organic-backend/internal/auth"
	bulksvc "github.com/shivaganesh9515/nextgen-organic-backend/internal/bulkorders"
	cartsvc "github.com/shivaganesh9515/nextgen-organic-backend/internal/cart"
	catalogsvc "github.com/shivaganesh9515/nextgen-organic-backend/internal/catalog"
	checkoutsvc "github.com/shivaganesh9515/nextgen-organic-backend/internal/checkout"
	couponsvc "github.com/shivaganesh9515/nextgen-organic-backend/internal/coupons"
	"github.com/shivaganesh9515/nextgen-organic-backend/internal/users"
	vendorsvc "github.com/shivaganesh9515/nextgen-organic-backend/internal/vendors"
	wishlistsvc "github.com/shivaganesh9515/nextgen-organic-backend/internal/wishlist"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/config"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/db"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/logger"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/metrics"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/migrate"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	services, err := buildServices(cfg, logg, dbClient, redisClient, httpMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to wire services", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, dbClient, redisClient, httpMetrics, services),
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutdown signal received, draining connections")
		graceCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(graceCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}

// buildServices wires the repositories, datastores, and domain services the
// router depends on.
func buildServices(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, redisClient *redis.Client, httpMetrics *metrics.HTTPMetrics) (routes.Services, error) {
	gormDB := dbClient.DB()

	usersRepo, err := users.NewRepository(gormDB)
	if err != nil {
		return routes.Services{}, err
	}
	catalogRepo, err := catalogsvc.NewRepository(gormDB)
	if err != nil {
		return routes.Services{}, err
	}
	couponsRepo, err := couponsvc.NewRepository(gormDB)
	if err != nil {
		return routes.Services{}, err
	}
	vendorsRepo, err := vendorsvc.NewRepository(gormDB)
	if err != nil {
		return routes.Services{}, err
	}
	wishlistRepo, err := wishlistsvc.NewRepository(gormDB)
	if err != nil {
		return routes.Services{}, err
	}
	bulkRepo, err := bulksvc.NewRepository(gormDB)
	if err != nil {
		return routes.Services{}, err
	}
	ordersRepo, err := checkoutsvc.NewRepository(gormDB)
	if err != nil {
		return routes.Services{}, err
	}

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		Users:    usersRepo,
		JWT:      cfg.JWT,
		Password: cfg.Password,
		Logger:   logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	catalogService, err := catalogsvc.NewService(catalogsvc.ServiceParams{
		Repository: catalogRepo,
		Logger:     logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	couponService, err := couponsvc.NewService(couponsvc.ServiceParams{
		Repository: couponsRepo,
		Logger:     logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	documentStore, err := vendorsvc.NewDiskStore(cfg.Uploads.DocumentDir)
	if err != nil {
		return routes.Services{}, err
	}
	vendorService, err := vendorsvc.NewService(vendorsvc.ServiceParams{
		Repository:       vendorsRepo,
		Documents:        documentStore,
		Tx:               dbClient,
		Logger:           logg,
		MaxDocumentBytes: cfg.Uploads.MaxDocumentBytes(),
	})
	if err != nil {
		return routes.Services{}, err
	}

	cartStore, err := cartsvc.NewStore(cartsvc.StoreParams{
		Client: redisClient,
		Logger: logg,
	})
	if err != nil {
		return routes.Services{}, err
	}
	cartService, err := cartsvc.NewService(cartsvc.ServiceParams{
		Store:                 cartStore,
		Products:              catalogService,
		Vendors:               catalogService,
		Coupons:               couponService,
		Logger:                logg,
		Metrics:               httpMetrics,
		FreeDeliveryThreshold: cfg.Pricing.FreeDeliveryThresholdAmount(),
	})
	if err != nil {
		return routes.Services{}, err
	}

	sessionStore, err := checkoutsvc.NewSessionStore(redisClient, cfg.Checkout.SessionTTL)
	if err != nil {
		return routes.Services{}, err
	}
	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		Sessions:   sessionStore,
		Cart:       cartService,
		Repository: ordersRepo,
		Tx:         dbClient,
		Logger:     logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	wishlistService, err := wishlistsvc.NewService(wishlistsvc.ServiceParams{
		Repository: wishlistRepo,
		Products:   catalogService,
		Logger:     logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	bulkService, err := bulksvc.NewService(bulksvc.ServiceParams{
		Repository: bulkRepo,
		Vendors:    vendorService,
		Logger:     logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Auth:       authService,
		Cart:       cartService,
		Catalog:    catalogService,
		Checkout:   checkoutService,
		Coupons:    couponService,
		Vendors:    vendorService,
		Wishlist:   wishlistService,
		BulkOrders: bulkService,
	}, nil
}
