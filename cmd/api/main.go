package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/udyoglabs/dukaan-backend/api/routes"
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
	"github.com/udyoglabs/dukaan-backend/pkg/metrics"
	"github.com/udyoglabs/dukaan-backend/pkg/migrate"
	"github.com/udyoglabs/dukaan-backend/pkg/redis"
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

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
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

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, caching and rate limiting disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	orderMetrics := metrics.NewOrderMetrics(registry)

	svcs, err := buildServices(cfg, logg, dbClient, redisClient, orderMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to build services", err)
		os.Exit(1)
	}

	if err := svcs.Auth.EnsureDefaultOperator(
		context.Background(),
		cfg.Bootstrap.OperatorUsername,
		cfg.Bootstrap.OperatorPassword,
	); err != nil {
		logg.Error(context.Background(), "failed to seed bootstrap operator", err)
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
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, registry, svcs),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-shutdownCtx.Done()
		logg.Info(ctx, "shutting down api server")
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			logg.Error(ctx, "error during shutdown", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func buildServices(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	redisClient *redis.Client,
	orderMetrics *metrics.OrderMetrics,
) (routes.Services, error) {
	conn := dbClient.DB()

	catalogRepo := catalog.NewRepository(conn)
	vendorRepo := vendors.NewRepository(conn)
	requestRepo := requests.NewRepository(conn)
	cartRepo := cart.NewRepository(conn)
	orderRepo := orders.NewRepository(conn)
	operatorRepo := authsvc.NewRepository(conn)

	authService, err := authsvc.NewService(operatorRepo, cfg.JWT, cfg.Password, logg)
	if err != nil {
		return routes.Services{}, err
	}
	catalogService, err := catalog.NewService(catalogRepo, logg)
	if err != nil {
		return routes.Services{}, err
	}
	vendorService, err := vendors.NewService(vendorRepo, logg)
	if err != nil {
		return routes.Services{}, err
	}
	requestService, err := requests.NewService(requestRepo, catalogRepo, vendorRepo, dbClient, logg)
	if err != nil {
		return routes.Services{}, err
	}
	cartService, err := cart.NewService(cartRepo, catalogRepo, logg)
	if err != nil {
		return routes.Services{}, err
	}
	orderService, err := orders.NewService(orderRepo, cartService, cartRepo, catalogRepo, dbClient, orderMetrics, logg)
	if err != nil {
		return routes.Services{}, err
	}
	fetcher := invoice.NewFetcher(cfg.Invoice, orderMetrics, logg)
	invoiceService, err := invoice.NewService(orderRepo, fetcher, redisClient, cfg.Invoice, orderMetrics, logg)
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Auth:     authService,
		Catalog:  catalogService,
		Vendors:  vendorService,
		Requests: requestService,
		Cart:     cartService,
		Orders:   orderService,
		Invoice:  invoiceService,
	}, nil
}
