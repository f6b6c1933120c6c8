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
	"go.uber.org/multierr"

	"github.com/cartwheelhq/shopcarts-backend/api/routes"
	"github.com/cartwheelhq/shopcarts-backend/internal/products"
	"github.com/cartwheelhq/shopcarts-backend/internal/shopcarts"
	"github.com/cartwheelhq/shopcarts-backend/pkg/config"
	"github.com/cartwheelhq/shopcarts-backend/pkg/db"
	"github.com/cartwheelhq/shopcarts-backend/pkg/logger"
	"github.com/cartwheelhq/shopcarts-backend/pkg/metrics"
	"github.com/cartwheelhq/shopcarts-backend/pkg/migrate"
)

const shutdownTimeout = 15 * time.Second

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

	cartRepo := shopcarts.NewRepository(dbClient.DB())
	productRepo := products.NewRepository(dbClient.DB())

	productService, err := products.NewService(products.ServiceParams{
		ProductRepo: productRepo,
		Carts:       cartRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	cartService, err := shopcarts.NewService(shopcarts.ServiceParams{
		CartRepo:    cartRepo,
		ProductRepo: productRepo,
		Tx:          dbClient,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create shopcart service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

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
		Handler: routes.NewRouter(cfg, logg, dbClient, registry, httpMetrics, cartService, productService),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutdown signal received, draining connections")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		if serveResult := <-serveErr; serveResult != nil && !errors.Is(serveResult, http.ErrServerClosed) {
			err = multierr.Append(err, serveResult)
		}
		if err != nil {
			logg.Error(ctx, "api server shutdown finished with errors", err)
			os.Exit(1)
		}
		logg.Info(ctx, "api server stopped")
	}
}
