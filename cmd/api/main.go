package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spendlens/spendlens-backend/internal/api"
	"github.com/spendlens/spendlens-backend/internal/application/service"
	"github.com/spendlens/spendlens-backend/internal/domain/ledger"
	"github.com/spendlens/spendlens-backend/internal/infrastructure/config"
	"github.com/spendlens/spendlens-backend/internal/infrastructure/logging"
	"github.com/spendlens/spendlens-backend/internal/infrastructure/rates"
	"github.com/spendlens/spendlens-backend/internal/infrastructure/storage"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config", "config.yaml", "Configuration file path")
	flag.Parse()

	cfg := config.LoadOrEnvWithPath(configFile)
	logger := logging.NewLogger(cfg.Observability.Logging)

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	converter := newConverter(cfg)
	prefs := ledger.Preferences{
		IncludeInvestmentsInReports: cfg.Preferences.IncludeInvestmentsInReports,
		DefaultCurrency:             cfg.Currency.DefaultCurrency,
	}
	insights := service.NewInsightsService(store, converter, prefs, logger)

	server := api.NewServer(api.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Currency:       cfg.Currency.DefaultCurrency,
	}, store, insights, logger)

	// Run the server until interrupted, then drain in-flight requests.
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown failed", "error", err)
			os.Exit(1)
		}
	}
}

func newConverter(cfg *config.Config) service.Converter {
	if cfg.Currency.RatesURL != "" {
		source := rates.NewHTTPRateSource(cfg.Currency.RatesURL)
		ttl := time.Duration(cfg.Currency.RatesTTLMinutes) * time.Minute
		return rates.NewCachingConverter(cfg.Currency.DefaultCurrency, source, ttl)
	}
	return rates.NewStaticConverter(cfg.Currency.DefaultCurrency, cfg.Currency.StaticRates)
}
