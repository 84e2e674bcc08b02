package main

import (
	"context"
	"log"

	_ "github.com/ridwanfathin/invoice-purchase-service/docs"
	"github.com/ridwanfathin/invoice-purchase-service/internal/config"
	"github.com/ridwanfathin/invoice-purchase-service/internal/database"
	"github.com/ridwanfathin/invoice-purchase-service/internal/handler"
	"github.com/ridwanfathin/invoice-purchase-service/internal/logger"
	"github.com/ridwanfathin/invoice-purchase-service/internal/repository"
	"github.com/ridwanfathin/invoice-purchase-service/internal/server"
	"github.com/ridwanfathin/invoice-purchase-service/internal/service"
	"github.com/ridwanfathin/invoice-purchase-service/internal/tracing"
)

// @title Invoice Purchase Service API
// @version 1.0
// @description Registers purchases as invoices with line items and serves invoice queries.
// @BasePath /
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.NewLogger(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	ctx := context.Background()

	shutdownTracer, err := tracing.Init(ctx, tracing.Options{
		Enabled:     cfg.OTelEnabled,
		Endpoint:    cfg.OTelEndpoint,
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		appLogger.Fatalw("failed to initialize tracing", "error", err)
	}

	appLogger.Info("connecting to database")
	db, err := database.NewPostgresDB(ctx, database.Options{
		URL:               cfg.DatabaseURL,
		MaxConns:          int32(cfg.DBMaxConns),
		MinConns:          int32(cfg.DBMinConns),
		MaxConnLifetime:   cfg.DBMaxConnLifetime,
		HealthCheckPeriod: cfg.DBHealthCheckEvery,
	}, appLogger)
	if err != nil {
		appLogger.Fatalw("failed to connect to database", "error", err)
	}

	invoiceRepo := repository.NewPostgresInvoiceRepository(db)
	allocator := repository.NewPostgresSequenceAllocator(db, cfg.InvoiceSequence)

	purchaseService := service.NewPurchaseService(allocator, invoiceRepo, db, appLogger,
		service.WithSeries(cfg.InvoiceSeries))
	queryService := service.NewInvoiceQueryService(invoiceRepo)

	invoiceHandler := handler.NewInvoiceHandler(purchaseService, queryService, appLogger)

	appServer := server.NewServer(cfg, invoiceHandler, db, appLogger)
	appServer.OnShutdown(func(ctx context.Context) error { return shutdownTracer(ctx) })
	appServer.OnShutdown(func(context.Context) error {
		db.Close()
		return nil
	})

	appLogger.Infow("starting server",
		"port", cfg.Port,
		"series", cfg.InvoiceSeries,
		"sequence", cfg.InvoiceSequence,
		"tracing", cfg.OTelEnabled,
	)
	if err := appServer.Start(); err != nil {
		appLogger.Fatalw("server error", "error", err)
	}

	appLogger.Info("server shutdown complete")
}
