package main

import (
	"context"
	"os"

	"github.com/arvoredo/arvoredo-pos/internal/catalog"
	"github.com/arvoredo/arvoredo-pos/internal/customers"
	"github.com/arvoredo/arvoredo-pos/internal/orders"
	"github.com/arvoredo/arvoredo-pos/internal/tui"
	"github.com/arvoredo/arvoredo-pos/pkg/config"
	"github.com/arvoredo/arvoredo-pos/pkg/db"
	"github.com/arvoredo/arvoredo-pos/pkg/logger"
	"github.com/arvoredo/arvoredo-pos/pkg/migrate"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "pos"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "pos",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := logg.WithSessionID(context.Background(), uuid.NewString())

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to open store", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRun(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to prepare store schema", err)
		_ = dbClient.Close()
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}

	customerService, err := customers.NewService(customers.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(ctx, "failed to create customer service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orders.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(ctx, "failed to create order service", err)
		os.Exit(1)
	}

	logg.Info(logg.WithField(ctx, "env", cfg.App.Env), "starting shell")

	runErr := tui.Run(tui.Services{
		Catalog:   catalogService,
		Customers: customerService,
		Orders:    orderService,
		Logger:    logg,
	})

	shutdownErr := multierr.Append(runErr, dbClient.Close())
	if shutdownErr != nil {
		logg.Error(ctx, "shell exited with errors", shutdownErr)
		os.Exit(1)
	}

	logg.Info(ctx, "shell exited")
}
