// Package server is the composition root: it loads config, connects the
// backing services, wires repositories → services → controllers → routes,
// and runs the HTTP and gRPC listeners until a shutdown signal.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aureajoias/aurea/app/controllers"
	"github.com/aureajoias/aurea/app/graphql"
	"github.com/aureajoias/aurea/app/repositories"
	"github.com/aureajoias/aurea/app/routes"
	"github.com/aureajoias/aurea/app/services"
	"github.com/aureajoias/aurea/config"
	"github.com/aureajoias/aurea/pkg/cache"
	"github.com/aureajoias/aurea/pkg/database"
	"github.com/aureajoias/aurea/pkg/event"
	"github.com/aureajoias/aurea/pkg/grpcserver"
	"github.com/aureajoias/aurea/pkg/logger"
	"github.com/aureajoias/aurea/pkg/migration"
	"github.com/aureajoias/aurea/pkg/router"
	"github.com/aureajoias/aurea/pkg/storage"
	"github.com/aureajoias/aurea/pkg/workerpool"
	"github.com/aureajoias/aurea/pkg/ws"
)

// bulkWorkers bounds concurrent image uploads across all bulk batches.
const bulkWorkers = 8

func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	// Optional Mongo log sink alongside stdout.
	var mongoSink *logger.MongoHandler
	if uri := config.Get("MONGO_LOG_URI", ""); uri != "" {
		handler, err := logger.NewMongoHandler(uri, config.Get("MONGO_LOG_DB", "aurea"), "logs")
		if err != nil {
			logger.Warn("mongo log sink unavailable", "error", err)
		} else {
			mongoSink = handler
			logger.AttachSink(handler)
		}
	}
	if mongoSink != nil {
		defer mongoSink.Close()
	}

	if err := database.Connect(); err != nil {
		return err
	}

	if err := migration.New(database.DB).Run(); err != nil {
		return err
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("cache unavailable, catalog reads go straight to the database", "error", err)
	}

	storage.Connect()

	bus := event.NewBus()

	hub := ws.NewHub()
	go hub.Run()

	pool := workerpool.New(bulkWorkers)
	defer pool.Shutdown()

	session := services.NewSessionController(database.DB, bus, logger.L)
	defer session.Close()
	session.Bootstrap(config.Get("BOOT_SESSION_TOKEN", ""))

	products := repositories.NewProductRepository(database.DB)
	categories := repositories.NewCategoryRepository(database.DB)
	profiles := repositories.NewProfileRepository(database.DB)

	creator := services.NewBulkCreator(database.DB, storage.Default(), pool, hub, logger.L)

	schema, err := graphql.NewSchema(products, categories)
	if err != nil {
		return fmt.Errorf("graphql schema: %w", err)
	}

	r := router.New()
	routes.RegisterAPI(r, routes.Deps{
		Auth:       controllers.NewAuthController(session, profiles),
		Products:   controllers.NewProductController(products),
		Categories: controllers.NewCategoryController(categories, products),
		Bulk:       controllers.NewBulkController(creator),
		Schema:     schema,
		Hub:        hub,
	})

	grpcSrv, _, err := grpcserver.Start(config.GRPCPort())
	if err != nil {
		return err
	}
	defer grpcserver.Stop(grpcSrv)

	addr := ":" + config.AppPort()
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", addr, "env", config.AppEnv())
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpSrv.Shutdown(ctx)
}
