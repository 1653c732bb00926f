// Package main provides the entry point for the Relink redirect service.
//
// The service resolves short codes to long URLs and redirects the caller,
// recording click analytics detached from the response path. Link management
// happens out-of-band, directly against storage.
package main

import (
	"Relink-Backend/internal/campaign"
	"Relink-Backend/internal/config"
	"Relink-Backend/internal/database"
	httpHandler "Relink-Backend/internal/handler/http"
	"Relink-Backend/internal/repository/postgres"
	"Relink-Backend/internal/service"
	"Relink-Backend/internal/visitor"
	"Relink-Backend/pkg/geoip"
	"Relink-Backend/pkg/logger"
	"Relink-Backend/pkg/useragent"
	"context"
	"fmt"
	lg "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)
	defer func() {
		if err := log.Sync(); err != nil {
			lg.Printf("ERROR: failed to sync zap logger: %v\n", err)
		}
	}()

	log.Info("starting Relink redirect service", zap.String("env", cfg.Env))

	// Initialize database connection
	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, log); err != nil {
			log.Error("failed to close database connection", zap.Error(err))
		}
	}()

	// Run database migrations if enabled
	if cfg.Database.AutoMigrate {
		log.Info("running database migrations (auto_migrate: true)")
		if err := database.AutoMigrate(db, log); err != nil {
			log.Fatal("failed to run database migrations", zap.Error(err))
		}
	} else {
		log.Info("skipping database migrations (auto_migrate: false)")
	}

	// Bot classifier; falls back to the compiled-in regex set
	classifier, err := useragent.NewClassifier(cfg.Redirect.UARegexesPath, log)
	if err != nil {
		log.Warn("failed to load User-Agent regexes, using compiled-in set", zap.Error(err))
		classifier, _ = useragent.NewClassifier("", log)
	}

	// Country lookup is optional; without a database the cf-ipcountry header
	// is the only geo source
	var geo *geoip.Resolver
	if cfg.Redirect.GeoIPDBPath != "" {
		geo, err = geoip.Open(cfg.Redirect.GeoIPDBPath, log)
		if err != nil {
			log.Warn("failed to open geoip database, country lookups disabled", zap.Error(err))
		} else {
			defer func() {
				if err := geo.Close(); err != nil {
					log.Error("failed to close geoip database", zap.Error(err))
				}
			}()
		}
	}

	// Campaign rule table
	injector, err := campaign.Load(cfg.Redirect.CampaignRulesPath, log)
	if err != nil {
		log.Fatal("failed to load campaign rules", zap.Error(err))
	}

	// Storage, pipeline components, HTTP server
	storage := postgres.New(db, log)
	resolver := service.NewResolver(storage, log)
	recorder := visitor.NewRecorder(storage, classifier, geo, log)

	server := httpHandler.NewServer(storage, resolver, injector, recorder, cfg.Redirect.Homepage, log)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPServer.Port),
		Handler:      server.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("starting HTTP server", zap.String("address", httpServer.Addr))

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down Relink redirect service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown HTTP server", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}
}
