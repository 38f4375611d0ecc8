// backend-go/cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopsight/backend-go/internal/api"
	"github.com/shopsight/backend-go/internal/cache"
	"github.com/shopsight/backend-go/internal/config"
	"github.com/shopsight/backend-go/internal/repository"
	"github.com/shopsight/backend-go/internal/repository/postgres"
	"github.com/shopsight/backend-go/internal/service"
	"github.com/shopsight/backend-go/internal/snapshot"
	"github.com/shopsight/backend-go/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	viewCache, err := cache.NewInventoryViewCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("view cache unavailable, continuing without it")
		viewCache = cache.NewNoopInventoryViewCache()
	}

	catalogRepo := repository.NewCatalogRepository(db.DB)
	orderRepo := repository.NewOrderRepository(db.DB)
	snapshotRepo := repository.NewSnapshotRepository(db)

	builder := snapshot.NewBuilder(catalogRepo, orderRepo)
	refresher := snapshot.NewRefresher(snapshotRepo, builder,
		time.Duration(cfg.Analytics.SnapshotTTLSeconds)*time.Second,
		time.Duration(cfg.Analytics.RebuildTimeoutSeconds)*time.Second)

	inventoryService := service.NewInventoryService(refresher, builder, catalogRepo, viewCache, cfg.Analytics.DefaultWindowDays)

	router := api.NewRouter(&api.Services{InventoryService: inventoryService}, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
