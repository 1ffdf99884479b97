// cmd/server/main.go
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

	"github.com/biocom/playauto-go/internal/alert"
	"github.com/biocom/playauto-go/internal/api"
	"github.com/biocom/playauto-go/internal/cache"
	"github.com/biocom/playauto-go/internal/config"
	"github.com/biocom/playauto-go/internal/repository/postgres"
	"github.com/biocom/playauto-go/internal/service"
	"github.com/biocom/playauto-go/internal/store"
	"github.com/biocom/playauto-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize repositories
	shipmentRepo := postgres.NewShipmentRepository(db)
	productRepo := postgres.NewProductRepository(db)
	adjustmentRepo := postgres.NewAdjustmentRepository(db)

	predictionStore := store.New(cfg.Training.ArtifactPath, adjustmentRepo)

	alertCache, err := cache.NewAlertCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("alert cache unavailable, running without cache")
		alertCache = cache.NewNoopAlertCache()
	}

	// Initialize services
	engine := alert.NewEngine(cfg.Alerts)
	alertService := service.NewAlertService(productRepo, predictionStore, engine, alertCache)
	predictionService := service.NewPredictionService(productRepo, predictionStore)
	inventoryService := service.NewInventoryService(productRepo, shipmentRepo, alertCache)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		AlertService:      alertService,
		PredictionService: predictionService,
		InventoryService:  inventoryService,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
