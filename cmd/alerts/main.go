// cmd/alerts/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/biocom/playauto-go/internal/alert"
	"github.com/biocom/playauto-go/internal/cache"
	"github.com/biocom/playauto-go/internal/config"
	"github.com/biocom/playauto-go/internal/repository/postgres"
	"github.com/biocom/playauto-go/internal/service"
	"github.com/biocom/playauto-go/internal/store"
)

// One-shot alert evaluation: reads the current inventory and forecast
// artifact, prints the ranked alerts as JSON, and exits. Meant for cron
// jobs and ad-hoc checks.
func main() {
	_ = godotenv.Load()

	dbURL := flag.String("db-url", os.Getenv("DATABASE_URL"), "Database connection string")
	artifactPath := flag.String("artifact", "", "Forecast artifact path (overrides config)")
	timeout := flag.Duration("timeout", 30*time.Second, "Evaluation timeout")
	flag.Parse()

	if *dbURL == "" {
		log.Fatal("Database URL is required (use -db-url flag or DATABASE_URL)")
	}

	cfg := config.Load()
	if *artifactPath != "" {
		cfg.Training.ArtifactPath = *artifactPath
	}

	rawDB, err := sqlx.Open("pgx", *dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer rawDB.Close()
	if err := rawDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	db := postgres.Wrap(rawDB)

	productRepo := postgres.NewProductRepository(db)
	adjustmentRepo := postgres.NewAdjustmentRepository(db)
	predictionStore := store.New(cfg.Training.ArtifactPath, adjustmentRepo)

	alertService := service.NewAlertService(
		productRepo,
		predictionStore,
		alert.NewEngine(cfg.Alerts),
		cache.NewNoopAlertCache(),
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	start := time.Now()
	alerts, err := alertService.Evaluate(ctx)
	if err != nil {
		log.Fatalf("Alert evaluation failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(alerts); err != nil {
		log.Fatalf("Failed to encode alerts: %v", err)
	}

	log.Printf("Evaluated %d alerts in %v", len(alerts), time.Since(start))
}
