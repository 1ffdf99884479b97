// cmd/train/main.go
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/biocom/playauto-go/internal/config"
	"github.com/biocom/playauto-go/internal/forecast"
	"github.com/biocom/playauto-go/internal/repository/postgres"
	"github.com/biocom/playauto-go/internal/storage"
	"github.com/biocom/playauto-go/internal/store"
	"github.com/biocom/playauto-go/pkg/logger"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newArtifactFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "artifact",
		Usage: "Forecast artifact path (overrides config)",
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "train",
		Usage: "Manage the forecast artifact",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run one batch training pass over the shipment history",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newArtifactFlag(),
					&cli.IntFlag{
						Name:  "horizon",
						Usage: "Forecast horizon in months (overrides config)",
					},
				},
				Action: runTraining,
			},
			{
				Name:  "restore",
				Usage: "Restore a forecast artifact from object storage",
				Flags: []cli.Flag{
					newArtifactFlag(),
					&cli.StringFlag{
						Name:  "key",
						Usage: "Backup object key (defaults to the newest backup)",
					},
				},
				Action: runRestore,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runTraining(c *cli.Context) error {
	cfg := config.Load()
	logger.SetLevel(cfg.Server.Mode)

	if h := c.Int("horizon"); h > 0 {
		cfg.Training.HorizonMonths = h
	}
	if p := c.String("artifact"); p != "" {
		cfg.Training.ArtifactPath = p
	}

	rawDB, err := sqlx.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer rawDB.Close()
	if err := rawDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	db := postgres.Wrap(rawDB)

	profiles, err := forecast.LoadProfiles(cfg.Training.SeasonalProfilePath)
	if err != nil {
		return fmt.Errorf("failed to load seasonal profiles: %w", err)
	}

	policy := &forecast.Policy{
		MinFitLength:    cfg.Training.MinFitLength,
		RecentWindow:    cfg.Training.RecentWindow,
		NaiveGrowthRate: cfg.Training.NaiveGrowthRate,
		Profiles:        profiles,
	}

	shipmentRepo := postgres.NewShipmentRepository(db)
	productRepo := postgres.NewProductRepository(db)
	adjustmentRepo := postgres.NewAdjustmentRepository(db)
	predictionStore := store.New(cfg.Training.ArtifactPath, adjustmentRepo)

	trainer := forecast.NewTrainer(
		shipmentRepo,
		productRepo,
		forecast.NewSelector(policy),
		predictionStore,
		cfg.Training,
	)

	if cfg.Storage.Enabled {
		objects, err := storage.NewMinioClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to initialize object storage: %w", err)
		}
		trainer.WithObjectStorage(objects, cfg.Storage.KeyPrefix)
	}

	// Cancel between SKUs on SIGINT/SIGTERM; re-running is idempotent.
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	artifact, err := trainer.Run(ctx)
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	fmt.Printf("trained %d SKUs (%d skipped), artifact written to %s\n",
		len(artifact.Forecasts), len(artifact.Skipped), cfg.Training.ArtifactPath)
	return nil
}

func runRestore(c *cli.Context) error {
	cfg := config.Load()
	logger.SetLevel(cfg.Server.Mode)

	if p := c.String("artifact"); p != "" {
		cfg.Training.ArtifactPath = p
	}
	if !cfg.Storage.Enabled {
		return errors.New("object storage is not enabled (set STORAGE_ENABLED)")
	}

	objects, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize object storage: %w", err)
	}

	key := c.String("key")
	if key == "" {
		infos, err := objects.ListObjects(c.Context, cfg.Storage.KeyPrefix)
		if err != nil {
			return fmt.Errorf("failed to list backups: %w", err)
		}
		key, err = latestBackupKey(infos)
		if err != nil {
			return err
		}
	}

	if err := objects.DownloadObject(c.Context, key, cfg.Training.ArtifactPath); err != nil {
		return fmt.Errorf("failed to restore artifact: %w", err)
	}

	fmt.Printf("restored %s to %s\n", key, cfg.Training.ArtifactPath)
	return nil
}

// latestBackupKey picks the newest backup. Keys embed the training
// timestamp, so lexicographic order is chronological order.
func latestBackupKey(infos []storage.ObjectInfo) (string, error) {
	if len(infos) == 0 {
		return "", errors.New("no backups found in object storage")
	}
	keys := make([]string, len(infos))
	for i, info := range infos {
		keys[i] = info.Key
	}
	sort.Strings(keys)
	return keys[len(keys)-1], nil
}
