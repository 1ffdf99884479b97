// internal/forecast/trainer.go
package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/biocom/playauto-go/internal/config"
	"github.com/biocom/playauto-go/internal/domain"
	"github.com/biocom/playauto-go/internal/repository"
	"github.com/biocom/playauto-go/internal/series"
	"github.com/biocom/playauto-go/internal/storage"
	"github.com/biocom/playauto-go/internal/store"
)

// Trainer runs the full batch training pipeline: read the shipment log,
// build per-SKU series, select a model per SKU, and replace the stored
// artifact. SKUs are independent, so they train concurrently.
type Trainer struct {
	shipments repository.ShipmentRepository
	products  repository.ProductRepository
	selector  *Selector
	store     store.PredictionStore
	objects   storage.ObjectStorage
	cfg       config.TrainingConfig
	keyPrefix string
}

func NewTrainer(
	shipments repository.ShipmentRepository,
	products repository.ProductRepository,
	selector *Selector,
	st store.PredictionStore,
	cfg config.TrainingConfig,
) *Trainer {
	return &Trainer{
		shipments: shipments,
		products:  products,
		selector:  selector,
		store:     st,
		cfg:       cfg,
	}
}

// WithObjectStorage enables uploading a copy of each artifact after the
// local save. Upload failures are logged but never fail the run.
func (t *Trainer) WithObjectStorage(objects storage.ObjectStorage, keyPrefix string) *Trainer {
	t.objects = objects
	t.keyPrefix = keyPrefix
	return t
}

// Run executes one training pass and returns the saved artifact.
func (t *Trainer) Run(ctx context.Context) (*domain.ForecastArtifact, error) {
	start := time.Now()

	events, err := t.shipments.ListOutbound(ctx)
	if err != nil {
		return nil, fmt.Errorf("load shipment history: %w", err)
	}

	builder := series.NewBuilder(series.Monthly)
	bySKU := builder.BuildAll(events)

	artifact := &domain.ForecastArtifact{
		Version:   domain.ArtifactVersion,
		TrainedAt: start.UTC(),
		Horizon:   t.cfg.HorizonMonths,
		Forecasts: make(map[string]domain.SKUForecast, len(bySKU)),
	}

	// Products without a single outbound event cannot be forecast; record
	// them so downstream consumers can tell "never trained" from "no demand".
	if t.products != nil {
		products, err := t.products.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("load product catalog: %w", err)
		}
		for _, p := range products {
			if _, ok := bySKU[p.SKU]; !ok {
				artifact.Skipped = append(artifact.Skipped, p.SKU)
			}
		}
		sort.Strings(artifact.Skipped)
	}

	workers := t.cfg.WorkerCount
	if workers < 1 {
		workers = 1
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, sku := range series.SKUs(bySKU) {
		if err := gctx.Err(); err != nil {
			break
		}
		sku := sku
		ser := bySKU[sku]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fc := t.selector.Select(sku, ser, t.cfg.HorizonMonths, builder.Granularity())
			mu.Lock()
			artifact.Forecasts[sku] = fc
			mu.Unlock()
			log.Debug().
				Str("sku", sku).
				Str("best_model", fc.BestModel).
				Int("history_periods", len(ser)).
				Msg("trained forecast")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("training interrupted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("training interrupted: %w", err)
	}

	if err := t.store.SaveArtifact(ctx, artifact); err != nil {
		return nil, fmt.Errorf("persist forecast artifact: %w", err)
	}

	t.uploadBackup(ctx, artifact)

	log.Info().
		Int("forecasted", len(artifact.Forecasts)).
		Int("skipped", len(artifact.Skipped)).
		Dur("elapsed", time.Since(start)).
		Msg("training run complete")

	return artifact, nil
}

func (t *Trainer) uploadBackup(ctx context.Context, artifact *domain.ForecastArtifact) {
	if t.objects == nil {
		return
	}

	data, err := json.Marshal(artifact)
	if err != nil {
		log.Warn().Err(err).Msg("encode artifact for backup failed")
		return
	}

	key := fmt.Sprintf("%s/forecasts-%s.json", t.keyPrefix, artifact.TrainedAt.Format("20060102T150405Z"))
	if err := t.objects.UploadObject(ctx, key, data); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("artifact backup upload failed")
		return
	}
	log.Info().Str("key", key).Msg("artifact backup uploaded")
}
