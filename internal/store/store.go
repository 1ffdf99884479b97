// internal/store/store.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/biocom/playauto-go/internal/domain"
	"github.com/biocom/playauto-go/internal/repository"
)

// ErrNotFound is returned by LoadArtifact when training has never run.
// Callers must treat it as "forecasts unavailable", not as a failure.
var ErrNotFound = errors.New("forecast artifact not found")

// PredictionStore persists the training output and the manual override log.
type PredictionStore interface {
	// SaveArtifact replaces the whole stored artifact atomically.
	SaveArtifact(ctx context.Context, artifact *domain.ForecastArtifact) error
	// LoadArtifact returns the current artifact or ErrNotFound.
	LoadArtifact(ctx context.Context) (*domain.ForecastArtifact, error)
	SaveAdjustment(ctx context.Context, adj domain.ManualAdjustment) error
	LatestAdjustment(ctx context.Context, sku string) (*domain.ManualAdjustment, error)
}

// Store keeps the forecast artifact as a single JSON document on disk and
// delegates the adjustment log to a repository. Artifact replacement uses
// write-then-rename so concurrent loads see the old or the new document,
// never a partial one.
type Store struct {
	path        string
	adjustments repository.AdjustmentRepository
}

func New(artifactPath string, adjustments repository.AdjustmentRepository) *Store {
	return &Store{path: artifactPath, adjustments: adjustments}
}

func (s *Store) SaveArtifact(ctx context.Context, artifact *domain.ForecastArtifact) error {
	if artifact == nil {
		return errors.New("nil artifact")
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("encode forecast artifact: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".forecasts-*.json")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp artifact: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace artifact: %w", err)
	}
	return nil
}

func (s *Store) LoadArtifact(ctx context.Context) (*domain.ForecastArtifact, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read forecast artifact: %w", err)
	}

	var artifact domain.ForecastArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("decode forecast artifact: %w", err)
	}

	normalize(&artifact)
	return &artifact, nil
}

func (s *Store) SaveAdjustment(ctx context.Context, adj domain.ManualAdjustment) error {
	if s.adjustments == nil {
		return errors.New("adjustment repository not configured")
	}
	if adj.EditedAt.IsZero() {
		adj.EditedAt = time.Now()
	}
	return s.adjustments.Append(ctx, adj)
}

func (s *Store) LatestAdjustment(ctx context.Context, sku string) (*domain.ManualAdjustment, error) {
	if s.adjustments == nil {
		return nil, nil
	}
	return s.adjustments.Latest(ctx, sku)
}

// normalize resolves the tagged forecast variants once at load time: legacy
// entries carry one value per forward day, which get summed into 30-day
// buckets so every caller sees monthly values.
func normalize(artifact *domain.ForecastArtifact) {
	for sku, fc := range artifact.Forecasts {
		if fc.Kind != domain.ForecastKindLegacy {
			continue
		}
		fc.Values = dailyToMonthly(fc.Values)
		for name, values := range fc.Models {
			fc.Models[name] = dailyToMonthly(values)
		}
		fc.Kind = domain.ForecastKindMonthly
		artifact.Forecasts[sku] = fc
	}
}

func dailyToMonthly(daily []float64) []float64 {
	if len(daily) == 0 {
		return nil
	}
	monthly := make([]float64, 0, (len(daily)+29)/30)
	for start := 0; start < len(daily); start += 30 {
		end := start + 30
		if end > len(daily) {
			end = len(daily)
		}
		var sum float64
		for _, v := range daily[start:end] {
			sum += v
		}
		monthly = append(monthly, sum)
	}
	return monthly
}
