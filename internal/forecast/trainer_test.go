package forecast

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biocom/playauto-go/internal/config"
	"github.com/biocom/playauto-go/internal/domain"
	"github.com/biocom/playauto-go/internal/store"
)

type stubShipments struct {
	events []domain.ShipmentEvent
}

func (s *stubShipments) ListOutbound(ctx context.Context, skus ...string) ([]domain.ShipmentEvent, error) {
	return s.events, nil
}

func (s *stubShipments) Append(ctx context.Context, ev domain.ShipmentEvent) error {
	s.events = append(s.events, ev)
	return nil
}

type stubProducts struct {
	products []domain.Product
}

func (s *stubProducts) List(ctx context.Context) ([]domain.Product, error) {
	return s.products, nil
}

func (s *stubProducts) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return nil, nil
}

func (s *stubProducts) ProcessInbound(ctx context.Context, sku string, quantity int) error { return nil }
func (s *stubProducts) ProcessOutbound(ctx context.Context, sku string, quantity int) error {
	return nil
}
func (s *stubProducts) AdjustStock(ctx context.Context, sku string, newLevel int) error { return nil }

func trainingEvents(sku string, months int) []domain.ShipmentEvent {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	events := make([]domain.ShipmentEvent, 0, months)
	for i := 0; i < months; i++ {
		events = append(events, domain.ShipmentEvent{
			SKU:        sku,
			Quantity:   100 + 10*(i%12),
			Direction:  domain.DirectionOutbound,
			OccurredAt: start.AddDate(0, i, 15),
		})
	}
	return events
}

func TestTrainerRun(t *testing.T) {
	events := append(trainingEvents("SKU-A", 24), trainingEvents("SKU-B", 24)...)

	cfg := config.TrainingConfig{
		HorizonMonths:   3,
		MinFitLength:    4,
		RecentWindow:    3,
		NaiveGrowthRate: 0.05,
		WorkerCount:     2,
	}

	st := store.New(filepath.Join(t.TempDir(), "forecasts.json"), nil)
	trainer := NewTrainer(
		&stubShipments{events: events},
		&stubProducts{products: []domain.Product{
			{SKU: "SKU-A"},
			{SKU: "SKU-B"},
			{SKU: "NO-HISTORY"},
		}},
		NewSelector(&Policy{
			MinFitLength:    cfg.MinFitLength,
			RecentWindow:    cfg.RecentWindow,
			NaiveGrowthRate: cfg.NaiveGrowthRate,
			Profiles:        SeasonalProfiles{},
		}),
		st,
		cfg,
	)

	artifact, err := trainer.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.ArtifactVersion, artifact.Version)
	assert.Equal(t, 3, artifact.Horizon)
	assert.False(t, artifact.TrainedAt.IsZero())
	assert.Len(t, artifact.Forecasts, 2)
	assert.Equal(t, []string{"NO-HISTORY"}, artifact.Skipped)

	for sku, fc := range artifact.Forecasts {
		assert.Len(t, fc.Values, 3, sku)
		for _, v := range fc.Values {
			assert.GreaterOrEqual(t, v, 0.0)
		}
	}

	// The artifact must have been persisted, not just returned.
	loaded, err := st.LoadArtifact(context.Background())
	require.NoError(t, err)
	assert.Equal(t, artifact.Forecasts["SKU-A"].Values, loaded.Forecasts["SKU-A"].Values)
}

func TestTrainerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st := store.New(filepath.Join(t.TempDir(), "forecasts.json"), nil)
	trainer := NewTrainer(
		&stubShipments{events: trainingEvents("SKU-A", 24)},
		nil,
		NewSelector(&Policy{MinFitLength: 4, RecentWindow: 3, NaiveGrowthRate: 0.05}),
		st,
		config.TrainingConfig{HorizonMonths: 3, WorkerCount: 2},
	)

	_, err := trainer.Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
