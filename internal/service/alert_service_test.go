package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biocom/playauto-go/internal/alert"
	"github.com/biocom/playauto-go/internal/cache"
	"github.com/biocom/playauto-go/internal/config"
	"github.com/biocom/playauto-go/internal/domain"
	"github.com/biocom/playauto-go/internal/store"
)

var errUnknownSKU = errors.New("unknown sku")

type stubProducts struct {
	products []domain.Product
}

func (s *stubProducts) List(ctx context.Context) ([]domain.Product, error) {
	return s.products, nil
}

func (s *stubProducts) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	for i := range s.products {
		if s.products[i].SKU == sku {
			return &s.products[i], nil
		}
	}
	return nil, errUnknownSKU
}

func (s *stubProducts) ProcessInbound(ctx context.Context, sku string, quantity int) error { return nil }
func (s *stubProducts) ProcessOutbound(ctx context.Context, sku string, quantity int) error {
	return nil
}
func (s *stubProducts) AdjustStock(ctx context.Context, sku string, newLevel int) error { return nil }

type stubStore struct {
	artifact    *domain.ForecastArtifact
	adjustments map[string]*domain.ManualAdjustment
}

func (s *stubStore) SaveArtifact(ctx context.Context, artifact *domain.ForecastArtifact) error {
	s.artifact = artifact
	return nil
}

func (s *stubStore) LoadArtifact(ctx context.Context) (*domain.ForecastArtifact, error) {
	if s.artifact == nil {
		return nil, store.ErrNotFound
	}
	return s.artifact, nil
}

func (s *stubStore) SaveAdjustment(ctx context.Context, adj domain.ManualAdjustment) error {
	if s.adjustments == nil {
		s.adjustments = make(map[string]*domain.ManualAdjustment)
	}
	s.adjustments[adj.SKU] = &adj
	return nil
}

func (s *stubStore) LatestAdjustment(ctx context.Context, sku string) (*domain.ManualAdjustment, error) {
	return s.adjustments[sku], nil
}

func intPtr(v int) *int { return &v }

func newTestAlertService(products []domain.Product, artifact *domain.ForecastArtifact) *AlertService {
	engine := alert.NewEngine(config.AlertConfig{
		ExpiryThresholdDays:  21,
		ReorderWarningDays:   10.0,
		OverstockExcessRatio: 0.15,
		LongLeadTimeBuffer:   1.2,
	})
	return NewAlertService(
		&stubProducts{products: products},
		&stubStore{artifact: artifact},
		engine,
		cache.NewNoopAlertCache(),
	)
}

func TestEvaluateWithoutArtifact(t *testing.T) {
	svc := newTestAlertService([]domain.Product{
		{SKU: "A", Name: "A", CurrentStock: 10, SafetyStock: intPtr(100)},
	}, nil)

	alerts, err := svc.Evaluate(context.Background())
	require.NoError(t, err, "missing artifact must not fail evaluation")
	require.Len(t, alerts, 1)
	assert.Equal(t, domain.AlertShortage, alerts[0].Type)
}

func TestEvaluateRanksAlerts(t *testing.T) {
	products := []domain.Product{
		{SKU: "B-SKU", Name: "B", CurrentStock: 90, SafetyStock: intPtr(100)},
		{SKU: "A-SKU", Name: "A", CurrentStock: 10, SafetyStock: intPtr(100)},
		{SKU: "C-SKU", Name: "C", CurrentStock: 20, SafetyStock: intPtr(100)},
	}

	svc := newTestAlertService(products, nil)
	alerts, err := svc.Evaluate(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 3)

	// Criticals first, ordered by SKU; the lone warning last.
	assert.Equal(t, domain.SeverityCritical, alerts[0].Severity)
	assert.Equal(t, "A-SKU", alerts[0].SKU)
	assert.Equal(t, "C-SKU", alerts[1].SKU)
	assert.Equal(t, domain.SeverityWarning, alerts[2].Severity)
	assert.Equal(t, "B-SKU", alerts[2].SKU)
}

func TestRankAlertsOrdering(t *testing.T) {
	now := time.Now()
	alerts := []domain.Alert{
		{SKU: "A", Type: domain.AlertOverstock, Severity: domain.SeverityWarning, EvaluatedAt: now},
		{SKU: "A", Type: domain.AlertExpiry, Severity: domain.SeverityCaution, EvaluatedAt: now},
		{SKU: "B", Type: domain.AlertShortage, Severity: domain.SeverityCritical, EvaluatedAt: now},
		{SKU: "A", Type: domain.AlertShortage, Severity: domain.SeverityCritical, EvaluatedAt: now},
	}

	rankAlerts(alerts)

	assert.Equal(t, domain.SeverityCritical, alerts[0].Severity)
	assert.Equal(t, "A", alerts[0].SKU)
	assert.Equal(t, "B", alerts[1].SKU)
	assert.Equal(t, domain.SeverityWarning, alerts[2].Severity)
	assert.Equal(t, domain.SeverityCaution, alerts[3].Severity)
}

func TestEvaluateAppliesOverride(t *testing.T) {
	artifact := &domain.ForecastArtifact{
		Version:   domain.ArtifactVersion,
		TrainedAt: time.Now(),
		Horizon:   3,
		Forecasts: map[string]domain.SKUForecast{
			"A-SKU": {Kind: domain.ForecastKindMonthly, Values: []float64{300, 300, 300}},
		},
	}

	svc := newTestAlertService([]domain.Product{
		{SKU: "A-SKU", Name: "A", CurrentStock: 10, SafetyStock: intPtr(100)},
	}, artifact)

	v1, v2, v3 := 40.0, 50.0, 60.0
	require.NoError(t, svc.store.SaveAdjustment(context.Background(), domain.ManualAdjustment{
		SKU:       "A-SKU",
		Adjusted1: &v1, Adjusted2: &v2, Adjusted3: &v3,
		EditedAt: time.Now(),
	}))

	alerts, err := svc.Evaluate(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, alerts)
	assert.Equal(t, []float64{40, 50, 60}, alerts[0].Figures.MonthlyForecast)
	assert.True(t, alerts[0].Figures.ForecastFromOverride)
}
