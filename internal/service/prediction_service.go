// internal/service/prediction_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/biocom/playauto-go/internal/alert"
	"github.com/biocom/playauto-go/internal/domain"
	"github.com/biocom/playauto-go/internal/repository"
	"github.com/biocom/playauto-go/internal/store"
)

// ErrNoForecast is returned when a SKU has no trained forecast.
var ErrNoForecast = errors.New("no forecast available")

// ForecastView is the consumer-facing projection of one SKU's forecast:
// raw model values, the effective values after any override, and the
// replenishment figures derived from them.
type ForecastView struct {
	SKU            string                   `json:"sku"`
	ProductName    string                   `json:"product_name"`
	BestModel      string                   `json:"best_model"`
	Values         []float64                `json:"values"`
	Effective      []float64                `json:"effective"`
	Overridden     bool                     `json:"overridden"`
	Adjustment     *domain.ManualAdjustment `json:"adjustment,omitempty"`
	RecommendedQty int                      `json:"recommended_order_quantity"`
	StockoutDate   *time.Time               `json:"expected_stockout_date,omitempty"`
	LastObserved   time.Time                `json:"last_observed"`
	TrainedAt      time.Time                `json:"trained_at"`
}

// PredictionService serves forecast views and records manual overrides.
type PredictionService struct {
	products repository.ProductRepository
	store    store.PredictionStore
}

func NewPredictionService(products repository.ProductRepository, st store.PredictionStore) *PredictionService {
	return &PredictionService{products: products, store: st}
}

// Get returns the forecast view for one SKU. ErrNoForecast means training
// has not produced values for it; repository.ErrProductNotFound style errors
// pass through from the product lookup.
func (s *PredictionService) Get(ctx context.Context, sku string) (*ForecastView, error) {
	product, err := s.products.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}

	artifact, err := s.store.LoadArtifact(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoForecast
	}
	if err != nil {
		return nil, fmt.Errorf("load forecast artifact: %w", err)
	}

	fc, ok := artifact.Forecast(sku)
	if !ok {
		return nil, ErrNoForecast
	}

	adj, err := s.store.LatestAdjustment(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("load adjustment: %w", err)
	}

	return s.buildView(product, artifact, fc, adj, time.Now()), nil
}

// List returns views for every SKU with a forecast, sorted by SKU.
func (s *PredictionService) List(ctx context.Context) ([]ForecastView, error) {
	artifact, err := s.store.LoadArtifact(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load forecast artifact: %w", err)
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	now := time.Now()
	views := make([]ForecastView, 0, len(artifact.Forecasts))
	for i := range products {
		p := &products[i]
		fc, ok := artifact.Forecast(p.SKU)
		if !ok {
			continue
		}

		adj, err := s.store.LatestAdjustment(ctx, p.SKU)
		if err != nil {
			return nil, fmt.Errorf("load adjustment for %s: %w", p.SKU, err)
		}

		views = append(views, *s.buildView(p, artifact, fc, adj, now))
	}

	sort.Slice(views, func(i, j int) bool { return views[i].SKU < views[j].SKU })
	return views, nil
}

// SaveAdjustment appends a manual override. The predicted columns are
// snapshotted from the current forecast so the log records what the human
// was overriding.
func (s *PredictionService) SaveAdjustment(ctx context.Context, adj domain.ManualAdjustment) error {
	if adj.SKU == "" {
		return errors.New("adjustment requires a sku")
	}
	if _, err := s.products.GetBySKU(ctx, adj.SKU); err != nil {
		return err
	}

	if artifact, err := s.store.LoadArtifact(ctx); err == nil {
		if fc, ok := artifact.Forecast(adj.SKU); ok && len(fc.Values) >= 3 {
			adj.Predicted1 = fc.Values[0]
			adj.Predicted2 = fc.Values[1]
			adj.Predicted3 = fc.Values[2]
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("load forecast artifact: %w", err)
	}

	return s.store.SaveAdjustment(ctx, adj)
}

func (s *PredictionService) buildView(
	p *domain.Product,
	artifact *domain.ForecastArtifact,
	fc domain.SKUForecast,
	adj *domain.ManualAdjustment,
	now time.Time,
) *ForecastView {
	effective := fc.Values
	overridden := false
	if values, ok := adj.AdjustedValues(); ok {
		effective = values
		overridden = true
	}

	return &ForecastView{
		SKU:            p.SKU,
		ProductName:    p.Name,
		BestModel:      fc.BestModel,
		Values:         fc.Values,
		Effective:      effective,
		Overridden:     overridden,
		Adjustment:     adj,
		RecommendedQty: alert.RecommendedOrderQuantity(effective, p.SafetyStock, p.MOQ),
		StockoutDate:   alert.ExpectedStockoutDate(p, &fc, adj, now),
		LastObserved:   fc.LastObserved,
		TrainedAt:      artifact.TrainedAt,
	}
}
