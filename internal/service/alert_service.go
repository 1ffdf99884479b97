// internal/service/alert_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/biocom/playauto-go/internal/alert"
	"github.com/biocom/playauto-go/internal/cache"
	"github.com/biocom/playauto-go/internal/domain"
	"github.com/biocom/playauto-go/internal/repository"
	"github.com/biocom/playauto-go/internal/store"
)

// AlertService evaluates the whole catalog against the latest forecast
// artifact and serves the ranked result, with a short-lived cache in front.
type AlertService struct {
	products repository.ProductRepository
	store    store.PredictionStore
	engine   *alert.Engine
	cache    cache.AlertCache
}

func NewAlertService(
	products repository.ProductRepository,
	st store.PredictionStore,
	engine *alert.Engine,
	alertCache cache.AlertCache,
) *AlertService {
	return &AlertService{
		products: products,
		store:    st,
		engine:   engine,
		cache:    alertCache,
	}
}

// Evaluate runs the decision engine over every product and returns alerts
// ranked by severity, then SKU, then type. A missing forecast artifact is a
// normal state: evaluation proceeds on the legacy usage heuristic alone.
func (s *AlertService) Evaluate(ctx context.Context) ([]domain.Alert, error) {
	if cached, ok, err := s.cache.Get(ctx); err != nil {
		log.Warn().Err(err).Msg("alert cache read failed")
	} else if ok {
		return cached, nil
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	artifact, err := s.store.LoadArtifact(ctx)
	if errors.Is(err, store.ErrNotFound) {
		log.Warn().Msg("no forecast artifact, evaluating alerts without forecasts")
		artifact = nil
	} else if err != nil {
		return nil, fmt.Errorf("load forecast artifact: %w", err)
	} else if artifact.Stale() {
		log.Warn().
			Int("version", artifact.Version).
			Time("trained_at", artifact.TrainedAt).
			Msg("forecast artifact was written by an older trainer, retraining recommended")
	}

	now := time.Now()
	var alerts []domain.Alert
	for i := range products {
		p := &products[i]

		var fc *domain.SKUForecast
		if f, ok := artifact.Forecast(p.SKU); ok {
			fc = &f
		}

		adj, err := s.store.LatestAdjustment(ctx, p.SKU)
		if err != nil {
			log.Warn().Err(err).Str("sku", p.SKU).Msg("load adjustment failed, using raw forecast")
			adj = nil
		}

		alerts = append(alerts, s.engine.Evaluate(p, fc, adj, now)...)
	}

	rankAlerts(alerts)

	if err := s.cache.Set(ctx, alerts); err != nil {
		log.Warn().Err(err).Msg("alert cache write failed")
	}

	return alerts, nil
}

// rankAlerts orders by severity, then SKU, then type, so output is stable
// across evaluations with identical inputs.
func rankAlerts(alerts []domain.Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		a, b := alerts[i], alerts[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() < b.Severity.Rank()
		}
		if a.SKU != b.SKU {
			return a.SKU < b.SKU
		}
		return a.Type < b.Type
	})
}
