// internal/service/inventory_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/biocom/playauto-go/internal/cache"
	"github.com/biocom/playauto-go/internal/domain"
	"github.com/biocom/playauto-go/internal/repository"
)

// InventoryService applies stock movements: it mutates the product record
// and appends the matching fact to the shipment log, then drops the alert
// cache since its inputs changed.
type InventoryService struct {
	products  repository.ProductRepository
	shipments repository.ShipmentRepository
	cache     cache.AlertCache
}

func NewInventoryService(
	products repository.ProductRepository,
	shipments repository.ShipmentRepository,
	alertCache cache.AlertCache,
) *InventoryService {
	return &InventoryService{products: products, shipments: shipments, cache: alertCache}
}

// ProcessInbound records a receipt of the given quantity.
func (s *InventoryService) ProcessInbound(ctx context.Context, sku string, quantity int) error {
	if err := s.products.ProcessInbound(ctx, sku, quantity); err != nil {
		return err
	}
	s.appendEvent(ctx, sku, quantity, domain.DirectionInbound)
	s.invalidate(ctx)
	return nil
}

// ProcessOutbound records a shipment. Bundle products are logged in already
// multiplied units so the transaction log matches what left the shelf.
func (s *InventoryService) ProcessOutbound(ctx context.Context, sku string, quantity int) error {
	product, err := s.products.GetBySKU(ctx, sku)
	if err != nil {
		return err
	}

	units := quantity
	if product.IsBundle() {
		units = quantity * product.BundleMultiple
	}

	if err := s.products.ProcessOutbound(ctx, sku, quantity); err != nil {
		return err
	}
	s.appendEvent(ctx, sku, units, domain.DirectionOutbound)
	s.invalidate(ctx)
	return nil
}

// AdjustStock sets the level directly. Corrections are not movements, so
// nothing is appended to the shipment log.
func (s *InventoryService) AdjustStock(ctx context.Context, sku string, newLevel int) error {
	if newLevel < 0 {
		return errors.New("stock level cannot be negative")
	}
	if err := s.products.AdjustStock(ctx, sku, newLevel); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *InventoryService) appendEvent(ctx context.Context, sku string, quantity int, dir domain.Direction) {
	ev := domain.ShipmentEvent{
		SKU:        sku,
		Quantity:   quantity,
		Direction:  dir,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.shipments.Append(ctx, ev); err != nil {
		log.Error().Err(err).Str("sku", sku).Str("direction", string(dir)).
			Msg("failed to append shipment event, stock and log have diverged")
	}
}

func (s *InventoryService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("alert cache invalidation failed")
	}
}
