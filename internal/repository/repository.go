// internal/repository/repository.go
package repository

import (
	"context"

	"github.com/biocom/playauto-go/internal/domain"
)

// ShipmentRepository reads and appends the immutable transaction log.
type ShipmentRepository interface {
	// ListOutbound returns outbound events ordered by SKU then timestamp,
	// optionally filtered to the given SKUs.
	ListOutbound(ctx context.Context, skus ...string) ([]domain.ShipmentEvent, error)
	Append(ctx context.Context, ev domain.ShipmentEvent) error
}

// ProductRepository reads and mutates the live inventory state.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetBySKU(ctx context.Context, sku string) (*domain.Product, error)
	// ProcessInbound increases stock and the cumulative inbound total.
	ProcessInbound(ctx context.Context, sku string, quantity int) error
	// ProcessOutbound decreases stock and increases the outbound total. The
	// entered quantity is multiplied by the product's bundle multiple before
	// it is applied, and the update is refused when stock would go negative.
	ProcessOutbound(ctx context.Context, sku string, quantity int) error
	// AdjustStock sets the stock level directly (manual correction).
	AdjustStock(ctx context.Context, sku string, newLevel int) error
}

// AdjustmentRepository is the append-only manual override log.
type AdjustmentRepository interface {
	Append(ctx context.Context, adj domain.ManualAdjustment) error
	// Latest returns the most recent adjustment for a SKU, or nil when the
	// SKU has never been adjusted.
	Latest(ctx context.Context, sku string) (*domain.ManualAdjustment, error)
}
