// internal/repository/postgres/shipment_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/biocom/playauto-go/internal/domain"
)

type shipmentRepository struct {
	db *DB
}

func NewShipmentRepository(db *DB) *shipmentRepository {
	return &shipmentRepository{db: db}
}

// ListOutbound returns outbound events ordered by SKU then occurrence time,
// which is the order the series builder expects.
func (r *shipmentRepository) ListOutbound(ctx context.Context, skus ...string) ([]domain.ShipmentEvent, error) {
	query := `
		SELECT id, sku, quantity, direction, occurred_at
		FROM playauto_shipment_receipt
		WHERE direction = 'outbound'
		  AND (cardinality($1::text[]) = 0 OR sku = ANY($1))
		ORDER BY sku ASC, occurred_at ASC
	`

	if skus == nil {
		skus = []string{}
	}

	var events []domain.ShipmentEvent
	if err := sqlx.SelectContext(ctx, r.db, &events, query, pq.Array(skus)); err != nil {
		return nil, fmt.Errorf("failed to list outbound shipments: %w", err)
	}

	return events, nil
}

func (r *shipmentRepository) Append(ctx context.Context, ev domain.ShipmentEvent) error {
	query := `
		INSERT INTO playauto_shipment_receipt (sku, quantity, direction, occurred_at)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := r.db.ExecContext(ctx, query, ev.SKU, ev.Quantity, ev.Direction, ev.OccurredAt); err != nil {
		return fmt.Errorf("failed to append shipment event: %w", err)
	}

	return nil
}
