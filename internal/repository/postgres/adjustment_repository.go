// internal/repository/postgres/adjustment_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/biocom/playauto-go/internal/domain"
)

type adjustmentRepository struct {
	db *DB
}

func NewAdjustmentRepository(db *DB) *adjustmentRepository {
	return &adjustmentRepository{db: db}
}

// Append inserts a new override row. The log is append-only; edits to an
// existing override are expressed as a newer row.
func (r *adjustmentRepository) Append(ctx context.Context, adj domain.ManualAdjustment) error {
	query := `
		INSERT INTO playauto_forecast_adjustments (
			sku, predicted_1, predicted_2, predicted_3,
			adjusted_1, adjusted_2, adjusted_3,
			reason, edited_by, edited_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		adj.SKU,
		adj.Predicted1, adj.Predicted2, adj.Predicted3,
		adj.Adjusted1, adj.Adjusted2, adj.Adjusted3,
		adj.Reason, adj.EditedBy, adj.EditedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append adjustment: %w", err)
	}

	return nil
}

// Latest returns the newest override for a SKU, or nil when the SKU has
// never been adjusted.
func (r *adjustmentRepository) Latest(ctx context.Context, sku string) (*domain.ManualAdjustment, error) {
	query := `
		SELECT id, sku, predicted_1, predicted_2, predicted_3,
		       adjusted_1, adjusted_2, adjusted_3,
		       reason, edited_by, edited_at
		FROM playauto_forecast_adjustments
		WHERE sku = $1
		ORDER BY edited_at DESC, id DESC
		LIMIT 1
	`

	var adj domain.ManualAdjustment
	err := sqlx.GetContext(ctx, r.db, &adj, query, sku)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest adjustment for %s: %w", sku, err)
	}

	return &adj, nil
}
