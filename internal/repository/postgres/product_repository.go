// internal/repository/postgres/product_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/biocom/playauto-go/internal/domain"
)

// ErrInsufficientStock is returned when an outbound movement would drive the
// stock level negative. The transaction is rolled back and nothing changes.
var ErrInsufficientStock = errors.New("insufficient stock for outbound movement")

// ErrProductNotFound is returned when a SKU has no inventory record.
var ErrProductNotFound = errors.New("product not found")

type productRepository struct {
	db *DB
}

func NewProductRepository(db *DB) *productRepository {
	return &productRepository{db: db}
}

const productColumns = `
	sku, name, category, current_stock, safety_stock, lead_time_days,
	moq, bundle_multiple, expiry_date, manufacturer,
	outbound_total, inbound_total, updated_at
`

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM playauto_product_inventory
		ORDER BY sku ASC
	`

	var products []domain.Product
	if err := sqlx.SelectContext(ctx, r.db, &products, query); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

func (r *productRepository) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM playauto_product_inventory
		WHERE sku = $1
	`

	var product domain.Product
	err := sqlx.GetContext(ctx, r.db, &product, query, sku)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", sku, err)
	}

	return &product, nil
}

// ProcessInbound applies a receipt: stock and the cumulative inbound total
// both grow by the entered quantity.
func (r *productRepository) ProcessInbound(ctx context.Context, sku string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("inbound quantity must be positive, got %d", quantity)
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := `
			UPDATE playauto_product_inventory
			SET current_stock = current_stock + $2,
			    inbound_total = inbound_total + $2,
			    updated_at = NOW()
			WHERE sku = $1
		`
		res, err := tx.ExecContext(ctx, query, sku, quantity)
		if err != nil {
			return fmt.Errorf("failed to process inbound: %w", err)
		}
		return requireRow(res, sku)
	})
}

// ProcessOutbound applies a shipment. The entered quantity is multiplied by
// the product's bundle multiple before it hits stock, and the update is
// refused when the result would be negative.
func (r *productRepository) ProcessOutbound(ctx context.Context, sku string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("outbound quantity must be positive, got %d", quantity)
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		var bundleMultiple int
		row := tx.QueryRowContext(ctx,
			`SELECT bundle_multiple FROM playauto_product_inventory WHERE sku = $1 FOR UPDATE`, sku)
		if err := row.Scan(&bundleMultiple); errors.Is(err, sql.ErrNoRows) {
			return ErrProductNotFound
		} else if err != nil {
			return fmt.Errorf("failed to lock product %s: %w", sku, err)
		}

		units := quantity
		if bundleMultiple > 1 {
			units = quantity * bundleMultiple
		}

		query := `
			UPDATE playauto_product_inventory
			SET current_stock = current_stock - $2,
			    outbound_total = outbound_total + $2,
			    updated_at = NOW()
			WHERE sku = $1 AND current_stock >= $2
		`
		res, err := tx.ExecContext(ctx, query, sku, units)
		if err != nil {
			return fmt.Errorf("failed to process outbound: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check outbound update: %w", err)
		}
		if n == 0 {
			return ErrInsufficientStock
		}
		return nil
	})
}

// AdjustStock sets the stock level directly, bypassing the movement totals.
func (r *productRepository) AdjustStock(ctx context.Context, sku string, newLevel int) error {
	if newLevel < 0 {
		return fmt.Errorf("stock level cannot be negative, got %d", newLevel)
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := `
			UPDATE playauto_product_inventory
			SET current_stock = $2,
			    updated_at = NOW()
			WHERE sku = $1
		`
		res, err := tx.ExecContext(ctx, query, sku, newLevel)
		if err != nil {
			return fmt.Errorf("failed to adjust stock: %w", err)
		}
		return requireRow(res, sku)
	})
}

func requireRow(res sql.Result, sku string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrProductNotFound, sku)
	}
	return nil
}
