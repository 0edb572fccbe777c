package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// StockService owns the (product, warehouse) → (quantity, unit) ledger.
// Writes convert raw intake units through the ProductUnitConverter; reads and
// adjustments always operate on already-converted values.
type StockService interface {
	// SetWarehouseQuantities stocks a newly created product into one or more
	// warehouses. At least one entry is required; every warehouse must exist.
	SetWarehouseQuantities(ctx context.Context, productID int, entries []WarehouseQuantityInput) error
	// ReplaceWarehouseQuantities replaces all ledger rows for a product with
	// the given set. An empty set unstocks the product everywhere. There are
	// no merge or increment semantics on update.
	ReplaceWarehouseQuantities(ctx context.Context, productID int, entries []WarehouseQuantityInput) error
	GetEntry(ctx context.Context, productID, warehouseID int) (*ProductWarehouseEntry, error)
	// CheckAvailability reports whether an entry exists with at least the
	// required quantity.
	CheckAvailability(ctx context.Context, productID, warehouseID int, required decimal.Decimal) (bool, error)
	// Adjust applies quantity += delta as a single row mutation. It does not
	// enforce non-negativity: the invoice and refund engines pre-check
	// availability before deducting. Fails NotFound when no entry exists.
	Adjust(ctx context.Context, productID, warehouseID int, delta decimal.Decimal) error
	GetStockLevels(ctx context.Context) ([]StockLevel, error)

	// TX-scoped variants: used by the invoice and refund engines (and by
	// product create/update) to keep ledger mutations atomic with document
	// writes, with FOR UPDATE row locks closing the check-then-deduct race.
	GetEntryTx(ctx context.Context, tx pgx.Tx, productID, warehouseID int, forUpdate bool) (*ProductWarehouseEntry, error)
	AdjustTx(ctx context.Context, tx pgx.Tx, productID, warehouseID int, delta decimal.Decimal) error
	SetWarehouseQuantitiesTx(ctx context.Context, tx pgx.Tx, productID int, entries []WarehouseQuantityInput) error
	ReplaceWarehouseQuantitiesTx(ctx context.Context, tx pgx.Tx, productID int, entries []WarehouseQuantityInput) error
}

type stockService struct {
	pool      *pgxpool.Pool
	converter UnitConversion
}

func NewStockService(pool *pgxpool.Pool) StockService {
	return &stockService{pool: pool, converter: NewProductUnitConverter()}
}

// pgxQuerier is satisfied by both *pgxpool.Pool and pgx.Tx, enabling shared
// query helpers.
type pgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgxExecutor is satisfied by both *pgxpool.Pool and pgx.Tx (for Exec).
type pgxExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *stockService) SetWarehouseQuantities(ctx context.Context, productID int, entries []WarehouseQuantityInput) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.SetWarehouseQuantitiesTx(ctx, tx, productID, entries); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *stockService) SetWarehouseQuantitiesTx(ctx context.Context, tx pgx.Tx, productID int, entries []WarehouseQuantityInput) error {
	if len(entries) == 0 {
		return validationf("product %d must be stocked in at least one warehouse", productID)
	}
	return s.insertEntries(ctx, tx, productID, entries)
}

func (s *stockService) ReplaceWarehouseQuantities(ctx context.Context, productID int, entries []WarehouseQuantityInput) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.ReplaceWarehouseQuantitiesTx(ctx, tx, productID, entries); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *stockService) ReplaceWarehouseQuantitiesTx(ctx context.Context, tx pgx.Tx, productID int, entries []WarehouseQuantityInput) error {
	// Strict replace: drop every existing row, then insert the new set.
	// An empty set leaves the product unstocked everywhere.
	if _, err := tx.Exec(ctx, "DELETE FROM product_warehouses WHERE product_id = $1", productID); err != nil {
		return fmt.Errorf("failed to clear stock entries for product %d: %w", productID, err)
	}
	if len(entries) == 0 {
		return nil
	}
	return s.insertEntries(ctx, tx, productID, entries)
}

func (s *stockService) insertEntries(ctx context.Context, tx pgx.Tx, productID int, entries []WarehouseQuantityInput) error {
	for _, e := range entries {
		if e.Quantity.IsNegative() {
			return validationf("quantity for warehouse %d must not be negative, got %s", e.WarehouseID, e.Quantity)
		}

		var warehouseID int
		err := tx.QueryRow(ctx, "SELECT id FROM warehouses WHERE id = $1", e.WarehouseID).Scan(&warehouseID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return notFoundf("warehouse %d", e.WarehouseID)
			}
			return fmt.Errorf("failed to resolve warehouse %d: %w", e.WarehouseID, err)
		}

		conv := s.converter.Convert(e.Quantity, e.Unit)
		_, err = tx.Exec(ctx, `
			INSERT INTO product_warehouses (product_id, warehouse_id, quantity, unit)
			VALUES ($1, $2, $3, $4)
		`, productID, warehouseID, conv.Value, conv.Unit)
		if err != nil {
			if isUniqueViolation(err) {
				return validationf("duplicate warehouse %d in quantities for product %d", e.WarehouseID, productID)
			}
			return fmt.Errorf("failed to insert stock entry for product %d: %w", productID, err)
		}
	}
	return nil
}

func (s *stockService) GetEntry(ctx context.Context, productID, warehouseID int) (*ProductWarehouseEntry, error) {
	return getEntryQ(ctx, s.pool, productID, warehouseID, false)
}

func (s *stockService) GetEntryTx(ctx context.Context, tx pgx.Tx, productID, warehouseID int, forUpdate bool) (*ProductWarehouseEntry, error) {
	return getEntryQ(ctx, tx, productID, warehouseID, forUpdate)
}

func getEntryQ(ctx context.Context, q pgxQuerier, productID, warehouseID int, forUpdate bool) (*ProductWarehouseEntry, error) {
	query := `
		SELECT id, product_id, warehouse_id, quantity, unit, updated_at
		FROM product_warehouses
		WHERE product_id = $1 AND warehouse_id = $2
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var e ProductWarehouseEntry
	err := q.QueryRow(ctx, query, productID, warehouseID).Scan(
		&e.ID, &e.ProductID, &e.WarehouseID, &e.Quantity, &e.Unit, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFoundf("no stock entry for product %d in warehouse %d", productID, warehouseID)
		}
		return nil, fmt.Errorf("failed to fetch stock entry: %w", err)
	}
	return &e, nil
}

func (s *stockService) CheckAvailability(ctx context.Context, productID, warehouseID int, required decimal.Decimal) (bool, error) {
	entry, err := s.GetEntry(ctx, productID, warehouseID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return entry.Quantity.GreaterThanOrEqual(required), nil
}

func (s *stockService) Adjust(ctx context.Context, productID, warehouseID int, delta decimal.Decimal) error {
	return adjustQ(ctx, s.pool, productID, warehouseID, delta)
}

func (s *stockService) AdjustTx(ctx context.Context, tx pgx.Tx, productID, warehouseID int, delta decimal.Decimal) error {
	return adjustQ(ctx, tx, productID, warehouseID, delta)
}

// adjustQ is a single quantity += delta statement, relying on per-row update
// atomicity. Non-negativity is the caller's responsibility.
func adjustQ(ctx context.Context, q pgxExecutor, productID, warehouseID int, delta decimal.Decimal) error {
	tag, err := q.Exec(ctx, `
		UPDATE product_warehouses
		SET quantity = quantity + $1, updated_at = NOW()
		WHERE product_id = $2 AND warehouse_id = $3
	`, delta, productID, warehouseID)
	if err != nil {
		return fmt.Errorf("failed to adjust stock for product %d in warehouse %d: %w", productID, warehouseID, err)
	}
	if tag.RowsAffected() == 0 {
		return notFoundf("no stock entry for product %d in warehouse %d", productID, warehouseID)
	}
	return nil
}

func (s *stockService) GetStockLevels(ctx context.Context) ([]StockLevel, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT p.id, p.name, w.id, w.name, pw.quantity, pw.unit
		FROM product_warehouses pw
		JOIN products p   ON p.id = pw.product_id
		JOIN warehouses w ON w.id = pw.warehouse_id
		ORDER BY p.name, w.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock levels: %w", err)
	}
	defer rows.Close()

	var levels []StockLevel
	for rows.Next() {
		var sl StockLevel
		if err := rows.Scan(&sl.ProductID, &sl.ProductName, &sl.WarehouseID, &sl.WarehouseName, &sl.Quantity, &sl.Unit); err != nil {
			return nil, fmt.Errorf("failed to scan stock level: %w", err)
		}
		levels = append(levels, sl)
	}
	return levels, nil
}
