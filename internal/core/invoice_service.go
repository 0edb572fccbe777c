package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// InvoiceService manages the invoice lifecycle: creation deducts warehouse
// stock, update touches only paidAmount/notes, removal restores stock. Status
// is derived from (total, paidAmount) on every read and write. There is no
// independent state machine.
type InvoiceService interface {
	Create(ctx context.Context, input CreateInvoiceInput) (*Invoice, error)
	// Update changes paidAmount and/or notes. Paid invoices are immutable;
	// items and total are never recomputed.
	Update(ctx context.Context, id int, input UpdateInvoiceInput) (*Invoice, error)
	// Remove soft-deletes a PENDING invoice and restores every item quantity
	// to the stock ledger.
	Remove(ctx context.Context, id int) error
	Get(ctx context.Context, id int) (*Invoice, error)
	List(ctx context.Context, status *InvoiceStatus) ([]Invoice, error)
}

type invoiceService struct {
	pool  *pgxpool.Pool
	stock StockService
}

func NewInvoiceService(pool *pgxpool.Pool, stock StockService) InvoiceService {
	return &invoiceService{pool: pool, stock: stock}
}

func newInvoiceNumber() string {
	return "INV-" + strings.ToUpper(uuid.NewString()[:8])
}

// Create validates everything, persists the invoice, then deducts stock, all
// inside one transaction with the touched ledger rows locked, so a failing
// line never leaves a partial deduction behind.
func (s *invoiceService) Create(ctx context.Context, input CreateInvoiceInput) (*Invoice, error) {
	if len(input.Items) == 0 {
		return nil, validationf("invoice must have at least one item")
	}
	if input.PaidAmount.IsNegative() {
		return nil, validationf("paid amount must not be negative, got %s", input.PaidAmount)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var customerName string
	if err := tx.QueryRow(ctx, "SELECT name FROM customers WHERE id = $1", input.CustomerID).Scan(&customerName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFoundf("customer %d", input.CustomerID)
		}
		return nil, fmt.Errorf("failed to resolve customer: %w", err)
	}

	var warehouseName string
	if err := tx.QueryRow(ctx, "SELECT name FROM warehouses WHERE id = $1", input.WarehouseID).Scan(&warehouseName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFoundf("warehouse %d", input.WarehouseID)
		}
		return nil, fmt.Errorf("failed to resolve warehouse: %w", err)
	}

	// Validate every item against its locked ledger entry before touching
	// anything: validate-all-then-commit-all, never per-item interleaved.
	for i, item := range input.Items {
		if !item.Quantity.IsPositive() {
			return nil, validationf("item %d: quantity must be positive, got %s", i+1, item.Quantity)
		}

		var productName string
		if err := tx.QueryRow(ctx, "SELECT name FROM products WHERE id = $1", item.ProductID).Scan(&productName); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, notFoundf("product %d", item.ProductID)
			}
			return nil, fmt.Errorf("failed to resolve product %d: %w", item.ProductID, err)
		}

		entry, err := s.stock.GetEntryTx(ctx, tx, item.ProductID, input.WarehouseID, true)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, validationf("product %s is not available in warehouse %s", productName, warehouseName)
			}
			return nil, err
		}
		if ParseUnit(string(item.Unit)) != entry.Unit {
			return nil, validationf("unit mismatch for product %s: item uses %s but stock is recorded in %s",
				productName, item.Unit, entry.Unit)
		}
		if item.Quantity.GreaterThan(entry.Quantity) {
			return nil, validationf("insufficient quantity for product %s: available %s %s, requested %s",
				productName, entry.Quantity, entry.Unit, item.Quantity)
		}
	}

	total := InvoiceItemsTotal(input.Items)
	if input.PaidAmount.GreaterThan(total) {
		return nil, validationf("paid amount %s exceeds invoice total %s", input.PaidAmount, total)
	}
	status := DeriveInvoiceStatus(total, input.PaidAmount)

	invoiceDate := input.InvoiceDate
	if invoiceDate == "" {
		invoiceDate = time.Now().Format("2006-01-02")
	}

	var invoiceID int
	err = tx.QueryRow(ctx, `
		INSERT INTO invoices (invoice_number, customer_id, warehouse_id, invoice_date, total, paid_amount, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, newInvoiceNumber(), input.CustomerID, input.WarehouseID, invoiceDate, total, input.PaidAmount, status, input.Notes).Scan(&invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert invoice: %w", err)
	}

	for _, item := range input.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO invoice_items (invoice_id, product_id, quantity, unit, unit_price)
			VALUES ($1, $2, $3, $4, $5)
		`, invoiceID, item.ProductID, item.Quantity, ParseUnit(string(item.Unit)), item.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("failed to insert invoice item: %w", err)
		}
	}

	// All validation passed: deduct unconditionally.
	for _, item := range input.Items {
		if err := s.stock.AdjustTx(ctx, tx, item.ProductID, input.WarehouseID, item.Quantity.Neg()); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit invoice creation: %w", err)
	}
	return s.Get(ctx, invoiceID)
}

func (s *invoiceService) Update(ctx context.Context, id int, input UpdateInvoiceInput) (*Invoice, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var total, paid decimal.Decimal
	var notes string
	err = tx.QueryRow(ctx, `
		SELECT total, paid_amount, COALESCE(notes, '')
		FROM invoices
		WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE
	`, id).Scan(&total, &paid, &notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFoundf("invoice %d", id)
		}
		return nil, fmt.Errorf("failed to fetch invoice %d: %w", id, err)
	}

	if DeriveInvoiceStatus(total, paid) == InvoiceStatusPaid {
		return nil, validationf("cannot update a paid invoice")
	}

	if input.PaidAmount != nil {
		if input.PaidAmount.IsNegative() {
			return nil, validationf("paid amount must not be negative, got %s", input.PaidAmount)
		}
		if input.PaidAmount.GreaterThan(total) {
			return nil, validationf("paid amount %s exceeds invoice total %s", input.PaidAmount, total)
		}
		paid = *input.PaidAmount
	}
	if input.Notes != nil {
		notes = *input.Notes
	}

	status := DeriveInvoiceStatus(total, paid)
	_, err = tx.Exec(ctx, `
		UPDATE invoices SET paid_amount = $1, notes = $2, status = $3 WHERE id = $4
	`, paid, notes, status, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update invoice %d: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit invoice update: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *invoiceService) Remove(ctx context.Context, id int) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var warehouseID int
	var total, paid decimal.Decimal
	err = tx.QueryRow(ctx, `
		SELECT warehouse_id, total, paid_amount
		FROM invoices
		WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE
	`, id).Scan(&warehouseID, &total, &paid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFoundf("invoice %d", id)
		}
		return fmt.Errorf("failed to fetch invoice %d: %w", id, err)
	}

	if DeriveInvoiceStatus(total, paid) == InvoiceStatusPaid {
		return validationf("cannot delete a paid invoice")
	}

	// Restore full item quantities. Partial payment history on a PENDING
	// invoice is simply discarded.
	rows, err := tx.Query(ctx, "SELECT product_id, quantity FROM invoice_items WHERE invoice_id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to query invoice items: %w", err)
	}
	type restoreLine struct {
		productID int
		quantity  decimal.Decimal
	}
	var restores []restoreLine
	for rows.Next() {
		var rl restoreLine
		if err := rows.Scan(&rl.productID, &rl.quantity); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan invoice item: %w", err)
		}
		restores = append(restores, rl)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating invoice items: %w", err)
	}

	for _, rl := range restores {
		if err := s.stock.AdjustTx(ctx, tx, rl.productID, warehouseID, rl.quantity); err != nil {
			return err
		}
	}

	if _, err = tx.Exec(ctx, "UPDATE invoices SET deleted_at = NOW() WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to soft-delete invoice %d: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit invoice removal: %w", err)
	}
	return nil
}

func (s *invoiceService) Get(ctx context.Context, id int) (*Invoice, error) {
	var inv Invoice
	err := s.pool.QueryRow(ctx, `
		SELECT i.id, i.invoice_number, i.customer_id, c.name, i.warehouse_id, w.name,
		       i.invoice_date::text, i.total, i.paid_amount, COALESCE(i.notes, ''), i.created_at
		FROM invoices i
		JOIN customers c  ON c.id = i.customer_id
		JOIN warehouses w ON w.id = i.warehouse_id
		WHERE i.id = $1 AND i.deleted_at IS NULL
	`, id).Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.CustomerID, &inv.CustomerName,
		&inv.WarehouseID, &inv.WarehouseName, &inv.InvoiceDate,
		&inv.Total, &inv.PaidAmount, &inv.Notes, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFoundf("invoice %d", id)
		}
		return nil, fmt.Errorf("failed to fetch invoice %d: %w", id, err)
	}
	// Recompute rather than trust the stored column.
	inv.Status = DeriveInvoiceStatus(inv.Total, inv.PaidAmount)

	items, err := fetchInvoiceItems(ctx, s.pool, id)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return &inv, nil
}

func (s *invoiceService) List(ctx context.Context, status *InvoiceStatus) ([]Invoice, error) {
	query := `
		SELECT i.id, i.invoice_number, i.customer_id, c.name, i.warehouse_id, w.name,
		       i.invoice_date::text, i.total, i.paid_amount, COALESCE(i.notes, ''), i.created_at
		FROM invoices i
		JOIN customers c  ON c.id = i.customer_id
		JOIN warehouses w ON w.id = i.warehouse_id
		WHERE i.deleted_at IS NULL
	`
	args := []any{}
	if status != nil {
		query += " AND i.status = $1"
		args = append(args, *status)
	}
	query += " ORDER BY i.id DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		var inv Invoice
		if err := rows.Scan(
			&inv.ID, &inv.InvoiceNumber, &inv.CustomerID, &inv.CustomerName,
			&inv.WarehouseID, &inv.WarehouseName, &inv.InvoiceDate,
			&inv.Total, &inv.PaidAmount, &inv.Notes, &inv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		inv.Status = DeriveInvoiceStatus(inv.Total, inv.PaidAmount)
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

// pgxRowQuerier is satisfied by both *pgxpool.Pool and pgx.Tx (for Query).
type pgxRowQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func fetchInvoiceItems(ctx context.Context, q pgxRowQuerier, invoiceID int) ([]InvoiceItem, error) {
	rows, err := q.Query(ctx, `
		SELECT ii.id, ii.invoice_id, ii.product_id, p.name, ii.quantity, ii.unit, ii.unit_price
		FROM invoice_items ii
		JOIN products p ON p.id = ii.product_id
		WHERE ii.invoice_id = $1
		ORDER BY ii.id
	`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice items: %w", err)
	}
	defer rows.Close()

	var items []InvoiceItem
	for rows.Next() {
		var it InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.ProductID, &it.ProductName, &it.Quantity, &it.Unit, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan invoice item: %w", err)
		}
		items = append(items, it)
	}
	return items, nil
}
