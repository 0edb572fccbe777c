package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// RefundService reverses part of an invoice and restores warehouse stock.
// Refunds are created once and never mutated.
type RefundService interface {
	Create(ctx context.Context, input CreateRefundInput) (*Refund, error)
	Get(ctx context.Context, id int) (*Refund, error)
	List(ctx context.Context) ([]Refund, error)
}

type refundService struct {
	pool  *pgxpool.Pool
	stock StockService
}

func NewRefundService(pool *pgxpool.Pool, stock StockService) RefundService {
	return &refundService{pool: pool, stock: stock}
}

func newRefundNumber() string {
	return "REF-" + strings.ToUpper(uuid.NewString()[:8])
}

// Create validates the refund against its originating invoice, persists it,
// then restores stock for every item. The whole sequence runs in one
// transaction, mirroring the invoice engine's validate-all, commit, then
// mutate-ledger ordering.
func (s *refundService) Create(ctx context.Context, input CreateRefundInput) (*Refund, error) {
	if len(input.Items) == 0 {
		return nil, validationf("refund must have at least one item")
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

	var invoiceNumber string
	err = tx.QueryRow(ctx,
		"SELECT invoice_number FROM invoices WHERE id = $1 AND deleted_at IS NULL",
		input.InvoiceID,
	).Scan(&invoiceNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFoundf("invoice %d", input.InvoiceID)
		}
		return nil, fmt.Errorf("failed to resolve invoice %d: %w", input.InvoiceID, err)
	}
	// Defends against stale client state.
	if invoiceNumber != input.InvoiceNumber {
		return nil, validationf("invoice number mismatch: got %s, invoice %d is %s",
			input.InvoiceNumber, input.InvoiceID, invoiceNumber)
	}

	// Resolve and validate every refund line against its original invoice
	// item before any persistence or stock mutation.
	type resolvedItem struct {
		input     RefundItemInput
		unitPrice decimal.Decimal
	}
	resolved := make([]resolvedItem, 0, len(input.Items))
	for i, item := range input.Items {
		var origProductID int
		var origQuantity, unitPrice decimal.Decimal
		err = tx.QueryRow(ctx, `
			SELECT product_id, quantity, unit_price
			FROM invoice_items
			WHERE id = $1 AND invoice_id = $2
		`, item.InvoiceItemID, input.InvoiceID).Scan(&origProductID, &origQuantity, &unitPrice)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, notFoundf("invoice item %d on invoice %d", item.InvoiceItemID, input.InvoiceID)
			}
			return nil, fmt.Errorf("failed to resolve invoice item %d: %w", item.InvoiceItemID, err)
		}

		if origProductID != item.ProductID {
			return nil, validationf("item %d: product %d does not match invoice item product %d",
				i+1, item.ProductID, origProductID)
		}
		if item.RefundQuantity <= 0 {
			return nil, validationf("item %d: refund quantity must be positive, got %d", i+1, item.RefundQuantity)
		}
		if item.RefundQuantity > item.OriginalQuantity {
			return nil, validationf("item %d: refund quantity %d exceeds original quantity %d",
				i+1, item.RefundQuantity, item.OriginalQuantity)
		}
		// Redundant with the check above today (original quantity equals the
		// recorded item quantity), kept explicit on purpose.
		if decimal.NewFromInt(int64(item.RefundQuantity)).GreaterThan(origQuantity) {
			return nil, validationf("item %d: refund quantity %d exceeds invoiced quantity %s",
				i+1, item.RefundQuantity, origQuantity)
		}

		var productID int
		if err := tx.QueryRow(ctx, "SELECT id FROM products WHERE id = $1", item.ProductID).Scan(&productID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, notFoundf("product %d", item.ProductID)
			}
			return nil, fmt.Errorf("failed to resolve product %d: %w", item.ProductID, err)
		}

		resolved = append(resolved, resolvedItem{input: item, unitPrice: unitPrice})
	}

	itemsTotal := RefundItemsTotal(input.Items)
	if itemsTotal.Sub(input.TotalRefundAmount).Abs().GreaterThan(moneyEpsilon) {
		return nil, validationf("refund items sum to %s but declared total is %s",
			itemsTotal, input.TotalRefundAmount)
	}

	var refundID int
	err = tx.QueryRow(ctx, `
		INSERT INTO refunds (refund_number, invoice_id, customer_id, warehouse_id, total_refund_amount, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, newRefundNumber(), input.InvoiceID, input.CustomerID, input.WarehouseID, input.TotalRefundAmount, input.Reason).Scan(&refundID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert refund: %w", err)
	}

	for _, r := range resolved {
		_, err = tx.Exec(ctx, `
			INSERT INTO refund_items (refund_id, invoice_item_id, product_id, original_quantity, refund_quantity, unit, unit_price, refund_amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, refundID, r.input.InvoiceItemID, r.input.ProductID, r.input.OriginalQuantity,
			r.input.RefundQuantity, ParseUnit(string(r.input.Unit)), r.unitPrice, r.input.RefundAmount)
		if err != nil {
			return nil, fmt.Errorf("failed to insert refund item: %w", err)
		}
	}

	// Restore stock after the refund rows are written. The entry must still
	// exist and its unit must match the refund line's unit.
	for _, r := range resolved {
		entry, err := s.stock.GetEntryTx(ctx, tx, r.input.ProductID, input.WarehouseID, true)
		if err != nil {
			return nil, err
		}
		if ParseUnit(string(r.input.Unit)) != entry.Unit {
			return nil, validationf("unit mismatch for product %d: refund uses %s but stock is recorded in %s",
				r.input.ProductID, r.input.Unit, entry.Unit)
		}
		qty := decimal.NewFromInt(int64(r.input.RefundQuantity))
		if err := s.stock.AdjustTx(ctx, tx, r.input.ProductID, input.WarehouseID, qty); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit refund creation: %w", err)
	}
	return s.Get(ctx, refundID)
}

func (s *refundService) Get(ctx context.Context, id int) (*Refund, error) {
	var r Refund
	err := s.pool.QueryRow(ctx, `
		SELECT r.id, r.refund_number, r.invoice_id, i.invoice_number, r.customer_id, c.name,
		       r.warehouse_id, w.name, r.total_refund_amount, COALESCE(r.reason, ''), r.created_at
		FROM refunds r
		JOIN invoices i   ON i.id = r.invoice_id
		JOIN customers c  ON c.id = r.customer_id
		JOIN warehouses w ON w.id = r.warehouse_id
		WHERE r.id = $1
	`, id).Scan(
		&r.ID, &r.RefundNumber, &r.InvoiceID, &r.InvoiceNumber, &r.CustomerID, &r.CustomerName,
		&r.WarehouseID, &r.WarehouseName, &r.TotalRefundAmount, &r.Reason, &r.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFoundf("refund %d", id)
		}
		return nil, fmt.Errorf("failed to fetch refund %d: %w", id, err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT ri.id, ri.refund_id, ri.invoice_item_id, ri.product_id, p.name,
		       ri.original_quantity, ri.refund_quantity, ri.unit, ri.unit_price, ri.refund_amount
		FROM refund_items ri
		JOIN products p ON p.id = ri.product_id
		WHERE ri.refund_id = $1
		ORDER BY ri.id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query refund items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it RefundItem
		if err := rows.Scan(&it.ID, &it.RefundID, &it.InvoiceItemID, &it.ProductID, &it.ProductName,
			&it.OriginalQuantity, &it.RefundQuantity, &it.Unit, &it.UnitPrice, &it.RefundAmount); err != nil {
			return nil, fmt.Errorf("failed to scan refund item: %w", err)
		}
		r.Items = append(r.Items, it)
	}
	return &r, nil
}

func (s *refundService) List(ctx context.Context) ([]Refund, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.id, r.refund_number, r.invoice_id, i.invoice_number, r.customer_id, c.name,
		       r.warehouse_id, w.name, r.total_refund_amount, COALESCE(r.reason, ''), r.created_at
		FROM refunds r
		JOIN invoices i   ON i.id = r.invoice_id
		JOIN customers c  ON c.id = r.customer_id
		JOIN warehouses w ON w.id = r.warehouse_id
		ORDER BY r.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query refunds: %w", err)
	}
	defer rows.Close()

	var refunds []Refund
	for rows.Next() {
		var r Refund
		if err := rows.Scan(
			&r.ID, &r.RefundNumber, &r.InvoiceID, &r.InvoiceNumber, &r.CustomerID, &r.CustomerName,
			&r.WarehouseID, &r.WarehouseName, &r.TotalRefundAmount, &r.Reason, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan refund: %w", err)
		}
		refunds = append(refunds, r)
	}
	return refunds, nil
}
