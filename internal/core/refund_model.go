package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// RefundItemInput ties a requested refund line to a specific original invoice
// item. OriginalQuantity is the client's view of the invoiced quantity; it is
// re-checked against the stored invoice item to defend against stale state.
type RefundItemInput struct {
	InvoiceItemID    int             `json:"invoice_item_id"`
	ProductID        int             `json:"product_id"`
	OriginalQuantity int             `json:"original_quantity"`
	RefundQuantity   int             `json:"refund_quantity"`
	Unit             Unit            `json:"unit"`
	RefundAmount     decimal.Decimal `json:"refund_amount"`
}

// RefundItemsTotal computes Σ(refundAmount) over the requested lines. The
// declared header total must match this within moneyEpsilon.
func RefundItemsTotal(items []RefundItemInput) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.RefundAmount)
	}
	return total
}

type CreateRefundInput struct {
	InvoiceID         int               `json:"invoice_id"`
	InvoiceNumber     string            `json:"invoice_number"`
	CustomerID        int               `json:"customer_id"`
	WarehouseID       int               `json:"warehouse_id"`
	Items             []RefundItemInput `json:"items"`
	Reason            string            `json:"reason"`
	TotalRefundAmount decimal.Decimal   `json:"total_refund_amount"`
}

type RefundItem struct {
	ID               int             `json:"id"`
	RefundID         int             `json:"refund_id"`
	InvoiceItemID    int             `json:"invoice_item_id"`
	ProductID        int             `json:"product_id"`
	ProductName      string          `json:"product_name,omitempty"`
	OriginalQuantity int             `json:"original_quantity"`
	RefundQuantity   int             `json:"refund_quantity"`
	Unit             Unit            `json:"unit"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	RefundAmount     decimal.Decimal `json:"refund_amount"`
}

// Refund reverses part of an invoice and restores warehouse stock. Created
// once, immutable thereafter.
type Refund struct {
	ID                int             `json:"id"`
	RefundNumber      string          `json:"refund_number"`
	InvoiceID         int             `json:"invoice_id"`
	InvoiceNumber     string          `json:"invoice_number,omitempty"`
	CustomerID        int             `json:"customer_id"`
	CustomerName      string          `json:"customer_name,omitempty"`
	WarehouseID       int             `json:"warehouse_id"`
	WarehouseName     string          `json:"warehouse_name,omitempty"`
	TotalRefundAmount decimal.Decimal `json:"total_refund_amount"`
	Reason            string          `json:"reason"`
	CreatedAt         time.Time       `json:"created_at"`
	Items             []RefundItem    `json:"items"`
}
