package core

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "PENDING"
	InvoiceStatusPaid    InvoiceStatus = "PAID"
)

// moneyEpsilon treats floating-point rounding noise in monetary comparisons
// as equality. Two amounts closer than this are the same amount.
var moneyEpsilon = decimal.NewFromFloat(0.01)

// DeriveInvoiceStatus computes the invoice status from its total and paid
// amount. Status is never stored state with its own transitions: PAID iff
// |total − paid| < 0.01, PENDING otherwise.
func DeriveInvoiceStatus(total, paidAmount decimal.Decimal) InvoiceStatus {
	if total.Sub(paidAmount).Abs().LessThan(moneyEpsilon) {
		return InvoiceStatusPaid
	}
	return InvoiceStatusPending
}

// InvoiceItemInput is one requested invoice line. Unit must match the unit
// currently recorded in the stock ledger for (product, warehouse).
type InvoiceItemInput struct {
	ProductID int             `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      Unit            `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// InvoiceItemsTotal computes Σ(quantity × unitPrice) over the requested
// lines. No per-item discount, no tax.
func InvoiceItemsTotal(items []InvoiceItemInput) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Quantity.Mul(it.UnitPrice))
	}
	return total
}

type CreateInvoiceInput struct {
	CustomerID  int                `json:"customer_id"`
	WarehouseID int                `json:"warehouse_id"`
	InvoiceDate string             `json:"invoice_date"`
	Items       []InvoiceItemInput `json:"items"`
	PaidAmount  decimal.Decimal    `json:"paid_amount"`
	Notes       string             `json:"notes"`
}

// UpdateInvoiceInput carries the only two mutable invoice fields. Items and
// total are frozen at creation.
type UpdateInvoiceInput struct {
	PaidAmount *decimal.Decimal `json:"paid_amount,omitempty"`
	Notes      *string          `json:"notes,omitempty"`
}

type InvoiceItem struct {
	ID          int             `json:"id"`
	InvoiceID   int             `json:"invoice_id"`
	ProductID   int             `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        Unit            `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type Invoice struct {
	ID            int             `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerID    int             `json:"customer_id"`
	CustomerName  string          `json:"customer_name,omitempty"`
	WarehouseID   int             `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name,omitempty"`
	InvoiceDate   string          `json:"invoice_date"`
	Total         decimal.Decimal `json:"total"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Status        InvoiceStatus   `json:"status"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []InvoiceItem   `json:"items"`
}
