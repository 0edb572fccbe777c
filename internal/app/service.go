package app

import (
	"context"

	"fabric-inventory/internal/core"
)

// ApplicationService is the single interface all adapters call. It decouples
// presentation from business logic. Implementations must contain no display
// logic of any kind.
type ApplicationService interface {
	// ListCustomers returns all customers.
	ListCustomers(ctx context.Context) (*CustomerListResult, error)

	// GetCustomer returns a single customer by ID.
	GetCustomer(ctx context.Context, id int) (*core.Customer, error)

	// CreateCustomer registers a new customer.
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*core.Customer, error)

	// ListWarehouses returns all warehouses.
	ListWarehouses(ctx context.Context) (*WarehouseListResult, error)

	// GetWarehouse returns a single warehouse by ID.
	GetWarehouse(ctx context.Context, id int) (*core.Warehouse, error)

	// CreateWarehouse registers a new warehouse.
	CreateWarehouse(ctx context.Context, req CreateWarehouseRequest) (*core.Warehouse, error)

	// ListFabrics returns all fabric types.
	ListFabrics(ctx context.Context) (*FabricListResult, error)

	// CreateFabric registers a new fabric type.
	CreateFabric(ctx context.Context, name string) (*core.Fabric, error)

	// ListColors returns all colors.
	ListColors(ctx context.Context) (*ColorListResult, error)

	// CreateColor registers a new color.
	CreateColor(ctx context.Context, name, hexCode string) (*core.Color, error)

	// ListProducts returns all products with fabric and color names resolved.
	ListProducts(ctx context.Context) (*ProductListResult, error)

	// GetProduct returns a single product by ID.
	GetProduct(ctx context.Context, id int) (*core.Product, error)

	// CreateProduct creates a product and stocks it in the given warehouses.
	// Quantities are converted to the canonical unit on intake.
	CreateProduct(ctx context.Context, req core.CreateProductInput) (*core.Product, error)

	// UpdateProduct rewrites a product and strictly replaces its warehouse
	// quantities.
	UpdateProduct(ctx context.Context, id int, req core.CreateProductInput) (*core.Product, error)

	// GetStockLevels returns the per-warehouse ledger rows for every product.
	GetStockLevels(ctx context.Context) (*StockResult, error)

	// CreateInvoice validates all lines against warehouse stock and, only if
	// every line passes, deducts stock and persists the invoice atomically.
	CreateInvoice(ctx context.Context, req core.CreateInvoiceInput) (*core.Invoice, error)

	// GetInvoice returns a single invoice with its items. Soft-deleted
	// invoices are not found.
	GetInvoice(ctx context.Context, id int) (*core.Invoice, error)

	// ListInvoices returns invoices, optionally filtered by derived status.
	ListInvoices(ctx context.Context, status *core.InvoiceStatus) (*InvoiceListResult, error)

	// UpdateInvoice changes paidAmount and/or notes on a pending invoice.
	UpdateInvoice(ctx context.Context, id int, req core.UpdateInvoiceInput) (*core.Invoice, error)

	// RemoveInvoice soft-deletes a pending invoice and restores its stock.
	RemoveInvoice(ctx context.Context, id int) error

	// CreateRefund refunds part of an invoice and restores warehouse stock.
	CreateRefund(ctx context.Context, req core.CreateRefundInput) (*core.Refund, error)

	// GetRefund returns a single refund with its items.
	GetRefund(ctx context.Context, id int) (*core.Refund, error)

	// ListRefunds returns all refunds, newest first.
	ListRefunds(ctx context.Context) (*RefundListResult, error)
}
