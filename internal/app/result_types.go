package app

import "fabric-inventory/internal/core"

// CustomerListResult is returned by ListCustomers.
type CustomerListResult struct {
	Customers []core.Customer
}

// WarehouseListResult is returned by ListWarehouses.
type WarehouseListResult struct {
	Warehouses []core.Warehouse
}

// FabricListResult is returned by ListFabrics.
type FabricListResult struct {
	Fabrics []core.Fabric
}

// ColorListResult is returned by ListColors.
type ColorListResult struct {
	Colors []core.Color
}

// ProductListResult is returned by ListProducts.
type ProductListResult struct {
	Products []core.Product
}

// StockResult is returned by GetStockLevels.
type StockResult struct {
	Levels []core.StockLevel
}

// InvoiceListResult is returned by ListInvoices.
type InvoiceListResult struct {
	Invoices []core.Invoice
}

// RefundListResult is returned by ListRefunds.
type RefundListResult struct {
	Refunds []core.Refund
}
