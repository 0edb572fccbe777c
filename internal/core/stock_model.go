package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductWarehouseEntry is one row of the quantity ledger: how much of one
// product sits in one warehouse, in what unit. At most one entry exists per
// (product, warehouse) pair. The unit is fixed by the first write; every
// later adjustment must already be expressed in that unit.
type ProductWarehouseEntry struct {
	ID          int             `json:"id"`
	ProductID   int             `json:"product_id"`
	WarehouseID int             `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        Unit            `json:"unit"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// WarehouseQuantityInput is a raw intake entry for stocking a product into a
// warehouse. Quantity and Unit are pre-conversion values; the stock service
// runs them through the ProductUnitConverter before persisting.
type WarehouseQuantityInput struct {
	WarehouseID int             `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        Unit            `json:"unit"`
}

// StockLevel is a read view of a ledger entry joined with product and
// warehouse names.
type StockLevel struct {
	ProductID     int             `json:"product_id"`
	ProductName   string          `json:"product_name"`
	WarehouseID   int             `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          Unit            `json:"unit"`
}
