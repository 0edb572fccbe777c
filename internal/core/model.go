package core

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// Warehouse is a physical storage location holding fabric stock.
type Warehouse struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Fabric is a fiber/fabric type (cotton, linen, viscose, ...).
type Fabric struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Color struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	HexCode   string    `json:"hex_code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Product is a fabric variant: a fabric type in a specific color. Weight and
// WeightUnit are the legacy single-unit intake fields; they are normalized to
// yard through the StandardUnitConverter on write and play no part in the
// warehouse stock ledger.
type Product struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	FabricID   int             `json:"fabric_id"`
	FabricName string          `json:"fabric_name,omitempty"`
	ColorID    int             `json:"color_id"`
	ColorName  string          `json:"color_name,omitempty"`
	Weight     decimal.Decimal `json:"weight"`
	WeightUnit Unit            `json:"weight_unit"`
	CreatedAt  time.Time       `json:"created_at"`
}
