package core_test

import (
	"testing"

	"fabric-inventory/internal/core"

	"github.com/shopspring/decimal"
)

func TestDirectory_CreateProductStocksWarehouses(t *testing.T) {
	pool, ctx := setupTestDB(t)
	defer pool.Close()
	stock := core.NewStockService(pool)
	directory := core.NewDirectoryService(pool, stock)

	p, err := directory.CreateProduct(ctx, core.CreateProductInput{
		Name:       "Cotton Indigo Denim",
		FabricID:   1,
		ColorID:    1,
		Weight:     decimal.NewFromInt(20),
		WeightUnit: core.UnitMeter,
		Quantities: []core.WarehouseQuantityInput{
			{WarehouseID: mainWarehouseID, Quantity: decimal.NewFromInt(60), Unit: core.UnitYard},
			{WarehouseID: annexID, Quantity: decimal.NewFromInt(40), Unit: core.UnitMeter},
		},
	})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	// Legacy weight runs through the standard converter: 20 m = 21.872 yd.
	if !p.Weight.Equal(decimal.NewFromFloat(21.872)) {
		t.Errorf("Expected weight 21.872 yard, got %s", p.Weight)
	}
	if p.WeightUnit != core.UnitYard {
		t.Errorf("Expected weight unit yard, got %s", p.WeightUnit)
	}
	if p.FabricName != "Cotton" || p.ColorName != "Indigo" {
		t.Errorf("Expected joined fabric/color names, got %q %q", p.FabricName, p.ColorName)
	}

	main, err := stock.GetEntry(ctx, p.ID, mainWarehouseID)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if !main.Quantity.Equal(decimal.NewFromInt(60)) || main.Unit != core.UnitYard {
		t.Errorf("Expected 60 yard in main, got %s %s", main.Quantity, main.Unit)
	}
	annex, err := stock.GetEntry(ctx, p.ID, annexID)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	// 40 m converted at intake: 40 × 1.09361 = 43.744, stored as 43.74
	if annex.Unit != core.UnitYard {
		t.Errorf("Expected annex entry in yard, got %s", annex.Unit)
	}
	if !annex.Quantity.Equal(decimal.NewFromFloat(43.74)) && !annex.Quantity.Equal(decimal.NewFromFloat(43.744)) {
		t.Errorf("Expected ~43.74 yard in annex, got %s", annex.Quantity)
	}
}

func TestDirectory_CreateProductRejectsUnknownFabric(t *testing.T) {
	pool, ctx := setupTestDB(t)
	defer pool.Close()
	stock := core.NewStockService(pool)
	directory := core.NewDirectoryService(pool, stock)

	_, err := directory.CreateProduct(ctx, core.CreateProductInput{
		Name:     "Phantom",
		FabricID: 999,
		ColorID:  1,
	})
	if !errorsIsNotFound(err) {
		t.Errorf("Expected NotFound for fabric 999, got %v", err)
	}
}

func TestDirectory_UpdateProductReplacesQuantities(t *testing.T) {
	pool, ctx := setupTestDB(t)
	defer pool.Close()
	stock := core.NewStockService(pool)
	directory := core.NewDirectoryService(pool, stock)

	err := stock.SetWarehouseQuantities(ctx, plainProductID, []core.WarehouseQuantityInput{
		{WarehouseID: mainWarehouseID, Quantity: decimal.NewFromInt(10), Unit: core.UnitYard},
		{WarehouseID: annexID, Quantity: decimal.NewFromInt(10), Unit: core.UnitYard},
	})
	if err != nil {
		t.Fatalf("SetWarehouseQuantities failed: %v", err)
	}

	p, err := directory.UpdateProduct(ctx, plainProductID, core.CreateProductInput{
		Name:       "Cotton Indigo Plain Renamed",
		FabricID:   1,
		ColorID:    1,
		Weight:     decimal.NewFromInt(5),
		WeightUnit: core.UnitYard,
		Quantities: []core.WarehouseQuantityInput{
			{WarehouseID: annexID, Quantity: decimal.NewFromInt(99), Unit: core.UnitYard},
		},
	})
	if err != nil {
		t.Fatalf("UpdateProduct failed: %v", err)
	}
	if p.Name != "Cotton Indigo Plain Renamed" {
		t.Errorf("Expected renamed product, got %q", p.Name)
	}

	if _, err = stock.GetEntry(ctx, plainProductID, mainWarehouseID); !errorsIsNotFound(err) {
		t.Errorf("Expected main entry dropped by strict replace, got %v", err)
	}
	annex, err := stock.GetEntry(ctx, plainProductID, annexID)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if !annex.Quantity.Equal(decimal.NewFromInt(99)) {
		t.Errorf("Expected annex 99 after replace, got %s", annex.Quantity)
	}
}

func TestDirectory_DuplicateNamesConflict(t *testing.T) {
	pool, ctx := setupTestDB(t)
	defer pool.Close()
	stock := core.NewStockService(pool)
	directory := core.NewDirectoryService(pool, stock)

	if _, err := directory.CreateFabric(ctx, "Cotton"); !errorsIsConflict(err) {
		t.Errorf("Expected Conflict for duplicate fabric, got %v", err)
	}
	if _, err := directory.CreateWarehouse(ctx, "Main Warehouse", "Yangon"); !errorsIsConflict(err) {
		t.Errorf("Expected Conflict for duplicate warehouse, got %v", err)
	}
}

func TestDirectory_CustomerRoundTrip(t *testing.T) {
	pool, ctx := setupTestDB(t)
	defer pool.Close()
	stock := core.NewStockService(pool)
	directory := core.NewDirectoryService(pool, stock)

	c, err := directory.CreateCustomer(ctx, "Gamma Mills", "ops@gamma.example", "+95-9700000003", "Bago")
	if err != nil {
		t.Fatalf("CreateCustomer failed: %v", err)
	}
	got, err := directory.GetCustomer(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCustomer failed: %v", err)
	}
	if got.Name != "Gamma Mills" || got.Email != "ops@gamma.example" {
		t.Errorf("Unexpected customer round trip: %+v", got)
	}

	all, err := directory.GetCustomers(ctx)
	if err != nil {
		t.Fatalf("GetCustomers failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 customers (2 seeded + 1 created), got %d", len(all))
	}
}
