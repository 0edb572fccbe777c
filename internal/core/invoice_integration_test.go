package core_test

import (
	"strings"
	"testing"

	"fabric-inventory/internal/core"

	"github.com/shopspring/decimal"
)

func TestInvoice_CreateDeductsStockAndDerivesStatus(t *testing.T) {
	pool, ctx := setupTestDB(t)
	defer pool.Close()
	stock := core.NewStockService(pool)
	invoices := core.NewInvoiceService(pool, stock)

	err := stock.SetWarehouseQuantities(ctx, plainProductID, []core.WarehouseQuantityInput{
		{WarehouseID: mainWarehouseID, Quantity: decimal.NewFromInt(100), Unit: core.UnitYard},
	})
	if err != nil {
		t.Fatalf("SetWarehouseQuantities failed: %v", err)
	}

	inv, err := invoices.Create(ctx, core.CreateInvoiceInput{
		CustomerID:  acmeCustomerID,
		WarehouseID: mainWarehouseID,
		InvoiceDate: "2026-08-28",
		Items: []core.InvoiceItemInput{
			{ProductID: plainProductID, Quantity: decimal.NewFromInt(40), Unit: core.UnitYard, UnitPrice: decimal.NewFromFloat(2.5)},
		},
		PaidAmount: decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if !strings.HasPrefix(inv.InvoiceNumber, "INV-") {
		t.Errorf("Expected generated invoice number, got %q", inv.InvoiceNumber)
	}
	if !inv.Total.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected total 100, got %s", inv.Total)
	}
	if inv.Status != core.InvoiceStatusPaid {
		t.Errorf("Expected PAID (paid == total), got %s", inv.Status)
	}
	if len(inv.Items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(inv.Items))
	}

	entry, err := stock.GetEntry(ctx, plainProductID, mainWarehouseID)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if !entry.Quantity.Equal(decimal.NewFromInt(60)) {
		t.Errorf("Expected stock 60 after invoicing 40 of 100, got %s", entry.Quantity)
	}
}

func TestInvoice_CreateRejectsBadInput(t *testing.T) {
	pool, ctx := setupTestDB(t)
	defer pool.Close()
	stock := core.NewStockService(pool)
	invoices := core.NewInvoiceService(pool, stock)

	err := stock.SetWarehouseQuantities(ctx, plainProductID, []core.WarehouseQuantityInput{
		{WarehouseID: mainWarehouseID, Quantity: decimal.NewFromInt(10), Unit: core.UnitYard},
	})
	if err != nil {
		t.Fatalf("SetWarehouseQuantities failed: %v", err)
	}

	oneItem := []core.InvoiceItemInput{
		{ProductID: plainProductID, Quantity: decimal.NewFromInt(5), Unit: core.UnitYard, UnitPrice: decimal.NewFromInt(2)},
	}

	cases := []struct {
		name      string
		input     core.CreateInvoiceInput
		wantFound bool
	}{
		{
			name:  "empty items",
			input: core.CreateInvoiceInput{CustomerID: acmeCustomerID, WarehouseID: mainWarehouseID},
		},
		{
			name: "negative paid amount",
			input: core.CreateInvoiceInput{
				CustomerID: acmeCustomerID, WarehouseID: mainWarehouseID,
				Items: oneItem, PaidAmount: decimal.NewFromInt(-1),
			},
		},
		{
			name: "paid exceeds total",
			input: core.CreateInvoiceInput{
				CustomerID: acmeCustomerID, WarehouseID: mainWarehouseID,
				Items: oneItem, PaidAmount: decimal.NewFromInt(50),
			},
		},
		{
			name: "unit mismatch with ledger",
			input: core.CreateInvoiceInput{
				CustomerID: acmeCustomerID, WarehouseID: mainWarehouseID,
				Items: []core.InvoiceItemInput{
					{ProductID: plainProductID, Quantity: decimal.NewFromInt(1), Unit: core.UnitKg, UnitPrice: decimal.NewFromInt(2)},
				},
			},
		},
		{
			name: "insufficient quantity",
			input: core.CreateInvoiceInput{
				CustomerID: acmeCustomerID, WarehouseID: mainWarehouseID,
				Items: []core.InvoiceItemInput{
					{ProductID: plainProductID, Quantity: decimal.NewFromInt(11), Unit: core.UnitYard, UnitPrice: decimal.NewFromInt(2)},
				},
			},
		},
		{
			name: "product not stocked in warehouse",
			input: core.CreateInvoiceInput{
				CustomerID: acmeCustomerID, WarehouseID: mainWarehouseID,
				Items: []core.InvoiceItemInput{
					{ProductID: twillProductID, Quantity: decimal.NewFromInt(1), Unit: core.UnitYard, UnitPrice: decimal.NewFromInt(2)},
				},
			},
		},
		{
			name: "unknown customer",
			input: core.CreateInvoiceInput{
				CustomerID: 999, WarehouseID: mainWarehouseID, Items: oneItem,
			},
			wantFound: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := invoices.Create(ctx, tc.input)
			if tc.wantFound {
				if !errorsIsNotFound(err) {
					t.Errorf("Expected NotFound, got %v", err)
				}
			} else if !errorsIsValidation(err) {
				t.Errorf("Expected validation error, got %v", err)
			}
		})
	}

	// A rejected invoice must leave stock untouched.
	entry, err := stock.GetEntry(ctx, plainProductID, mainWarehouseID)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if !entry.Quantity.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Expected stock still 10 after rejected invoices, got %s", entry.Quantity)
	}
}

func TestInvoice_MultiLineFailureDeductsNothing(t *testing.T) {
	pool, ctx := setupTestDB(t)
	defer pool.Close()
	stock := core.NewStockService(pool)
	invoices := core.NewInvoiceService(pool, stock)

	err := stock.SetWarehouseQuantities(ctx, plainProductID, []core.WarehouseQuantityInput{
		{WarehouseID: mainWarehouseID, Quantity: decimal.NewFromInt(100), Unit: core.UnitYard},
	})
	if err != nil {
		t.Fatalf("SetWarehouseQuantities failed: %v", err)
	}
	err = stock.SetWarehouseQuantities(ctx, twillProductID, []core.WarehouseQuantityInput{
		{WarehouseID: mainWarehouseID, Quantity: decimal.NewFromInt(5), Unit: core.UnitYard},
	})
	if err != nil {
		t.Fatalf("SetWarehouseQuantities failed: %v", err)
	}

	// First line would succeed on its own; the second fails availability.
	_, err = invoices.Create(ctx, core.CreateInvoiceInput{
		CustomerID:  acmeCustomerID,
		WarehouseID: mainWarehouseID,
		InvoiceDate: "2026-08-28",
		Items: []core.InvoiceItemInput{
			{ProductID: plainProductID, Quantity: decimal.NewFromInt(50), Unit: core.UnitYard, UnitPrice: decimal.NewFromInt(1)},
			{ProductID: twillProductID, Quantity: decimal.NewFromInt(6), Unit: core.UnitYard, UnitPrice: decimal.NewFromInt(1)},
		},
	})
	if !errorsIsValidation(err) {
		t.Fatalf("Expected validation error, got %v", err)
	}

	plain, _ := stock.GetEntry(ctx, plainProductID, mainWarehouseID)
	twill, _ := stock.GetEntry(ctx, twillProductID, mainWarehouseID)
	if !plain.Quantity.Equal(decimal.NewFromInt(100)) || !twill.Quantity.Equal(decimal.NewFromInt(5)) {
		t.Errorf("Expected no deduction on failed invoice, got %s and %s", plain.Quantity, twill.Quantity)
	}
}

func TestInvoice_UpdatePaidAmountReDerivesStatus(t *testing.T) {
	pool, ctx := setupTestDB(t)
	defer pool.Close()
	stock := core.NewStockService(pool)
	invoices := core.NewInvoiceService(pool, stock)

	err := stock.SetWarehouseQuantities(ctx, plainProductID, []core.WarehouseQuantityInput{
		{WarehouseID: mainWarehouseID, Quantity: decimal.NewFromInt(100), Unit: core.UnitYard},
	})
	if err != nil {
		t.Fatalf("SetWarehouseQuantities failed: %v", err)
	}

	inv, err := invoices.Create(ctx, core.CreateInvoiceInput{
		CustomerID:  acmeCustomerID,
		WarehouseID: mainWarehouseID,
		InvoiceDate: "2026-08-28",
		Items: []core.InvoiceItemInput{
			{ProductID: plainProductID, Quantity: decimal.NewFromInt(10), Unit: core.UnitYard, UnitPrice: decimal.NewFromInt(10)},
		},
		PaidAmount: decimal.NewFromInt(30),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if inv.Status != core.InvoiceStatusPending {
		t.Fatalf("Expected PENDING after partial payment, got %s", inv.Status)
	}

	paid := decimal.NewFromInt(100)
	updated, err := invoices.Update(ctx, inv.ID, core.UpdateInvoiceInput{PaidAmount: &paid})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Status != core.InvoiceStatusPaid {
		t.Errorf("Expected PAID after settling, got %s", updated.Status)
	}
	if !updated.Total.Equal(inv.Total) {
		t.Errorf("Expected total unchanged by update, got %s", updated.Total)
	}

	// Once paid, the invoice freezes.
	notes := "late note"
	if _, err = invoices.Update(ctx, inv.ID, core.UpdateInvoiceInput{Notes: &notes}); !errorsIsValidation(err) {
		t.Errorf("Expected validation error updating a paid invoice, got %v", err)
	}
	if err = invoices.Remove(ctx, inv.ID); !errorsIsValidation(err) {
		t.Errorf("Expected validation error deleting a paid invoice, got %v", err)
	}

	overpaid := decimal.NewFromInt(500)
	if _, err = invoices.Update(ctx, inv.ID, core.UpdateInvoiceInput{PaidAmount: &overpaid}); !errorsIsValidation(err) {
		t.Errorf("Expected validation error for paid > total, got %v", err)
	}
}

func TestInvoice_RemoveRestoresStock(t *testing.T) {
	pool, ctx := setupTestDB(t)
	defer pool.Close()
	stock := core.NewStockService(pool)
	invoices := core.NewInvoiceService(pool, stock)

	err := stock.SetWarehouseQuantities(ctx, plainProductID, []core.WarehouseQuantityInput{
		{WarehouseID: mainWarehouseID, Quantity: decimal.NewFromInt(100), Unit: core.UnitYard},
	})
	if err != nil {
		t.Fatalf("SetWarehouseQuantities failed: %v", err)
	}

	inv, err := invoices.Create(ctx, core.CreateInvoiceInput{
		CustomerID:  acmeCustomerID,
		WarehouseID: mainWarehouseID,
		InvoiceDate: "2026-08-28",
		Items: []core.InvoiceItemInput{
			{ProductID: plainProductID, Quantity: decimal.NewFromInt(25), Unit: core.UnitYard, UnitPrice: decimal.NewFromInt(1)},
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err = invoices.Remove(ctx, inv.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	entry, err := stock.GetEntry(ctx, plainProductID, mainWarehouseID)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if !entry.Quantity.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected stock restored to 100, got %s", entry.Quantity)
	}

	// Soft-deleted invoices vanish from reads.
	if _, err = invoices.Get(ctx, inv.ID); !errorsIsNotFound(err) {
		t.Errorf("Expected NotFound for deleted invoice, got %v", err)
	}
	if err = invoices.Remove(ctx, inv.ID); !errorsIsNotFound(err) {
		t.Errorf("Expected NotFound for repeated delete, got %v", err)
	}
}

func TestInvoice_ListFiltersByDerivedStatus(t *testing.T) {
	pool, ctx := setupTestDB(t)
	defer pool.Close()
	stock := core.NewStockService(pool)
	invoices := core.NewInvoiceService(pool, stock)

	err := stock.SetWarehouseQuantities(ctx, plainProductID, []core.WarehouseQuantityInput{
		{WarehouseID: mainWarehouseID, Quantity: decimal.NewFromInt(100), Unit: core.UnitYard},
	})
	if err != nil {
		t.Fatalf("SetWarehouseQuantities failed: %v", err)
	}

	mkInvoice := func(qty, paid int64) *core.Invoice {
		inv, err := invoices.Create(ctx, core.CreateInvoiceInput{
			CustomerID:  acmeCustomerID,
			WarehouseID: mainWarehouseID,
			InvoiceDate: "2026-08-28",
			Items: []core.InvoiceItemInput{
				{ProductID: plainProductID, Quantity: decimal.NewFromInt(qty), Unit: core.UnitYard, UnitPrice: decimal.NewFromInt(1)},
			},
			PaidAmount: decimal.NewFromInt(paid),
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		return inv
	}
	mkInvoice(10, 10) // paid
	mkInvoice(10, 0)  // pending
	mkInvoice(10, 3)  // pending

	paid := core.InvoiceStatusPaid
	got, err := invoices.List(ctx, &paid)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("Expected 1 paid invoice, got %d", len(got))
	}

	pending := core.InvoiceStatusPending
	got, err = invoices.List(ctx, &pending)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 pending invoices, got %d", len(got))
	}

	got, err = invoices.List(ctx, nil)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Expected 3 invoices unfiltered, got %d", len(got))
	}
}
