package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// CreateProductInput creates a fabric variant and stocks it. Weight and
// WeightUnit feed the legacy single-unit path; Quantities feed the warehouse
// ledger through the stock service.
type CreateProductInput struct {
	Name       string                   `json:"name"`
	FabricID   int                      `json:"fabric_id"`
	ColorID    int                      `json:"color_id"`
	Weight     decimal.Decimal          `json:"weight"`
	WeightUnit Unit                     `json:"weight_unit"`
	Quantities []WarehouseQuantityInput `json:"quantities"`
}

// DirectoryService is the master-data layer: plain lookups and inserts the
// engines use for existence checks. Product writes are the exception: they
// drive the stock ledger within the same transaction.
type DirectoryService interface {
	CreateCustomer(ctx context.Context, name, email, phone, address string) (*Customer, error)
	GetCustomer(ctx context.Context, id int) (*Customer, error)
	GetCustomers(ctx context.Context) ([]Customer, error)

	CreateWarehouse(ctx context.Context, name, location string) (*Warehouse, error)
	GetWarehouse(ctx context.Context, id int) (*Warehouse, error)
	GetWarehouses(ctx context.Context) ([]Warehouse, error)

	CreateFabric(ctx context.Context, name string) (*Fabric, error)
	GetFabrics(ctx context.Context) ([]Fabric, error)
	CreateColor(ctx context.Context, name, hexCode string) (*Color, error)
	GetColors(ctx context.Context) ([]Color, error)

	CreateProduct(ctx context.Context, input CreateProductInput) (*Product, error)
	// UpdateProduct rewrites the product fields and strictly replaces its
	// warehouse quantities with input.Quantities (empty set unstocks it).
	UpdateProduct(ctx context.Context, id int, input CreateProductInput) (*Product, error)
	GetProduct(ctx context.Context, id int) (*Product, error)
	GetProducts(ctx context.Context) ([]Product, error)
}

type directoryService struct {
	pool            *pgxpool.Pool
	stock           StockService
	weightConverter UnitConversion
}

func NewDirectoryService(pool *pgxpool.Pool, stock StockService) DirectoryService {
	return &directoryService{
		pool:            pool,
		stock:           stock,
		weightConverter: NewStandardUnitConverter(),
	}
}

// ── Customers ────────────────────────────────────────────────────────────────

func (s *directoryService) CreateCustomer(ctx context.Context, name, email, phone, address string) (*Customer, error) {
	var c Customer
	err := s.pool.QueryRow(ctx, `
		INSERT INTO customers (name, email, phone, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(address, ''), created_at
	`, name, email, phone, address).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, conflictf("customer %q already exists", name)
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return &c, nil
}

func (s *directoryService) GetCustomer(ctx context.Context, id int) (*Customer, error) {
	var c Customer
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(address, ''), created_at
		FROM customers WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFoundf("customer %d", id)
		}
		return nil, fmt.Errorf("failed to fetch customer %d: %w", id, err)
	}
	return &c, nil
}

func (s *directoryService) GetCustomers(ctx context.Context) ([]Customer, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(address, ''), created_at
		FROM customers ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, nil
}

// ── Warehouses ───────────────────────────────────────────────────────────────

func (s *directoryService) CreateWarehouse(ctx context.Context, name, location string) (*Warehouse, error) {
	var w Warehouse
	err := s.pool.QueryRow(ctx, `
		INSERT INTO warehouses (name, location)
		VALUES ($1, $2)
		RETURNING id, name, COALESCE(location, ''), is_active, created_at
	`, name, location).Scan(&w.ID, &w.Name, &w.Location, &w.IsActive, &w.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, conflictf("warehouse %q already exists", name)
		}
		return nil, fmt.Errorf("failed to create warehouse: %w", err)
	}
	return &w, nil
}

func (s *directoryService) GetWarehouse(ctx context.Context, id int) (*Warehouse, error) {
	var w Warehouse
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, COALESCE(location, ''), is_active, created_at
		FROM warehouses WHERE id = $1
	`, id).Scan(&w.ID, &w.Name, &w.Location, &w.IsActive, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFoundf("warehouse %d", id)
		}
		return nil, fmt.Errorf("failed to fetch warehouse %d: %w", id, err)
	}
	return &w, nil
}

func (s *directoryService) GetWarehouses(ctx context.Context) ([]Warehouse, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, COALESCE(location, ''), is_active, created_at
		FROM warehouses WHERE is_active = true ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query warehouses: %w", err)
	}
	defer rows.Close()

	var warehouses []Warehouse
	for rows.Next() {
		var w Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Location, &w.IsActive, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan warehouse: %w", err)
		}
		warehouses = append(warehouses, w)
	}
	return warehouses, nil
}

// ── Fabrics and colors ───────────────────────────────────────────────────────

func (s *directoryService) CreateFabric(ctx context.Context, name string) (*Fabric, error) {
	var f Fabric
	err := s.pool.QueryRow(ctx,
		"INSERT INTO fabrics (name) VALUES ($1) RETURNING id, name, created_at", name,
	).Scan(&f.ID, &f.Name, &f.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, conflictf("fabric %q already exists", name)
		}
		return nil, fmt.Errorf("failed to create fabric: %w", err)
	}
	return &f, nil
}

func (s *directoryService) GetFabrics(ctx context.Context) ([]Fabric, error) {
	rows, err := s.pool.Query(ctx, "SELECT id, name, created_at FROM fabrics ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query fabrics: %w", err)
	}
	defer rows.Close()

	var fabrics []Fabric
	for rows.Next() {
		var f Fabric
		if err := rows.Scan(&f.ID, &f.Name, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fabric: %w", err)
		}
		fabrics = append(fabrics, f)
	}
	return fabrics, nil
}

func (s *directoryService) CreateColor(ctx context.Context, name, hexCode string) (*Color, error) {
	var c Color
	err := s.pool.QueryRow(ctx,
		"INSERT INTO colors (name, hex_code) VALUES ($1, $2) RETURNING id, name, COALESCE(hex_code, ''), created_at",
		name, hexCode,
	).Scan(&c.ID, &c.Name, &c.HexCode, &c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, conflictf("color %q already exists", name)
		}
		return nil, fmt.Errorf("failed to create color: %w", err)
	}
	return &c, nil
}

func (s *directoryService) GetColors(ctx context.Context) ([]Color, error) {
	rows, err := s.pool.Query(ctx, "SELECT id, name, COALESCE(hex_code, ''), created_at FROM colors ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query colors: %w", err)
	}
	defer rows.Close()

	var colors []Color
	for rows.Next() {
		var c Color
		if err := rows.Scan(&c.ID, &c.Name, &c.HexCode, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan color: %w", err)
		}
		colors = append(colors, c)
	}
	return colors, nil
}

// ── Products ─────────────────────────────────────────────────────────────────

func (s *directoryService) CreateProduct(ctx context.Context, input CreateProductInput) (*Product, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.checkFabricAndColor(ctx, tx, input.FabricID, input.ColorID); err != nil {
		return nil, err
	}

	// Legacy intake path: the single weight field is normalized through the
	// broad length/weight table, not the ledger's three-rule converter.
	weight := s.weightConverter.Convert(input.Weight, input.WeightUnit)

	var productID int
	err = tx.QueryRow(ctx, `
		INSERT INTO products (name, fabric_id, color_id, weight, weight_unit)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, input.Name, input.FabricID, input.ColorID, weight.Value, weight.Unit).Scan(&productID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, conflictf("product %q already exists", input.Name)
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	if err := s.stock.SetWarehouseQuantitiesTx(ctx, tx, productID, input.Quantities); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit product creation: %w", err)
	}
	return s.GetProduct(ctx, productID)
}

func (s *directoryService) UpdateProduct(ctx context.Context, id int, input CreateProductInput) (*Product, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.checkFabricAndColor(ctx, tx, input.FabricID, input.ColorID); err != nil {
		return nil, err
	}

	weight := s.weightConverter.Convert(input.Weight, input.WeightUnit)

	tag, err := tx.Exec(ctx, `
		UPDATE products
		SET name = $1, fabric_id = $2, color_id = $3, weight = $4, weight_unit = $5
		WHERE id = $6
	`, input.Name, input.FabricID, input.ColorID, weight.Value, weight.Unit, id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, conflictf("product %q already exists", input.Name)
		}
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, notFoundf("product %d", id)
	}

	if err := s.stock.ReplaceWarehouseQuantitiesTx(ctx, tx, id, input.Quantities); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit product update: %w", err)
	}
	return s.GetProduct(ctx, id)
}

func (s *directoryService) checkFabricAndColor(ctx context.Context, q pgxQuerier, fabricID, colorID int) error {
	var id int
	if err := q.QueryRow(ctx, "SELECT id FROM fabrics WHERE id = $1", fabricID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFoundf("fabric %d", fabricID)
		}
		return fmt.Errorf("failed to resolve fabric %d: %w", fabricID, err)
	}
	if err := q.QueryRow(ctx, "SELECT id FROM colors WHERE id = $1", colorID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFoundf("color %d", colorID)
		}
		return fmt.Errorf("failed to resolve color %d: %w", colorID, err)
	}
	return nil
}

func (s *directoryService) GetProduct(ctx context.Context, id int) (*Product, error) {
	var p Product
	err := s.pool.QueryRow(ctx, `
		SELECT p.id, p.name, p.fabric_id, f.name, p.color_id, c.name, p.weight, p.weight_unit, p.created_at
		FROM products p
		JOIN fabrics f ON f.id = p.fabric_id
		JOIN colors c  ON c.id = p.color_id
		WHERE p.id = $1
	`, id).Scan(&p.ID, &p.Name, &p.FabricID, &p.FabricName, &p.ColorID, &p.ColorName, &p.Weight, &p.WeightUnit, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFoundf("product %d", id)
		}
		return nil, fmt.Errorf("failed to fetch product %d: %w", id, err)
	}
	return &p, nil
}

func (s *directoryService) GetProducts(ctx context.Context) ([]Product, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT p.id, p.name, p.fabric_id, f.name, p.color_id, c.name, p.weight, p.weight_unit, p.created_at
		FROM products p
		JOIN fabrics f ON f.id = p.fabric_id
		JOIN colors c  ON c.id = p.color_id
		ORDER BY p.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.FabricID, &p.FabricName, &p.ColorID, &p.ColorName, &p.Weight, &p.WeightUnit, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, nil
}
