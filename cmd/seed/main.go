// seed is a one-shot tool to load demo master data into an empty database.
// Safe to re-run: it skips anything that already exists.
//
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"log"

	"fabric-inventory/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	log.Println("Seeding warehouses...")
	_, err = tx.Exec(ctx, `
		INSERT INTO warehouses (name, location) VALUES
		('Main Warehouse', 'Yangon'),
		('Mandalay Branch', 'Mandalay')
		ON CONFLICT (name) DO NOTHING;
	`)
	if err != nil {
		log.Fatalf("Failed to seed warehouses: %v", err)
	}

	log.Println("Seeding fabrics and colors...")
	_, err = tx.Exec(ctx, `
		INSERT INTO fabrics (name) VALUES
		('Cotton'), ('Linen'), ('Silk'), ('Polyester')
		ON CONFLICT (name) DO NOTHING;

		INSERT INTO colors (name, hex_code) VALUES
		('White',  '#FFFFFF'),
		('Black',  '#000000'),
		('Indigo', '#264A7A'),
		('Crimson','#9E2B25')
		ON CONFLICT (name) DO NOTHING;
	`)
	if err != nil {
		log.Fatalf("Failed to seed fabrics and colors: %v", err)
	}

	log.Println("Seeding customers...")
	_, err = tx.Exec(ctx, `
		INSERT INTO customers (name, email, phone, address) VALUES
		('Golden Thread Tailors', 'orders@goldenthread.example', '+95-9790000001', 'Yangon'),
		('Shwe Fabric House',     'purchasing@shwefabric.example', '+95-9790000002', 'Mandalay')
		ON CONFLICT (name) DO NOTHING;
	`)
	if err != nil {
		log.Fatalf("Failed to seed customers: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit seed: %v", err)
	}
	log.Println("Seed complete.")
}
