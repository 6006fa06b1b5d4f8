package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/danuartha/go-commerce-api/config"
	"github.com/danuartha/go-commerce-api/pkg/helpers"
)

// seed provisions an admin account and a starter catalog for local
// development. Safe to run repeatedly.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@example.com"
	password := "admin123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var adminID string
	err = db.QueryRow(`
		INSERT INTO users (name, email, password, role)
		VALUES ($1, $2, $3, 'admin')
		ON CONFLICT (email) DO UPDATE SET role = 'admin'
		RETURNING id
	`, "Admin", email, hash).Scan(&adminID)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s password=%s\n", adminID, email, password)

	var catID string
	err = db.QueryRow(`
		INSERT INTO categories (name, slug, description)
		VALUES ('Electronics', 'electronics', 'Phones, laptops and accessories')
		ON CONFLICT (slug) DO UPDATE SET updated_at = now()
		RETURNING id
	`).Scan(&catID)
	if err != nil {
		log.Fatalf("failed to seed category: %v", err)
	}

	if _, err := db.Exec(`
		INSERT INTO brands (name, slug, description)
		VALUES ('Acme', 'acme', 'House brand')
		ON CONFLICT (slug) DO NOTHING
	`); err != nil {
		log.Fatalf("failed to seed brand: %v", err)
	}

	products := []struct {
		name, sku string
		price     string
		stock     int
	}{
		{"Acme Phone X", "ACME-PHONE-X", "599.00", 25},
		{"Acme Laptop 14", "ACME-LAPTOP-14", "1099.00", 10},
		{"Acme Earbuds", "ACME-EARBUDS", "79.90", 100},
	}
	for _, p := range products {
		if _, err := db.Exec(`
			INSERT INTO products (name, description, price, sku, category_id, stock, brand)
			VALUES ($1, $2, $3, $4, $5, $6, 'Acme')
			ON CONFLICT (sku) DO NOTHING
		`, p.name, p.name+" by Acme", p.price, p.sku, catID, p.stock); err != nil {
			log.Fatalf("failed to seed product %s: %v", p.sku, err)
		}
	}
	fmt.Printf("seeded starter catalog under category id=%s\n", catID)
}
