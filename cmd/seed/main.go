// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"quarryledger/internal/core/id"
	"quarryledger/internal/core/security"
	"quarryledger/internal/infrastructure/storage/postgres"
	"quarryledger/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	adminID, err := seedAdminUser(ctx, pool, log)
	if err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log, adminID); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) (id.ID, error) {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@quarryledger.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	var existingID id.ID
	err := pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return existingID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return id.Nil(), fmt.Errorf("check admin exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return id.Nil(), fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	now := time.Now().UTC()

	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, 'Administrator', $2, $3, $4, true, $5, $5)
	`, userID, adminEmail, string(passwordHash), string(security.RoleAdmin), now)
	if err != nil {
		return id.Nil(), fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created", "email", adminEmail, "user_id", userID)
	return userID, nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger, adminID id.ID) error {
	log.Info("seeding demo data...")

	now := time.Now().UTC()

	// 1. Products: the granite grades and aggregate sizes sold from
	// every site.
	products := []struct {
		name        string
		description string
	}{
		{"Granite Boulders", "Rough blast boulders, ungraded"},
		{"3/4 Aggregate", "Crushed stone, 19mm nominal size"},
		{"3/8 Aggregate", "Crushed stone, 10mm nominal size"},
		{"Quarry Dust", "Fine screenings for block making"},
		{"Hardcore", "Oversize fill material"},
	}

	productIDs := make(map[string]id.ID)
	for _, p := range products {
		var prodID id.ID
		err := pool.QueryRow(ctx,
			`SELECT id FROM products WHERE name = $1 AND NOT is_deleted`, p.name,
		).Scan(&prodID)
		if err == nil {
			productIDs[p.name] = prodID
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Warnw("failed to check product", "name", p.name, "error", err)
			continue
		}

		prodID = id.New()
		_, err = pool.Exec(ctx, `
			INSERT INTO products (id, name, description, created_by, created_by_name, created_at, is_deleted)
			VALUES ($1, $2, $3, $4, 'Administrator', $5, false)
		`, prodID, p.name, p.description, adminID.String(), now)
		if err != nil {
			log.Warnw("failed to seed product", "name", p.name, "error", err)
			continue
		}
		productIDs[p.name] = prodID
	}

	// 2. Quarries. No owner set, so every clerk sees them.
	quarries := []struct {
		name     string
		location string
	}{
		{"Hilltop Quarry", "Km 12, Northern Bypass"},
		{"Riverside Pit", "Old Mill Road, East Bank"},
	}

	quarryIDs := make(map[string]id.ID)
	for _, q := range quarries {
		var quarryID id.ID
		err := pool.QueryRow(ctx,
			`SELECT id FROM quarries WHERE name = $1`, q.name,
		).Scan(&quarryID)
		if err == nil {
			quarryIDs[q.name] = quarryID
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Warnw("failed to check quarry", "name", q.name, "error", err)
			continue
		}

		quarryID = id.New()
		_, err = pool.Exec(ctx, `
			INSERT INTO quarries (id, name, location, owner_id, owner_name)
			VALUES ($1, $2, $3, '', '')
		`, quarryID, q.name, q.location)
		if err != nil {
			log.Warnw("failed to seed quarry", "name", q.name, "error", err)
			continue
		}
		quarryIDs[q.name] = quarryID
	}

	// 3. Starting price sheet for the first quarry.
	rates := []struct {
		product string
		price   string
	}{
		{"Granite Boulders", "1500.00"},
		{"3/4 Aggregate", "2200.00"},
		{"3/8 Aggregate", "2400.00"},
		{"Quarry Dust", "800.00"},
	}

	if quarryID, ok := quarryIDs["Hilltop Quarry"]; ok {
		for _, r := range rates {
			productID, ok := productIDs[r.product]
			if !ok {
				continue
			}
			_, err := pool.Exec(ctx, `
				INSERT INTO quarry_prices (quarry_id, product_id, price, updated_by, updated_by_name, updated_at)
				VALUES ($1, $2, $3, $4, 'Administrator', $5)
				ON CONFLICT (quarry_id, product_id) DO NOTHING
			`, quarryID, productID, r.price, adminID.String(), now)
			if err != nil {
				log.Warnw("failed to seed price", "product", r.product, "error", err)
			}
		}
	}

	// 4. A couple of customers for the demo ledger.
	customers := []struct {
		name  string
		phone string
	}{
		{"Apex Construction Ltd", "+254700000001"},
		{"J. Mwangi Hardware", "+254700000002"},
	}

	for _, c := range customers {
		var existing id.ID
		err := pool.QueryRow(ctx,
			`SELECT id FROM customers WHERE phone = $1`, c.phone,
		).Scan(&existing)
		if err == nil {
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Warnw("failed to check customer", "name", c.name, "error", err)
			continue
		}

		_, err = pool.Exec(ctx, `
			INSERT INTO customers (id, name, phone, email, transaction_count, created_by, created_by_name, created_at)
			VALUES ($1, $2, $3, '', 0, $4, 'Administrator', $5)
		`, id.New(), c.name, c.phone, adminID.String(), now)
		if err != nil {
			log.Warnw("failed to seed customer", "name", c.name, "error", err)
		}
	}

	log.Info("demo data seeded successfully")
	return nil
}
