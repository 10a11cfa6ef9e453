// seed inserts an admin user, demo products, an announcement and a feed
// post into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"storefront/internal/infrastructure/postgres"
)

const adminEmail = "admin@test.local"

type seedProduct struct {
	slug     string
	name     string
	price    int64
	category string
}

var products = []seedProduct{
	{"oak-dining-chair", "Oak Dining Chair", 14900, "chairs"},
	{"oak-dining-table", "Oak Dining Table", 89900, "tables"},
	{"walnut-bookshelf", "Walnut Bookshelf", 45900, "storage"},
	{"linen-sofa", "Linen Sofa", 129900, "sofas"},
	{"pine-bed-frame", "Pine Bed Frame", 69900, "beds"},
	{"ceramic-table-lamp", "Ceramic Table Lamp", 8900, "lighting"},
	{"wool-area-rug", "Wool Area Rug", 24900, "rugs"},
	{"marble-side-table", "Marble Side Table", 34900, "tables"},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	// Upsert the admin user with its profile.
	var adminID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (email, role)
		VALUES ($1, 'admin')
		ON CONFLICT (email) DO UPDATE SET role = 'admin', updated_at = NOW()
		RETURNING id`,
		adminEmail,
	).Scan(&adminID)
	if err != nil {
		log.Fatalf("upsert admin: %v", err)
	}
	if _, err = pool.Exec(ctx, `
		INSERT INTO profiles (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING`,
		adminID,
	); err != nil {
		log.Fatalf("upsert admin profile: %v", err)
	}

	inserted := 0
	for _, p := range products {
		tag, err := pool.Exec(ctx, `
			INSERT INTO products (slug, name, description, price_cents, category, published)
			VALUES ($1, $2, 'Demo item seeded for local development.', $3, $4, TRUE)
			ON CONFLICT (slug) DO NOTHING`,
			p.slug, p.name, p.price, p.category,
		)
		if err != nil {
			log.Fatalf("insert product %s: %v", p.slug, err)
		}
		inserted += int(tag.RowsAffected())
	}

	if _, err = pool.Exec(ctx, `
		INSERT INTO announcements (title, body)
		SELECT 'Summer sale', '20% off all tables this week.'
		WHERE NOT EXISTS (SELECT 1 FROM announcements)`,
	); err != nil {
		log.Fatalf("insert announcement: %v", err)
	}

	if _, err = pool.Exec(ctx, `
		INSERT INTO posts (title, body)
		SELECT 'Welcome to the shop', 'Follow this feed for new arrivals.'
		WHERE NOT EXISTS (SELECT 1 FROM posts)`,
	); err != nil {
		log.Fatalf("insert post: %v", err)
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  Admin:            %s\n", adminEmail)
	fmt.Printf("  Admin ID:         %s\n", adminID)
	fmt.Printf("  Products created: %d  (skipped %d already existing)\n", inserted, len(products)-inserted)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — sign in with the deterministic OTP (ENV=local, OTP_DETERMINISTIC=true):")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/auth/request-otp \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\"}'\n", adminEmail)
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/auth/verify-otp \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"code\":\"123456\"}'\n", adminEmail)
	fmt.Println("    # → {\"ok\":true,\"token\":\"eyJ...\"}")
	fmt.Println()
	fmt.Println("  Step 2 — browse the catalog:")
	fmt.Println()
	fmt.Println("    curl -s 'http://localhost:8080/products?category=tables'")
	fmt.Println("    curl -s http://localhost:8080/products/oak-dining-table")
	fmt.Println()
	fmt.Println("  Step 3 — admin endpoints:")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Println("    curl -s http://localhost:8080/admin/customers -H \"Authorization: Bearer $JWT\"")
	fmt.Println("    curl -s http://localhost:8080/admin/customers/export -H \"Authorization: Bearer $JWT\"")
}
