// Package dbtest opens throwaway sqlite databases carrying the storefront schema.
package dbtest

import (
	"fmt"
	"io"
	"log"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/angelmondragon/storefront-backend/pkg/db"
)

// sqlite mirror of pkg/migrate/migrations.
var schema = []string{
	`CREATE TABLE products (
		id TEXT PRIMARY KEY,
		sku TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		description TEXT,
		category TEXT NOT NULL,
		price_cents INTEGER NOT NULL,
		compare_at_cents INTEGER,
		stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
		images TEXT NOT NULL DEFAULT '[]',
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE variants (
		id TEXT PRIMARY KEY,
		product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		sku TEXT NOT NULL UNIQUE,
		color TEXT,
		size TEXT,
		price_cents INTEGER NOT NULL,
		stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
		images TEXT NOT NULL DEFAULT '[]',
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE customers (
		id TEXT PRIMARY KEY,
		phone TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		address TEXT NOT NULL,
		city TEXT,
		total_orders INTEGER NOT NULL DEFAULT 0,
		total_spent_cents INTEGER NOT NULL DEFAULT 0,
		tags TEXT NOT NULL DEFAULT '[]',
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE orders (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL REFERENCES customers(id),
		items TEXT NOT NULL,
		subtotal_cents INTEGER NOT NULL,
		tax_cents INTEGER NOT NULL DEFAULT 0,
		shipping_cents INTEGER NOT NULL DEFAULT 0,
		total_cents INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		payment_method TEXT NOT NULL DEFAULT 'cod',
		customer_notes TEXT,
		admin_notes TEXT,
		refund_reason TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE admin_notifications (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		title TEXT NOT NULL,
		message TEXT NOT NULL,
		link TEXT,
		order_id TEXT,
		variant_id TEXT,
		read_at DATETIME,
		created_at DATETIME
	)`,
	`CREATE TABLE admin_users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		last_login_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE admin_activity (
		id TEXT PRIMARY KEY,
		admin_id TEXT,
		action TEXT NOT NULL,
		entity_type TEXT NOT NULL,
		entity_id TEXT,
		summary TEXT NOT NULL,
		created_at DATETIME
	)`,
	`CREATE TABLE hero_slides (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		subtitle TEXT,
		image_url TEXT NOT NULL,
		link_url TEXT,
		position INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE fashion_carousel_items (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		subtitle TEXT,
		image_url TEXT NOT NULL,
		link_url TEXT,
		position INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE collection_stacks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		subtitle TEXT,
		image_url TEXT NOT NULL,
		category TEXT,
		link_url TEXT,
		position INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME
	)`,
}

// Open returns a GORM handle on a fresh in-memory database with every table created.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:storefront_%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		NowFunc:                func() time.Time { return time.Now().UTC() },
		Logger:                 gormlogger.New(log.New(io.Discard, "", 0), gormlogger.Config{LogLevel: gormlogger.Silent}),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	for _, stmt := range schema {
		if err := conn.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return conn
}

// Client wraps Open in the shared db.Client.
func Client(t testing.TB) *db.Client {
	t.Helper()
	return db.Wrap(Open(t))
}
