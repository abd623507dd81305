// Package store persists the catalog, coupons, and carts in sqlite.
package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"storefront/internal/models"
)

const defaultCacheSize = 256

const schema = `
CREATE TABLE IF NOT EXISTS products(
  id           TEXT PRIMARY KEY,
  name         TEXT NOT NULL,
  price        INTEGER NOT NULL DEFAULT 0,
  stock        INTEGER NOT NULL DEFAULT 0,
  created_unix INTEGER NOT NULL DEFAULT (strftime('%s','now'))
);
CREATE TABLE IF NOT EXISTS product_discounts(
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  threshold  INTEGER NOT NULL,
  rate       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_discounts_product ON product_discounts(product_id);
CREATE TABLE IF NOT EXISTS coupons(
  code           TEXT PRIMARY KEY,
  name           TEXT NOT NULL,
  discount_type  TEXT NOT NULL,
  discount_value INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS carts(
  token        TEXT PRIMARY KEY,
  coupon_code  TEXT,
  updated_unix INTEGER NOT NULL DEFAULT (strftime('%s','now'))
);
CREATE TABLE IF NOT EXISTS cart_items(
  cart_token TEXT NOT NULL REFERENCES carts(token) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  qty        INTEGER NOT NULL,
  position   INTEGER NOT NULL,
  PRIMARY KEY(cart_token, product_id)
);
`

// Store wraps the sqlite handle plus a small read cache for products.
type Store struct {
	db    *sqlx.DB
	cache *lru.Cache[string, models.Product]
}

// Open connects to the sqlite file at path (":memory:" works for
// tests), runs migrations, and sizes the product read cache.
func Open(path string, cacheSize int) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && !strings.HasPrefix(path, ":memory:") {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	// busy_timeout avoids "database is locked" under WAL
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		db.Close()
		return nil, err
	}

	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New[string, models.Product](cacheSize)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, cache: cache}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }
