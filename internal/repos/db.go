package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	applog "storefront/internal/log"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	// :memory: databases are per connection
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("ping %s: %w", dsn, err)
	}

	if err := ensureSchema(db); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	// Seed the demo catalog (idempotent; safe to run every start)
	if err := seedProducts(db); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL,
  price TEXT NOT NULL,            -- decimal string, e.g. '99.99'
  rating REAL NOT NULL DEFAULT 0 CHECK (rating >= 0 AND rating <= 5),
  image TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
`
	_, err := db.Exec(schema)
	return err
}

func seedProducts(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	applog.L().Info("seed.products", zap.Int("count", 6))

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`INSERT INTO products(id,name,description,category,price,rating,image) VALUES
	  (1,'Wireless Headphones','High-quality wireless headphones with noise cancellation','Electronics','99.99',4.5,'https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=300&h=300&fit=crop'),
	  (2,'Coffee Maker','Premium coffee maker with programmable settings','Appliances','149.99',4.3,'https://images.unsplash.com/photo-1559056199-641a0ac8b55e?w=300&h=300&fit=crop'),
	  (3,'Running Shoes','Comfortable running shoes for daily workouts','Sports','79.99',4.7,'https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=300&h=300&fit=crop'),
	  (4,'Smartphone','Latest smartphone with advanced camera features','Electronics','699.99',4.6,'https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=300&h=300&fit=crop'),
	  (5,'Desk Lamp','Modern LED desk lamp with adjustable brightness','Home','39.99',4.2,'https://images.unsplash.com/photo-1507473885765-e6ed057f782c?w=300&h=300&fit=crop'),
	  (6,'Backpack','Durable backpack perfect for travel and daily use','Fashion','59.99',4.4,'https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=300&h=300&fit=crop')
	  ON CONFLICT(id) DO NOTHING`); err != nil {
		return err
	}
	return tx.Commit()
}
