package repos

import (
	"encoding/json"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"altindan/internal/domain"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection is the write serialization point shared by the web
	// handlers and the bot goroutine.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
-- Catalog
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name_uz TEXT NOT NULL,
  name_ru TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price >= 0),
  image TEXT NOT NULL DEFAULT ''
);

-- Orders are append-only: no UPDATE or DELETE path exists anywhere in the
-- codebase. seq fixes insertion order for listing.
CREATE TABLE IF NOT EXISTS orders(
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  price NUMERIC NOT NULL,
  qty TEXT NOT NULL,
  customer_name TEXT NOT NULL,
  customer_phone TEXT NOT NULL DEFAULT '',
  note TEXT NOT NULL DEFAULT '',
  lang TEXT NOT NULL DEFAULT 'ru',
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);
`
	_, err := db.Exec(schema)
	return err
}

// SeedCatalog populates the product catalog on first start. A catalog file
// (same shape as the legacy products.json) wins over the built-in defaults;
// an already-populated table is left alone.
func SeedCatalog(db *sqlx.DB, productsFile string) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	prods := defaultProducts()
	if productsFile != "" {
		if raw, err := os.ReadFile(productsFile); err == nil {
			var fromFile []domain.Product
			if err := json.Unmarshal(raw, &fromFile); err != nil {
				log.Printf("[seed] bad catalog file %s: %v", productsFile, err)
			} else if len(fromFile) > 0 {
				prods = fromFile
			}
		}
	}

	log.Printf("[seed] inserting %d catalog products", len(prods))

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, p := range prods {
		if _, err := tx.NamedExec(`
			INSERT INTO products(id,name_uz,name_ru,price,image)
			VALUES(:id,:name_uz,:name_ru,:price,:image)
		`, p); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func defaultProducts() []domain.Product {
	return []domain.Product{
		{ID: "p1", NameUz: "Chuchvara 1kg", NameRu: "Чучвара 1кг", Price: 20000, Image: "p1.jpg"},
		{ID: "p2", NameUz: "Manty 1kg", NameRu: "Манты 1кг", Price: 25000, Image: "p2.jpg"},
	}
}
