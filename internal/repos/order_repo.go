package repos

import (
	"github.com/jmoiron/sqlx"

	"altindan/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// Append inserts a new order. There is no update or delete counterpart.
func (r *OrderRepo) Append(o domain.Order) error {
	_, err := r.db.NamedExec(`
	  INSERT INTO orders
	    (id, product_id, product_name, price, qty, customer_name, customer_phone, note, lang, created_at)
	  VALUES
	    (:id, :product_id, :product_name, :price, :qty, :customer_name, :customer_phone, :note, :lang, :created_at)
	`, o)
	return err
}

// ListAll returns every stored order in insertion order.
func (r *OrderRepo) ListAll() ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT seq, id, product_id, product_name, price, qty, customer_name, customer_phone, note, lang, created_at
	  FROM orders
	  ORDER BY seq
	`)
	return out, err
}

func (r *OrderRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM orders`)
	return n, err
}
