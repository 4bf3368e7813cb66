package repos

import (
	"github.com/jmoiron/sqlx"

	"altindan/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT id, name_uz, name_ru, price, image FROM products ORDER BY id`)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT id, name_uz, name_ru, price, image FROM products WHERE id = ?`, id)
	return p, err
}

// Upsert is the catalog write path. It is not wired to any public route;
// seeding and admin tooling call it directly.
func (r *ProductRepo) Upsert(p domain.Product) error {
	_, err := r.db.NamedExec(`
	  INSERT INTO products(id, name_uz, name_ru, price, image)
	  VALUES(:id, :name_uz, :name_ru, :price, :image)
	  ON CONFLICT(id) DO UPDATE SET
	    name_uz = excluded.name_uz,
	    name_ru = excluded.name_ru,
	    price   = excluded.price,
	    image   = excluded.image
	`, p)
	return err
}
