package repos

import (
	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id, name, description, category, price, rating, image`

// All returns every product in load (id) order.
func (r *ProductRepo) All() ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products ORDER BY id`)
	return out, err
}

func (r *ProductRepo) Get(id int) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

// Upsert inserts or replaces a product row.
func (r *ProductRepo) Upsert(p domain.Product) error {
	_, err := r.db.NamedExec(`
		INSERT INTO products(id,name,description,category,price,rating,image)
		VALUES(:id,:name,:description,:category,:price,:rating,:image)
		ON CONFLICT(id) DO UPDATE SET
		  name = excluded.name,
		  description = excluded.description,
		  category = excluded.category,
		  price = excluded.price,
		  rating = excluded.rating,
		  image = excluded.image
	`, p)
	return err
}
