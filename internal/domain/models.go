package domain

type Product struct {
	ID     string `db:"id" json:"id"`
	NameUz string `db:"name_uz" json:"name_uz"`
	NameRu string `db:"name_ru" json:"name_ru"`
	Price  int64  `db:"price" json:"price"`
	Image  string `db:"image" json:"image"`
}

// Name returns the display name for lang ("uz" or "ru"), falling back to
// Russian when the requested localization is missing.
func (p Product) Name(lang string) string {
	if lang == "uz" && p.NameUz != "" {
		return p.NameUz
	}
	return p.NameRu
}

// Order is an immutable record of one purchase request. ProductName and
// Price are snapshots taken at submission time; later catalog edits never
// touch them. Qty keeps the submitted text, so records with a non-numeric
// quantity survive storage and are skipped by the report instead of
// breaking it.
type Order struct {
	Seq         int64  `db:"seq" json:"-"`
	ID          string `db:"id" json:"id"`
	ProductID   string `db:"product_id" json:"product_id"`
	ProductName string `db:"product_name" json:"product_name"`
	Price       int64  `db:"price" json:"price"`
	Qty         string `db:"qty" json:"qty"`
	Customer    string `db:"customer_name" json:"customer_name"`
	Phone       string `db:"customer_phone" json:"customer_phone"`
	Note        string `db:"note" json:"note"`
	Lang        string `db:"lang" json:"lang"`
	CreatedAt   string `db:"created_at" json:"created_at"`
}
