package repos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type InventoryRepo struct{ db *sqlx.DB }

func NewInventoryRepo(db *sqlx.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// InventoryRow backs the admin stock table.
type InventoryRow struct {
	ProductID string `db:"product_id" json:"productId"`
	Title     string `db:"title" json:"title"`
	Category  string `db:"category" json:"category"`
	InStock   bool   `db:"in_stock" json:"inStock"`
}

func (r *InventoryRepo) ListAll(ctx context.Context) ([]InventoryRow, error) {
	var rows []InventoryRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id AS product_id, title, category, in_stock
		FROM products
		ORDER BY title`)
	return rows, errors.Wrap(err, "list inventory")
}

// InStock reports the stock flag; unknown products return ErrProductNotFound.
func (r *InventoryRepo) InStock(ctx context.Context, productID string) (bool, error) {
	var in bool
	err := r.db.GetContext(ctx, &in, `SELECT in_stock FROM products WHERE id = ?`, productID)
	if err != nil {
		return false, errors.Wrapf(notFound(err, ErrProductNotFound), "stock %s", productID)
	}
	return in, nil
}

// OutOfStock returns which of ids are currently not sellable. Unknown ids
// count as out of stock.
func (r *InventoryRepo) OutOfStock(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q, args, err := sqlx.In(`SELECT id FROM products WHERE id IN (?) AND in_stock = 1`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "build stock query")
	}
	var ok []string
	if err := r.db.SelectContext(ctx, &ok, q, args...); err != nil {
		return nil, errors.Wrap(err, "check stock")
	}
	have := make(map[string]bool, len(ok))
	for _, id := range ok {
		have[id] = true
	}
	var out []string
	seen := map[string]bool{}
	for _, id := range ids {
		if !have[id] && !seen[id] {
			out = append(out, id)
			seen[id] = true
		}
	}
	return out, nil
}

func (r *InventoryRepo) Set(ctx context.Context, productID string, inStock bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE products SET in_stock = ?, updated_at = ? WHERE id = ?`,
		inStock, stamp(now()), productID)
	if err != nil {
		return errors.Wrapf(err, "update stock %s", productID)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}
