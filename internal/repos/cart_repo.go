package repos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"emytrends/internal/domain"
)

// CartRepo persists one cart per session id.
type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

type cartLineRow struct {
	ID        string          `db:"id"`
	ProductID string          `db:"product_id"`
	Name      string          `db:"name"`
	Variant   string          `db:"variant"`
	Color     string          `db:"color"`
	Price     decimal.Decimal `db:"price"`
	Quantity  int             `db:"quantity"`
	Image     string          `db:"image"`
}

// Lines returns the session's cart in insertion order; an unknown session
// has an empty cart.
func (r *CartRepo) Lines(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	var rows []cartLineRow
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT id, product_id, name, variant, color, price, quantity, image
		FROM cart_lines WHERE session_id=? ORDER BY position`, sessionID); err != nil {
		return nil, errors.Wrap(err, "load cart")
	}
	out := make([]domain.CartLine, 0, len(rows))
	for _, l := range rows {
		out = append(out, domain.CartLine{
			ID: l.ID, ProductID: l.ProductID, Name: l.Name, Variant: l.Variant,
			Color: l.Color, Price: l.Price, Quantity: l.Quantity, Image: l.Image,
		})
	}
	return out, nil
}

// Save replaces the session's cart with lines.
func (r *CartRepo) Save(ctx context.Context, sessionID string, lines []domain.CartLine) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin cart tx")
	}
	defer rollback(tx)

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO carts(session_id, updated_at) VALUES(?, ?)
		ON CONFLICT(session_id) DO UPDATE SET updated_at=excluded.updated_at`,
		sessionID, stamp(now())); err != nil {
		return errors.Wrap(err, "upsert cart")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_lines WHERE session_id=?`, sessionID); err != nil {
		return errors.Wrap(err, "clear cart lines")
	}
	for i, l := range lines {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO cart_lines(id, session_id, position, product_id, name, variant, color, price, quantity, image)
			VALUES(?,?,?,?,?,?,?,?,?,?)`,
			l.ID, sessionID, i, l.ProductID, l.Name, l.Variant, l.Color, l.Price, l.Quantity, l.Image); err != nil {
			return errors.Wrap(err, "insert cart line")
		}
	}
	return errors.Wrap(tx.Commit(), "commit cart")
}

func (r *CartRepo) Clear(ctx context.Context, sessionID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE session_id=?`, sessionID)
	return errors.Wrap(err, "clear cart")
}
