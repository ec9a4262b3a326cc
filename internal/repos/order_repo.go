package repos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"emytrends/internal/domain"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

type orderRow struct {
	ID            string              `db:"id"`
	UserID        string              `db:"user_id"`
	UserEmail     string              `db:"user_email"`
	TotalAmount   decimal.Decimal     `db:"total_amount"`
	Status        string              `db:"status"`
	ShippingJSON  string              `db:"shipping_json"`
	PaymentMethod string              `db:"payment_method"`
	DeliveryFee   decimal.NullDecimal `db:"delivery_fee"`
	CreatedAt     string              `db:"created_at"`
	UpdatedAt     string              `db:"updated_at"`
}

type orderItemRow struct {
	OrderID   string          `db:"order_id"`
	ProductID string          `db:"product_id"`
	Title     string          `db:"title"`
	Price     decimal.Decimal `db:"price"`
	Quantity  int             `db:"quantity"`
	Image     string          `db:"image"`
	Color     string          `db:"color"`
	Length    string          `db:"length"`
}

type historyRow struct {
	OrderID string `db:"order_id"`
	Status  string `db:"status"`
	Date    string `db:"date"`
	Note    string `db:"note"`
}

const orderCols = `id, user_id, user_email, total_amount, status, shipping_json,
  payment_method, delivery_fee, created_at, updated_at`

func (r orderRow) toDomain() domain.Order {
	o := domain.Order{
		ID:            r.ID,
		UserID:        r.UserID,
		UserEmail:     r.UserEmail,
		TotalAmount:   r.TotalAmount,
		Status:        domain.OrderStatus(r.Status),
		PaymentMethod: r.PaymentMethod,
		Items:         []domain.OrderItem{},
		StatusHistory: []domain.StatusChange{},
		CreatedAt:     parseStamp(r.CreatedAt),
		UpdatedAt:     parseStamp(r.UpdatedAt),
	}
	decodeJSON(r.ShippingJSON, &o.ShippingAddress, "shipping_json", r.ID)
	if r.DeliveryFee.Valid {
		fee := r.DeliveryFee.Decimal
		o.DeliveryFee = &fee
	}
	return o
}

func (r *OrderRepo) NextID() string { return uuid.NewString() }

// Create stores o with its items and initial history in one transaction.
// CreatedAt/UpdatedAt are taken from o when set.
func (r *OrderRepo) Create(ctx context.Context, o domain.Order) (string, error) {
	if o.ID == "" {
		o.ID = r.NextID()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now()
	}
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = o.CreatedAt
	}
	var fee sql.NullString
	if o.DeliveryFee != nil {
		fee = sql.NullString{String: o.DeliveryFee.String(), Valid: true}
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", errors.Wrap(err, "begin order tx")
	}
	defer rollback(tx)

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO orders(`+orderCols+`)
		VALUES(?,?,?,?,?,?,?,?,?,?)`,
		o.ID, o.UserID, o.UserEmail, o.TotalAmount, string(o.Status), encodeJSON(o.ShippingAddress),
		o.PaymentMethod, fee, stamp(o.CreatedAt), stamp(o.UpdatedAt)); err != nil {
		return "", errors.Wrap(err, "insert order")
	}
	for i, it := range o.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items(order_id, position, product_id, title, price, quantity, image, color, length)
			VALUES(?,?,?,?,?,?,?,?,?)`,
			o.ID, i, it.ProductID, it.Title, it.Price, it.Quantity, it.Image, it.Color, it.Length); err != nil {
			return "", errors.Wrap(err, "insert order item")
		}
	}
	for i, h := range o.StatusHistory {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_status_history(order_id, seq, status, date, note)
			VALUES(?,?,?,?,?)`,
			o.ID, i+1, string(h.Status), stamp(h.Date), h.Note); err != nil {
			return "", errors.Wrap(err, "insert status history")
		}
	}
	if err := tx.Commit(); err != nil {
		return "", errors.Wrap(err, "commit order")
	}
	return o.ID, nil
}

// AppendStatus sets the order status and appends one history entry, both in
// the same transaction.
func (r *OrderRepo) AppendStatus(ctx context.Context, id string, ch domain.StatusChange) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin status tx")
	}
	defer rollback(tx)

	res, err := tx.ExecContext(ctx, `UPDATE orders SET status=?, updated_at=? WHERE id=?`,
		string(ch.Status), stamp(ch.Date), id)
	if err != nil {
		return errors.Wrapf(err, "update order %s", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrOrderNotFound
	}
	var seq int
	if err := tx.GetContext(ctx, &seq, `SELECT COALESCE(MAX(seq),0)+1 FROM order_status_history WHERE order_id=?`, id); err != nil {
		return errors.Wrap(err, "next history seq")
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO order_status_history(order_id, seq, status, date, note)
		VALUES(?,?,?,?,?)`, id, seq, string(ch.Status), stamp(ch.Date), ch.Note); err != nil {
		return errors.Wrap(err, "insert status history")
	}
	return errors.Wrap(tx.Commit(), "commit status")
}

func (r *OrderRepo) Get(ctx context.Context, id string) (domain.Order, error) {
	var row orderRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+orderCols+` FROM orders WHERE id=?`, id); err != nil {
		return domain.Order{}, errors.Wrapf(notFound(err, ErrOrderNotFound), "order %s", id)
	}
	out, err := r.hydrate(ctx, []orderRow{row})
	if err != nil {
		return domain.Order{}, err
	}
	return out[0], nil
}

func (r *OrderRepo) list(ctx context.Context, tail string, args ...any) ([]domain.Order, error) {
	var rows []orderRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+orderCols+` FROM orders `+tail, args...); err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	return r.hydrate(ctx, rows)
}

// All returns every order, newest first.
func (r *OrderRepo) All(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, `ORDER BY created_at DESC, rowid DESC`)
}

func (r *OrderRepo) Recent(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 5
	}
	return r.list(ctx, `ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
}

func (r *OrderRepo) ByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return r.list(ctx, `WHERE user_id=? ORDER BY created_at DESC, rowid DESC`, userID)
}

// hydrate loads items and history for rows, keeping the row order.
func (r *OrderRepo) hydrate(ctx context.Context, rows []orderRow) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}
	ids := make([]string, 0, len(rows))
	idx := make(map[string]int, len(rows))
	for i, row := range rows {
		out = append(out, row.toDomain())
		ids = append(ids, row.ID)
		idx[row.ID] = i
	}

	q, args, err := sqlx.In(`
		SELECT order_id, product_id, title, price, quantity, image, color, length
		FROM order_items WHERE order_id IN (?) ORDER BY order_id, position`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "build item query")
	}
	var items []orderItemRow
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, errors.Wrap(err, "load order items")
	}
	for _, it := range items {
		o := &out[idx[it.OrderID]]
		o.Items = append(o.Items, domain.OrderItem{
			ProductID: it.ProductID, Title: it.Title, Price: it.Price, Quantity: it.Quantity,
			Image: it.Image, Color: it.Color, Length: it.Length,
		})
	}

	q, args, err = sqlx.In(`
		SELECT order_id, status, date, note
		FROM order_status_history WHERE order_id IN (?) ORDER BY order_id, seq`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "build history query")
	}
	var hist []historyRow
	if err := r.db.SelectContext(ctx, &hist, q, args...); err != nil {
		return nil, errors.Wrap(err, "load status history")
	}
	for _, h := range hist {
		o := &out[idx[h.OrderID]]
		o.StatusHistory = append(o.StatusHistory, domain.StatusChange{
			Status: domain.OrderStatus(h.Status), Date: parseStamp(h.Date), Note: h.Note,
		})
	}
	return out, nil
}
