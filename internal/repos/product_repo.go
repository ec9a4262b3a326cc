package repos

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"emytrends/internal/domain"
	applog "emytrends/internal/log"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

type productRow struct {
	ID                string          `db:"id"`
	Title             string          `db:"title"`
	Description       string          `db:"description"`
	FullDescription   string          `db:"full_description"`
	Price             decimal.Decimal `db:"price"`
	Category          string          `db:"category"`
	HairExtensionType string          `db:"hair_extension_type"`
	Badge             string          `db:"badge"`
	ImagesJSON        string          `db:"images_json"`
	ColorsJSON        string          `db:"colors_json"`
	ShadesJSON        string          `db:"shades_json"`
	LengthsJSON       string          `db:"lengths_json"`
	DetailsJSON       string          `db:"details_json"`
	InStock           bool            `db:"in_stock"`
	Featured          bool            `db:"featured"`
	CreatedAt         string          `db:"created_at"`
	UpdatedAt         string          `db:"updated_at"`
}

// productDetails holds the nested editor lists in one JSON column.
type productDetails struct {
	ColorSwatches     []domain.ColorSwatch  `json:"colorSwatches"`
	LengthOptions     []domain.LengthOption `json:"lengthOptions"`
	ShadeOptions      []domain.ShadeOption  `json:"shadeOptions"`
	FAQItems          []domain.FAQItem      `json:"faqItems"`
	RelatedProductIDs []string              `json:"relatedProductIds"`
}

const productCols = `id, title, description, full_description, price, category,
  hair_extension_type, badge, images_json, colors_json, shades_json, lengths_json,
  details_json, in_stock, featured, created_at, updated_at`

// decodeJSON fills v from a JSON column. A corrupt value is logged and leaves
// v as it was.
func decodeJSON(raw string, v any, column, id string) {
	if raw == "" {
		return
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		applog.L().Error("db.decode", zap.String("column", column), zap.String("id", id), zap.Error(err))
	}
}

func decodeList(raw, column, id string) []string {
	out := []string{}
	decodeJSON(raw, &out, column, id)
	if out == nil {
		out = []string{}
	}
	return out
}

func encodeJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

func encodeList(v []string) string {
	if v == nil {
		v = []string{}
	}
	return encodeJSON(v)
}

func (r productRow) toDomain() domain.Product {
	var d productDetails
	decodeJSON(r.DetailsJSON, &d, "details_json", r.ID)
	p := domain.Product{
		ID:                r.ID,
		Title:             r.Title,
		Description:       r.Description,
		FullDescription:   r.FullDescription,
		Price:             r.Price,
		Category:          r.Category,
		HairExtensionType: r.HairExtensionType,
		Badge:             r.Badge,
		Images:            decodeList(r.ImagesJSON, "images_json", r.ID),
		Colors:            decodeList(r.ColorsJSON, "colors_json", r.ID),
		Shades:            decodeList(r.ShadesJSON, "shades_json", r.ID),
		Lengths:           decodeList(r.LengthsJSON, "lengths_json", r.ID),
		ColorSwatches:     d.ColorSwatches,
		LengthOptions:     d.LengthOptions,
		ShadeOptions:      d.ShadeOptions,
		FAQItems:          d.FAQItems,
		RelatedProductIDs: d.RelatedProductIDs,
		InStock:           r.InStock,
		Featured:          r.Featured,
		CreatedAt:         parseStamp(r.CreatedAt),
		UpdatedAt:         parseStamp(r.UpdatedAt),
	}
	if p.ColorSwatches == nil {
		p.ColorSwatches = []domain.ColorSwatch{}
	}
	if p.LengthOptions == nil {
		p.LengthOptions = []domain.LengthOption{}
	}
	if p.ShadeOptions == nil {
		p.ShadeOptions = []domain.ShadeOption{}
	}
	if p.FAQItems == nil {
		p.FAQItems = []domain.FAQItem{}
	}
	if p.RelatedProductIDs == nil {
		p.RelatedProductIDs = []string{}
	}
	return p
}

func details(p domain.Product) string {
	return encodeJSON(productDetails{
		ColorSwatches:     p.ColorSwatches,
		LengthOptions:     p.LengthOptions,
		ShadeOptions:      p.ShadeOptions,
		FAQItems:          p.FAQItems,
		RelatedProductIDs: p.RelatedProductIDs,
	})
}

func rowsToProducts(rows []productRow) []domain.Product {
	out := make([]domain.Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out
}

// NextID hands out an id before the record exists so uploads can be keyed
// by it.
func (r *ProductRepo) NextID() string { return uuid.NewString() }

// Create inserts p. An empty p.ID gets a fresh one; timestamps are set here.
func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (string, error) {
	if p.ID == "" {
		p.ID = r.NextID()
	}
	ts := stamp(now())
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products(`+productCols+`)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		p.ID, p.Title, p.Description, p.FullDescription, p.Price, p.Category,
		p.HairExtensionType, p.Badge, encodeList(p.Images), encodeList(p.Colors),
		encodeList(p.Shades), encodeList(p.Lengths), details(p), p.InStock, p.Featured, ts, ts)
	if err != nil {
		return "", errors.Wrap(err, "insert product")
	}
	return p.ID, nil
}

// Ensure inserts p unless a product with its id exists. It reports whether
// a row was written.
func (r *ProductRepo) Ensure(ctx context.Context, p domain.Product) (bool, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM products WHERE id=?`, p.ID); err != nil {
		return false, errors.Wrap(err, "count product")
	}
	if n > 0 {
		return false, nil
	}
	_, err := r.Create(ctx, p)
	return err == nil, err
}

// Update overwrites every editable field of product id.
func (r *ProductRepo) Update(ctx context.Context, id string, p domain.Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products SET
		  title=?, description=?, full_description=?, price=?, category=?,
		  hair_extension_type=?, badge=?, images_json=?, colors_json=?, shades_json=?,
		  lengths_json=?, details_json=?, in_stock=?, featured=?, updated_at=?
		WHERE id=?`,
		p.Title, p.Description, p.FullDescription, p.Price, p.Category,
		p.HairExtensionType, p.Badge, encodeList(p.Images), encodeList(p.Colors), encodeList(p.Shades),
		encodeList(p.Lengths), details(p), p.InStock, p.Featured, stamp(now()), id)
	if err != nil {
		return errors.Wrapf(err, "update product %s", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id=?`, id)
	if err != nil {
		return errors.Wrapf(err, "delete product %s", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	var row productRow
	err := r.db.GetContext(ctx, &row, `SELECT `+productCols+` FROM products WHERE id=?`, id)
	if err != nil {
		return domain.Product{}, errors.Wrapf(notFound(err, ErrProductNotFound), "product %s", id)
	}
	return row.toDomain(), nil
}

func (r *ProductRepo) list(ctx context.Context, where string, args ...any) ([]domain.Product, error) {
	var rows []productRow
	q := `SELECT ` + productCols + ` FROM products ` + where + ` ORDER BY created_at DESC, rowid DESC`
	if err := r.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return rowsToProducts(rows), nil
}

// All returns every product, newest first.
func (r *ProductRepo) All(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, "")
}

func (r *ProductRepo) ByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return r.list(ctx, `WHERE category = ?`, category)
}

func (r *ProductRepo) Featured(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, `WHERE featured = 1`)
}

// ByIDs loads the listed products, skipping unknown ids.
func (r *ProductRepo) ByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}
	q, args, err := sqlx.In(`WHERE id IN (?)`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "build id list")
	}
	return r.list(ctx, q, args...)
}

func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM products`)
	return n, errors.Wrap(err, "count products")
}
