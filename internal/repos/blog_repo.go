package repos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"emytrends/internal/domain"
)

var ErrBlogNotFound = errors.New("blog post not found")

type BlogRepo struct{ db *sqlx.DB }

func NewBlogRepo(db *sqlx.DB) *BlogRepo { return &BlogRepo{db: db} }

type blogRow struct {
	ID            string `db:"id"`
	Title         string `db:"title"`
	Content       string `db:"content"`
	Excerpt       string `db:"excerpt"`
	Author        string `db:"author"`
	Category      string `db:"category"`
	FeaturedImage string `db:"featured_image"`
	ImagesJSON    string `db:"images_json"`
	TagsJSON      string `db:"tags_json"`
	Published     bool   `db:"published"`
	CreatedAt     string `db:"created_at"`
	UpdatedAt     string `db:"updated_at"`
}

const blogCols = `id, title, content, excerpt, author, category, featured_image,
  images_json, tags_json, published, created_at, updated_at`

func (r blogRow) toDomain() domain.BlogPost {
	return domain.BlogPost{
		ID: r.ID, Title: r.Title, Content: r.Content, Excerpt: r.Excerpt, Author: r.Author,
		Category: r.Category, FeaturedImage: r.FeaturedImage,
		Images: decodeList(r.ImagesJSON, "images_json", r.ID), Tags: decodeList(r.TagsJSON, "tags_json", r.ID), Published: r.Published,
		CreatedAt: parseStamp(r.CreatedAt), UpdatedAt: parseStamp(r.UpdatedAt),
	}
}

func (r *BlogRepo) NextID() string { return uuid.NewString() }

func (r *BlogRepo) Create(ctx context.Context, b domain.BlogPost) (string, error) {
	if b.ID == "" {
		b.ID = r.NextID()
	}
	ts := stamp(now())
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO blogs(`+blogCols+`) VALUES(?,?,?,?,?,?,?,?,?,?,?,?)`,
		b.ID, b.Title, b.Content, b.Excerpt, b.Author, b.Category, b.FeaturedImage,
		encodeList(b.Images), encodeList(b.Tags), b.Published, ts, ts)
	if err != nil {
		return "", errors.Wrap(err, "insert blog")
	}
	return b.ID, nil
}

func (r *BlogRepo) Ensure(ctx context.Context, b domain.BlogPost) (bool, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM blogs WHERE id=?`, b.ID); err != nil {
		return false, errors.Wrap(err, "count blog")
	}
	if n > 0 {
		return false, nil
	}
	_, err := r.Create(ctx, b)
	return err == nil, err
}

func (r *BlogRepo) Update(ctx context.Context, id string, b domain.BlogPost) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE blogs SET title=?, content=?, excerpt=?, author=?, category=?, featured_image=?,
		  images_json=?, tags_json=?, published=?, updated_at=?
		WHERE id=?`,
		b.Title, b.Content, b.Excerpt, b.Author, b.Category, b.FeaturedImage,
		encodeList(b.Images), encodeList(b.Tags), b.Published, stamp(now()), id)
	if err != nil {
		return errors.Wrapf(err, "update blog %s", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBlogNotFound
	}
	return nil
}

func (r *BlogRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id=?`, id)
	if err != nil {
		return errors.Wrapf(err, "delete blog %s", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBlogNotFound
	}
	return nil
}

func (r *BlogRepo) Get(ctx context.Context, id string) (domain.BlogPost, error) {
	var row blogRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+blogCols+` FROM blogs WHERE id=?`, id); err != nil {
		return domain.BlogPost{}, errors.Wrapf(notFound(err, ErrBlogNotFound), "blog %s", id)
	}
	return row.toDomain(), nil
}

func (r *BlogRepo) list(ctx context.Context, where string) ([]domain.BlogPost, error) {
	var rows []blogRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+blogCols+` FROM blogs `+where+` ORDER BY created_at DESC, rowid DESC`); err != nil {
		return nil, errors.Wrap(err, "list blogs")
	}
	out := make([]domain.BlogPost, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// All returns drafts and published posts, newest first.
func (r *BlogRepo) All(ctx context.Context) ([]domain.BlogPost, error) { return r.list(ctx, "") }

func (r *BlogRepo) Published(ctx context.Context) ([]domain.BlogPost, error) {
	return r.list(ctx, "WHERE published = 1")
}
