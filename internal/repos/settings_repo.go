package repos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"emytrends/internal/domain"
)

type SettingsRepo struct{ db *sqlx.DB }

func NewSettingsRepo(db *sqlx.DB) *SettingsRepo { return &SettingsRepo{db: db} }

// EnsureDefault creates the global settings row with the default promo.
func (r *SettingsRepo) EnsureDefault(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO site_settings(id, promo_text, updated_at) VALUES(?,?,?)
		ON CONFLICT(id) DO NOTHING`, domain.SiteSettingsID, domain.DefaultPromoText, stamp(now()))
	return errors.Wrap(err, "ensure site settings")
}

func (r *SettingsRepo) Get(ctx context.Context) (domain.SiteSettings, error) {
	var row struct {
		PromoText string `db:"promo_text"`
		UpdatedAt string `db:"updated_at"`
	}
	err := r.db.GetContext(ctx, &row, `SELECT promo_text, updated_at FROM site_settings WHERE id=?`, domain.SiteSettingsID)
	if err != nil {
		return domain.SiteSettings{}, errors.Wrap(err, "load site settings")
	}
	return domain.SiteSettings{PromoText: row.PromoText, UpdatedAt: parseStamp(row.UpdatedAt)}, nil
}

func (r *SettingsRepo) SetPromoText(ctx context.Context, text string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO site_settings(id, promo_text, updated_at) VALUES(?,?,?)
		ON CONFLICT(id) DO UPDATE SET promo_text=excluded.promo_text, updated_at=excluded.updated_at`,
		domain.SiteSettingsID, text, stamp(now()))
	return errors.Wrap(err, "save promo text")
}
