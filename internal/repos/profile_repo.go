package repos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"emytrends/internal/domain"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepo struct{ db *sqlx.DB }

func NewProfileRepo(db *sqlx.DB) *ProfileRepo { return &ProfileRepo{db: db} }

type profileRow struct {
	UserID       string `db:"user_id"`
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
	Email        string `db:"email"`
	Phone        string `db:"phone"`
	ProfileImage string `db:"profile_image"`
	AddressJSON  string `db:"address_json"`
	CreatedAt    string `db:"created_at"`
	UpdatedAt    string `db:"updated_at"`
}

func (r *ProfileRepo) Get(ctx context.Context, userID string) (domain.UserProfile, error) {
	var row profileRow
	if err := r.db.GetContext(ctx, &row, `
		SELECT user_id, first_name, last_name, email, phone, profile_image, address_json, created_at, updated_at
		FROM user_profiles WHERE user_id=?`, userID); err != nil {
		return domain.UserProfile{}, errors.Wrapf(notFound(err, ErrProfileNotFound), "profile %s", userID)
	}
	p := domain.UserProfile{
		ID: row.UserID, FirstName: row.FirstName, LastName: row.LastName, Email: row.Email,
		Phone: row.Phone, ProfileImage: row.ProfileImage,
		CreatedAt: parseStamp(row.CreatedAt), UpdatedAt: parseStamp(row.UpdatedAt),
	}
	decodeJSON(row.AddressJSON, &p.Address, "address_json", row.UserID)
	return p, nil
}

// Save writes the whole profile, keeping created_at of an existing row.
func (r *ProfileRepo) Save(ctx context.Context, p domain.UserProfile) error {
	ts := stamp(now())
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_profiles(user_id, first_name, last_name, email, phone, profile_image, address_json, created_at, updated_at)
		VALUES(?,?,?,?,?,?,?,?,?)
		ON CONFLICT(user_id) DO UPDATE SET
		  first_name=excluded.first_name, last_name=excluded.last_name, email=excluded.email,
		  phone=excluded.phone, profile_image=excluded.profile_image,
		  address_json=excluded.address_json, updated_at=excluded.updated_at`,
		p.ID, p.FirstName, p.LastName, p.Email, p.Phone, p.ProfileImage, encodeJSON(p.Address), ts, ts)
	return errors.Wrapf(err, "save profile %s", p.ID)
}
