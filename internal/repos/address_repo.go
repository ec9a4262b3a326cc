package repos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"emytrends/internal/domain"
)

var ErrAddressNotFound = errors.New("address not found")

type AddressRepo struct{ db *sqlx.DB }

func NewAddressRepo(db *sqlx.DB) *AddressRepo { return &AddressRepo{db: db} }

type addressRow struct {
	ID            string `db:"id"`
	UserID        string `db:"user_id"`
	Label         string `db:"label"`
	FullName      string `db:"full_name"`
	Phone         string `db:"phone"`
	Country       string `db:"country"`
	City          string `db:"city"`
	Province      string `db:"province"`
	PostalCode    string `db:"postal_code"`
	StreetAddress string `db:"street_address"`
	AddressLine2  string `db:"address_line2"`
	IsDefault     bool   `db:"is_default"`
	CreatedAt     string `db:"created_at"`
	UpdatedAt     string `db:"updated_at"`
}

const addressCols = `id, user_id, label, full_name, phone, country, city, province,
  postal_code, street_address, address_line2, is_default, created_at, updated_at`

func (r addressRow) toDomain() domain.Address {
	return domain.Address{
		ID: r.ID, UserID: r.UserID, Label: r.Label, FullName: r.FullName, Phone: r.Phone,
		Country: r.Country, City: r.City, Province: r.Province, PostalCode: r.PostalCode,
		StreetAddress: r.StreetAddress, AddressLine2: r.AddressLine2, IsDefault: r.IsDefault,
		CreatedAt: parseStamp(r.CreatedAt), UpdatedAt: parseStamp(r.UpdatedAt),
	}
}

// clearDefault unsets every default of userID except keep.
func clearDefault(ctx context.Context, tx *sqlx.Tx, userID, keep, ts string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE addresses SET is_default=0, updated_at=?
		WHERE user_id=? AND is_default=1 AND id<>?`, ts, userID, keep)
	return errors.Wrap(err, "clear default address")
}

// Add stores a. When a is the default, other defaults are cleared in the same
// transaction.
func (r *AddressRepo) Add(ctx context.Context, a domain.Address) (domain.Address, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	t := now()
	a.CreatedAt, a.UpdatedAt = t, t
	ts := stamp(t)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Address{}, errors.Wrap(err, "begin address tx")
	}
	defer rollback(tx)
	if a.IsDefault {
		if err := clearDefault(ctx, tx, a.UserID, a.ID, ts); err != nil {
			return domain.Address{}, err
		}
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO addresses(`+addressCols+`)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		a.ID, a.UserID, a.Label, a.FullName, a.Phone, a.Country, a.City, a.Province,
		a.PostalCode, a.StreetAddress, a.AddressLine2, a.IsDefault, ts, ts); err != nil {
		return domain.Address{}, errors.Wrap(err, "insert address")
	}
	if err := tx.Commit(); err != nil {
		return domain.Address{}, errors.Wrap(err, "commit address")
	}
	return a, nil
}

// Update overwrites the editable fields of a (matched by id and owner).
func (r *AddressRepo) Update(ctx context.Context, a domain.Address) error {
	ts := stamp(now())
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin address tx")
	}
	defer rollback(tx)
	if a.IsDefault {
		if err := clearDefault(ctx, tx, a.UserID, a.ID, ts); err != nil {
			return err
		}
	}
	res, err := tx.ExecContext(ctx, `
		UPDATE addresses SET label=?, full_name=?, phone=?, country=?, city=?, province=?,
		  postal_code=?, street_address=?, address_line2=?, is_default=?, updated_at=?
		WHERE id=? AND user_id=?`,
		a.Label, a.FullName, a.Phone, a.Country, a.City, a.Province,
		a.PostalCode, a.StreetAddress, a.AddressLine2, a.IsDefault, ts, a.ID, a.UserID)
	if err != nil {
		return errors.Wrap(err, "update address")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAddressNotFound
	}
	return errors.Wrap(tx.Commit(), "commit address")
}

// SetDefault makes id the only default address of userID.
func (r *AddressRepo) SetDefault(ctx context.Context, userID, id string) error {
	ts := stamp(now())
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin address tx")
	}
	defer rollback(tx)
	if err := clearDefault(ctx, tx, userID, id, ts); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `UPDATE addresses SET is_default=1, updated_at=? WHERE id=? AND user_id=?`, ts, id, userID)
	if err != nil {
		return errors.Wrap(err, "set default address")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAddressNotFound
	}
	return errors.Wrap(tx.Commit(), "commit address")
}

// Delete removes the address. A deleted default is not replaced.
func (r *AddressRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM addresses WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return errors.Wrap(err, "delete address")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func (r *AddressRepo) Get(ctx context.Context, userID, id string) (domain.Address, error) {
	var row addressRow
	err := r.db.GetContext(ctx, &row, `SELECT `+addressCols+` FROM addresses WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return domain.Address{}, errors.Wrapf(notFound(err, ErrAddressNotFound), "address %s", id)
	}
	return row.toDomain(), nil
}

// List returns the user's addresses, newest first.
func (r *AddressRepo) List(ctx context.Context, userID string) ([]domain.Address, error) {
	var rows []addressRow
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT `+addressCols+` FROM addresses WHERE user_id=?
		ORDER BY created_at DESC, rowid DESC`, userID); err != nil {
		return nil, errors.Wrap(err, "list addresses")
	}
	out := make([]domain.Address, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// DefaultCount is one row of the reconciliation report.
type DefaultCount struct {
	UserID   string `db:"user_id"`
	Defaults int    `db:"defaults"`
}

// DefaultCounts reports users whose address book does not have exactly one
// default.
func (r *AddressRepo) DefaultCounts(ctx context.Context) ([]DefaultCount, error) {
	var out []DefaultCount
	err := r.db.SelectContext(ctx, &out, `
		SELECT user_id, SUM(is_default) AS defaults
		FROM addresses GROUP BY user_id
		HAVING SUM(is_default) <> 1
		ORDER BY user_id`)
	return out, errors.Wrap(err, "count default addresses")
}

// ElectDefault makes the most recently updated address of userID the default.
func (r *AddressRepo) ElectDefault(ctx context.Context, userID string) (string, error) {
	var id string
	if err := r.db.GetContext(ctx, &id, `
		SELECT id FROM addresses WHERE user_id=?
		ORDER BY is_default DESC, updated_at DESC, rowid DESC LIMIT 1`, userID); err != nil {
		return "", errors.Wrapf(notFound(err, ErrAddressNotFound), "elect default for %s", userID)
	}
	return id, r.SetDefault(ctx, userID, id)
}
