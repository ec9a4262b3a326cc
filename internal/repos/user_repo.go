package repos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"emytrends/internal/domain"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepo struct{ db *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

const userCols = `id, email, name, password_hash, role`

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u, `SELECT `+userCols+` FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &u, nil
}

func (r *UserRepo) ByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u, `SELECT `+userCols+` FROM users WHERE id=?`, id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &u, nil
}

// Ensure inserts u unless the email is already registered.
func (r *UserRepo) Ensure(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users(id, email, name, password_hash, role, created_at)
		VALUES(?,?,?,?,?,?)
		ON CONFLICT DO NOTHING`, u.ID, u.Email, u.Name, u.Hash, u.Role, stamp(now()))
	return errors.Wrapf(err, "ensure user %s", u.Email)
}

// List returns every non-admin account.
func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	err := r.db.SelectContext(ctx, &out, `SELECT `+userCols+` FROM users WHERE role != ? ORDER BY email`, domain.RoleAdmin)
	return out, errors.Wrap(err, "list users")
}

func (r *UserRepo) BindSession(ctx context.Context, sid, userID string) error {
	ts := stamp(now())
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions(id, user_id, created_at, last_seen) VALUES(?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id, last_seen=excluded.last_seen`,
		sid, userID, ts, ts)
	return errors.Wrap(err, "bind session")
}

func (r *UserRepo) SessionUser(ctx context.Context, sid string) (*domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u, `
		SELECT u.id, u.email, u.name, u.password_hash, u.role
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.id=?`, sid)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &u, nil
}

func (r *UserRepo) UnbindSession(ctx context.Context, sid string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE sessions SET user_id=NULL, last_seen=? WHERE id=?`, stamp(now()), sid)
	return errors.Wrap(err, "unbind session")
}

// DeleteUserCascade removes the account and everything keyed by it: sessions
// and their carts, addresses, profile and wishlist. Orders stay for the
// books.
func (r *UserRepo) DeleteUserCascade(ctx context.Context, userID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin delete user")
	}
	defer rollback(tx)

	var sessionIDs []string
	if err := tx.SelectContext(ctx, &sessionIDs, `SELECT id FROM sessions WHERE user_id=?`, userID); err != nil {
		return errors.Wrap(err, "list sessions")
	}
	if len(sessionIDs) > 0 {
		for _, stmt := range []string{
			`DELETE FROM carts WHERE session_id IN (?)`,
			`DELETE FROM sessions WHERE id IN (?)`,
		} {
			q, args, err := sqlx.In(stmt, sessionIDs)
			if err != nil {
				return errors.Wrap(err, "build delete")
			}
			if _, err := tx.ExecContext(ctx, q, args...); err != nil {
				return errors.Wrap(err, "delete session data")
			}
		}
	}
	for _, stmt := range []string{
		`DELETE FROM addresses WHERE user_id=?`,
		`DELETE FROM user_profiles WHERE user_id=?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, userID); err != nil {
			return errors.Wrap(err, "delete user data")
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM local_storage WHERE key=?`, WishlistKey(userID)); err != nil {
		return errors.Wrap(err, "delete wishlist")
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id=?`, userID)
	if err != nil {
		return errors.Wrap(err, "delete user")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return errors.Wrap(tx.Commit(), "commit delete user")
}

// WishlistKey is the local storage key holding a user's wishlist.
func WishlistKey(userID string) string { return "wishlist_" + userID }
