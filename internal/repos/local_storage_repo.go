package repos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// LocalStorageRepo is a string key/value store with the semantics of the
// browser's localStorage: missing keys read as absent, values are opaque.
type LocalStorageRepo struct{ db *sqlx.DB }

func NewLocalStorageRepo(db *sqlx.DB) *LocalStorageRepo { return &LocalStorageRepo{db: db} }

// Get returns the value under key and whether it exists.
func (r *LocalStorageRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var v []string
	if err := r.db.SelectContext(ctx, &v, `SELECT value FROM local_storage WHERE key=?`, key); err != nil {
		return "", false, errors.Wrapf(err, "get %s", key)
	}
	if len(v) == 0 {
		return "", false, nil
	}
	return v[0], true, nil
}

func (r *LocalStorageRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO local_storage(key, value, updated_at) VALUES(?,?,?)
		ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		key, value, stamp(now()))
	return errors.Wrapf(err, "set %s", key)
}

func (r *LocalStorageRepo) Remove(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM local_storage WHERE key=?`, key)
	return errors.Wrapf(err, "remove %s", key)
}
