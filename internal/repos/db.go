package repos

import (
	"database/sql"
	"embed"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	applog "emytrends/internal/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Stored timestamps sort lexically in this layout.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

var now = time.Now

func stamp(t time.Time) string { return t.UTC().Format(timeLayout) }

func parseStamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// OpenDB opens the SQLite database, applies migrations and seeds the demo
// catalog and accounts. ":memory:" gives a private database per call.
func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := Connect(dsn)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := Seed(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Connect opens the database without touching the schema.
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	// One connection: SQLite serialises writers anyway, and an in-memory
	// database only exists on the connection that created it.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping sqlite")
	}
	if _, err = db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "enable foreign keys")
	}
	return db, nil
}

// Migrate brings the schema to the latest embedded version.
func Migrate(db *sqlx.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return errors.Wrap(err, "load migrations")
	}
	drv, err := sqlite.WithInstance(db.DB, &sqlite.Config{})
	if err != nil {
		return errors.Wrap(err, "migration driver")
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", drv)
	if err != nil {
		return errors.Wrap(err, "migrator")
	}
	// m.Close would close db as well; only the source is released.
	defer src.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "migrate up")
	}
	v, dirty, _ := m.Version()
	applog.L().Info("db.migrate", zap.Uint("version", v), zap.Bool("dirty", dirty))
	return nil
}

func rollback(tx *sqlx.Tx) { _ = tx.Rollback() }

func notFound(err error, sentinel error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	return err
}
