package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// FS holds one migration directory per dialect.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

// New prepares a migrator over db using the migration set of dialect.
// Closing the returned migrator closes db.
func New(db *sql.DB, dialect string) (*migrate.Migrate, error) {
	src, err := iofs.New(FS, dialect)
	if err != nil {
		return nil, fmt.Errorf("open %s migrations: %w", dialect, err)
	}

	var drv database.Driver
	switch dialect {
	case "sqlite":
		drv, err = sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	case "postgres":
		drv, err = pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
	if err != nil {
		return nil, fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, dialect, drv)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	m.Log = logger{}
	return m, nil
}

// Up applies every pending migration. Being already current is not an error.
func Up(ctx context.Context, m *migrate.Migrate) error {
	return run(ctx, m, m.Up)
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, m *migrate.Migrate) error {
	return run(ctx, m, func() error { return m.Steps(-1) })
}

// Version reports the applied schema version and whether it is dirty.
// A database with no migrations applied reports version 0.
func Version(m *migrate.Migrate) (uint, bool, error) {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

func run(ctx context.Context, m *migrate.Migrate, step func() error) error {
	stop := context.AfterFunc(ctx, func() {
		select {
		case m.GracefulStop <- true:
		default:
		}
	})
	defer stop()

	if err := step(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// logger routes migrate's progress output through slog.
type logger struct{}

func (logger) Printf(format string, v ...any) {
	slog.Info("migration", "detail", fmt.Sprintf(format, v...))
}

func (logger) Verbose() bool { return false }
