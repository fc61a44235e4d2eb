package store

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
)

// The migration system keeps fresh installations simple: when the driver
// reports an uninitialized database, the full schema in LATEST.sql is
// applied in one transaction. Incremental migrations can be added next to
// it as NN__description.sql files once the schema starts evolving.

//go:embed migration
var migrationFS embed.FS

// LatestSchemaFileName is the full schema applied to new installations.
const LatestSchemaFileName = "LATEST.sql"

// Migrate brings the database schema up to date.
func (s *Store) Migrate(ctx context.Context) error {
	initialized, err := s.driver.IsInitialized(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to check database initialization")
	}
	if initialized {
		return nil
	}

	buf, err := migrationFS.ReadFile(fmt.Sprintf("migration/%s/%s", s.profile.Driver, LatestSchemaFileName))
	if err != nil {
		return errors.Wrapf(err, "failed to read latest schema for driver %q", s.profile.Driver)
	}

	db := s.driver.GetDB()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin migration transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(buf)); err != nil {
		return errors.Wrap(err, "failed to apply latest schema")
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit migration")
	}

	slog.Info("database initialized with latest schema", slog.String("driver", s.profile.Driver))
	return nil
}
