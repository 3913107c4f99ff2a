package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// catalogSchemaVersion must change whenever schema.sql does.
const catalogSchemaVersion = 1

// ErrSchemaMismatch is returned when an existing catalog was written with a
// different schema version.
var ErrSchemaMismatch = errors.New("catalog schema version mismatch")

// initSchema creates the tables on a fresh database and refuses to open a
// catalog written by a different version.
func (s *Store) initSchema(ctx context.Context) error {
	version, err := s.storedVersion(ctx)
	if err != nil {
		return err
	}
	switch version {
	case 0:
		return s.createSchema(ctx)
	case catalogSchemaVersion:
		return nil
	default:
		return fmt.Errorf("%w: %s has version %d, this build expects %d (remove the file to start a new catalog)",
			ErrSchemaMismatch, s.path, version, catalogSchemaVersion)
	}
}

// storedVersion returns 0 when the database has no schema yet.
func (s *Store) storedVersion(ctx context.Context) (int, error) {
	var tables int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = 'schema_version'`,
	).Scan(&tables); err != nil {
		return 0, fmt.Errorf("inspect catalog schema: %w", err)
	}
	if tables == 0 {
		return 0, nil
	}
	var version int
	if err := s.db.QueryRowContext(ctx, `SELECT version FROM schema_version LIMIT 1`).Scan(&version); err != nil {
		return 0, fmt.Errorf("read catalog schema version: %w", err)
	}
	return version, nil
}

func (s *Store) createSchema(ctx context.Context) error {
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin schema: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create catalog tables: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, catalogSchemaVersion); err != nil {
			return fmt.Errorf("stamp schema version: %w", err)
		}
		return tx.Commit()
	})
}
