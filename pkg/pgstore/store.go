package pgstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store persists feature flags in the feature_flags table.
// It is safe for concurrent use.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a flag store on top of an existing connection pool. The store
// shares the pool by reference and never closes it.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Get returns the persisted value for a flag. An absent row is reported
// through the ok result, never as an error, so a stored false stays
// distinguishable from a flag that was never written.
func (s *Store) Get(ctx context.Context, name string) (bool, bool, error) {
	var enabled bool
	err := s.pool.QueryRow(ctx,
		`SELECT enabled FROM feature_flags WHERE name = $1`, name,
	).Scan(&enabled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, false, nil
		}
		return false, false, err
	}
	return enabled, true, nil
}

// Set persists a value for a flag, inserting or overwriting the row.
func (s *Store) Set(ctx context.Context, name string, value bool) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO feature_flags (name, enabled) VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET enabled = EXCLUDED.enabled, updated_at = now()`,
		name, value)
	return err
}

// Delete removes a flag's row. Deleting an absent flag is a no-op.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM feature_flags WHERE name = $1`, name)
	return err
}

// Init applies the embedded schema migrations, creating the feature_flags
// table on first run. Call once at application startup, typically through
// Registry.InitStore.
func (s *Store) Init(ctx context.Context) error {
	// Bridge the pgx pool to the database/sql interface goose expects.
	// The wrapper shares the underlying connections.
	db := stdlib.OpenDBFromPool(s.pool)
	defer func(db *sql.DB) {
		_ = db.Close()
	}(db)

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	return nil
}

// Persistent reports true: values survive process restarts.
func (s *Store) Persistent() bool {
	return true
}
