// This file wires the SQLite backend into the storage factory. Registration
// happens in init so callers only import posetl/internal/storage/all.
package sqlite

import (
	"context"

	"posetl/internal/storage"
)

// newRepository is a test hook pointing to NewRepository by default. Tests
// may replace this to avoid real DB connections.
var newRepository = NewRepository

// wrappedRepo adapts *Repository to storage.Repository, adding a Close method
// that calls the cleanup function returned by NewRepository.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

var _ storage.Repository = (*wrappedRepo)(nil)

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})

	storage.RegisterSchema("sqlite", func(ctx context.Context, repo storage.Repository) error {
		for _, ddl := range schemaDDL {
			if err := repo.Exec(ctx, ddl); err != nil {
				return err
			}
		}
		return nil
	})

	storage.RegisterViews("sqlite", func(ctx context.Context, repo storage.Repository) error {
		for _, ddl := range viewDDL {
			if err := repo.Exec(ctx, ddl); err != nil {
				return err
			}
		}
		return nil
	})
}
