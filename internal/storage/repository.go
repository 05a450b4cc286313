// Package storage contains storage-agnostic contracts for the warehouse
// load: a Repository interface, a factory registry keyed by backend kind, and
// a batched loader. Concrete backends (sqlite, postgres, mysql, mssql) live
// in subpackages and register themselves at init time; importing
// posetl/internal/storage/all enables them all.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Config selects and configures a backend.
type Config struct {
	// Kind is the registered backend name, e.g. "sqlite".
	Kind string

	// DSN is the backend connection string (a file path for sqlite).
	DSN string
}

// Repository is the minimal contract the pipeline needs from a warehouse
// database.
type Repository interface {
	// CopyFrom bulk-inserts rows (aligned to columns order) into table,
	// returning the number of rows inserted. Implementations use their most
	// efficient primitive (Postgres COPY, multi-row INSERT, bulk copy).
	CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)

	// Exec runs an arbitrary statement, typically DDL.
	Exec(ctx context.Context, sql string) error

	// Count returns SELECT COUNT(*) from the named table or view. Used to
	// verify the derived views after a load.
	Count(ctx context.Context, table string) (int64, error)

	// Close releases the underlying connections.
	Close()
}

// Factory constructs a Repository for a Config.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register installs (or replaces) the factory for a backend kind. Called from
// backend packages' init functions.
func Register(kind string, f Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories[kind] = f
}

// New opens a Repository for cfg.Kind. Unknown kinds report the registered
// alternatives.
func New(ctx context.Context, cfg Config) (Repository, error) {
	regMu.RLock()
	f, ok := factories[cfg.Kind]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: unknown kind %q (registered: %v)", cfg.Kind, Kinds())
	}
	return f(ctx, cfg)
}

// Kinds returns the registered backend names, sorted. The result is a copy.
func Kinds() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
