package storage

import (
	"context"
	"fmt"
	"sync"
)

// Bootstrapper applies backend-specific DDL (schema tables or derived views)
// via repo.Exec. Backends register their implementations for their kind at
// init time.
type Bootstrapper func(ctx context.Context, repo Repository) error

var (
	ddlMu   sync.RWMutex
	schemas = map[string]Bootstrapper{}
	views   = map[string]Bootstrapper{}
)

// RegisterSchema registers the CREATE TABLE bootstrapper for a backend kind.
func RegisterSchema(kind string, fn Bootstrapper) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	schemas[kind] = fn
}

// RegisterViews registers the derived-view bootstrapper for a backend kind.
func RegisterViews(kind string, fn Bootstrapper) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	views[kind] = fn
}

// EnsureSchema creates the restaurant schema tables for the given kind.
func EnsureSchema(ctx context.Context, kind string, repo Repository) error {
	ddlMu.RLock()
	fn, ok := schemas[kind]
	ddlMu.RUnlock()
	if !ok {
		return fmt.Errorf("storage: no schema bootstrapper registered for kind %q", kind)
	}
	return fn(ctx, repo)
}

// EnsureViews creates the derived KPI views for the given kind.
func EnsureViews(ctx context.Context, kind string, repo Repository) error {
	ddlMu.RLock()
	fn, ok := views[kind]
	ddlMu.RUnlock()
	if !ok {
		return fmt.Errorf("storage: no view bootstrapper registered for kind %q", kind)
	}
	return fn(ctx, repo)
}
