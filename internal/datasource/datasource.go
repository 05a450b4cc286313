package datasource

import (
	"context"
	"io"
)

// Source is anything a raw POS extract can be read from.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
