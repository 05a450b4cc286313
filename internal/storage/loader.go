package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"posetl/pkg/table"
)

// LoadTable writes an in-memory table into the named warehouse table in
// batches of batchSize rows, using the repository's bulk-insert primitive.
// It returns the total number of rows reported inserted and the first error
// encountered. A concise progress line with running totals and instantaneous
// rows/sec is logged per flushed batch.
func LoadTable(
	ctx context.Context,
	repo Repository,
	name string,
	t *table.Table,
	batchSize int,
) (int64, error) {
	if batchSize <= 0 {
		return 0, fmt.Errorf("storage: batchSize must be > 0")
	}

	columns := t.Columns()
	var (
		total   int64
		batches int64
		batch   = make([][]any, 0, batchSize)
		start   = time.Now()
		lastTS  = start
	)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := repo.CopyFrom(ctx, name, columns, batch)
		total += n
		batch = batch[:0]
		if err != nil {
			return fmt.Errorf("storage: load %s: %w", name, err)
		}

		batches++
		now := time.Now()
		sinceLast := now.Sub(lastTS)
		rps := float64(0)
		if sinceLast > 0 {
			rps = float64(n) / sinceLast.Seconds()
		}
		log.Debug().
			Str("table", name).
			Int64("batch", batches).
			Int64("inserted", n).
			Int64("total_inserted", total).
			Float64("rps", rps).
			Dur("elapsed", now.Sub(start).Truncate(time.Millisecond)).
			Msg("batch loaded")
		lastTS = now
		return nil
	}

	for _, r := range t.Rows() {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		row := make([]any, len(columns))
		for i, c := range columns {
			row[i] = r[c]
		}
		batch = append(batch, row)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if err := flush(); err != nil {
		return total, err
	}
	return total, nil
}
