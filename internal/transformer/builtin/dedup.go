package builtin

import (
	"fmt"

	"github.com/zeebo/xxh3"

	"posetl/pkg/table"
)

// DeDup removes all but the first occurrence of each distinct combination of
// values across Keys, preserving original row order among survivors. It runs
// in-memory on a single batch before the detail build; the warehouse keeps
// UNIQUE/PK constraints as a backstop.
//
// A record's identity is the xxh3 hash of its key values joined with a unit
// separator; nil hashes distinctly from the empty string.
type DeDup struct {
	// Keys are the field names that form the business key, e.g.
	// ["order_item_id"]. Must be non-empty.
	Keys []string
}

func (d DeDup) Apply(in *table.Table) (*table.Table, error) {
	if len(d.Keys) == 0 {
		return nil, fmt.Errorf("dedup: at least one key column required")
	}
	if in.Len() == 0 {
		return table.New(in.Columns()...), nil
	}

	seen := make(map[uint64]struct{}, in.Len())
	out := table.New(in.Columns()...)
	for _, r := range in.Rows() {
		h := d.keyOf(r)
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		out.Append(copyRow(r))
	}
	return out, nil
}

func (d DeDup) keyOf(r table.Row) uint64 {
	buf := make([]byte, 0, 64)
	for i, k := range d.Keys {
		if i > 0 {
			buf = append(buf, 0x1f)
		}
		v, ok := r[k]
		if !ok || v == nil {
			buf = append(buf, 0x00)
			continue
		}
		buf = append(buf, table.AsString(v)...)
	}
	return xxh3.Hash(buf)
}
