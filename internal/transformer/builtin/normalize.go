package builtin

import (
	"strings"
	"time"

	"posetl/pkg/table"

	"posetl/internal/schema"
)

// timestampLayouts are tried in order when a column does not specify its own
// layout. The canonical POS layout comes first.
var timestampLayouts = []string{
	schema.Layout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Normalize parses the named columns into time.Time values. A value that
// fails to parse becomes nil, quarantining it as missing data for the
// validators downstream. Columns named but absent in the table are skipped.
// Values that are already time.Time pass through unchanged, so normalizing
// twice is a no-op.
type Normalize struct {
	// Columns lists the timestamp columns to canonicalize.
	Columns []string

	// Layout, when set, is tried before the default layouts.
	Layout string
}

func (n Normalize) Apply(in *table.Table) (*table.Table, error) {
	present := make([]string, 0, len(n.Columns))
	for _, c := range n.Columns {
		if in.Has(c) {
			present = append(present, c)
		}
	}
	if len(present) == 0 {
		// Still a fresh table: callers may mutate the result freely.
		return in.Clone(), nil
	}

	out := table.New(in.Columns()...)
	for _, r := range in.Rows() {
		cp := copyRow(r)
		for _, c := range present {
			cp[c] = n.parse(cp[c])
		}
		out.Append(cp)
	}
	return out, nil
}

// parse canonicalizes a single value. Anything that is not already a
// time.Time and cannot be parsed as one becomes nil.
func (n Normalize) parse(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		return t
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		if n.Layout != "" {
			if ts, err := time.Parse(n.Layout, s); err == nil {
				return ts
			}
		}
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts
			}
		}
		return nil
	default:
		return nil
	}
}
