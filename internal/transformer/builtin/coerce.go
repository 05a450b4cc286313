package builtin

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"posetl/internal/schema"
	"posetl/pkg/table"
)

// Coerce converts the raw string values produced by the CSV parser into typed
// scalars according to a schema contract: "int" to int64, "number" to
// decimal, "timestamp" to time.Time, "text" left as-is. A value that cannot
// be coerced becomes nil so the validators can apply their drop policy.
type Coerce struct {
	Contract schema.Contract
}

func (c Coerce) Apply(in *table.Table) (*table.Table, error) {
	if len(c.Contract.Fields) == 0 {
		return in, nil
	}
	out := table.New(in.Columns()...)
	for _, r := range in.Rows() {
		cp := copyRow(r)
		for _, f := range c.Contract.Fields {
			v, ok := cp[f.Name]
			if !ok || v == nil {
				continue
			}
			s, isStr := v.(string)
			if !isStr {
				continue // already typed
			}
			s = strings.TrimSpace(s)
			if s == "" {
				cp[f.Name] = nil
				continue
			}
			cp[f.Name] = coerceValue(s, f)
		}
		out.Append(cp)
	}
	return out, nil
}

func coerceValue(s string, f schema.Field) any {
	switch f.Type {
	case "int":
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
		return nil
	case "number":
		if d, err := decimal.NewFromString(s); err == nil {
			return d
		}
		return nil
	case "timestamp":
		layout := f.Layout
		if layout == "" {
			layout = schema.Layout
		}
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
		// Leave the raw string for the normalizer, which tries more layouts.
		return s
	default:
		return s
	}
}
