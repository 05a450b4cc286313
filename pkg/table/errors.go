package table

import (
	"fmt"
	"strings"
)

// SchemaError reports that an input table lacks columns an operation requires.
// It distinguishes table-shape problems, which fail loudly, from row-level
// data-quality problems, which are handled by dropping the offending rows.
type SchemaError struct {
	// Table names the input the operation was applied to, e.g. "orders" or
	// "order_detail".
	Table string

	// Missing lists the absent required columns.
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table %s: missing required columns: %s",
		e.Table, strings.Join(e.Missing, ", "))
}

// Require returns a *SchemaError if any of cols is not declared on t, nil
// otherwise. name identifies t in the error message.
func Require(t *Table, name string, cols ...string) error {
	if missing := t.Missing(cols...); len(missing) > 0 {
		return &SchemaError{Table: name, Missing: missing}
	}
	return nil
}
