// Package table provides the in-memory tabular model shared by every pipeline
// stage: an ordered sequence of rows, each row a mapping from column name to a
// scalar value (string, int64, float64, decimal, time.Time, or nil).
//
// Tables are treated as immutable once a stage has produced them: stages
// receive a table and return a new one rather than mutating their input.
// Nothing in this package enforces that at the type level; Clone exists so a
// stage that needs to edit rows can do so on its own copy.
package table

// Row is a single record keyed by column name. A missing key and an explicit
// nil value are equivalent: both read as nil.
type Row map[string]any

// Table is an ordered collection of rows with a declared column order. The
// column order is used by sinks (CSV, Excel, SQL inserts) so that output is
// deterministic; rows may carry extra keys but only declared columns are
// emitted.
type Table struct {
	cols []string
	rows []Row
}

// New returns an empty table with the given column order.
func New(cols ...string) *Table {
	return &Table{cols: append([]string(nil), cols...)}
}

// FromRows builds a table from pre-assembled rows. The rows slice is adopted,
// not copied; callers hand over ownership.
func FromRows(cols []string, rows []Row) *Table {
	return &Table{cols: append([]string(nil), cols...), rows: rows}
}

// Columns returns a copy of the declared column order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.cols...)
}

// Has reports whether the named column is declared on the table. Optional
// downstream work (e.g. menu/category KPIs) branches on this rather than
// probing individual rows.
func (t *Table) Has(col string) bool {
	for _, c := range t.cols {
		if c == col {
			return true
		}
	}
	return false
}

// Missing returns, in argument order, the subset of cols not declared on the
// table. An empty result means all required columns are present.
func (t *Table) Missing(cols ...string) []string {
	var missing []string
	for _, c := range cols {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Row returns the i-th row. The returned map is shared with the table; callers
// that intend to modify it must Clone the table first.
func (t *Table) Row(i int) Row { return t.rows[i] }

// Rows returns the underlying row slice for iteration. Read-only by
// convention.
func (t *Table) Rows() []Row { return t.rows }

// Append adds a row to the end of the table.
func (t *Table) Append(r Row) { t.rows = append(t.rows, r) }

// AddColumn declares an additional column if not already present. Existing
// rows are unchanged; absent keys read as nil.
func (t *Table) AddColumn(name string) {
	if !t.Has(name) {
		t.cols = append(t.cols, name)
	}
}

// Clone returns a deep copy: new column slice, new row slice, new row maps.
// Scalar values are shared, which is safe because all supported scalar types
// are immutable values.
func (t *Table) Clone() *Table {
	out := &Table{
		cols: append([]string(nil), t.cols...),
		rows: make([]Row, 0, len(t.rows)),
	}
	for _, r := range t.rows {
		cp := make(Row, len(r))
		for k, v := range r {
			cp[k] = v
		}
		out.rows = append(out.rows, cp)
	}
	return out
}
