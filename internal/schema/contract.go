// Package schema declares the ingestion contracts for the raw point-of-sale
// extracts. A Contract names a table's fields with their coercion types; the
// CSV parser and the coerce transform are driven entirely by these.
package schema

// Field describes one raw column.
type Field struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"` // "int" | "number" | "text" | "timestamp"
	Required bool     `json:"required,omitempty"`
	Layout   string   `json:"layout,omitempty"` // timestamp layout override
	Enum     []string `json:"enum,omitempty"`
}

// Contract is the schema contract for one raw table.
type Contract struct {
	Name      string            `json:"name"`
	Fields    []Field           `json:"fields"`
	DedupKeys []string          `json:"dedup_keys,omitempty"`
	HeaderMap map[string]string `json:"header_map,omitempty"`
}

// Columns returns the contract's field names in declaration order.
func (c Contract) Columns() []string {
	cols := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		cols[i] = f.Name
	}
	return cols
}

// TimestampColumns returns the names of fields typed "timestamp".
func (c Contract) TimestampColumns() []string {
	var cols []string
	for _, f := range c.Fields {
		if f.Type == "timestamp" {
			cols = append(cols, f.Name)
		}
	}
	return cols
}
