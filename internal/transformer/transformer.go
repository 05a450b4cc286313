package transformer

import "posetl/pkg/table"

// Transformer is a table-in, table-out pipeline stage. Implementations must
// not mutate their input; they return a new table (or the input unchanged when
// there is nothing to do).
type Transformer interface {
	Apply(*table.Table) (*table.Table, error)
}

// Chain is an ordered list of transformers applied left to right. The first
// error aborts the chain.
type Chain []Transformer

func (c Chain) Apply(in *table.Table) (*table.Table, error) {
	out := in
	for _, t := range c {
		var err error
		out, err = t.Apply(out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
