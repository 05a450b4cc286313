// Package csv parses raw POS CSV extracts into tables. It streams through
// encoding/csv without buffering the whole input, strips a UTF-8 BOM,
// canonicalizes headers (lowercase snake_case with diacritics folded away, so
// "Catégorie" or "Order ID" both map cleanly), and soft-skips malformed rows
// while counting them.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"posetl/pkg/table"
)

// Options configures the parser. All fields are optional; zero values get
// sensible defaults.
type Options struct {
	// Comma is the field delimiter; ',' when zero.
	Comma rune

	// TrimSpace trims leading/trailing ASCII space from each value.
	TrimSpace bool

	// HeaderMap maps canonicalized source headers to contract field names for
	// extracts whose headers do not already match (e.g. {"order_time":
	// "order_timestamp"}). Applied after canonicalization.
	HeaderMap map[string]string

	// Columns, when set, restricts the output table to these columns in this
	// order. Headers not listed are ignored; listed columns absent from the
	// input read as nil.
	Columns []string
}

// Parser parses CSV input according to Options. A Parser is reusable across
// inputs but not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

const utf8BOM = "\uFEFF"

// Parse consumes CSV records from r and returns the parsed table along with
// the number of rows skipped due to parse errors or width mismatches. The
// first row is always treated as the header. All values are raw strings (or
// nil for absent cells); typing is the coerce transform's job.
func (p *Parser) Parse(r io.Reader) (*table.Table, int, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	rawHeader, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("csv: read header: %w", err)
	}
	// ReuseRecord means the returned slice is recycled on the next Read; keep
	// our own copy of the header.
	header := append([]string(nil), rawHeader...)
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	// Index of each output column in the source row, keyed by canonical name.
	idx := map[string]int{}
	for i, raw := range header {
		name := CanonicalHeader(raw)
		if mapped, ok := p.opt.HeaderMap[name]; ok && mapped != "" {
			name = mapped
		}
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}

	cols := p.opt.Columns
	if len(cols) == 0 {
		cols = make([]string, 0, len(idx))
		for i, raw := range header {
			name := CanonicalHeader(raw)
			if mapped, ok := p.opt.HeaderMap[name]; ok && mapped != "" {
				name = mapped
			}
			if idx[name] == i {
				cols = append(cols, name)
			}
		}
	}

	out := table.New(cols...)
	skipped := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		if len(rec) != len(header) {
			skipped++
			continue
		}

		row := make(table.Row, len(cols))
		for _, c := range cols {
			i, ok := idx[c]
			if !ok || i >= len(rec) {
				row[c] = nil
				continue
			}
			v := rec[i]
			if p.opt.TrimSpace {
				v = strings.TrimSpace(v)
			}
			if v == "" {
				row[c] = nil
			} else {
				row[c] = v
			}
		}
		out.Append(row)
	}
	return out, skipped, nil
}

// foldDiacritics removes combining marks after NFD decomposition, so that
// accented header characters reduce to their ASCII base.
var foldDiacritics = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// CanonicalHeader lowercases a raw header, folds diacritics, and converts
// separator runs to single underscores: "Order ID" -> "order_id",
// "Catégorie" -> "categorie".
func CanonicalHeader(raw string) string {
	s := strings.TrimSpace(raw)
	if folded, _, err := transform.String(foldDiacritics, s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)

	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
