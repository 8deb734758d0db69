// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Format identifies which parser produced a Table.
type Format string

const (
	FormatWrapped   Format = "wrapped-query"
	FormatJSON      Format = "json"
	FormatDelimited Format = "delimited"
)

// Cell is a single table value: a string, a float64, or nil.
type Cell any

// Table is the uniform in-memory representation of any parsed tabular
// source. Column ordering is fixed at creation and load-bearing: all row
// access goes through column indexes. A Table is immutable once parsed;
// scoring and role inference never mutate it.
type Table struct {
	// Format records which parser recognized the payload.
	Format Format `json:"format" yaml:"format"`

	// SourceURL is the URL of the payload this table was parsed from.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// Columns holds the header names in source order. Uniqueness is not
	// required.
	Columns []string `json:"columns" yaml:"columns"`

	// Rows holds the data rows. Rows may be shorter than Columns (missing
	// trailing cells read as nil) but never longer.
	Rows [][]Cell `json:"rows" yaml:"rows"`
}

// CellAt returns the cell at (row, col), or nil when the row is shorter
// than the column set or the indexes are out of range.
func (t *Table) CellAt(row, col int) Cell {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return nil
	}
	r := t.Rows[row]
	if col >= len(r) {
		return nil
	}
	return r[col]
}
