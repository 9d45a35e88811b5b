// Package models defines the in-memory relations loaded from the inspection
// workbook and the records handed to the report template.
package models

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// FoldName normalizes a column or category name for comparison: trimmed,
// NFC-composed and case-folded.
func FoldName(name string) string {
	// Casers are stateful, so one is made per call.
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(name)))
}

// Table is one worksheet held as an ordered relation. Row order is the sheet
// order and is never changed by filtering.
type Table struct {
	// Name is the sheet name the table was loaded from.
	Name string `json:"name"`
	// Columns holds the header cells in sheet order.
	Columns []string `json:"columns"`
	// Rows holds cell text per row, aligned with Columns. Short rows are allowed.
	Rows [][]string `json:"rows"`
	// Index maps folded column names to their position in Columns.
	Index map[string]int `json:"-"`
}

// NewTable builds a Table and its case-insensitive column index.
func NewTable(name string, columns []string, rows [][]string) *Table {
	t := &Table{Name: name, Columns: columns, Rows: rows}
	t.Reindex()
	return t
}

// Reindex rebuilds the column index. The first occurrence of a duplicated
// header wins.
func (t *Table) Reindex() {
	t.Index = make(map[string]int, len(t.Columns))
	for i, col := range t.Columns {
		key := FoldName(col)
		if key == "" {
			continue
		}
		if _, ok := t.Index[key]; !ok {
			t.Index[key] = i
		}
	}
}

// Col returns the position of a column, matched case-insensitively.
func (t *Table) Col(name string) (int, bool) {
	if t == nil {
		return 0, false
	}
	if t.Index == nil {
		t.Reindex()
	}
	i, ok := t.Index[FoldName(name)]
	return i, ok
}

// Has reports whether the table has the named column.
func (t *Table) Has(name string) bool {
	_, ok := t.Col(name)
	return ok
}

// Require returns a *ColumnError for the first missing column.
func (t *Table) Require(names ...string) error {
	for _, name := range names {
		if !t.Has(name) {
			tableName := ""
			if t != nil {
				tableName = t.Name
			}
			return &ColumnError{Table: tableName, Column: name}
		}
	}
	return nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Row returns a view of row i.
func (t *Table) Row(i int) Row {
	return Row{table: t, pos: i}
}

// All returns every row in table order.
func (t *Table) All() []Row {
	return t.Filter(nil)
}

// Filter returns the rows accepted by keep, in table order. A nil keep accepts
// every row.
func (t *Table) Filter(keep func(Row) bool) []Row {
	var out []Row
	for i := 0; i < t.Len(); i++ {
		r := t.Row(i)
		if keep == nil || keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// AddColumn appends a column, or returns the position of an existing one with
// the same folded name.
func (t *Table) AddColumn(name string) int {
	if i, ok := t.Col(name); ok {
		return i
	}
	t.Columns = append(t.Columns, name)
	t.Reindex()
	return len(t.Columns) - 1
}

// Set writes a cell, growing the row as needed.
func (t *Table) Set(row, col int, value string) {
	for len(t.Rows[row]) <= col {
		t.Rows[row] = append(t.Rows[row], "")
	}
	t.Rows[row][col] = value
}

// Row is a read-only view of one table row.
type Row struct {
	table *Table
	pos   int
}

// Pos returns the row position within its table.
func (r Row) Pos() int {
	return r.pos
}

// Raw returns the untouched cell text for a column, or "" when the column is
// absent or the row is short.
func (r Row) Raw(column string) string {
	i, ok := r.table.Col(column)
	if !ok {
		return ""
	}
	cells := r.table.Rows[r.pos]
	if i >= len(cells) {
		return ""
	}
	return cells[i]
}

// Get resolves a column case-insensitively and returns its coerced string
// value (see Coerce).
func (r Row) Get(column string) string {
	return Coerce(r.Raw(column))
}

// Key returns the column value normalized for identifier comparison.
func (r Row) Key(column string) string {
	return Key(r.Raw(column))
}

// Bool returns the column value read as a yes/no flag.
func (r Row) Bool(column string) bool {
	return Truthy(r.Raw(column))
}
