// Package table holds the in-memory tabular model shared by the readers, the
// work-values loader and the export writer. Cells are strings; an empty
// string is a missing value.
package table

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Table is an ordered set of named columns with string rows. Column names may
// repeat; lookups by name resolve to the first occurrence.
type Table struct {
	Columns []string
	Rows    [][]string
}

// New returns an empty table with the given columns.
func New(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// FromRecords builds a table from raw sheet records. The first record is the
// header; header names are trimmed and blank names become "Unnamed: N".
// Fully blank rows are skipped and every row is padded to the header width.
func FromRecords(records [][]string) *Table {
	if len(records) == 0 {
		return New()
	}

	width := lastNonEmpty(records[0]) + 1
	for _, rec := range records[1:] {
		if w := lastNonEmpty(rec) + 1; w > width {
			width = w
		}
	}

	cols := make([]string, width)
	for i := range cols {
		name := ""
		if i < len(records[0]) {
			name = strings.TrimSpace(records[0][i])
		}
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		cols[i] = name
	}

	t := &Table{Columns: cols}
	for _, rec := range records[1:] {
		if lastNonEmpty(rec) < 0 {
			continue
		}
		row := make([]string, width)
		copy(row, rec)
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Index returns the position of the first column called name, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Has reports whether a column called name exists.
func (t *Table) Has(name string) bool { return t.Index(name) >= 0 }

// Cell returns the value at row r of column index c, or "" when out of range.
func (t *Table) Cell(r, c int) string {
	if r < 0 || r >= len(t.Rows) || c < 0 || c >= len(t.Rows[r]) {
		return ""
	}
	return t.Rows[r][c]
}

// Column returns a copy of the values of the named column, or nil if absent.
func (t *Table) Column(name string) []string {
	idx := t.Index(name)
	if idx < 0 {
		return nil
	}
	vals := make([]string, len(t.Rows))
	for r := range t.Rows {
		vals[r] = t.Cell(r, idx)
	}
	return vals
}

// SetColumn overwrites the named column with vals, appending it when absent.
// vals must have one entry per row.
func (t *Table) SetColumn(name string, vals []string) {
	if len(vals) != len(t.Rows) {
		panic(fmt.Sprintf("table: SetColumn %q: %d values for %d rows", name, len(vals), len(t.Rows)))
	}
	idx := t.Index(name)
	if idx < 0 {
		t.Columns = append(t.Columns, name)
		for r := range t.Rows {
			t.Rows[r] = append(t.Rows[r], vals[r])
		}
		return
	}
	for r := range t.Rows {
		t.Rows[r][idx] = vals[r]
	}
}

// Fill sets every cell of the named column to v, appending it when absent.
func (t *Table) Fill(name, v string) {
	vals := make([]string, len(t.Rows))
	for i := range vals {
		vals[i] = v
	}
	t.SetColumn(name, vals)
}

// Rename renames the first column called from. It is a no-op when from is
// absent or equal to to.
func (t *Table) Rename(from, to string) {
	if from == to {
		return
	}
	if idx := t.Index(from); idx >= 0 {
		t.Columns[idx] = to
	}
}

// Select returns a new table holding the columns at the given indexes, in order.
func (t *Table) Select(indexes []int) *Table {
	out := &Table{Columns: make([]string, len(indexes)), Rows: make([][]string, len(t.Rows))}
	for i, idx := range indexes {
		out.Columns[i] = t.Columns[idx]
	}
	for r := range t.Rows {
		row := make([]string, len(indexes))
		for i, idx := range indexes {
			row[i] = t.Cell(r, idx)
		}
		out.Rows[r] = row
	}
	return out
}

// Project returns a new table with the named columns in the given order.
func (t *Table) Project(names ...string) (*Table, error) {
	idx := make([]int, len(names))
	for i, n := range names {
		idx[i] = t.Index(n)
		if idx[i] < 0 {
			return nil, eris.Errorf("table: no column %q", n)
		}
	}
	return t.Select(idx), nil
}

// DropDuplicates removes rows whose value in the key column was already seen,
// keeping the first occurrence.
func (t *Table) DropDuplicates(key string) {
	idx := t.Index(key)
	if idx < 0 {
		return
	}
	seen := make(map[string]bool, len(t.Rows))
	kept := t.Rows[:0]
	for _, row := range t.Rows {
		k := ""
		if idx < len(row) {
			k = row[idx]
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		kept = append(kept, row)
	}
	t.Rows = kept
}

func lastNonEmpty(rec []string) int {
	for i := len(rec) - 1; i >= 0; i-- {
		if strings.TrimSpace(rec[i]) != "" {
			return i
		}
	}
	return -1
}
