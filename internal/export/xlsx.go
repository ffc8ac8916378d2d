// Package export writes enriched tables to XLSX workbooks.
package export

import (
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"

	"github.com/sells-group/workvalues-cli/internal/table"
)

// DefaultSheet is the sheet name used when none is configured.
const DefaultSheet = "Sheet1"

// Options controls how a table is written.
type Options struct {
	Sheet       string   // worksheet name; DefaultSheet when empty
	TextColumns []string // columns never converted to numbers
}

// Build lays t out as a single-sheet workbook with a bold header row.
// Numeric-looking cells are stored as numbers unless their column is listed
// in opts.TextColumns. The caller closes the returned file.
func Build(t *table.Table, opts Options) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := fill(f, t, opts); err != nil {
		f.Close() //nolint:errcheck
		return nil, err
	}
	return f, nil
}

// Write builds the workbook for t and saves it through SaveWithRetry,
// returning the path actually written.
func Write(path string, t *table.Table, opts Options, maxAttempts int) (string, error) {
	f, err := Build(t, opts)
	if err != nil {
		return "", err
	}
	defer f.Close() //nolint:errcheck

	return SaveWithRetry(path, maxAttempts, func(p string) error {
		return f.SaveAs(p)
	})
}

func fill(f *excelize.File, t *table.Table, opts Options) error {
	sheet := opts.Sheet
	if sheet == "" {
		sheet = DefaultSheet
	}
	if sheet != f.GetSheetName(0) {
		if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
			return eris.Wrapf(err, "export: name sheet %q", sheet)
		}
	}

	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return eris.Wrap(err, "export: header style")
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return eris.Wrap(err, "export: apply header style")
	}

	text := make([]bool, len(t.Columns))
	for i, c := range t.Columns {
		for _, tc := range opts.TextColumns {
			if c == tc {
				text[i] = true
			}
		}
	}

	for r := range t.Rows {
		vals := make([]any, len(t.Columns))
		for c := range t.Columns {
			vals[c] = cellValue(t.Cell(r, c), text[c])
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return eris.Wrap(err, "export: cell name")
		}
		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			return eris.Wrapf(err, "export: write row %d", r+1)
		}
	}
	return nil
}

// cellValue returns s as a float64 when it reads as a plain number, else
// s itself. Empty cells stay empty, and integers with a leading zero are
// treated as identifiers.
func cellValue(s string, text bool) any {
	if text || s == "" {
		return s
	}
	if !looksNumeric(s) {
		return s
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	return f
}

func looksNumeric(s string) bool {
	digits := strings.TrimPrefix(s, "-")
	if digits == "" {
		return false
	}
	if len(digits) > 1 && digits[0] == '0' && digits[1] != '.' {
		return false
	}
	dot := false
	for i := 0; i < len(digits); i++ {
		switch c := digits[i]; {
		case c >= '0' && c <= '9':
		case c == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return digits != "."
}
