package workvalues

import (
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/workvalues-cli/internal/column"
	"github.com/sells-group/workvalues-cli/internal/soc"
	"github.com/sells-group/workvalues-cli/internal/table"
)

const maxElementExamples = 10

// longRow is one mapped (occupation, element) observation.
type longRow struct {
	code    string
	value   string
	data    string
	scale   string
	date    time.Time
	hasDate bool
}

type cellKey struct {
	code  string
	value string
}

// buildLong pivots a long-shape table (SOC, Element Name, Scale Name, Date,
// Data Value) into one row per SOC code.
func buildLong(raw *table.Table, socCol string) (*Reference, error) {
	elemCol, okElem := column.Lookup(raw.Columns, []string{"Element Name"})
	dataCol, okData := column.Lookup(raw.Columns, []string{"Data Value"})
	if !okElem || !okData {
		return nil, eris.Wrapf(ErrUnrecognizedShape, "available columns: %q", raw.Columns)
	}
	scaleCol, hasScale := column.Lookup(raw.Columns, []string{"Scale Name", "Scale"})
	dateCol, hasDate := column.Lookup(raw.Columns, []string{"Date"})

	report := Report{
		Shape:           Long,
		ElementColumn:   elemCol,
		DataValueColumn: dataCol,
		ScaleColumn:     scaleCol,
		DateColumn:      dateCol,
	}

	socIdx, elemIdx, dataIdx := raw.Index(socCol), raw.Index(elemCol), raw.Index(dataCol)
	scaleIdx, dateIdx := -1, -1
	if hasScale {
		scaleIdx = raw.Index(scaleCol)
	}
	if hasDate {
		dateIdx = raw.Index(dateCol)
	}

	var rows []longRow
	for r := range raw.Rows {
		value, ok := ValueFor(raw.Cell(r, elemIdx))
		if !ok {
			continue
		}
		lr := longRow{
			code:  soc.Normalize(raw.Cell(r, socIdx)),
			value: value,
			data:  strings.TrimSpace(raw.Cell(r, dataIdx)),
			scale: raw.Cell(r, scaleIdx),
		}
		if dateIdx >= 0 {
			lr.date, lr.hasDate = parseDate(raw.Cell(r, dateIdx))
		}
		rows = append(rows, lr)
	}

	if len(rows) == 0 {
		return nil, eris.Wrapf(ErrNoWorkValues, "saw examples: %q", elementExamples(raw, elemIdx))
	}
	report.MappedRows = len(rows)

	if hasScale {
		if imp := importanceRows(rows); len(imp) > 0 {
			rows = imp
			report.ImportanceOnly = true
		}
	}

	var cells map[cellKey]string
	if hasDate {
		cells = latestByDate(rows)
	} else {
		cells = lastNonEmpty(rows)
	}

	zap.L().Debug("work values: long shape mapped",
		zap.Int("mapped_rows", report.MappedRows),
		zap.Int("kept_rows", len(rows)),
		zap.Bool("importance_only", report.ImportanceOnly),
	)

	return &Reference{Table: pivot(cells), Report: report}, nil
}

// importanceRows keeps rows whose scale mentions "importance". An empty
// result means the caller keeps every row.
func importanceRows(rows []longRow) []longRow {
	var out []longRow
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.scale), "importance") {
			out = append(out, r)
		}
	}
	return out
}

// latestByDate keeps the last row per (code, value) in date order. Rows
// without a parseable date order after every dated row; among equal dates,
// and among undated rows, the later row in file order wins.
func latestByDate(rows []longRow) map[cellKey]string {
	best := make(map[cellKey]longRow, len(rows))
	for _, r := range rows {
		k := cellKey{r.code, r.value}
		prev, seen := best[k]
		if !seen || !r.hasDate || (prev.hasDate && !r.date.Before(prev.date)) {
			best[k] = r
		}
	}
	cells := make(map[cellKey]string, len(best))
	for k, r := range best {
		cells[k] = r.data
	}
	return cells
}

// lastNonEmpty keeps the last non-blank Data Value per (code, value) in file order.
func lastNonEmpty(rows []longRow) map[cellKey]string {
	cells := make(map[cellKey]string, len(rows))
	for _, r := range rows {
		k := cellKey{r.code, r.value}
		if _, seen := cells[k]; !seen || r.data != "" {
			cells[k] = r.data
		}
	}
	return cells
}

// pivot lays cells out as one row per code, sorted by code, with a column per
// value name. Codes whose six cells are all blank are dropped.
func pivot(cells map[cellKey]string) *table.Table {
	byCode := make(map[string][]string)
	for k, v := range cells {
		row, ok := byCode[k.code]
		if !ok {
			row = make([]string, len(ValueNames))
			byCode[k.code] = row
		}
		row[valueIndex(k.value)] = v
	}

	codes := make([]string, 0, len(byCode))
	for code, row := range byCode {
		if strings.Join(row, "") == "" {
			continue
		}
		codes = append(codes, code)
	}
	sort.Strings(codes)

	out := table.New(append([]string{SOCColumn}, ValueNames...)...)
	for _, code := range codes {
		out.Rows = append(out.Rows, append([]string{code}, byCode[code]...))
	}
	return out
}

func valueIndex(name string) int {
	for i, v := range ValueNames {
		if v == name {
			return i
		}
	}
	return -1
}

// elementExamples returns up to maxElementExamples distinct, sorted element
// names from the raw table for error messages.
func elementExamples(raw *table.Table, elemIdx int) []string {
	seen := make(map[string]bool)
	var names []string
	for r := range raw.Rows {
		n := raw.Cell(r, elemIdx)
		if strings.TrimSpace(n) == "" || seen[n] {
			continue
		}
		seen[n] = true
		names = append(names, n)
	}
	sort.Strings(names)
	if len(names) > maxElementExamples {
		names = names[:maxElementExamples]
	}
	return names
}
