package enrich

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/workvalues-cli/internal/table"
	"github.com/sells-group/workvalues-cli/internal/workvalues"
)

// CollisionSuffix is appended to reference columns that clash with an input column.
const CollisionSuffix = "_ONET"

// ErrDuplicateKey means the reference table holds a SOC code more than once.
var ErrDuplicateKey = eris.New("merge keys are not unique in the work values table")

// Merge left-joins ref onto input by SOC Code. Every input row is kept in
// order; rows without a match get empty reference cells.
func Merge(input, ref *table.Table) (*table.Table, error) {
	inKey := input.Index(workvalues.SOCColumn)
	if inKey < 0 {
		return nil, eris.Errorf("enrich: input has no %q column", workvalues.SOCColumn)
	}
	refKey := ref.Index(workvalues.SOCColumn)
	if refKey < 0 {
		return nil, eris.Errorf("enrich: work values have no %q column", workvalues.SOCColumn)
	}

	byCode := make(map[string]int, ref.Len())
	for r := range ref.Rows {
		code := ref.Cell(r, refKey)
		if _, dup := byCode[code]; dup {
			return nil, eris.Wrapf(ErrDuplicateKey, "SOC code %q", code)
		}
		byCode[code] = r
	}

	var refCols []int
	out := table.New(input.Columns...)
	for c, name := range ref.Columns {
		if c == refKey {
			continue
		}
		if input.Has(name) {
			name += CollisionSuffix
		}
		refCols = append(refCols, c)
		out.Columns = append(out.Columns, name)
	}

	out.Rows = make([][]string, 0, input.Len())
	for r := range input.Rows {
		row := make([]string, 0, len(out.Columns))
		for c := range input.Columns {
			row = append(row, input.Cell(r, c))
		}
		match, ok := byCode[input.Cell(r, inKey)]
		for _, c := range refCols {
			if ok {
				row = append(row, ref.Cell(match, c))
			} else {
				row = append(row, "")
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// OrderColumns moves the standard columns to the front, followed by the six
// work values, then every remaining column in its current order.
func OrderColumns(t *table.Table) *table.Table {
	front := []string{JobTitleColumn, HeadCountColumn, workvalues.SOCColumn, OccTitleColumn}
	placed := make(map[int]bool)
	var idx []int
	for _, name := range append(front, workvalues.ValueNames...) {
		if i := t.Index(name); i >= 0 && !placed[i] {
			placed[i] = true
			idx = append(idx, i)
		}
	}
	for i := range t.Columns {
		if !placed[i] {
			idx = append(idx, i)
		}
	}
	return t.Select(idx)
}

// Result is an enriched table plus match statistics.
type Result struct {
	Table   *table.Table
	Matched int // input rows whose SOC code was found in the reference
}

// Join merges ref into an input already passed through PrepareInput and
// orders the columns for output.
func Join(input *table.Table, ref *workvalues.Reference) (*Result, error) {
	merged, err := Merge(input, ref.Table)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, ref.Table.Len())
	for _, code := range ref.Table.Column(workvalues.SOCColumn) {
		known[code] = true
	}
	matched := 0
	for _, code := range input.Column(workvalues.SOCColumn) {
		if known[code] {
			matched++
		}
	}

	return &Result{Table: OrderColumns(merged), Matched: matched}, nil
}
