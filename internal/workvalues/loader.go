// Package workvalues loads O*NET Work Values from a reference spreadsheet in
// either wide shape (one column per value) or long shape (one row per
// occupation and element) and normalizes it to one wide row per SOC code.
package workvalues

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/workvalues-cli/internal/column"
	"github.com/sells-group/workvalues-cli/internal/fetcher"
	"github.com/sells-group/workvalues-cli/internal/soc"
	"github.com/sells-group/workvalues-cli/internal/table"
)

// Shape is the layout detected in a reference file.
type Shape string

const (
	Wide Shape = "wide"
	Long Shape = "long"
)

// Report describes how a reference file was interpreted.
type Report struct {
	Source          string            `yaml:"source,omitempty"`
	Shape           Shape             `yaml:"shape"`
	SOCColumn       string            `yaml:"soc_column"`
	ValueColumns    map[string]string `yaml:"value_columns,omitempty"`
	ElementColumn   string            `yaml:"element_column,omitempty"`
	DataValueColumn string            `yaml:"data_value_column,omitempty"`
	ScaleColumn     string            `yaml:"scale_column,omitempty"`
	DateColumn      string            `yaml:"date_column,omitempty"`
	ImportanceOnly  bool              `yaml:"importance_only,omitempty"`
	SourceRows      int               `yaml:"source_rows"`
	MappedRows      int               `yaml:"mapped_rows,omitempty"`
	Occupations     int               `yaml:"occupations"`
}

// Reference is the normalized work-values table: a SOC Code column followed
// by the six ValueNames, at most one row per normalized code.
type Reference struct {
	Table  *table.Table
	Report Report
}

// Loader reads reference sources and normalizes them.
type Loader struct {
	sources *fetcher.SourceReader
	opts    fetcher.SourceOptions
}

// NewLoader creates a Loader reading through sources with the given options.
func NewLoader(sources *fetcher.SourceReader, opts fetcher.SourceOptions) *Loader {
	if opts.ZIPHint == "" {
		opts.ZIPHint = "work values"
	}
	return &Loader{sources: sources, opts: opts}
}

// Load reads src (local path or URL) and normalizes it.
func (l *Loader) Load(ctx context.Context, src string) (*Reference, error) {
	records, err := l.sources.ReadRecords(ctx, src, l.opts)
	if err != nil {
		return nil, &SourceError{Source: src, Err: err}
	}

	ref, err := Normalize(table.FromRecords(records))
	if err != nil {
		return nil, err
	}
	ref.Report.Source = src

	zap.L().Info("work values loaded",
		zap.String("source", src),
		zap.String("shape", string(ref.Report.Shape)),
		zap.String("soc_column", ref.Report.SOCColumn),
		zap.Int("source_rows", ref.Report.SourceRows),
		zap.Int("occupations", ref.Report.Occupations),
	)
	return ref, nil
}

// Normalize turns a raw reference table into a Reference. Wide shape is
// tried first; the long-shape path runs only when a value column is absent.
func Normalize(raw *table.Table) (*Reference, error) {
	socCol, err := findSOCColumn(raw.Columns)
	if err != nil {
		return nil, err
	}

	var ref *Reference
	if valueCols, ok := resolveWide(raw.Columns); ok {
		ref, err = buildWide(raw, socCol, valueCols)
	} else {
		zap.L().Debug("work values: wide columns incomplete, trying long shape")
		ref, err = buildLong(raw, socCol)
	}
	if err != nil {
		return nil, err
	}

	ref.Report.SOCColumn = socCol
	ref.Report.SourceRows = raw.Len()
	ref.Report.Occupations = ref.Table.Len()
	return ref, nil
}

func findSOCColumn(headers []string) (string, error) {
	if c, ok := column.Lookup(headers, socAliases); ok {
		return c, nil
	}
	if c, ok := column.FindFragments(headers, "soc", "code"); ok {
		zap.L().Debug("work values: SOC column found by fragment match", zap.String("column", c))
		return c, nil
	}
	return "", eris.Wrapf(ErrMissingSOCColumn, "available columns: %q", headers)
}

// resolveWide finds a header for each of the six values. ok is false as soon
// as one value has no matching header.
func resolveWide(headers []string) ([]string, bool) {
	cols := make([]string, len(ValueNames))
	for i, v := range ValueNames {
		c, ok := column.Search(headers, valueAliases[v])
		if !ok {
			return nil, false
		}
		cols[i] = c
	}
	return cols, true
}

func buildWide(raw *table.Table, socCol string, valueCols []string) (*Reference, error) {
	report := Report{Shape: Wide, ValueColumns: make(map[string]string, len(ValueNames))}
	for i, c := range valueCols {
		report.ValueColumns[ValueNames[i]] = c
	}

	out, err := raw.Project(append([]string{socCol}, valueCols...)...)
	if err != nil {
		return nil, eris.Wrap(err, "work values: project wide columns")
	}
	out.Columns = append([]string{SOCColumn}, ValueNames...)
	out.SetColumn(SOCColumn, soc.NormalizeAll(out.Column(SOCColumn)))
	out.DropDuplicates(SOCColumn)

	return &Reference{Table: out, Report: report}, nil
}
