// Package enrich standardizes a company job-title table and left-joins it
// with the normalized O*NET work values on SOC code.
package enrich

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/workvalues-cli/internal/column"
	"github.com/sells-group/workvalues-cli/internal/soc"
	"github.com/sells-group/workvalues-cli/internal/table"
	"github.com/sells-group/workvalues-cli/internal/workvalues"
)

// Standard input column names after PrepareInput.
const (
	JobTitleColumn   = "Job Title"
	HeadCountColumn  = "HeadCount"
	OccTitleColumn   = "Occupational Title"
	defaultHeadCount = "1"
)

var (
	jobTitleAliases  = []string{"Job Title", "Job Titles"}
	headCountAliases = []string{"HeadCount", "Head Count", "HC"}
	occTitleAliases  = []string{"Occupational Title", "Occupation Title", "ONET Title", "Title"}
	inputSOCAliases  = []string{
		"SOC Code", "SOC", "Code", "SOC_Code",
		"O*NET-SOC Codes", "O*NET-SOC Code",
		"ONET SOC Codes", "ONET SOC Code",
		"ONET-SOC Codes", "ONET-SOC Code",
		"ONET Codes", "ONET Code",
	}
)

// InputColumns records which input headers were resolved. Empty means absent.
type InputColumns struct {
	JobTitle  string
	SOC       string
	HeadCount string
	OccTitle  string
}

// PrepareInput resolves the job-title table's columns and rewrites t in
// place to the standard names. A missing SOC column is the only failure and
// matches column.ErrNotFound.
func PrepareInput(t *table.Table) (InputColumns, error) {
	var cols InputColumns
	cols.JobTitle, _ = column.Lookup(t.Columns, jobTitleAliases)

	socCol, err := column.Find(t.Columns, inputSOCAliases)
	if err != nil {
		return cols, eris.Wrap(err, "enrich: input must include a 'SOC Code' column")
	}
	cols.SOC = socCol
	cols.HeadCount, _ = column.Lookup(t.Columns, headCountAliases)
	cols.OccTitle, _ = column.Lookup(t.Columns, occTitleAliases)

	t.SetColumn(workvalues.SOCColumn, soc.NormalizeAll(t.Column(socCol)))

	if cols.HeadCount == "" {
		t.Fill(HeadCountColumn, defaultHeadCount)
	} else {
		t.Rename(cols.HeadCount, HeadCountColumn)
	}

	switch {
	case cols.OccTitle != "":
		t.Rename(cols.OccTitle, OccTitleColumn)
	case cols.JobTitle != "":
		t.SetColumn(OccTitleColumn, t.Column(cols.JobTitle))
	default:
		t.Fill(OccTitleColumn, "")
	}

	if cols.JobTitle != "" {
		t.Rename(cols.JobTitle, JobTitleColumn)
	}

	zap.L().Debug("enrich: input columns resolved",
		zap.String("job_title", cols.JobTitle),
		zap.String("soc", cols.SOC),
		zap.String("head_count", cols.HeadCount),
		zap.String("occupational_title", cols.OccTitle),
	)
	return cols, nil
}
