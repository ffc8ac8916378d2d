//go:build !integration

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
	"github.com/xuri/excelize/v2"

	"github.com/sells-group/workvalues-cli/internal/config"
	"github.com/sells-group/workvalues-cli/internal/enrich"
)

func testConfig() *config.Config {
	return &config.Config{
		Log:    config.LogConfig{Level: "info", Format: "console"},
		HTTP:   config.HTTPConfig{TimeoutSecs: 5, MaxRetries: 1, UserAgent: "test"},
		FTP:    config.FTPConfig{TimeoutSecs: 5},
		Input:  config.InputConfig{Encoding: "utf-8"},
		Output: config.OutputConfig{Path: config.DefaultOutputPath, MaxAttempts: 10, Sheet: "Sheet1"},
	}
}

// writeTestXLSX writes a one-sheet workbook and returns its path.
func writeTestXLSX(t *testing.T, dir, name string, rows [][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	require.NoError(t, err)
	for _, data := range rows {
		r := sheet.AddRow()
		for _, v := range data {
			r.AddCell().SetString(v)
		}
	}
	path := filepath.Join(dir, name)
	require.NoError(t, f.Save(path))
	return path
}

func wideReference(t *testing.T, dir string) string {
	return writeTestXLSX(t, dir, "Work Values.xlsx", [][]string{
		{"O*NET-SOC Code", "Title", "Achievement", "Independence", "Recognition", "Relationships", "Support", "Working Conditions"},
		{"13-1081.00", "Logisticians", "5.1", "4.9", "3.8", "4.2", "3.5", "4.4"},
		{"131081", "Logisticians (2010)", "0", "0", "0", "0", "0", "0"},
	})
}

func TestRunEnrich_WritesMergedWorkbook(t *testing.T) {
	cfg = testConfig()
	dir := t.TempDir()
	input := writeTestXLSX(t, dir, "titles.xlsx", [][]string{
		{"Job Title", "SOC", "Dept"},
		{"Logistics Analyst", "13108100", "Ops"},
		{"Astronaut", "99-9999", "R&D"},
	})
	ref := wideReference(t, dir)
	out := filepath.Join(dir, "out.xlsx")

	path, err := runEnrich(context.Background(), enrichRequest{Input: input, Reference: ref, Output: out})
	require.NoError(t, err)
	assert.Equal(t, out, path)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{
		"Job Title", "HeadCount", "SOC Code", "Occupational Title",
		"Achievement", "Independence", "Recognition", "Relationships", "Support", "Working Conditions",
		"SOC", "Dept",
	}, rows[0])
	assert.Equal(t, []string{"Logistics Analyst", "1", "13-10810-0", "Logistics Analyst", "5.1", "4.9", "3.8", "4.2", "3.5", "4.4", "13108100", "Ops"}, rows[1])
	assert.Equal(t, "Astronaut", rows[2][0])
	assert.Equal(t, "99-9999", rows[2][2])
	assert.Equal(t, "R&D", rows[2][len(rows[2])-1])
}

func TestRunEnrich_MissingInput(t *testing.T) {
	cfg = testConfig()
	dir := t.TempDir()

	_, err := runEnrich(context.Background(), enrichRequest{
		Input:     filepath.Join(dir, "missing.xlsx"),
		Reference: wideReference(t, dir),
		Output:    filepath.Join(dir, "out.xlsx"),
	})
	require.Error(t, err)
	assert.Equal(t, exitInputRead, exitCode(err))
	assert.Contains(t, err.Error(), "failed to read input")
}

func TestRunEnrich_MissingSOCColumn(t *testing.T) {
	cfg = testConfig()
	dir := t.TempDir()
	input := writeTestXLSX(t, dir, "titles.xlsx", [][]string{{"Job Title", "Dept"}, {"Buyer", "Ops"}})

	_, err := runEnrich(context.Background(), enrichRequest{Input: input, Reference: wideReference(t, dir), Output: filepath.Join(dir, "out.xlsx")})
	require.Error(t, err)
	assert.Equal(t, exitMissingSOC, exitCode(err))
	assert.Contains(t, err.Error(), "SOC Code")
}

func TestRunEnrich_BadReference(t *testing.T) {
	cfg = testConfig()
	dir := t.TempDir()
	input := writeTestXLSX(t, dir, "titles.xlsx", [][]string{{"SOC Code"}, {"13-1081"}})
	ref := writeTestXLSX(t, dir, "ref.xlsx", [][]string{
		{"SOC Code", "Element Name", "Data Value"},
		{"13-1081", "Creativity", "2"},
	})

	_, err := runEnrich(context.Background(), enrichRequest{Input: input, Reference: ref, Output: filepath.Join(dir, "out.xlsx")})
	require.Error(t, err)
	assert.Equal(t, exitReference, exitCode(err))
	assert.Contains(t, err.Error(), "Creativity")
}

func TestRunEnrich_RequiresReference(t *testing.T) {
	cfg = testConfig()
	_, err := runEnrich(context.Background(), enrichRequest{Input: "in.xlsx"})
	require.Error(t, err)
	assert.Equal(t, exitFailure, exitCode(err))
}

func TestRunEnrich_CSVInput(t *testing.T) {
	cfg = testConfig()
	dir := t.TempDir()
	input := filepath.Join(dir, "titles.csv")
	require.NoError(t, os.WriteFile(input, []byte("\ufeffJob Titles,O*NET-SOC Code,HC\nPlanner,13-1081,7\n"), 0o644))

	out := filepath.Join(dir, "out.xlsx")
	_, err := runEnrich(context.Background(), enrichRequest{Input: input, Reference: wideReference(t, dir), Output: out})
	require.NoError(t, err)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Job Title", "HeadCount", "SOC Code", "Occupational Title"}, rows[0][:4])
	assert.Equal(t, []string{"Planner", "7", "13-1081", "Planner", "0"}, rows[1][:5])
}

func TestEnrichCmd_PrintsSavedPath(t *testing.T) {
	cfg = testConfig()
	dir := t.TempDir()
	input := writeTestXLSX(t, dir, "titles.xlsx", [][]string{{enrich.JobTitleColumn, "SOC Code"}, {"Buyer", "13-1081"}})
	out := filepath.Join(dir, "enriched.xlsx")

	enrichInput, enrichReference, enrichOutput = input, wideReference(t, dir), out
	defer func() { enrichInput, enrichReference, enrichOutput = "", "", "" }()

	var buf bytes.Buffer
	enrichCmd.SetOut(&buf)
	enrichCmd.SetContext(context.Background())
	defer enrichCmd.SetOut(nil)

	require.NoError(t, enrichCmd.RunE(enrichCmd, nil))
	assert.Equal(t, "Saved: "+out+"\n", buf.String())
}
