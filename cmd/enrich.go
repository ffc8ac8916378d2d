package main

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/workvalues-cli/internal/enrich"
	"github.com/sells-group/workvalues-cli/internal/export"
	"github.com/sells-group/workvalues-cli/internal/fetcher"
	"github.com/sells-group/workvalues-cli/internal/table"
	"github.com/sells-group/workvalues-cli/internal/workvalues"
)

var (
	enrichInput          string
	enrichReference      string
	enrichOutput         string
	enrichInputSheet     string
	enrichReferenceSheet string
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Merge O*NET Work Values into a job-title workbook",
	Long: `Reads the input workbook, normalizes its SOC codes, loads the Work Values
reference (local path, http(s):// or ftp:// URL; xlsx, csv or zip) and writes a
copy of the input with the six values appended.

Examples:
  workvalues enrich --input "Company Job Titles - Mapped.xlsx" \
    --reference "https://raw.githubusercontent.com/org/repo/main/Work%20Values.xlsx"

  workvalues enrich --input titles.csv --reference db_29_0_excel.zip --output enriched.xlsx`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := runEnrich(cmd.Context(), enrichRequest{
			Input:          enrichInput,
			Reference:      firstNonEmpty(enrichReference, cfg.Reference.Source),
			Output:         firstNonEmpty(enrichOutput, cfg.Output.Path),
			InputSheet:     firstNonEmpty(enrichInputSheet, cfg.Input.Sheet),
			ReferenceSheet: firstNonEmpty(enrichReferenceSheet, cfg.Reference.Sheet),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s\n", path)
		return nil
	},
}

func init() {
	enrichCmd.Flags().StringVar(&enrichInput, "input", "", "input workbook of job titles (xlsx or csv)")
	enrichCmd.Flags().StringVar(&enrichReference, "reference", "", "Work Values source: path or URL (default reference.source)")
	enrichCmd.Flags().StringVar(&enrichOutput, "output", "", "output workbook path (default output.path)")
	enrichCmd.Flags().StringVar(&enrichInputSheet, "input-sheet", "", "input sheet name (default first sheet)")
	enrichCmd.Flags().StringVar(&enrichReferenceSheet, "reference-sheet", "", "reference sheet name (default first sheet)")
	_ = enrichCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(enrichCmd)
}

type enrichRequest struct {
	Input          string
	Reference      string
	Output         string
	InputSheet     string
	ReferenceSheet string
}

// runEnrich executes one enrichment and returns the path written. Errors
// carry the exit code of the stage that failed.
func runEnrich(ctx context.Context, req enrichRequest) (string, error) {
	if req.Reference == "" {
		return "", eris.New("enrich: --reference or reference.source is required")
	}
	log := zap.L().With(zap.String("input", req.Input), zap.String("reference", req.Reference))
	sources := newSourceReader(cfg)

	records, err := sources.ReadRecords(ctx, req.Input, fetcher.SourceOptions{
		Sheet:    req.InputSheet,
		Encoding: cfg.Input.Encoding,
	})
	if err != nil {
		return "", withExit(exitInputRead, eris.Wrap(err, "failed to read input"))
	}
	input := table.FromRecords(records)
	log.Info("input loaded", zap.Int("rows", input.Len()), zap.Strings("columns", input.Columns))

	cols, err := enrich.PrepareInput(input)
	if err != nil {
		return "", withExit(exitMissingSOC, err)
	}

	loader := workvalues.NewLoader(sources, fetcher.SourceOptions{Sheet: req.ReferenceSheet})
	ref, err := loader.Load(ctx, req.Reference)
	if err != nil {
		return "", withExit(exitReference, eris.Wrap(err, "failed to load O*NET Work Values"))
	}

	res, err := enrich.Join(input, ref)
	if err != nil {
		return "", err
	}

	path, err := export.Write(req.Output, res.Table, export.Options{
		Sheet:       cfg.Output.Sheet,
		TextColumns: []string{workvalues.SOCColumn, cols.SOC},
	}, cfg.Output.MaxAttempts)
	if err != nil {
		return "", withExit(exitWrite, err)
	}

	log.Info("enriched workbook written",
		zap.String("output", path),
		zap.Int("rows", res.Table.Len()),
		zap.Int("matched", res.Matched),
	)
	return path, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
