package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/workvalues-cli/internal/fetcher"
	"github.com/sells-group/workvalues-cli/internal/workvalues"
)

var (
	inspectReference string
	inspectSheet     string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show how a Work Values reference file is interpreted",
	Long:  "Loads the reference, detects wide or long shape and prints the resolved columns and row counts as YAML.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		src := firstNonEmpty(inspectReference, cfg.Reference.Source)
		if src == "" {
			return eris.New("inspect: --reference or reference.source is required")
		}

		loader := workvalues.NewLoader(newSourceReader(cfg), fetcher.SourceOptions{
			Sheet: firstNonEmpty(inspectSheet, cfg.Reference.Sheet),
		})
		ref, err := loader.Load(cmd.Context(), src)
		if err != nil {
			return withExit(exitReference, eris.Wrap(err, "failed to load O*NET Work Values"))
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(ref.Report); err != nil {
			return eris.Wrap(err, "inspect: encode report")
		}
		return enc.Close()
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectReference, "reference", "", "Work Values source: path or URL (default reference.source)")
	inspectCmd.Flags().StringVar(&inspectSheet, "sheet", "", "reference sheet name (default first sheet)")
	rootCmd.AddCommand(inspectCmd)
}
