package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/crdc-tools/studylink/internal/config"
	"github.com/crdc-tools/studylink/internal/mapping"
	"github.com/crdc-tools/studylink/internal/report"
)

func newMapCmd() *cobra.Command {
	var output string
	var study string

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Build the study-to-collection mapping",
		Long: `Fetches the study list from the registry and the collection catalogs from
both imaging archives, fuzzy-matches study designations against collection
names, and prints the resulting per-study mapping.

Studies without CRDC node linkage are excluded from the output.`,
		Example: `  # Print the full mapping
  studylink map

  # Save the mapping alongside the printed summary
  studylink map --output mappings.json
  studylink map --output mappings.parquet

  # Report a single study
  studylink map --study GLIOMA01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			runner := mapping.NewRunner(cfg)
			mappings, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}

			// Report-level filter only; the collector always maps all
			// qualifying studies.
			if study != "" {
				filtered := make([]mapping.StudyMapping, 0, 1)
				for _, m := range mappings {
					if m.StudyDesignation == study {
						filtered = append(filtered, m)
					}
				}
				mappings = filtered
			}

			report.PrintSummary(mappings)

			if output != "" {
				if err := report.Save(mappings, output); err != nil {
					return err
				}
				slog.Info("Mapping saved", "path", output)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the mapping to a file (.json, .yaml, or .parquet)")
	cmd.Flags().StringVar(&study, "study", "", "Limit the printed report to one study designation")

	return cmd
}
