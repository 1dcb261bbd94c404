package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "studylink",
		Short: "Reconcile registry studies with external imaging collections",
		Long: `Studylink matches clinical study records from the CRDC data-node registry
against image collections hosted in the Imaging Data Commons and The Cancer
Imaging Archive, producing a merged per-study report of external image links
and normalized collection metadata.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newMapCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}
