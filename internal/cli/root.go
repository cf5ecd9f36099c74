package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewRootCommand returns the myenergy command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "myenergy",
		Short:         "Household energy consumption tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			// .env is optional; real environment variables win.
			_ = godotenv.Load()
		},
	}

	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewExportCommand())
	rootCmd.AddCommand(NewImportCommand())
	return rootCmd
}
