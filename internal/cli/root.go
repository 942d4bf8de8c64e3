package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "extguard",
	Short: "Local risk grading for browser extensions",
	Long:  "Grades installed browser extensions by their declared permissions, detects permission creep across updates, and keeps a bounded audit trail. All processing is local; nothing is fetched or blocked.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
