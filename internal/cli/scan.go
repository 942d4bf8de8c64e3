package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scanCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run one full scan of the extension inventory",
	Long: "Reads the inventory file, grades every installed extension and\n" +
		"persists the results. Themes and this tool's own entry are skipped.",
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	summary, err := app.engine.FullScan(context.Background())
	if err != nil {
		return fmt.Errorf("full scan: %w", err)
	}

	fmt.Printf("Scan %s: %d monitored, %d flagged\n", summary.RunID, summary.Monitored, summary.Flagged)
	for _, f := range summary.Failures {
		fmt.Fprintf(os.Stderr, "  failed: %s (%s): %v\n", f.Name, f.ID, f.Err)
	}
	return nil
}
