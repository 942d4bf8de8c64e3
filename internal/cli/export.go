package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"extguard/internal/activity"
	"extguard/internal/model"
)

var flagExportOut string

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Write to file instead of stdout")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export snapshots and activity log as JSON",
	RunE:  runExport,
}

type exportDoc struct {
	ExportedAt  time.Time        `json:"exportedAt"`
	Snapshots   []model.Snapshot `json:"snapshots"`
	ActivityLog []activity.Entry `json:"activityLog"`
}

func runExport(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	snaps, err := app.store.GetAll()
	if err != nil {
		return fmt.Errorf("read snapshots: %w", err)
	}
	if snaps == nil {
		snaps = []model.Snapshot{}
	}
	entries := app.activity.Recent(0)
	if entries == nil {
		entries = []activity.Entry{}
	}

	out, err := json.MarshalIndent(exportDoc{
		ExportedAt:  time.Now().UTC(),
		Snapshots:   snaps,
		ActivityLog: entries,
	}, "", "  ")
	if err != nil {
		return err
	}

	if flagExportOut == "" {
		fmt.Println(string(out))
		return nil
	}
	if err := os.WriteFile(flagExportOut, append(out, '\n'), 0600); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Printf("Exported %d snapshots and %d activity entries to %s\n", len(snaps), len(entries), flagExportOut)
	return nil
}
