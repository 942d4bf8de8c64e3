package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"extguard/internal/scanner"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show monitoring status and last scan stats",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	stats, err := scanner.LoadStats(app.kv)
	if err != nil {
		return fmt.Errorf("read stats: %w", err)
	}

	info := map[string]any{
		"monitoring":   app.settings.MonitorEnabled,
		"policy":       app.settings.Notifications,
		"scanInterval": app.settings.ScanInterval.String(),
		"monitored":    stats.Monitored,
		"flagged":      stats.Flagged,
	}
	if !stats.LastScan.IsZero() {
		info["lastScan"] = stats.LastScan
	}
	out, _ := json.MarshalIndent(info, "", "  ")
	fmt.Println(string(out))
	return nil
}
