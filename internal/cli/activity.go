package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"extguard/internal/scanner"
)

var flagActivityLimit int

func init() {
	rootCmd.AddCommand(activityCmd)
	activityCmd.AddCommand(activityClearCmd)
	activityCmd.Flags().IntVarP(&flagActivityLimit, "limit", "n", 20, "Number of entries to show (0 = all)")
}

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show recent activity",
	Long:  "Prints the activity log, newest first. At most 200 entries are retained.",
	RunE:  runActivity,
}

var activityClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the activity log and scan stats",
	RunE:  runActivityClear,
}

func runActivity(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	entries := app.activity.Recent(flagActivityLimit)
	if len(entries) == 0 {
		fmt.Println("No activity recorded.")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  %s %s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Icon, e.Description)
	}
	return nil
}

func runActivityClear(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.activity.Clear(); err != nil {
		return fmt.Errorf("clear activity: %w", err)
	}
	if err := scanner.ClearStats(app.kv); err != nil {
		return fmt.Errorf("clear stats: %w", err)
	}
	fmt.Println("Activity log cleared.")
	return nil
}
