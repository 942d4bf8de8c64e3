package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"extguard/internal/settings"
)

func init() {
	rootCmd.AddCommand(monitorCmd)
}

var monitorCmd = &cobra.Command{
	Use:   "monitor [on|off]",
	Short: "Show or toggle extension monitoring",
	Long: "With no argument, prints whether monitoring is enabled. With on or\n" +
		"off, persists the new state; the watch daemon honors it on startup.",
	Args: cobra.MaximumNArgs(1),
	RunE: runMonitor,
}

func runMonitor(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if len(args) == 0 {
		if app.settings.MonitorEnabled {
			fmt.Println("enabled")
		} else {
			fmt.Println("disabled")
		}
		return nil
	}

	var enabled bool
	switch args[0] {
	case "on":
		enabled = true
	case "off":
		enabled = false
	default:
		return fmt.Errorf("invalid argument %q (want on or off)", args[0])
	}

	app.settings.MonitorEnabled = enabled
	if err := settings.Save(app.kv, app.settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	if enabled {
		fmt.Println("Monitoring enabled")
	} else {
		fmt.Println("Monitoring disabled")
	}
	return nil
}
