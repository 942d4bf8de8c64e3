package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"extguard/internal/daemon"
)

var (
	flagScanEvery time.Duration
	flagPoll      bool
)

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&flagScanEvery, "scan-every", 0, "Periodic rescan interval (default from settings)")
	watchCmd.Flags().BoolVar(&flagPoll, "poll", false, "Poll the inbox instead of using filesystem notifications")
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the monitoring daemon",
	Long: "Runs one full scan, then watches the inbox directory for extension\n" +
		"lifecycle events (install, update, enable, uninstall) and rescans the\n" +
		"inventory on a timer. Blocks until interrupted.",
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if !app.settings.MonitorEnabled {
		fmt.Fprintln(os.Stderr, "extguard: monitoring is disabled (enable with: extguard monitor on)")
		return nil
	}

	interval := app.settings.ScanInterval
	if flagScanEvery > 0 {
		interval = flagScanEvery
	}

	d, err := daemon.New(daemon.Config{
		Dirs: daemon.DirConfig{
			Inbox: app.env.InboxDir,
			State: app.env.StateDir,
		},
		ScanInterval: interval,
		PollMode:     flagPoll || app.env.PollMode,
		PollInterval: app.env.PollInterval,
	}, app.engine)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "extguard: watching %s\n", app.env.InboxDir)
	return d.Run(ctx)
}
