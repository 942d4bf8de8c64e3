package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"extguard/internal/config"
	"extguard/internal/inventory"
)

func init() {
	rootCmd.AddCommand(eventCmd)
}

var eventCmd = &cobra.Command{
	Use:   "event [file]",
	Short: "Drop a lifecycle event into the daemon inbox",
	Long: "Validates a lifecycle event JSON payload (from a file, or stdin with\n" +
		"no argument) and places it in the inbox for the running daemon. The\n" +
		"file is written with a temporary name and renamed so the watcher never\n" +
		"sees a partial write.",
	Args: cobra.MaximumNArgs(1),
	RunE: runEvent,
}

func runEvent(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("read event payload: %w", err)
	}

	ev, err := inventory.ParseEvent(data)
	if err != nil {
		return err
	}

	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	inbox := env.InboxDir
	if flagStateDir != "" {
		inbox = filepath.Join(flagStateDir, "inbox")
	}
	if err := os.MkdirAll(inbox, 0750); err != nil {
		return fmt.Errorf("create inbox: %w", err)
	}

	name := fmt.Sprintf("%s-%s.json", ev.Type, ulid.Make())
	tmp := filepath.Join(inbox, name+".tmp")
	out, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, append(out, '\n'), 0600); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	final := filepath.Join(inbox, name)
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("publish event: %w", err)
	}

	fmt.Printf("Queued %s event at %s (%s)\n", ev.Type, final, time.Now().Format(time.RFC3339))
	return nil
}
