package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"extguard/internal/notify"
	"extguard/internal/settings"
)

func init() {
	rootCmd.AddCommand(policyCmd)
}

var policyCmd = &cobra.Command{
	Use:   "policy [all|critical|silent]",
	Short: "Show or set the notification policy",
	Long: "With no argument, prints the current policy. With an argument,\n" +
		"persists the new policy and applies it to future notifications.",
	Args: cobra.MaximumNArgs(1),
	RunE: runPolicy,
}

func runPolicy(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if len(args) == 0 {
		fmt.Println(app.settings.Notifications)
		return nil
	}

	policy := notify.Policy(args[0])
	if !notify.ValidPolicy(policy) {
		return fmt.Errorf("invalid policy %q (want all, critical or silent)", args[0])
	}

	app.settings.Notifications = policy
	if err := settings.Save(app.kv, app.settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	fmt.Printf("Notification policy set to %s\n", policy)
	return nil
}
