package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var flagListJSON bool

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&flagListJSON, "json", false, "Emit raw JSON snapshots")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List graded extensions",
	Long:  "Prints the stored snapshot of every monitored extension with its score and grade.",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	snaps, err := app.store.GetAll()
	if err != nil {
		return fmt.Errorf("read snapshots: %w", err)
	}

	if flagListJSON {
		out, err := json.MarshalIndent(snaps, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	if len(snaps) == 0 {
		fmt.Println("No extensions monitored yet. Run `extguard scan` first.")
		return nil
	}

	fmt.Printf("%-32s  %-10s  %5s  %-5s  %s\n", "NAME", "VERSION", "SCORE", "GRADE", "RISK")
	for _, s := range snaps {
		name := s.Name
		if len(name) > 32 {
			name = name[:29] + "..."
		}
		fmt.Printf("%-32s  %-10s  %5d  %-5s  %s\n", name, s.Version, s.Score, s.Grade, s.Grade.RiskLevel())
	}
	return nil
}
