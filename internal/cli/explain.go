package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"extguard/internal/catalog"
)

func init() {
	rootCmd.AddCommand(explainCmd)
}

var explainCmd = &cobra.Command{
	Use:   "explain <permission> [permission...]",
	Short: "Explain what a permission grants",
	Long: "Looks up permissions in the catalog and prints their risk tier, weight\n" +
		"and a plain-language explanation. Unknown permissions carry a fixed\n" +
		"default weight so they are never scored as harmless.",
	Args: cobra.MinimumNArgs(1),
	RunE: runExplain,
}

func runExplain(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Load(flagCatalog)
	if err != nil {
		return err
	}

	for _, perm := range args {
		rec, known := cat.Lookup(perm)
		if known {
			fmt.Printf("%s\n  tier: %s  weight: %d\n  %s\n", perm, rec.Tier, rec.Weight, rec.Explanation)
			continue
		}
		fmt.Printf("%s\n  tier: unknown  weight: %d\n  %s\n", perm, cat.DefaultWeight(), cat.Explain(perm))
	}
	return nil
}
