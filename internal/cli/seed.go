package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the starter neighborhood catalog",
	Long: `Load the starter catalog (Greenwood, Mission District, Hyde Park).

Existing neighborhoods with the same name are updated in place, so running
seed twice is safe.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.svc.Seed(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Seeded %d neighborhood(s)\n", n)
	return nil
}
