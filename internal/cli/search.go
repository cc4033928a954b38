package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/neighborfit/internal/output"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search neighborhoods",
	Long: `Search neighborhoods by name, city, state, zip code or amenity.

Examples:
  neighborfit search seattle
  neighborfit search "hyde park"
  neighborfit search museums`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	results, err := a.svc.SearchNeighborhoods(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 && outputFmt == "table" {
		fmt.Printf("No neighborhoods found matching: %s\n", query)
		return nil
	}

	if outputFmt == "table" {
		fmt.Printf("Found %d neighborhood(s) matching: %s\n\n", len(results), query)
	}

	return output.Output(outputFmt, results)
}
