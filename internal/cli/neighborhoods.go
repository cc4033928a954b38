package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/neighborfit/internal/database"
	"github.com/vijay-prabhu/neighborfit/internal/output"
	"github.com/vijay-prabhu/neighborfit/internal/service"
)

var neighborhoodsCmd = &cobra.Command{
	Use:     "neighborhoods",
	Aliases: []string{"n"},
	Short:   "Manage the neighborhood catalog",
}

var neighborhoodsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List neighborhoods",
	Long: `List neighborhoods with optional filters.

Examples:
  neighborfit neighborhoods list                 # List all neighborhoods
  neighborfit neighborhoods list --city=chicago  # Filter by city
  neighborfit neighborhoods list -o json         # Output as JSON`,
	RunE: runNeighborhoodsList,
}

var neighborhoodsShowCmd = &cobra.Command{
	Use:   "show <name-or-id>",
	Short: "Show neighborhood details",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNeighborhoodsShow,
}

var neighborhoodsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add or update a neighborhood",
	Long: `Add a neighborhood, or update the one with the same name.

Examples:
  neighborfit neighborhoods add "Capitol Hill" --city=Seattle --state=WA \
    --crime-rate=3.2 --walk-score=97 --transit-score=85 --amenities=cafes,nightlife`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNeighborhoodsAdd,
}

var neighborhoodsRemoveCmd = &cobra.Command{
	Use:     "remove <name-or-id>",
	Aliases: []string{"rm"},
	Short:   "Remove a neighborhood and its reviews",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runNeighborhoodsRemove,
}

var (
	listCity   string
	listState  string
	listLimit  int
	listOffset int

	addInput service.NeighborhoodInput
)

func init() {
	rootCmd.AddCommand(neighborhoodsCmd)
	neighborhoodsCmd.AddCommand(neighborhoodsListCmd, neighborhoodsShowCmd, neighborhoodsAddCmd, neighborhoodsRemoveCmd)

	neighborhoodsListCmd.Flags().StringVar(&listCity, "city", "", "Filter by city")
	neighborhoodsListCmd.Flags().StringVar(&listState, "state", "", "Filter by state")
	neighborhoodsListCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of results")
	neighborhoodsListCmd.Flags().IntVar(&listOffset, "offset", 0, "Skip this many results")

	f := neighborhoodsAddCmd.Flags()
	f.StringVar(&addInput.City, "city", "", "City")
	f.StringVar(&addInput.State, "state", "", "State")
	f.StringVar(&addInput.ZipCode, "zip", "", "Zip code")
	f.IntVar(&addInput.Population, "population", 0, "Population")
	f.Float64Var(&addInput.MedianIncome, "median-income", 0, "Median household income")
	f.Float64Var(&addInput.CrimeRate, "crime-rate", 0, "Crime incidents (10 or more scores 0 for safety)")
	f.IntVar(&addInput.WalkScore, "walk-score", 0, "Walk score (0-100)")
	f.IntVar(&addInput.TransitScore, "transit-score", 0, "Transit score (0-100)")
	f.IntVar(&addInput.BikeScore, "bike-score", 0, "Bike score (0-100)")
	f.StringVar(&addInput.Amenities, "amenities", "", "Comma-separated amenity tags or a JSON array")
}

func runNeighborhoodsList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	opts := database.ListOptions{
		Limit:  listLimit,
		Offset: listOffset,
	}
	if listCity != "" {
		opts.City = &listCity
	}
	if listState != "" {
		opts.State = &listState
	}

	ns, err := a.svc.ListNeighborhoods(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("failed to list neighborhoods: %w", err)
	}

	return output.Output(outputFmt, ns)
}

func runNeighborhoodsShow(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.svc.FindNeighborhood(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	if err := output.Output(outputFmt, n); err != nil {
		return err
	}

	if outputFmt == "table" {
		count, err := a.db.CountReviews(cmd.Context(), n.ID)
		if err != nil {
			return fmt.Errorf("failed to count reviews: %w", err)
		}
		fmt.Printf("\nReviews: %d\n", count)
	}
	return nil
}

func runNeighborhoodsAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	in := addInput
	in.Name = strings.Join(args, " ")

	n, err := a.svc.SaveNeighborhood(cmd.Context(), in)
	if err != nil {
		return err
	}

	return output.Output(outputFmt, n)
}

func runNeighborhoodsRemove(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.svc.RemoveNeighborhood(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	fmt.Printf("Removed %s (id %d)\n", n.Name, n.ID)
	return nil
}
