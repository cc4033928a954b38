package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/neighborfit/internal/output"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank neighborhoods for a user",
	Long: `Rank every neighborhood by compatibility with a user's saved
preferences, best first. Without --user the configured default weights are
used.

Examples:
  neighborfit match --user=alice            # Top matches (config top_n)
  neighborfit match --user=alice --limit=3  # Top 3
  neighborfit match --user=alice --all      # Every neighborhood`,
	RunE: runMatch,
}

var scoreCmd = &cobra.Command{
	Use:   "score <name-or-id>",
	Short: "Score one neighborhood and explain the result",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScore,
}

var (
	matchUser  string
	matchLimit int
	matchAll   bool
)

func init() {
	rootCmd.AddCommand(matchCmd, scoreCmd)

	matchCmd.Flags().StringVarP(&matchUser, "user", "u", "", "User whose preferences to use")
	matchCmd.Flags().IntVar(&matchLimit, "limit", 0, "Maximum number of results (default: config top_n)")
	matchCmd.Flags().BoolVar(&matchAll, "all", false, "Show every neighborhood")

	scoreCmd.Flags().StringVarP(&matchUser, "user", "u", "", "User whose preferences to use")
}

func runMatch(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	limit := matchLimit
	if matchAll {
		limit = -1
	}

	ranking, err := a.svc.Rank(cmd.Context(), matchUser, limit)
	if err != nil {
		return err
	}

	return output.Output(outputFmt, ranking)
}

func runScore(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.svc.Score(cmd.Context(), matchUser, strings.Join(args, " "))
	if err != nil {
		return err
	}

	return output.Output(outputFmt, result)
}
