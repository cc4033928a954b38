package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/neighborfit/internal/output"
	"github.com/vijay-prabhu/neighborfit/internal/service"
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Manage community reviews",
}

var reviewsListCmd = &cobra.Command{
	Use:   "list <neighborhood>",
	Short: "List a neighborhood's reviews, newest first",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runReviewsList,
}

var reviewsAddCmd = &cobra.Command{
	Use:   "add <neighborhood>",
	Short: "Add a review",
	Long: `Add a review. Give either one category with a rating, or several
categories with --rate.

Examples:
  neighborfit reviews add Greenwood --user=alice --category=safety --rating=4 --content="Quiet streets"
  neighborfit reviews add "Hyde Park" --user=bob --rate=safety=4 --rate=nightlife=2 --content="Calm"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReviewsAdd,
}

var reviewsEditCmd = &cobra.Command{
	Use:   "edit <review-id>",
	Short: "Rewrite one of your reviews",
	Long: `Replace the content and ratings of a review. Only the review's author
may edit it, and the same either-or rule as add applies.

Examples:
  neighborfit reviews edit 1f0c... --user=alice --category=safety --rating=5 --content="Even quieter now"`,
	Args: cobra.ExactArgs(1),
	RunE: runReviewsEdit,
}

var reviewsAverageCmd = &cobra.Command{
	Use:   "average <neighborhood>",
	Short: "Show average ratings per category",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runReviewsAverage,
}

var reviewsDeleteCmd = &cobra.Command{
	Use:   "delete <review-id>",
	Short: "Delete a review",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviewsDelete,
}

var ratingsCmd = &cobra.Command{
	Use:   "ratings",
	Short: "Show average ratings for every neighborhood",
	RunE:  runRatings,
}

var (
	reviewUser     string
	reviewContent  string
	reviewCategory string
	reviewRating   int
	reviewRates    map[string]int
	reviewFilter   string
)

func init() {
	rootCmd.AddCommand(reviewsCmd, ratingsCmd)
	reviewsCmd.AddCommand(reviewsListCmd, reviewsAddCmd, reviewsEditCmd, reviewsAverageCmd, reviewsDeleteCmd)

	reviewsListCmd.Flags().StringVar(&reviewFilter, "category", "", "Only show point ratings of this category")

	for _, c := range []*cobra.Command{reviewsAddCmd, reviewsEditCmd} {
		f := c.Flags()
		f.StringVarP(&reviewUser, "user", "u", "", "Reviewer user ID")
		f.StringVar(&reviewContent, "content", "", "Review text")
		f.StringVar(&reviewCategory, "category", "", "Category for a single rating (e.g. safety)")
		f.IntVar(&reviewRating, "rating", 0, "Single rating, 1-5")
		f.StringToIntVar(&reviewRates, "rate", nil, "Category rating as category=stars, repeatable")
		_ = c.MarkFlagRequired("user")
		_ = c.MarkFlagRequired("content")
		c.MarkFlagsMutuallyExclusive("rating", "rate")
	}
}

func runReviewsList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	reviews, err := a.svc.ListReviews(cmd.Context(), strings.Join(args, " "), reviewFilter)
	if err != nil {
		return err
	}

	if len(reviews) == 0 && outputFmt == "table" {
		fmt.Println("No reviews yet.")
		return nil
	}
	return output.Output(outputFmt, reviews)
}

func runReviewsAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	in := service.ReviewInput{
		Area:            strings.Join(args, " "),
		UserID:          reviewUser,
		Content:         reviewContent,
		Category:        reviewCategory,
		CategoryRatings: reviewRates,
	}
	if cmd.Flags().Changed("rating") {
		in.Rating = &reviewRating
	}

	r, err := a.svc.SubmitReview(cmd.Context(), in)
	if err != nil {
		return err
	}

	if outputFmt == "table" {
		fmt.Printf("Added review %s\n\n", r.ID)
	}
	return output.Output(outputFmt, r)
}

func runReviewsEdit(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	in := service.ReviewUpdate{
		Content:         reviewContent,
		Category:        reviewCategory,
		CategoryRatings: reviewRates,
	}
	if cmd.Flags().Changed("rating") {
		in.Rating = &reviewRating
	}

	r, err := a.svc.UpdateOwnReview(cmd.Context(), args[0], reviewUser, in)
	if err != nil {
		return err
	}

	if outputFmt == "table" {
		fmt.Printf("Updated review %s\n\n", r.ID)
	}
	return output.Output(outputFmt, r)
}

func runReviewsAverage(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	summary, err := a.svc.ReviewAverages(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	return output.Output(outputFmt, summary)
}

func runReviewsDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.svc.DeleteReview(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Printf("Deleted review %s\n", args[0])
	return nil
}

func runRatings(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ratings, err := a.svc.AllRatings(cmd.Context())
	if err != nil {
		return err
	}

	return output.Output(outputFmt, ratings)
}
