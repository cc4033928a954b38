package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/vijay-prabhu/neighborfit/internal/database"
	"github.com/vijay-prabhu/neighborfit/internal/match"
	"github.com/vijay-prabhu/neighborfit/internal/review"
	"github.com/vijay-prabhu/neighborfit/internal/service"
)

// Table writes data as a formatted table to stdout
func Table(data interface{}) error {
	return TableTo(os.Stdout, data)
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case []database.Neighborhood:
		return neighborhoodsTable(w, v)
	case *database.Neighborhood:
		return neighborhoodDetail(w, v)
	case *service.Ranking:
		return rankingTable(w, v)
	case *match.Result:
		return resultDetail(w, v)
	case []database.Review:
		return reviewsTable(w, v)
	case *database.Review:
		return reviewsTable(w, []database.Review{*v})
	case *service.RatingSummary:
		return ratingSummary(w, v)
	case []service.RatingSummary:
		return ratingsTable(w, v)
	case *database.UserPreferences:
		return preferencesDetail(w, v)
	case *database.Stats:
		return statsTable(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func newTable(w io.Writer, header ...any) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.Header(header...)
	return table
}

func neighborhoodsTable(w io.Writer, ns []database.Neighborhood) error {
	if len(ns) == 0 {
		fmt.Fprintln(w, "No neighborhoods found. Run 'neighborfit seed' to load the starter catalog.")
		return nil
	}

	table := newTable(w, "ID", "Name", "City", "Crime", "Walk", "Transit", "Amenities")
	for _, n := range ns {
		if err := table.Append([]string{
			strconv.FormatInt(n.ID, 10),
			truncate(n.Name, 24),
			location(n),
			fmt.Sprintf("%.1f", n.CrimeRate),
			strconv.Itoa(n.WalkScore),
			strconv.Itoa(n.TransitScore),
			truncate(n.Amenities, 40),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func neighborhoodDetail(w io.Writer, n *database.Neighborhood) error {
	fmt.Fprintf(w, "Name:          %s (#%d)\n", n.Name, n.ID)
	if loc := location(*n); loc != "" {
		fmt.Fprintf(w, "Location:      %s %s\n", loc, n.ZipCode)
	}
	if n.Population > 0 {
		fmt.Fprintf(w, "Population:    %d\n", n.Population)
	}
	if n.MedianIncome > 0 {
		fmt.Fprintf(w, "Median income: $%.0f\n", n.MedianIncome)
	}
	fmt.Fprintf(w, "Crime rate:    %.1f\n", n.CrimeRate)
	fmt.Fprintf(w, "Walk score:    %d\n", n.WalkScore)
	fmt.Fprintf(w, "Transit score: %d\n", n.TransitScore)
	fmt.Fprintf(w, "Bike score:    %d\n", n.BikeScore)
	fmt.Fprintf(w, "Amenities:     %s\n", n.Amenities)
	return nil
}

func rankingTable(w io.Writer, r *service.Ranking) error {
	if len(r.Results) == 0 {
		fmt.Fprintln(w, "No neighborhoods to rank.")
	} else {
		table := newTable(w, "#", "Neighborhood", "Score", "Safety", "Commute", "Amenities", "Walkability")
		for i, res := range r.Results {
			b := res.Breakdown
			if err := table.Append([]string{
				strconv.Itoa(i + 1),
				truncate(res.Neighborhood.Name, 24),
				strconv.Itoa(res.Score),
				subScore(b.Safety),
				subScore(b.Commute),
				subScore(b.Amenities),
				subScore(b.Walkability),
			}); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if len(r.Results) < r.Total {
		fmt.Fprintf(w, "Showing %d of %d (use --all to see every neighborhood)\n", len(r.Results), r.Total)
	}
	if r.UsedDefaults {
		fmt.Fprintln(w, "Ranked with default weights; save preferences with 'neighborfit prefs set'.")
	}
	for _, s := range r.Skipped {
		fmt.Fprintf(w, "Skipped %s: %s\n", s.Name, s.Reason)
	}
	return nil
}

func resultDetail(w io.Writer, r *match.Result) error {
	b := r.Breakdown
	fmt.Fprintf(w, "%s: %d/100\n", r.Neighborhood.Name, r.Score)
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Safety:        %s\n", subScore(b.Safety))
	fmt.Fprintf(w, "Commute:       %s\n", subScore(b.Commute))
	fmt.Fprintf(w, "Amenities:     %s\n", subScore(b.Amenities))
	fmt.Fprintf(w, "Walkability:   %s\n", subScore(b.Walkability))
	fmt.Fprintf(w, "Weighted mean: %.2f\n", b.Raw)
	return nil
}

func reviewsTable(w io.Writer, reviews []database.Review) error {
	if len(reviews) == 0 {
		fmt.Fprintln(w, "No reviews found.")
		return nil
	}

	table := newTable(w, "Date", "Neighborhood", "User", "Ratings", "Review")
	for _, r := range reviews {
		if err := table.Append([]string{
			r.CreatedAt.Format("Jan 02, 2006"),
			truncate(r.NeighborhoodName, 20),
			truncate(r.UserID, 16),
			reviewRatings(r),
			truncate(r.Content, 50),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func reviewRatings(r database.Review) string {
	if r.IsPointRating() {
		return fmt.Sprintf("%s %d/5", *r.Category, *r.Rating)
	}
	if r.CategoryRatings != nil {
		cr, err := review.ParseCategoryRatings(*r.CategoryRatings)
		if err != nil {
			return "unreadable"
		}
		parts := make([]string, 0, len(cr))
		for _, cat := range sortedCategories(cr) {
			parts = append(parts, fmt.Sprintf("%s %d", cat, cr[cat]))
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

func sortedCategories(cr review.CategoryRatings) []string {
	avgs := make(review.Averages, len(cr))
	for k, v := range cr {
		avgs[k] = float64(v)
	}
	return avgs.Categories()
}

func ratingSummary(w io.Writer, s *service.RatingSummary) error {
	fmt.Fprintf(w, "%s (%d reviews)\n", s.Name, s.ReviewCount)
	if len(s.Ratings) == 0 && len(s.CategoryRatings) == 0 {
		fmt.Fprintln(w, "No ratings yet.")
		return nil
	}

	table := newTable(w, "Category", "Average", "Source")
	for _, cat := range s.Ratings.Categories() {
		if err := table.Append([]string{cat, fmt.Sprintf("%.2f", s.Ratings[cat]), "rating"}); err != nil {
			return err
		}
	}
	for _, cat := range s.CategoryRatings.Categories() {
		if err := table.Append([]string{cat, fmt.Sprintf("%.2f", s.CategoryRatings[cat]), "category review"}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	if s.Overall != nil {
		fmt.Fprintf(w, "Overall: %.2f\n", *s.Overall)
	}
	return nil
}

func ratingsTable(w io.Writer, summaries []service.RatingSummary) error {
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No neighborhoods found.")
		return nil
	}

	table := newTable(w, "Neighborhood", "Reviews", "Overall", "Categories")
	for _, s := range summaries {
		overall := "-"
		if s.Overall != nil {
			overall = fmt.Sprintf("%.2f", *s.Overall)
		}
		cats := make([]string, 0, len(s.Ratings))
		for _, cat := range s.Ratings.Categories() {
			cats = append(cats, fmt.Sprintf("%s %.1f", cat, s.Ratings[cat]))
		}
		if err := table.Append([]string{
			truncate(s.Name, 24),
			strconv.Itoa(s.ReviewCount),
			overall,
			truncate(strings.Join(cats, ", "), 60),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func preferencesDetail(w io.Writer, p *database.UserPreferences) error {
	fmt.Fprintf(w, "User:           %s\n", p.UserID)
	fmt.Fprintf(w, "Amenities:      %s\n", p.Amenities)
	fmt.Fprintf(w, "Weights:        safety %g, commute %g, amenities %g, walkability %g\n",
		p.SafetyWeight, p.CommuteWeight, p.AmenitiesWeight, p.WalkabilityWeight)
	fmt.Fprintf(w, "Budget:         %.0f (not used in scoring)\n", p.Budget)
	fmt.Fprintf(w, "Commute time:   %d min (not used in scoring)\n", p.CommuteTime)
	fmt.Fprintf(w, "Updated:        %s\n", p.UpdatedAt.Format("Jan 02, 2006"))
	return nil
}

func statsTable(w io.Writer, s *database.Stats) error {
	fmt.Fprintln(w, "Catalog Statistics")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Neighborhoods:          %d\n", s.Neighborhoods)
	fmt.Fprintf(w, "Cities:                 %d\n", s.Cities)
	fmt.Fprintf(w, "Reviews:                %d\n", s.Reviews)
	fmt.Fprintf(w, "Reviewers:              %d\n", s.Reviewers)
	fmt.Fprintf(w, "Users with preferences: %d\n", s.Users)

	if s.Neighborhoods > 0 {
		fmt.Fprintf(w, "Avg crime rate:         %.2f\n", s.AvgCrimeRate)
		fmt.Fprintf(w, "Avg walk score:         %.1f\n", s.AvgWalkScore)
	}
	if s.AvgReviewStars > 0 {
		fmt.Fprintf(w, "Avg review stars:       %.2f\n", s.AvgReviewStars)
	}

	return nil
}

func location(n database.Neighborhood) string {
	switch {
	case n.City != "" && n.State != "":
		return n.City + ", " + n.State
	case n.City != "":
		return n.City
	default:
		return n.State
	}
}

func subScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
