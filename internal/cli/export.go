package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/neighborfit/internal/database"
	"github.com/vijay-prabhu/neighborfit/internal/service"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog or a ranking to CSV or JSON",
	Long: `Export neighborhoods, optionally with match scores for a user.

Supported formats:
  - csv: Comma-separated values (spreadsheet-compatible)
  - json: JSON array of rows

Examples:
  neighborfit export --format=csv > neighborhoods.csv
  neighborfit export --format=json --user=alice > matches.json`,
	RunE: runExport,
}

var (
	exportFormat string
	exportUser   string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format (csv, json)")
	exportCmd.Flags().StringVarP(&exportUser, "user", "u", "", "Include match scores for this user")
}

// ExportRow is one exported neighborhood, with its score when ranked
type ExportRow struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	ZipCode      string   `json:"zip_code"`
	CrimeRate    float64  `json:"crime_rate"`
	WalkScore    int      `json:"walk_score"`
	TransitScore int      `json:"transit_score"`
	BikeScore    int      `json:"bike_score"`
	Amenities    string   `json:"amenities"`
	Score        *int     `json:"score,omitempty"`
	Safety       *float64 `json:"safety,omitempty"`
	Commute      *float64 `json:"commute,omitempty"`
	Amenity      *float64 `json:"amenities_score,omitempty"`
	Walkability  *float64 `json:"walkability,omitempty"`
	CreatedAt    string   `json:"created_at"`
}

func toExportRow(n database.Neighborhood) ExportRow {
	return ExportRow{
		ID:           n.ID,
		Name:         n.Name,
		City:         n.City,
		State:        n.State,
		ZipCode:      n.ZipCode,
		CrimeRate:    n.CrimeRate,
		WalkScore:    n.WalkScore,
		TransitScore: n.TransitScore,
		BikeScore:    n.BikeScore,
		Amenities:    n.Amenities,
		CreatedAt:    n.CreatedAt.Format(time.RFC3339),
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if exportFormat != "csv" && exportFormat != "json" {
		return fmt.Errorf("unknown format: %s (use csv or json)", exportFormat)
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ns, err := a.svc.ListNeighborhoods(ctx, database.ListOptions{})
	if err != nil {
		return fmt.Errorf("failed to list neighborhoods: %w", err)
	}

	rows := make([]ExportRow, 0, len(ns))
	if exportUser == "" {
		for _, n := range ns {
			rows = append(rows, toExportRow(n))
		}
	} else {
		ranking, err := a.svc.Rank(ctx, exportUser, -1)
		if err != nil {
			return err
		}
		rows = rankedRows(ns, ranking)
	}

	if exportFormat == "csv" {
		return exportCSV(os.Stdout, rows)
	}
	return exportJSON(os.Stdout, rows)
}

// rankedRows orders rows by the ranking. Skipped neighborhoods are left out.
func rankedRows(ns []database.Neighborhood, ranking *service.Ranking) []ExportRow {
	byID := make(map[string]database.Neighborhood, len(ns))
	for _, n := range ns {
		byID[strconv.FormatInt(n.ID, 10)] = n
	}

	rows := make([]ExportRow, 0, len(ranking.Results))
	for _, r := range ranking.Results {
		n, ok := byID[r.Neighborhood.ID]
		if !ok {
			continue
		}
		row := toExportRow(n)
		score := r.Score
		b := r.Breakdown
		row.Score = &score
		row.Safety = &b.Safety
		row.Commute = &b.Commute
		row.Amenity = &b.Amenities
		row.Walkability = &b.Walkability
		rows = append(rows, row)
	}
	return rows
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}

func exportCSV(out io.Writer, rows []ExportRow) error {
	w := csv.NewWriter(out)

	// Write header
	header := []string{
		"id", "name", "city", "state", "zip_code", "crime_rate", "walk_score",
		"transit_score", "bike_score", "amenities", "score", "safety", "commute",
		"amenities_score", "walkability", "created_at",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write rows
	for _, row := range rows {
		record := []string{
			strconv.FormatInt(row.ID, 10),
			row.Name,
			row.City,
			row.State,
			row.ZipCode,
			strconv.FormatFloat(row.CrimeRate, 'f', -1, 64),
			strconv.Itoa(row.WalkScore),
			strconv.Itoa(row.TransitScore),
			strconv.Itoa(row.BikeScore),
			row.Amenities,
			optInt(row.Score),
			optFloat(row.Safety),
			optFloat(row.Commute),
			optFloat(row.Amenity),
			optFloat(row.Walkability),
			row.CreatedAt,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

func exportJSON(out io.Writer, rows []ExportRow) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(rows); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
