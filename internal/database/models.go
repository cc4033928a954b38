package database

import (
	"database/sql"
	"time"
)

// Neighborhood is a stored neighborhood record. Amenities is kept in the
// encoding it was written with and parsed by callers.
type Neighborhood struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	ZipCode      string    `json:"zip_code"`
	Population   int       `json:"population"`
	MedianIncome float64   `json:"median_income"`
	CrimeRate    float64   `json:"crime_rate"`
	WalkScore    int       `json:"walk_score"`
	TransitScore int       `json:"transit_score"`
	BikeScore    int       `json:"bike_score"`
	Amenities    string    `json:"amenities"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Review is either a point rating (Category and Rating set) or a
// category-ratings review (CategoryRatings set, a JSON object)
type Review struct {
	ID               string    `json:"id"`
	NeighborhoodID   int64     `json:"neighborhood_id"`
	NeighborhoodName string    `json:"neighborhood_name,omitempty"`
	UserID           string    `json:"user_id"`
	Content          string    `json:"content"`
	Category         *string   `json:"category,omitempty"`
	Rating           *int      `json:"rating,omitempty"`
	CategoryRatings  *string   `json:"category_ratings,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// IsPointRating reports whether the review scores a single category
func (r *Review) IsPointRating() bool {
	return r.Category != nil && r.Rating != nil
}

// UserPreferences is a stored preference record. Amenities is a JSON array.
type UserPreferences struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	Budget            float64   `json:"budget"`
	CommuteTime       int       `json:"commute_time"`
	Amenities         string    `json:"amenities"`
	SafetyWeight      float64   `json:"safety_weight"`
	CommuteWeight     float64   `json:"commute_weight"`
	AmenitiesWeight   float64   `json:"amenities_weight"`
	WalkabilityWeight float64   `json:"walkability_weight"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Stats summarizes the catalog
type Stats struct {
	Neighborhoods  int     `json:"neighborhoods"`
	Cities         int     `json:"cities"`
	Reviews        int     `json:"reviews"`
	Reviewers      int     `json:"reviewers"`
	Users          int     `json:"users_with_preferences"`
	AvgCrimeRate   float64 `json:"avg_crime_rate"`
	AvgWalkScore   float64 `json:"avg_walk_score"`
	AvgReviewStars float64 `json:"avg_review_stars"`
}

// ListOptions contains options for listing neighborhoods
type ListOptions struct {
	City   *string
	State  *string
	Limit  int
	Offset int
}

// NullString is a helper to convert *string to sql.NullString
func NullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// StringPtr converts sql.NullString to *string
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

// NullInt is a helper to convert *int to sql.NullInt64
func NullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

// IntPtr converts sql.NullInt64 to *int
func IntPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}
