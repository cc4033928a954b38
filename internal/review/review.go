// Package review aggregates user reviews into per-category averages.
//
// Two review shapes exist. A point rating scores a single category with
// 1 to 5 stars. A category-ratings review scores several categories at
// once. Both reduce to Averages, where a category nobody rated is absent
// rather than zero.
package review

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	MinStars = 1
	MaxStars = 5
)

// ErrInvalidRating matches any *InvalidRatingError
var ErrInvalidRating = errors.New("invalid rating")

// InvalidRatingError reports a rating outside 1..5 or without a category
type InvalidRatingError struct {
	Category string
	Stars    int
	Reason   string
}

func (e *InvalidRatingError) Error() string {
	if e.Category == "" {
		return fmt.Sprintf("invalid rating: %s", e.Reason)
	}
	return fmt.Sprintf("invalid rating for %q: %s", e.Category, e.Reason)
}

func (e *InvalidRatingError) Is(target error) bool {
	return target == ErrInvalidRating
}

// Rating is one point rating for one category
type Rating struct {
	Category string `json:"category"`
	Stars    int    `json:"rating"`
}

// CategoryRatings is a review that rates several categories at once
type CategoryRatings map[string]int

// Averages maps a category to the mean of its ratings
type Averages map[string]float64

// Get returns the average for category and whether any rating exists
func (a Averages) Get(category string) (float64, bool) {
	v, ok := a[category]
	return v, ok
}

// Categories returns the rated categories in lexical order
func (a Averages) Categories() []string {
	out := make([]string, 0, len(a))
	for c := range a {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func checkStars(category string, stars int) error {
	if strings.TrimSpace(category) == "" {
		return &InvalidRatingError{Stars: stars, Reason: "category is required"}
	}
	if stars < MinStars || stars > MaxStars {
		return &InvalidRatingError{
			Category: category,
			Stars:    stars,
			Reason:   fmt.Sprintf("stars must be between %d and %d, got %d", MinStars, MaxStars, stars),
		}
	}
	return nil
}

// Validate checks the category and star range
func (r Rating) Validate() error {
	return checkStars(r.Category, r.Stars)
}

// Validate checks every category in the review
func (c CategoryRatings) Validate() error {
	if len(c) == 0 {
		return &InvalidRatingError{Reason: "at least one category rating is required"}
	}
	for _, cat := range sortedKeys(c) {
		if err := checkStars(cat, c[cat]); err != nil {
			return err
		}
	}
	return nil
}

type accumulator map[string]*struct {
	sum   int
	count int
}

func (acc accumulator) add(category string, stars int) {
	e, ok := acc[category]
	if !ok {
		e = &struct {
			sum   int
			count int
		}{}
		acc[category] = e
	}
	e.sum += stars
	e.count++
}

func (acc accumulator) averages() Averages {
	out := make(Averages, len(acc))
	for cat, e := range acc {
		out[cat] = float64(e.sum) / float64(e.count)
	}
	return out
}

// CategoryAverages returns the arithmetic mean of the point ratings per
// category. Categories without ratings do not appear in the result.
func CategoryAverages(ratings []Rating) (Averages, error) {
	acc := accumulator{}
	for _, r := range ratings {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		acc.add(r.Category, r.Stars)
	}
	return acc.averages(), nil
}

// AverageCategoryRatings averages each category over the reviews that rated it
func AverageCategoryRatings(reviews []CategoryRatings) (Averages, error) {
	acc := accumulator{}
	for _, cr := range reviews {
		for _, cat := range sortedKeys(cr) {
			if err := checkStars(cat, cr[cat]); err != nil {
				return nil, err
			}
			acc.add(cat, cr[cat])
		}
	}
	return acc.averages(), nil
}

// ParseCategoryRatings decodes a stored JSON object of category ratings
func ParseCategoryRatings(raw string) (CategoryRatings, error) {
	var cr CategoryRatings
	if err := json.Unmarshal([]byte(raw), &cr); err != nil {
		return nil, fmt.Errorf("parsing category ratings: %w", err)
	}
	if err := cr.Validate(); err != nil {
		return nil, err
	}
	return cr, nil
}

// Overall is the mean of the category means, or false when nothing is rated
func Overall(a Averages) (float64, bool) {
	if len(a) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range a {
		sum += v
	}
	return sum / float64(len(a)), true
}

func sortedKeys(c CategoryRatings) []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
