package review

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryAverages(t *testing.T) {
	avgs, err := CategoryAverages([]Rating{
		{Category: "safety", Stars: 5},
		{Category: "safety", Stars: 4},
	})
	require.NoError(t, err)

	got, ok := avgs.Get("safety")
	assert.True(t, ok)
	assert.Equal(t, 4.5, got)

	_, ok = avgs.Get("nightlife")
	assert.False(t, ok)
	assert.Equal(t, Averages{"safety": 4.5}, avgs)
}

func TestCategoryAverages_Mixed(t *testing.T) {
	avgs, err := CategoryAverages([]Rating{
		{Category: "parks", Stars: 3},
		{Category: "safety", Stars: 2},
		{Category: "parks", Stars: 4},
		{Category: "parks", Stars: 5},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"parks", "safety"}, avgs.Categories())
	assert.InDelta(t, 4.0, avgs["parks"], 1e-9)
	assert.InDelta(t, 2.0, avgs["safety"], 1e-9)
}

func TestCategoryAverages_Empty(t *testing.T) {
	avgs, err := CategoryAverages(nil)
	require.NoError(t, err)
	assert.Empty(t, avgs)

	_, ok := Overall(avgs)
	assert.False(t, ok)
}

func TestCategoryAverages_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		rating Rating
	}{
		{"zero stars", Rating{Category: "safety", Stars: 0}},
		{"six stars", Rating{Category: "safety", Stars: 6}},
		{"negative", Rating{Category: "parks", Stars: -2}},
		{"missing category", Rating{Category: " ", Stars: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CategoryAverages([]Rating{{Category: "safety", Stars: 4}, tt.rating})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidRating))

			var ratingErr *InvalidRatingError
			require.True(t, errors.As(err, &ratingErr))
			assert.Equal(t, tt.rating.Stars, ratingErr.Stars)
		})
	}
}

func TestAverageCategoryRatings(t *testing.T) {
	avgs, err := AverageCategoryRatings([]CategoryRatings{
		{"safety": 5, "nightlife": 2},
		{"safety": 3},
		{"parks": 4, "nightlife": 5},
	})
	require.NoError(t, err)

	assert.InDelta(t, 4.0, avgs["safety"], 1e-9)
	assert.InDelta(t, 3.5, avgs["nightlife"], 1e-9)
	assert.InDelta(t, 4.0, avgs["parks"], 1e-9)

	_, ok := avgs.Get("cleanliness")
	assert.False(t, ok)

	_, err = AverageCategoryRatings([]CategoryRatings{{"safety": 9}})
	assert.True(t, errors.Is(err, ErrInvalidRating))
}

func TestParseCategoryRatings(t *testing.T) {
	cr, err := ParseCategoryRatings(`{"safety":4,"parks":5}`)
	require.NoError(t, err)
	assert.Equal(t, CategoryRatings{"safety": 4, "parks": 5}, cr)

	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "safety=4"},
		{"array", "[4,5]"},
		{"fractional", `{"safety":4.5}`},
		{"empty object", `{}`},
		{"out of range", `{"safety":0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCategoryRatings(tt.raw)
			assert.Error(t, err)
		})
	}
}

func TestOverall(t *testing.T) {
	got, ok := Overall(Averages{"safety": 4.5, "parks": 3.5, "nightlife": 1})
	require.True(t, ok)
	assert.InDelta(t, 3.0, got, 1e-9)
}

func TestInvalidRatingError_Message(t *testing.T) {
	err := &InvalidRatingError{Category: "safety", Stars: 7, Reason: "stars must be between 1 and 5, got 7"}
	assert.Equal(t, `invalid rating for "safety": stars must be between 1 and 5, got 7`, err.Error())

	err = &InvalidRatingError{Reason: "category is required"}
	assert.Equal(t, "invalid rating: category is required", err.Error())
}
