package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/vijay-prabhu/neighborfit/internal/database"
	"github.com/vijay-prabhu/neighborfit/internal/review"
	"github.com/vijay-prabhu/neighborfit/internal/validation"
)

var (
	// ErrMixedReview is returned for a review that is both or neither kind
	ErrMixedReview = errors.New("a review needs either category and rating, or category_ratings")
	// ErrForbidden is returned when a user changes another user's review
	ErrForbidden = errors.New("forbidden")
)

// ReviewInput is an inbound review. The neighborhood is named by ID or by
// area name. Exactly one of Category+Rating or CategoryRatings is set.
type ReviewInput struct {
	NeighborhoodID  int64          `json:"neighborhood_id" validate:"required_without=Area"`
	Area            string         `json:"area" validate:"required_without=NeighborhoodID"`
	UserID          string         `json:"user_id" validate:"required"`
	Content         string         `json:"content" validate:"required,max=5000"`
	Category        string         `json:"category" validate:"required_with=Rating"`
	Rating          *int           `json:"rating" validate:"omitempty,min=1,max=5"`
	CategoryRatings map[string]int `json:"category_ratings" validate:"omitempty,dive,keys,required,endkeys,min=1,max=5"`
}

// RatingSummary holds the category averages of one neighborhood
type RatingSummary struct {
	NeighborhoodID int64           `json:"neighborhood_id"`
	Name           string          `json:"name"`
	ReviewCount    int             `json:"review_count"`
	Ratings        review.Averages `json:"ratings"`
	// CategoryRatings averages the multi-category reviews separately
	CategoryRatings review.Averages `json:"category_ratings"`
	Overall         *float64        `json:"overall,omitempty"`
}

// SubmitReview validates and stores a review
func (s *Service) SubmitReview(ctx context.Context, in ReviewInput) (*database.Review, error) {
	if err := validation.ValidateStruct(&in); err != nil {
		return nil, err
	}

	ref := in.Area
	if in.NeighborhoodID != 0 {
		ref = strconv.FormatInt(in.NeighborhoodID, 10)
	}
	n, err := s.FindNeighborhood(ctx, ref)
	if err != nil {
		return nil, err
	}

	r := &database.Review{
		NeighborhoodID:   n.ID,
		NeighborhoodName: n.Name,
		UserID:           in.UserID,
		Content:          in.Content,
	}

	if err := applyRatings(r, in.Category, in.Rating, in.CategoryRatings); err != nil {
		return nil, err
	}

	if err := s.db.CreateReview(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.logger.Info().
		Str("review_id", r.ID).
		Int64("neighborhood_id", n.ID).
		Msg("stored review")
	return r, nil
}

// applyRatings sets exactly one review kind on r: a point rating when
// rating is given, a category map otherwise.
func applyRatings(r *database.Review, category string, rating *int, categoryRatings map[string]int) error {
	point := rating != nil
	multi := len(categoryRatings) > 0
	switch {
	case point && !multi:
		rt := review.Rating{Category: category, Stars: *rating}
		if err := rt.Validate(); err != nil {
			return err
		}
		r.Category = &rt.Category
		r.Rating = &rt.Stars
		r.CategoryRatings = nil
	case multi && !point:
		cr := review.CategoryRatings(categoryRatings)
		if err := cr.Validate(); err != nil {
			return err
		}
		data, err := json.Marshal(cr)
		if err != nil {
			return fmt.Errorf("failed to encode category ratings: %w", err)
		}
		encoded := string(data)
		r.Category = nil
		r.Rating = nil
		r.CategoryRatings = &encoded
	default:
		return ErrMixedReview
	}
	return nil
}

// ReviewUpdate replaces the content and ratings of an existing review.
// The same either-or rule as ReviewInput applies.
type ReviewUpdate struct {
	Content         string         `json:"content" validate:"required,max=5000"`
	Category        string         `json:"category" validate:"required_with=Rating"`
	Rating          *int           `json:"rating" validate:"omitempty,min=1,max=5"`
	CategoryRatings map[string]int `json:"category_ratings" validate:"omitempty,dive,keys,required,endkeys,min=1,max=5"`
}

// UpdateOwnReview rewrites a review after checking that userID wrote it
func (s *Service) UpdateOwnReview(ctx context.Context, id, userID string, in ReviewUpdate) (*database.Review, error) {
	r, err := s.db.GetReview(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	if r == nil {
		return nil, fmt.Errorf("review %s: %w", id, ErrNotFound)
	}
	if r.UserID != userID {
		return nil, fmt.Errorf("review %s belongs to another user: %w", id, ErrForbidden)
	}

	if err := validation.ValidateStruct(&in); err != nil {
		return nil, err
	}
	r.Content = in.Content
	if err := applyRatings(r, in.Category, in.Rating, in.CategoryRatings); err != nil {
		return nil, err
	}

	if err := s.db.UpdateReview(ctx, r); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("review %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	s.logger.Info().Str("review_id", r.ID).Msg("updated review")
	return r, nil
}

// ListReviews returns a neighborhood's reviews, newest first. A non-empty
// category keeps only point ratings of that category.
func (s *Service) ListReviews(ctx context.Context, ref, category string) ([]database.Review, error) {
	n, err := s.FindNeighborhood(ctx, ref)
	if err != nil {
		return nil, err
	}
	if category != "" {
		return s.db.ListReviewsByCategory(ctx, n.ID, category)
	}
	return s.db.ListReviews(ctx, n.ID)
}

// DeleteReview removes a review by ID
func (s *Service) DeleteReview(ctx context.Context, id string) error {
	if err := s.db.DeleteReview(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("review %s: %w", id, ErrNotFound)
		}
		return err
	}
	return nil
}

// DeleteOwnReview removes a review after checking that userID wrote it
func (s *Service) DeleteOwnReview(ctx context.Context, id, userID string) error {
	r, err := s.db.GetReview(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get review: %w", err)
	}
	if r == nil {
		return fmt.Errorf("review %s: %w", id, ErrNotFound)
	}
	if r.UserID != userID {
		return fmt.Errorf("review %s belongs to another user: %w", id, ErrForbidden)
	}
	return s.DeleteReview(ctx, id)
}

// ReviewAverages returns the category averages of one neighborhood
func (s *Service) ReviewAverages(ctx context.Context, ref string) (*RatingSummary, error) {
	n, err := s.FindNeighborhood(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, *n)
}

// AllRatings returns the category averages of every neighborhood
func (s *Service) AllRatings(ctx context.Context) ([]RatingSummary, error) {
	neighborhoods, err := s.db.ListNeighborhoods(ctx, database.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list neighborhoods: %w", err)
	}

	out := make([]RatingSummary, 0, len(neighborhoods))
	for _, n := range neighborhoods {
		summary, err := s.summarize(ctx, n)
		if err != nil {
			return nil, err
		}
		out = append(out, *summary)
	}
	return out, nil
}

func (s *Service) summarize(ctx context.Context, n database.Neighborhood) (*RatingSummary, error) {
	reviews, err := s.db.ListReviews(ctx, n.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	var points []review.Rating
	var multis []review.CategoryRatings
	for _, r := range reviews {
		if r.IsPointRating() {
			points = append(points, review.Rating{Category: *r.Category, Stars: *r.Rating})
			continue
		}
		if r.CategoryRatings == nil {
			continue
		}
		cr, err := review.ParseCategoryRatings(*r.CategoryRatings)
		if err != nil {
			s.logger.Warn().Err(err).Str("review_id", r.ID).Msg("skipping unreadable category ratings")
			continue
		}
		multis = append(multis, cr)
	}

	ratings, err := review.CategoryAverages(points)
	if err != nil {
		return nil, err
	}
	categoryRatings, err := review.AverageCategoryRatings(multis)
	if err != nil {
		return nil, err
	}

	summary := &RatingSummary{
		NeighborhoodID:  n.ID,
		Name:            n.Name,
		ReviewCount:     len(reviews),
		Ratings:         ratings,
		CategoryRatings: categoryRatings,
	}
	if overall, ok := review.Overall(ratings); ok {
		summary.Overall = &overall
	}
	return summary, nil
}
