package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const reviewColumns = `
	r.id, r.neighborhood_id, n.name, r.user_id, r.content,
	r.category, r.rating, r.category_ratings, r.created_at`

// CreateReview inserts a new review
func (db *DB) CreateReview(ctx context.Context, r *Review) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	r.CreatedAt = time.Now().UTC()

	_, err := db.ExecContext(ctx, `
		INSERT INTO reviews (
			id, neighborhood_id, user_id, content, category, rating, category_ratings, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.ID, r.NeighborhoodID, r.UserID, r.Content,
		NullString(r.Category), NullInt(r.Rating), NullString(r.CategoryRatings), r.CreatedAt,
	)
	return err
}

// GetReview retrieves a review by ID
func (db *DB) GetReview(ctx context.Context, id string) (*Review, error) {
	rows, err := db.listReviews(ctx, `WHERE r.id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// ListReviews retrieves reviews for a neighborhood, newest first
func (db *DB) ListReviews(ctx context.Context, neighborhoodID int64) ([]Review, error) {
	return db.listReviews(ctx, `WHERE r.neighborhood_id = ?`, neighborhoodID)
}

// ListReviewsByCategory retrieves point ratings for one category, newest first
func (db *DB) ListReviewsByCategory(ctx context.Context, neighborhoodID int64, category string) ([]Review, error) {
	return db.listReviews(ctx, `WHERE r.neighborhood_id = ? AND r.category = ?`, neighborhoodID, category)
}

func (db *DB) listReviews(ctx context.Context, where string, args ...interface{}) ([]Review, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+reviewColumns+`
		FROM reviews r
		JOIN neighborhoods n ON n.id = r.neighborhood_id
		`+where+`
		ORDER BY r.created_at DESC, r.rowid DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		r := Review{}
		var category, categoryRatings sql.NullString
		var rating sql.NullInt64

		if err := rows.Scan(
			&r.ID, &r.NeighborhoodID, &r.NeighborhoodName, &r.UserID, &r.Content,
			&category, &rating, &categoryRatings, &r.CreatedAt,
		); err != nil {
			return nil, err
		}

		r.Category = StringPtr(category)
		r.Rating = IntPtr(rating)
		r.CategoryRatings = StringPtr(categoryRatings)
		reviews = append(reviews, r)
	}

	return reviews, rows.Err()
}

// UpdateReview rewrites a review's content and ratings. The neighborhood,
// author and creation time never change.
func (db *DB) UpdateReview(ctx context.Context, r *Review) error {
	result, err := db.ExecContext(ctx, `
		UPDATE reviews
		SET content = ?, category = ?, rating = ?, category_ratings = ?
		WHERE id = ?
	`,
		r.Content, NullString(r.Category), NullInt(r.Rating), NullString(r.CategoryRatings), r.ID,
	)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("review %s: %w", r.ID, ErrNotFound)
	}
	return nil
}

// DeleteReview removes a review
func (db *DB) DeleteReview(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("review %s: %w", id, ErrNotFound)
	}
	return nil
}
