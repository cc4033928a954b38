package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const neighborhoodColumns = `
	id, name, city, state, zip_code, population, median_income,
	crime_rate, walk_score, transit_score, bike_score, amenities,
	created_at, updated_at`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanNeighborhood(s scanner) (*Neighborhood, error) {
	n := &Neighborhood{}
	err := s.Scan(
		&n.ID, &n.Name, &n.City, &n.State, &n.ZipCode, &n.Population, &n.MedianIncome,
		&n.CrimeRate, &n.WalkScore, &n.TransitScore, &n.BikeScore, &n.Amenities,
		&n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// CreateNeighborhood inserts a new neighborhood and sets its ID
func (db *DB) CreateNeighborhood(ctx context.Context, n *Neighborhood) error {
	n.CreatedAt = time.Now().UTC()
	n.UpdatedAt = n.CreatedAt

	result, err := db.ExecContext(ctx, `
		INSERT INTO neighborhoods (
			name, city, state, zip_code, population, median_income,
			crime_rate, walk_score, transit_score, bike_score, amenities,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		n.Name, n.City, n.State, n.ZipCode, n.Population, n.MedianIncome,
		n.CrimeRate, n.WalkScore, n.TransitScore, n.BikeScore, n.Amenities,
		n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return err
	}

	n.ID, err = result.LastInsertId()
	return err
}

// UpsertNeighborhood inserts a neighborhood or updates the one with the same name
func (db *DB) UpsertNeighborhood(ctx context.Context, n *Neighborhood) error {
	return upsertNeighborhood(ctx, db, n)
}

func upsertNeighborhood(ctx context.Context, q querier, n *Neighborhood) error {
	now := time.Now().UTC()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	n.UpdatedAt = now

	err := q.QueryRowContext(ctx, `
		INSERT INTO neighborhoods (
			name, city, state, zip_code, population, median_income,
			crime_rate, walk_score, transit_score, bike_score, amenities,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			city = excluded.city, state = excluded.state, zip_code = excluded.zip_code,
			population = excluded.population, median_income = excluded.median_income,
			crime_rate = excluded.crime_rate, walk_score = excluded.walk_score,
			transit_score = excluded.transit_score, bike_score = excluded.bike_score,
			amenities = excluded.amenities, updated_at = excluded.updated_at
		RETURNING id
	`,
		n.Name, n.City, n.State, n.ZipCode, n.Population, n.MedianIncome,
		n.CrimeRate, n.WalkScore, n.TransitScore, n.BikeScore, n.Amenities,
		n.CreatedAt, n.UpdatedAt,
	).Scan(&n.ID)
	if err != nil {
		return err
	}

	return q.QueryRowContext(ctx,
		`SELECT created_at FROM neighborhoods WHERE id = ?`, n.ID,
	).Scan(&n.CreatedAt)
}

// GetNeighborhood retrieves a neighborhood by ID
func (db *DB) GetNeighborhood(ctx context.Context, id int64) (*Neighborhood, error) {
	n, err := scanNeighborhood(db.QueryRowContext(ctx,
		`SELECT `+neighborhoodColumns+` FROM neighborhoods WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return n, err
}

// GetNeighborhoodByName retrieves a neighborhood by name (case-insensitive)
func (db *DB) GetNeighborhoodByName(ctx context.Context, name string) (*Neighborhood, error) {
	n, err := scanNeighborhood(db.QueryRowContext(ctx,
		`SELECT `+neighborhoodColumns+` FROM neighborhoods WHERE LOWER(name) = LOWER(?)`,
		strings.TrimSpace(name)))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return n, err
}

// ListNeighborhoods retrieves neighborhoods ordered by name
func (db *DB) ListNeighborhoods(ctx context.Context, opts ListOptions) ([]Neighborhood, error) {
	query := `SELECT ` + neighborhoodColumns + ` FROM neighborhoods WHERE 1=1`
	args := []interface{}{}

	if opts.City != nil {
		query += " AND LOWER(city) = LOWER(?)"
		args = append(args, *opts.City)
	}
	if opts.State != nil {
		query += " AND LOWER(state) = LOWER(?)"
		args = append(args, *opts.State)
	}

	query += " ORDER BY name ASC, id ASC"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
		if opts.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", opts.Offset)
		}
	}

	return db.queryNeighborhoods(ctx, query, args...)
}

// SearchNeighborhoods matches name, city, state, zip code or amenities
func (db *DB) SearchNeighborhoods(ctx context.Context, query string) ([]Neighborhood, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"

	return db.queryNeighborhoods(ctx, `
		SELECT `+neighborhoodColumns+` FROM neighborhoods
		WHERE LOWER(name) LIKE ?
		   OR LOWER(city) LIKE ?
		   OR LOWER(state) LIKE ?
		   OR zip_code LIKE ?
		   OR LOWER(amenities) LIKE ?
		ORDER BY name ASC, id ASC
	`, pattern, pattern, pattern, pattern, pattern)
}

func (db *DB) queryNeighborhoods(ctx context.Context, query string, args ...interface{}) ([]Neighborhood, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var neighborhoods []Neighborhood
	for rows.Next() {
		n, err := scanNeighborhood(rows)
		if err != nil {
			return nil, err
		}
		neighborhoods = append(neighborhoods, *n)
	}

	return neighborhoods, rows.Err()
}

// DeleteNeighborhood removes a neighborhood and its reviews
func (db *DB) DeleteNeighborhood(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM neighborhoods WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("neighborhood %d: %w", id, ErrNotFound)
	}
	return nil
}

// CountReviews returns the number of reviews for a neighborhood
func (db *DB) CountReviews(ctx context.Context, neighborhoodID int64) (int, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE neighborhood_id = ?`, neighborhoodID,
	).Scan(&count)
	return count, err
}

// GetStats retrieves aggregate catalog statistics
func (db *DB) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	if err := db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(DISTINCT LOWER(NULLIF(city, ''))),
			COALESCE(AVG(crime_rate), 0),
			COALESCE(AVG(walk_score), 0)
		FROM neighborhoods
	`).Scan(&stats.Neighborhoods, &stats.Cities, &stats.AvgCrimeRate, &stats.AvgWalkScore); err != nil {
		return nil, err
	}

	if err := db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT user_id), COALESCE(AVG(rating), 0)
		FROM reviews
	`).Scan(&stats.Reviews, &stats.Reviewers, &stats.AvgReviewStars); err != nil {
		return nil, err
	}

	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_preferences`,
	).Scan(&stats.Users); err != nil {
		return nil, err
	}

	return stats, nil
}
