package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// GetPreferences retrieves a user's preferences, or nil if none are saved
func (db *DB) GetPreferences(ctx context.Context, userID string) (*UserPreferences, error) {
	p := &UserPreferences{}

	err := db.QueryRowContext(ctx, `
		SELECT id, user_id, budget, commute_time, amenities,
		       safety_weight, commute_weight, amenities_weight, walkability_weight,
		       created_at, updated_at
		FROM user_preferences WHERE user_id = ?
	`, userID).Scan(
		&p.ID, &p.UserID, &p.Budget, &p.CommuteTime, &p.Amenities,
		&p.SafetyWeight, &p.CommuteWeight, &p.AmenitiesWeight, &p.WalkabilityWeight,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpsertPreferences creates or replaces the preferences of p.UserID
func (db *DB) UpsertPreferences(ctx context.Context, p *UserPreferences) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	err := db.QueryRowContext(ctx, `
		INSERT INTO user_preferences (
			id, user_id, budget, commute_time, amenities,
			safety_weight, commute_weight, amenities_weight, walkability_weight,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			budget = excluded.budget, commute_time = excluded.commute_time,
			amenities = excluded.amenities,
			safety_weight = excluded.safety_weight, commute_weight = excluded.commute_weight,
			amenities_weight = excluded.amenities_weight,
			walkability_weight = excluded.walkability_weight,
			updated_at = excluded.updated_at
		RETURNING id
	`,
		p.ID, p.UserID, p.Budget, p.CommuteTime, p.Amenities,
		p.SafetyWeight, p.CommuteWeight, p.AmenitiesWeight, p.WalkabilityWeight,
		p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return err
	}

	return db.QueryRowContext(ctx,
		`SELECT created_at FROM user_preferences WHERE id = ?`, p.ID,
	).Scan(&p.CreatedAt)
}
