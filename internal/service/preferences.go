package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vijay-prabhu/neighborfit/internal/database"
	"github.com/vijay-prabhu/neighborfit/internal/match"
	"github.com/vijay-prabhu/neighborfit/internal/validation"
)

// PreferencesInput is an inbound preference record. Every field is
// required; pointers distinguish a missing field from a zero value.
type PreferencesInput struct {
	UserID            string   `json:"user_id" validate:"required"`
	Budget            *float64 `json:"budget" validate:"required,gte=0"`
	CommuteTime       *int     `json:"commute_time" validate:"required,gte=0"`
	Amenities         []string `json:"amenities" validate:"required,dive,required"`
	SafetyWeight      *float64 `json:"safety_weight" validate:"required,gte=0"`
	CommuteWeight     *float64 `json:"commute_weight" validate:"required,gte=0"`
	AmenitiesWeight   *float64 `json:"amenities_weight" validate:"required,gte=0"`
	WalkabilityWeight *float64 `json:"walkability_weight" validate:"required,gte=0"`
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// View returns the scoring view of the input
func (in PreferencesInput) View() match.Preferences {
	return match.Preferences{
		Amenities:         match.NewAmenitySet(in.Amenities...),
		SafetyWeight:      deref(in.SafetyWeight),
		CommuteWeight:     deref(in.CommuteWeight),
		AmenitiesWeight:   deref(in.AmenitiesWeight),
		WalkabilityWeight: deref(in.WalkabilityWeight),
		Budget:            deref(in.Budget),
		CommuteTime:       deref(in.CommuteTime),
	}
}

// InlinePreferences is an ad-hoc preference set sent with a ranking
// request instead of a saved user. Missing weights count as zero.
type InlinePreferences struct {
	Amenities         []string `json:"amenities" validate:"omitempty,dive,required"`
	SafetyWeight      *float64 `json:"safety_weight" validate:"omitempty,gte=0"`
	CommuteWeight     *float64 `json:"commute_weight" validate:"omitempty,gte=0"`
	AmenitiesWeight   *float64 `json:"amenities_weight" validate:"omitempty,gte=0"`
	WalkabilityWeight *float64 `json:"walkability_weight" validate:"omitempty,gte=0"`
}

// IsZero reports whether no weight was supplied
func (in InlinePreferences) IsZero() bool {
	return in.SafetyWeight == nil && in.CommuteWeight == nil &&
		in.AmenitiesWeight == nil && in.WalkabilityWeight == nil
}

// View returns the scoring view of the inline set
func (in InlinePreferences) View() match.Preferences {
	return match.Preferences{
		Amenities:         match.NewAmenitySet(in.Amenities...),
		SafetyWeight:      deref(in.SafetyWeight),
		CommuteWeight:     deref(in.CommuteWeight),
		AmenitiesWeight:   deref(in.AmenitiesWeight),
		WalkabilityWeight: deref(in.WalkabilityWeight),
	}
}

// SavePreferences validates and stores a user's preferences, replacing any
// earlier record
func (s *Service) SavePreferences(ctx context.Context, in PreferencesInput) (*database.UserPreferences, error) {
	if err := validation.ValidateStruct(&in); err != nil {
		return nil, err
	}

	view := in.View()
	if err := view.Validate(); err != nil {
		return nil, err
	}

	amenities, err := json.Marshal(view.Amenities)
	if err != nil {
		return nil, fmt.Errorf("failed to encode amenities: %w", err)
	}

	record := &database.UserPreferences{
		UserID:            in.UserID,
		Budget:            view.Budget,
		CommuteTime:       view.CommuteTime,
		Amenities:         string(amenities),
		SafetyWeight:      view.SafetyWeight,
		CommuteWeight:     view.CommuteWeight,
		AmenitiesWeight:   view.AmenitiesWeight,
		WalkabilityWeight: view.WalkabilityWeight,
	}
	if err := s.db.UpsertPreferences(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save preferences: %w", err)
	}

	s.logger.Info().Str("user_id", in.UserID).Msg("saved preferences")
	return record, nil
}

// GetPreferences returns the stored record for userID
func (s *Service) GetPreferences(ctx context.Context, userID string) (*database.UserPreferences, error) {
	p, err := s.db.GetPreferences(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNoPreferences)
	}
	return p, nil
}
