// Package service joins storage and the scoring core. It turns stored
// records into scoring views, runs rankings and review aggregation, and
// validates inbound writes for every front end (CLI, MCP, HTTP).
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vijay-prabhu/neighborfit/internal/config"
	"github.com/vijay-prabhu/neighborfit/internal/database"
	"github.com/vijay-prabhu/neighborfit/internal/logging"
	"github.com/vijay-prabhu/neighborfit/internal/match"
)

var (
	// ErrNotFound is returned when a neighborhood or review does not exist
	ErrNotFound = errors.New("not found")
	// ErrNoPreferences is returned when a user has not saved preferences
	ErrNoPreferences = errors.New("no preferences saved")
)

// Service orchestrates catalog reads, rankings and review aggregation
type Service struct {
	db     *database.DB
	config *config.Config
	logger zerolog.Logger
}

// New creates a new Service
func New(db *database.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
		logger: logging.Component("service"),
	}
}

// WithLogger returns a copy of s that logs to l
func (s *Service) WithLogger(l zerolog.Logger) *Service {
	c := *s
	c.logger = l
	return &c
}

// NeighborhoodView converts a stored neighborhood into its scoring view,
// parsing the amenity field
func NeighborhoodView(n database.Neighborhood) (match.Neighborhood, error) {
	id := strconv.FormatInt(n.ID, 10)

	amenities, err := match.ParseAmenities(n.Amenities)
	if err != nil {
		var dataErr *match.MalformedDataError
		if errors.As(err, &dataErr) {
			dataErr.NeighborhoodID = id
		}
		return match.Neighborhood{}, err
	}

	return match.Neighborhood{
		ID:           id,
		Name:         n.Name,
		CrimeRate:    n.CrimeRate,
		WalkScore:    n.WalkScore,
		TransitScore: n.TransitScore,
		BikeScore:    n.BikeScore,
		Amenities:    amenities,
	}, nil
}

// PreferencesView converts a stored preference record into its scoring view
func PreferencesView(p database.UserPreferences) (match.Preferences, error) {
	amenities, err := match.ParseAmenities(p.Amenities)
	if err != nil {
		return match.Preferences{}, fmt.Errorf("preferences of %s: %w", p.UserID, err)
	}

	return match.Preferences{
		Amenities:         amenities,
		SafetyWeight:      p.SafetyWeight,
		CommuteWeight:     p.CommuteWeight,
		AmenitiesWeight:   p.AmenitiesWeight,
		WalkabilityWeight: p.WalkabilityWeight,
		Budget:            p.Budget,
		CommuteTime:       p.CommuteTime,
	}, nil
}

// FindNeighborhood resolves a numeric ID or a case-insensitive name
func (s *Service) FindNeighborhood(ctx context.Context, ref string) (*database.Neighborhood, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("neighborhood name or id is required: %w", ErrNotFound)
	}

	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		n, err := s.db.GetNeighborhood(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get neighborhood: %w", err)
		}
		if n != nil {
			return n, nil
		}
	}

	n, err := s.db.GetNeighborhoodByName(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to get neighborhood: %w", err)
	}
	if n == nil {
		return nil, fmt.Errorf("neighborhood %q: %w", ref, ErrNotFound)
	}
	return n, nil
}

// Stats returns catalog statistics
func (s *Service) Stats(ctx context.Context) (*database.Stats, error) {
	return s.db.GetStats(ctx)
}
