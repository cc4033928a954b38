package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vijay-prabhu/neighborfit/internal/database"
	"github.com/vijay-prabhu/neighborfit/internal/match"
	"github.com/vijay-prabhu/neighborfit/internal/validation"
)

// NeighborhoodInput is an inbound neighborhood record
type NeighborhoodInput struct {
	Name         string  `json:"name" validate:"required,max=200"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	ZipCode      string  `json:"zip_code"`
	Population   int     `json:"population" validate:"gte=0"`
	MedianIncome float64 `json:"median_income" validate:"gte=0"`
	CrimeRate    float64 `json:"crime_rate" validate:"gte=0"`
	WalkScore    int     `json:"walk_score" validate:"gte=0,lte=100"`
	TransitScore int     `json:"transit_score" validate:"gte=0,lte=100"`
	BikeScore    int     `json:"bike_score" validate:"gte=0,lte=100"`
	// Amenities accepts either stored encoding
	Amenities string `json:"amenities"`
}

// ListNeighborhoods lists the catalog
func (s *Service) ListNeighborhoods(ctx context.Context, opts database.ListOptions) ([]database.Neighborhood, error) {
	return s.db.ListNeighborhoods(ctx, opts)
}

// SearchNeighborhoods matches a free-text query against the catalog
func (s *Service) SearchNeighborhoods(ctx context.Context, query string) ([]database.Neighborhood, error) {
	return s.db.SearchNeighborhoods(ctx, query)
}

// SaveNeighborhood validates and upserts a neighborhood by name
func (s *Service) SaveNeighborhood(ctx context.Context, in NeighborhoodInput) (*database.Neighborhood, error) {
	if err := validation.ValidateStruct(&in); err != nil {
		return nil, err
	}

	// store as a JSON array; the delimited form cannot carry commas or
	// edge spaces inside a tag
	amenities, err := match.ParseAmenities(in.Amenities)
	if err != nil {
		return nil, err
	}
	encoded, err := json.Marshal(amenities)
	if err != nil {
		return nil, fmt.Errorf("failed to encode amenities: %w", err)
	}

	n := &database.Neighborhood{
		Name:         in.Name,
		City:         in.City,
		State:        in.State,
		ZipCode:      in.ZipCode,
		Population:   in.Population,
		MedianIncome: in.MedianIncome,
		CrimeRate:    in.CrimeRate,
		WalkScore:    in.WalkScore,
		TransitScore: in.TransitScore,
		BikeScore:    in.BikeScore,
		Amenities:    string(encoded),
	}
	if err := s.db.UpsertNeighborhood(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to save neighborhood: %w", err)
	}

	s.logger.Info().Int64("neighborhood_id", n.ID).Str("neighborhood", n.Name).Msg("saved neighborhood")
	return n, nil
}

// RemoveNeighborhood deletes a neighborhood and its reviews
func (s *Service) RemoveNeighborhood(ctx context.Context, ref string) (*database.Neighborhood, error) {
	n, err := s.FindNeighborhood(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := s.db.DeleteNeighborhood(ctx, n.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("neighborhood %d: %w", n.ID, ErrNotFound)
		}
		return nil, err
	}
	return n, nil
}

// Seed loads the starter catalog
func (s *Service) Seed(ctx context.Context) (int, error) {
	n, err := s.db.Seed(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to seed: %w", err)
	}
	s.logger.Info().Int("neighborhoods", n).Msg("seeded catalog")
	return n, nil
}
