package service

import (
	"context"
	"fmt"

	"github.com/vijay-prabhu/neighborfit/internal/database"
	"github.com/vijay-prabhu/neighborfit/internal/match"
)

// Skipped describes a neighborhood left out of a ranking
type Skipped struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Ranking is a truncated, ordered list of match results
type Ranking struct {
	UserID       string         `json:"user_id,omitempty"`
	UsedDefaults bool           `json:"used_defaults"`
	Total        int            `json:"total"`
	Results      []match.Result `json:"results"`
	Skipped      []Skipped      `json:"skipped,omitempty"`
}

// Preferences returns the saved preference view for userID. An empty userID
// yields the configured default weights.
func (s *Service) Preferences(ctx context.Context, userID string) (match.Preferences, bool, error) {
	if userID == "" {
		return s.config.Matching.DefaultWeights.Preferences(), true, nil
	}

	stored, err := s.db.GetPreferences(ctx, userID)
	if err != nil {
		return match.Preferences{}, false, fmt.Errorf("failed to get preferences: %w", err)
	}
	if stored == nil {
		return match.Preferences{}, false, fmt.Errorf("user %s: %w", userID, ErrNoPreferences)
	}

	p, err := PreferencesView(*stored)
	if err != nil {
		return match.Preferences{}, false, err
	}
	return p, false, nil
}

// Rank ranks every neighborhood for a user's saved preferences.
// limit 0 uses the configured top_n; a negative limit returns everything.
func (s *Service) Rank(ctx context.Context, userID string, limit int) (*Ranking, error) {
	p, defaults, err := s.Preferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	r, err := s.RankWith(ctx, p, limit)
	if err != nil {
		return nil, err
	}
	r.UserID = userID
	r.UsedDefaults = defaults
	return r, nil
}

// RankWith ranks every neighborhood for an explicit preference set
func (s *Service) RankWith(ctx context.Context, p match.Preferences, limit int) (*Ranking, error) {
	stored, err := s.db.ListNeighborhoods(ctx, database.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list neighborhoods: %w", err)
	}

	ranking := &Ranking{}
	skip := func(id, name string, err error) {
		ranking.Skipped = append(ranking.Skipped, Skipped{ID: id, Name: name, Reason: err.Error()})
	}

	views := make([]match.Neighborhood, 0, len(stored))
	for _, n := range stored {
		v, err := NeighborhoodView(n)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Int64("neighborhood_id", n.ID).
				Str("neighborhood", n.Name).
				Msg("skipping neighborhood with malformed data")
			skip(fmt.Sprint(n.ID), n.Name, err)
			continue
		}
		views = append(views, v)
	}

	results, err := match.RankAll(views, p,
		match.WithLogger(s.logger),
		match.WithSkipHandler(func(n match.Neighborhood, err error) {
			skip(n.ID, n.Name, err)
		}),
	)
	if err != nil {
		return nil, err
	}

	if limit == 0 {
		limit = s.config.Matching.TopN
	}
	ranking.Total = len(results)
	ranking.Results = match.Top(results, limit)

	s.logger.Debug().
		Int("ranked", ranking.Total).
		Int("returned", len(ranking.Results)).
		Int("skipped", len(ranking.Skipped)).
		Msg("ranked neighborhoods")

	return ranking, nil
}

// Score scores one neighborhood for a user's saved preferences. Malformed
// neighborhood data is an error here, not a skip.
func (s *Service) Score(ctx context.Context, userID, ref string) (*match.Result, error) {
	p, _, err := s.Preferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.ScoreWith(ctx, p, ref)
}

// ScoreWith scores one neighborhood for an explicit preference set
func (s *Service) ScoreWith(ctx context.Context, p match.Preferences, ref string) (*match.Result, error) {
	n, err := s.FindNeighborhood(ctx, ref)
	if err != nil {
		return nil, err
	}

	v, err := NeighborhoodView(*n)
	if err != nil {
		return nil, err
	}

	result, err := match.Explain(v, p)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
