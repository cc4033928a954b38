package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vijay-prabhu/neighborfit/internal/database"
	"github.com/vijay-prabhu/neighborfit/internal/output"
	"github.com/vijay-prabhu/neighborfit/internal/service"
	"github.com/vijay-prabhu/neighborfit/internal/validation"
)

func (s *Server) registerHandlers() {
	s.handlers["rank_neighborhoods"] = s.handleRankNeighborhoods
	s.handlers["score_neighborhood"] = s.handleScoreNeighborhood
	s.handlers["list_neighborhoods"] = s.handleListNeighborhoods
	s.handlers["get_review_averages"] = s.handleGetReviewAverages
	s.handlers["get_preferences"] = s.handleGetPreferences
	s.handlers["set_preferences"] = s.handleSetPreferences
	s.handlers["get_stats"] = s.handleGetStats
}

func decode(params json.RawMessage, v interface{}) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	return nil
}

var errUserWithWeights = errors.New("give user_id or inline weights, not both")

type rankParams struct {
	service.InlinePreferences
	UserID string `json:"user_id"`
	Limit  int    `json:"limit" validate:"gte=-1"`
}

func (s *Server) handleRankNeighborhoods(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p rankParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if err := validation.ValidateStruct(&p); err != nil {
		return nil, err
	}

	if p.UserID != "" && (!p.IsZero() || len(p.Amenities) > 0) {
		return nil, errUserWithWeights
	}
	if !p.IsZero() {
		return s.svc.RankWith(ctx, p.View(), p.Limit)
	}
	return s.svc.Rank(ctx, p.UserID, p.Limit)
}

type scoreParams struct {
	Neighborhood string `json:"neighborhood" validate:"required"`
	UserID       string `json:"user_id"`
}

func (s *Server) handleScoreNeighborhood(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p scoreParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if err := validation.ValidateStruct(&p); err != nil {
		return nil, err
	}

	return s.svc.Score(ctx, p.UserID, p.Neighborhood)
}

type listNeighborhoodsParams struct {
	City  string `json:"city"`
	State string `json:"state"`
	Query string `json:"query"`
	Limit int    `json:"limit" validate:"gte=0,lte=1000"`
}

func (s *Server) handleListNeighborhoods(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p listNeighborhoodsParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if err := validation.ValidateStruct(&p); err != nil {
		return nil, err
	}

	if p.Query != "" {
		return s.svc.SearchNeighborhoods(ctx, p.Query)
	}

	opts := database.ListOptions{Limit: 50}
	if p.Limit > 0 {
		opts.Limit = p.Limit
	}
	if p.City != "" {
		opts.City = &p.City
	}
	if p.State != "" {
		opts.State = &p.State
	}

	neighborhoods, err := s.svc.ListNeighborhoods(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if neighborhoods == nil {
		neighborhoods = []database.Neighborhood{}
	}
	return neighborhoods, nil
}

type reviewAveragesParams struct {
	Neighborhood string `json:"neighborhood"`
}

func (s *Server) handleGetReviewAverages(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p reviewAveragesParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}

	if p.Neighborhood == "" {
		return s.svc.AllRatings(ctx)
	}
	return s.svc.ReviewAverages(ctx, p.Neighborhood)
}

type getPreferencesParams struct {
	UserID string `json:"user_id" validate:"required"`
}

func (s *Server) handleGetPreferences(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getPreferencesParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if err := validation.ValidateStruct(&p); err != nil {
		return nil, err
	}

	return s.svc.GetPreferences(ctx, p.UserID)
}

func (s *Server) handleSetPreferences(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var in service.PreferencesInput
	if err := decode(params, &in); err != nil {
		return nil, err
	}

	return s.svc.SavePreferences(ctx, in)
}

func (s *Server) handleGetStats(ctx context.Context, params json.RawMessage) (interface{}, error) {
	return s.svc.Stats(ctx)
}

// Resource handlers render the same tables as the CLI

func (s *Server) handleReadResource(ctx context.Context, uri string) (string, error) {
	var data interface{}
	var err error

	switch uri {
	case resourceNeighborhoods:
		var ns []database.Neighborhood
		ns, err = s.svc.ListNeighborhoods(ctx, database.ListOptions{})
		data = ns
	case resourceRankings:
		data, err = s.svc.AllRatings(ctx)
	case resourceSummary:
		data, err = s.svc.Stats(ctx)
	default:
		return "", fmt.Errorf("unknown resource: %s", uri)
	}
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := output.TableTo(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
