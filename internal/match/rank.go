package match

import (
	"sort"

	"github.com/rs/zerolog"
)

// SkipHandler is called for each neighborhood left out of a ranking
type SkipHandler func(n Neighborhood, err error)

type rankOptions struct {
	logger zerolog.Logger
	onSkip SkipHandler
}

// RankOption configures RankAll
type RankOption func(*rankOptions)

// WithLogger logs skipped neighborhoods at warn level
func WithLogger(l zerolog.Logger) RankOption {
	return func(o *rankOptions) {
		o.logger = l
	}
}

// WithSkipHandler reports skipped neighborhoods to fn
func WithSkipHandler(fn SkipHandler) RankOption {
	return func(o *rankOptions) {
		o.onSkip = fn
	}
}

// RankAll scores every neighborhood and returns all results ordered by
// score, highest first. Equal scores keep their input order.
//
// Invalid preferences fail the whole call. A neighborhood with malformed
// data is skipped and reported through the configured logger and skip
// handler; the rest are still ranked.
func RankAll(neighborhoods []Neighborhood, p Preferences, opts ...RankOption) ([]Result, error) {
	o := rankOptions{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(neighborhoods))
	for _, n := range neighborhoods {
		r, err := explain(n, p)
		if err != nil {
			o.logger.Warn().
				Err(err).
				Str("neighborhood_id", n.ID).
				Str("neighborhood", n.Name).
				Msg("skipping neighborhood with malformed data")
			if o.onSkip != nil {
				o.onSkip(n, err)
			}
			continue
		}
		results = append(results, r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results, nil
}

// Top returns at most n results. A non-positive n returns everything.
func Top(results []Result, n int) []Result {
	if n <= 0 || len(results) <= n {
		return results
	}
	return results[:n]
}
