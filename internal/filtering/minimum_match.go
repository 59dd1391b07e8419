package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/hh-matcher/internal/matching"
)

type minimumMatchFilter struct {
	switcher
	minimum int
}

// NewMinimumMatch creates a filter that removes postings below the configured match percentage.
func NewMinimumMatch() Filter {
	return &minimumMatchFilter{}
}

func (f *minimumMatchFilter) Name() string { return "minimum_match" }

func (f *minimumMatchFilter) Validate(cfg *Config) error {
	f.minimum = 0
	if cfg != nil {
		f.minimum = cfg.MinimumMatch
	}
	if f.minimum < 0 || f.minimum > 100 {
		return fmt.Errorf("minimum match must be within 0..100, got %d", f.minimum)
	}
	if f.minimum == 0 {
		f.Disable("minimum-match is not set")
	}
	return nil
}

func (f *minimumMatchFilter) Apply(_ context.Context, deps Deps, r *Ranked) (*Ranked, Step, error) {
	initial := r.Len()

	excluded := r.Exclude(func(m matching.MatchResult) bool {
		return m.MatchPercentage < f.minimum
	})
	if len(excluded) > 0 {
		deps.Logger.Info("excluding postings below minimum match",
			zap.Int("minimum_match", f.minimum),
			zap.Int("excluded_count", len(excluded)),
			zap.Int("postings_left", r.Len()),
		)
	}

	return r, r.step(initial, excluded), nil
}

func (f *minimumMatchFilter) Status() Status {
	details := map[string]string{
		"minimum_match": strconv.Itoa(f.minimum),
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
