package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/hh-matcher/internal/matching"
)

type appliedHistoryFilter struct {
	switcher
	enabled bool
}

// NewAppliedHistory creates a filter that removes postings found in the hh.ru negotiation history.
func NewAppliedHistory() Filter {
	return &appliedHistoryFilter{}
}

func (f *appliedHistoryFilter) Name() string { return "applied_history" }

func (f *appliedHistoryFilter) Validate(cfg *Config) error {
	f.enabled = cfg != nil && cfg.ExcludeApplied
	if !f.enabled {
		f.Disable("exclude-applied is not set")
	}
	return nil
}

func (f *appliedHistoryFilter) Apply(ctx context.Context, deps Deps, r *Ranked) (*Ranked, Step, error) {
	initial := r.Len()
	if deps.HH == nil {
		deps.Logger.Info("skipping already applied postings check", zap.String("reason", "hh.ru client is not configured"))
		return r, r.step(initial, nil), nil
	}

	negotiations, err := deps.HH.GetNegotiations(ctx)
	if err != nil {
		return r, Step{}, fmt.Errorf("get my negotiations: %w", err)
	}

	applied := make(map[string]struct{})
	for _, id := range negotiations.VacanciesIDs() {
		applied[id] = struct{}{}
	}

	excluded := r.Exclude(func(m matching.MatchResult) bool {
		_, ok := applied[m.Posting.ID]
		return ok
	})
	if len(excluded) > 0 {
		deps.Logger.Info("excluding postings based on my negotiations",
			zap.Strings("excluded_postings", excluded),
			zap.Int("postings_left", r.Len()),
		)
	}

	return r, r.step(initial, excluded), nil
}

func (f *appliedHistoryFilter) Status() Status {
	details := map[string]string{
		"exclude_applied": strconv.FormatBool(f.enabled),
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
