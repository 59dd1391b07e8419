package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hh-matcher/internal/matching"
)

type employersFilter struct {
	switcher
	employers map[string]struct{}
	names     []string
}

// NewEmployers creates a filter that removes postings of companies listed in the config.
func NewEmployers() Filter {
	return &employersFilter{}
}

func (f *employersFilter) Name() string { return "employers" }

func (f *employersFilter) Validate(cfg *Config) error {
	f.employers = make(map[string]struct{})
	f.names = nil
	if cfg == nil {
		return nil
	}

	for _, name := range cfg.Employers {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := f.employers[key]; !ok {
			f.names = append(f.names, strings.TrimSpace(name))
		}
		f.employers[key] = struct{}{}
	}
	return nil
}

func (f *employersFilter) Apply(_ context.Context, deps Deps, r *Ranked) (*Ranked, Step, error) {
	initial := r.Len()
	if len(f.employers) == 0 {
		return r, r.step(initial, nil), nil
	}

	excluded := r.Exclude(func(m matching.MatchResult) bool {
		_, ok := f.employers[strings.ToLower(strings.TrimSpace(m.Posting.Company))]
		return ok
	})
	if len(excluded) > 0 {
		deps.Logger.Info("excluding postings by employers",
			zap.Strings("excluded_employers", f.names),
			zap.Strings("excluded_postings", excluded),
			zap.Int("postings_left", r.Len()),
		)
	}

	return r, r.step(initial, excluded), nil
}

func (f *employersFilter) Status() Status {
	details := map[string]string{}
	if len(f.names) > 0 {
		details["employers"] = strings.Join(f.names, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
