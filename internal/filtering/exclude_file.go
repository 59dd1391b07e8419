package filtering

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hh-matcher/internal/matching"
)

type excludeFileFilter struct {
	switcher
	path string
}

// NewExcludeFile creates a filter that removes postings listed in the exclude file.
func NewExcludeFile() Filter {
	return &excludeFileFilter{}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Validate(cfg *Config) error {
	f.path = ""
	if cfg != nil {
		f.path = strings.TrimSpace(cfg.ExcludeFile)
	}
	if f.path == "" {
		f.Disable("exclude file is not set")
	}
	return nil
}

func (f *excludeFileFilter) Apply(_ context.Context, deps Deps, r *Ranked) (*Ranked, Step, error) {
	initial := r.Len()

	exclusions, err := ReadExclusions(f.path)
	if err != nil {
		return r, Step{}, fmt.Errorf("getting excluded postings from file: %w", err)
	}

	ids := make(map[string]struct{}, len(exclusions.Items))
	for _, id := range exclusions.IDs() {
		ids[id] = struct{}{}
	}

	excluded := r.Exclude(func(m matching.MatchResult) bool {
		_, ok := ids[m.Posting.ID]
		return ok
	})
	if len(excluded) > 0 {
		deps.Logger.Info("excluding postings based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_postings", excluded),
			zap.Int("postings_left", r.Len()),
		)
	}

	return r, r.step(initial, excluded), nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
