// Package filtering drops ranked postings the candidate does not want to see.
// Filters run after ranking and never reorder results.
package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/hh-matcher/internal/headhunter"
	"github.com/spigell/hh-matcher/internal/matching"
)

// Filter represents a single filtering step applied to ranked results.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, r *Ranked) (*Ranked, Step, error)
}

// NegotiationsSource returns negotiations of the hh.ru token owner.
type NegotiationsSource interface {
	GetNegotiations(ctx context.Context) (headhunter.Negotations, error)
}

// Deps aggregates dependencies shared across all filtering steps.
type Deps struct {
	HH     NegotiationsSource
	Logger *zap.Logger
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config contains configuration settings consumed by the filters.
type Config struct {
	Employers      []string `mapstructure:"employers"`
	MinimumMatch   int      `mapstructure:"minimum-match" validate:"gte=0,lte=100"`
	ExcludeApplied bool     `mapstructure:"exclude-applied"`
	ExcludeFile    string   `mapstructure:"-"`
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// switcher keeps the enabled state of a filter.
type switcher struct {
	disabled bool
	reason   string
}

func (s *switcher) Disable(reason string) {
	s.disabled = true
	s.reason = reason
}

func (s *switcher) IsEnabled() bool { return !s.disabled }

// Default returns all filters in the order they are applied.
func Default() []Filter {
	return []Filter{
		NewEmployers(),
		NewExcludeFile(),
		NewAppliedHistory(),
		NewMinimumMatch(),
	}
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run validates the enabled filters and applies them sequentially. A filter
// may disable itself during validation.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, results []matching.MatchResult) ([]matching.MatchResult, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	r := &Ranked{Items: results}
	for _, step := range steps {
		if !step.IsEnabled() {
			deps.Logger.Info("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, deps, r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		deps.Logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		r = next
	}

	return r.Items, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}
