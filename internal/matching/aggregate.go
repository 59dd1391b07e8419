package matching

import (
	"errors"
	"math"
	"time"
)

// Weights control how component scores combine into the match score.
type Weights struct {
	Skill      float64 `json:"skill" mapstructure:"skill" validate:"gte=0,lte=1"`
	Interest   float64 `json:"interest" mapstructure:"interest" validate:"gte=0,lte=1"`
	Education  float64 `json:"education" mapstructure:"education" validate:"gte=0,lte=1"`
	Experience float64 `json:"experience" mapstructure:"experience" validate:"gte=0,lte=1"`
}

// DefaultWeights returns the standard 0.5/0.3/0.1/0.1 split.
func DefaultWeights() Weights {
	return Weights{Skill: 0.5, Interest: 0.3, Education: 0.1, Experience: 0.1}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Skill + w.Interest + w.Education + w.Experience
}

// Check reports weights that cannot produce a score in [0,1].
func (w Weights) Check() error {
	for _, v := range []float64{w.Skill, w.Interest, w.Education, w.Experience} {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return errors.New("each weight must be within [0,1]")
		}
	}
	if w.Sum() <= 0 {
		return errors.New("at least one weight must be positive")
	}
	return nil
}

// Breakdown keeps every intermediate value computed for one posting.
type Breakdown struct {
	Skill      SkillMatch
	Interest   InterestMatch
	Education  EducationMatch
	Experience ExperienceMatch
}

// Components returns the clamped component scores.
func (b Breakdown) Components() ComponentScores {
	return ComponentScores{
		Skill:      clamp(b.Skill.Score),
		Interest:   clamp(b.Interest.Score),
		Education:  clamp(b.Education.Score),
		Experience: clamp(b.Experience.Score),
	}
}

// Scorer applies the four matchers and the aggregator to a single posting.
// It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	weights Weights
	tables  *Tables
	now     func() time.Time
}

// NewScorer builds a scorer. Nil tables fall back to DefaultTables and a nil
// clock to time.Now.
func NewScorer(weights Weights, tables *Tables, now func() time.Time) *Scorer {
	if tables == nil {
		tables = DefaultTables()
	}
	if now == nil {
		now = time.Now
	}
	return &Scorer{weights: weights, tables: tables, now: now}
}

// Weights returns the weights the scorer aggregates with.
func (s *Scorer) Weights() Weights { return s.weights }

// Tables returns the keyword tables in use.
func (s *Scorer) Tables() *Tables { return s.tables }

// Breakdown runs all four matchers for the pair.
func (s *Scorer) Breakdown(c CandidateProfile, p Posting) Breakdown {
	return s.breakdownAt(c, p, s.now())
}

func (s *Scorer) breakdownAt(c CandidateProfile, p Posting, now time.Time) Breakdown {
	return Breakdown{
		Skill:      MatchSkills(c.Skills, p.RequiredSkills),
		Interest:   s.tables.MatchInterests(c.Interests, p),
		Education:  s.tables.MatchEducation(c.Education, p.Requirements),
		Experience: MatchExperience(c.Experience, p.ExperienceLevel, now),
	}
}

// Aggregate combines component scores with the configured weights.
func (s *Scorer) Aggregate(cs ComponentScores) float64 {
	return clamp(s.weights.Skill*clamp(cs.Skill) +
		s.weights.Interest*clamp(cs.Interest) +
		s.weights.Education*clamp(cs.Education) +
		s.weights.Experience*clamp(cs.Experience))
}

// Score builds the full match result for one posting.
func (s *Scorer) Score(c CandidateProfile, p Posting) MatchResult {
	return s.scoreAt(c, p, s.now())
}

func (s *Scorer) scoreAt(c CandidateProfile, p Posting, now time.Time) MatchResult {
	b := s.breakdownAt(c, p, now)
	cs := b.Components()
	score := s.Aggregate(cs)

	matched := b.Skill.Matched
	if matched == nil {
		matched = []string{}
	}
	missing := b.Skill.Missing
	if missing == nil {
		missing = []string{}
	}

	return MatchResult{
		Posting:              p,
		MatchScore:           score,
		MatchPercentage:      Percentage(score),
		MatchedSkills:        matched,
		MissingSkills:        missing,
		RecommendationReason: Explain(b),
		Components:           &cs,
	}
}

// Percentage converts a score in [0,1] to a rounded whole percent.
func Percentage(score float64) int {
	return int(math.Round(clamp(score) * 100))
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
