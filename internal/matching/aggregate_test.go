package matching

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time { return fixedNow }

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()

	assert.Equal(t, Weights{Skill: 0.5, Interest: 0.3, Education: 0.1, Experience: 0.1}, w)
	assert.InDelta(t, 1, w.Sum(), 1e-9)
	assert.NoError(t, w.Check())
}

func TestWeightsCheck(t *testing.T) {
	t.Parallel()

	assert.Error(t, Weights{}.Check())
	assert.Error(t, Weights{Skill: 1.5}.Check())
	assert.Error(t, Weights{Skill: -0.1, Interest: 1}.Check())
	assert.Error(t, Weights{Skill: math.NaN(), Interest: 1}.Check())
	assert.NoError(t, Weights{Experience: 0.2}.Check())
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	s := NewScorer(DefaultWeights(), nil, fixedClock)

	assert.InDelta(t, 1, s.Aggregate(ComponentScores{Skill: 1, Interest: 1, Education: 1, Experience: 1}), 1e-9)
	assert.InDelta(t, 0, s.Aggregate(ComponentScores{}), 1e-9)
	assert.InDelta(t, 0.5+0.15, s.Aggregate(ComponentScores{Skill: 1, Interest: 0.5}), 1e-9)
	// Out of range components are clamped before weighting.
	assert.InDelta(t, 0.5, s.Aggregate(ComponentScores{Skill: 4, Interest: -2}), 1e-9)
}

func TestAggregateClampsOverweightedSum(t *testing.T) {
	s := NewScorer(Weights{Skill: 1, Interest: 1, Education: 1, Experience: 1}, nil, fixedClock)
	assert.InDelta(t, 1, s.Aggregate(ComponentScores{Skill: 1, Interest: 1}), 1e-9)
}

func TestPercentage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 67, Percentage(2.0/3.0))
	assert.Equal(t, 13, Percentage(0.125))
	assert.Equal(t, 0, Percentage(-1))
	assert.Equal(t, 100, Percentage(1))
}

func TestScoreBuildsResult(t *testing.T) {
	s := NewScorer(DefaultWeights(), nil, fixedClock)

	candidate := CandidateProfile{
		Skills:    []string{"Python", "React"},
		Interests: []string{"web development"},
		Education: []EducationRecord{{Degree: "Bachelor", Field: "Computer Science"}},
		Experience: []ExperienceRecord{{
			Company:   "Acme",
			StartDate: "2024-06-15",
			IsCurrent: true,
		}},
	}
	posting := Posting{
		ID:              "p1",
		Title:           "Junior Fullstack Developer",
		Company:         "Acme",
		RequiredSkills:  []string{"Python", "React", "Node.js"},
		Requirements:    []string{"Master's degree required", "Computer Science background"},
		ExperienceLevel: "Entry Level",
	}

	got := s.Score(candidate, posting)

	require.NotNil(t, got.Components)
	assert.InDelta(t, 2.0/3.0, got.Components.Skill, 1e-9)
	assert.InDelta(t, 0.5, got.Components.Interest, 1e-9)
	assert.InDelta(t, 0.4, got.Components.Education, 1e-9)
	assert.InDelta(t, 1, got.Components.Experience, 1e-9)

	want := 0.5*(2.0/3.0) + 0.3*0.5 + 0.1*0.4 + 0.1*1
	assert.InDelta(t, want, got.MatchScore, 1e-9)
	assert.Equal(t, Percentage(want), got.MatchPercentage)
	assert.Equal(t, []string{"Python", "React"}, got.MatchedSkills)
	assert.Equal(t, []string{"Node.js"}, got.MissingSkills)
	assert.Equal(t, "With 1 year of experience, you suit this Entry-level role.", got.RecommendationReason)
	assert.Equal(t, posting, got.Posting)
}

func TestScoreEmptyInputsStayDefined(t *testing.T) {
	s := NewScorer(DefaultWeights(), nil, fixedClock)

	got := s.Score(CandidateProfile{}, Posting{ID: "empty"})

	assert.NotNil(t, got.MatchedSkills)
	assert.NotNil(t, got.MissingSkills)
	assert.Zero(t, got.Components.Skill)
	// Unknown level is neutral.
	assert.InDelta(t, 0.05, got.MatchScore, 1e-9)
	assert.Equal(t, 5, got.MatchPercentage)
}

func TestScoreBounds(t *testing.T) {
	t.Parallel()

	s := NewScorer(DefaultWeights(), nil, fixedClock)
	candidates := []CandidateProfile{
		{},
		{Skills: []string{"go", "Go", "golang", "k8s"}, Interests: []string{"cloud computing", "devops", "devops"}},
		{
			Skills:     []string{"a", "b", "c"},
			Interests:  []string{"a"},
			Education:  []EducationRecord{{Degree: "PhD", Field: "a"}, {Degree: "master"}},
			Experience: []ExperienceRecord{{StartDate: "1990-01-01", IsCurrent: true}, {StartDate: "bad"}},
		},
	}
	postings := []Posting{
		{},
		{Title: "a", Description: "a b c", RequiredSkills: []string{"a", "ab", "abc"}, Requirements: []string{"a phd"}, ExperienceLevel: "senior mid entry"},
		{Title: "Cloud engineer", RequiredSkills: []string{"Go", "Kubernetes"}, Requirements: []string{""}, ExperienceLevel: "mid"},
	}

	for ci, c := range candidates {
		for pi, p := range postings {
			t.Run(fmt.Sprintf("c%d-p%d", ci, pi), func(t *testing.T) {
				r := s.Score(c, p)
				for _, v := range []float64{r.Components.Skill, r.Components.Interest, r.Components.Education, r.Components.Experience, r.MatchScore} {
					assert.GreaterOrEqual(t, v, 0.0)
					assert.LessOrEqual(t, v, 1.0)
				}
				assert.GreaterOrEqual(t, r.MatchPercentage, 0)
				assert.LessOrEqual(t, r.MatchPercentage, 100)
			})
		}
	}
}
