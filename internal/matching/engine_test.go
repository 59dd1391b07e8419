package matching

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubRepository struct {
	postings []Posting
	err      error
}

func (s *stubRepository) Postings(context.Context) ([]Posting, error) {
	return s.postings, s.err
}

func ids(results []MatchResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Posting.ID)
	}
	return out
}

// tieScorer gives p1 a score of 0.9 and p2/p3 a score of 0.4.
func tieScorer() *Scorer {
	return NewScorer(Weights{Skill: 0.8, Experience: 0.1}, nil, fixedClock)
}

func tiePostings() (Posting, Posting, Posting) {
	filler := []string{"Python", "SQL", "Rust", "Zig", "Elixir", "Haskell", "OCaml"}
	p1 := Posting{ID: "p1", RequiredSkills: []string{"Go"}, ExperienceLevel: "Entry"}
	p2 := Posting{ID: "p2", RequiredSkills: append([]string{"Go"}, filler...), ExperienceLevel: "Entry"}
	p3 := Posting{ID: "p3", RequiredSkills: append(append([]string{}, filler...), "Go"), ExperienceLevel: "Entry"}
	return p1, p2, p3
}

func TestRankOrdersDescendingAndKeepsTies(t *testing.T) {
	candidate := CandidateProfile{Skills: []string{"Go", "Python", "SQL"}}
	p1, p2, p3 := tiePostings()
	engine := NewEngine(tieScorer(), nil, 4, nil)

	tests := []struct {
		name  string
		input []Posting
		want  []string
	}{
		{"already ordered", []Posting{p1, p2, p3}, []string{"p1", "p2", "p3"}},
		{"best last", []Posting{p2, p3, p1}, []string{"p1", "p2", "p3"}},
		{"ties reversed", []Posting{p3, p1, p2}, []string{"p1", "p3", "p2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := engine.Rank(candidate, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(results))
		})
	}

	results, err := engine.Rank(candidate, []Posting{p1, p2, p3})
	require.NoError(t, err)
	assert.InDelta(t, 0.9, results[0].MatchScore, 1e-9)
	assert.InDelta(t, 0.4, results[1].MatchScore, 1e-9)
	assert.InDelta(t, 0.4, results[2].MatchScore, 1e-9)
}

func TestRankNilPostings(t *testing.T) {
	engine := NewEngine(nil, nil, 0, nil)

	_, err := engine.Rank(CandidateProfile{}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestRankEmptyPostings(t *testing.T) {
	engine := NewEngine(nil, nil, 0, nil)

	results, err := engine.Rank(CandidateProfile{Skills: []string{"Go"}}, []Posting{})
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestRankIsDeterministic(t *testing.T) {
	skills := []string{"Go", "Rust", "Python", "SQL", "React", "Docker"}
	postings := make([]Posting, 0, 60)
	for i := 0; i < 60; i++ {
		postings = append(postings, Posting{
			ID:              fmt.Sprintf("p%02d", i),
			Title:           "Engineer",
			RequiredSkills:  []string{skills[i%len(skills)], skills[(i/2)%len(skills)]},
			ExperienceLevel: []string{"Entry", "Mid", "Senior", ""}[i%4],
		})
	}
	candidate := CandidateProfile{
		Skills:     []string{"Go", "SQL"},
		Experience: []ExperienceRecord{{StartDate: "2021-01-01", IsCurrent: true}},
	}

	engine := NewEngine(NewScorer(DefaultWeights(), nil, fixedClock), nil, 8, nil)

	first, err := engine.Rank(candidate, postings)
	require.NoError(t, err)
	second, err := engine.Rank(candidate, postings)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	for i := 1; i < len(first); i++ {
		assert.GreaterOrEqual(t, first[i-1].MatchScore, first[i].MatchScore)
	}
}

func TestRankCatalog(t *testing.T) {
	p1, p2, p3 := tiePostings()
	candidate := CandidateProfile{Skills: []string{"Go", "Python", "SQL"}}

	t.Run("ranks repository postings", func(t *testing.T) {
		engine := NewEngine(tieScorer(), &stubRepository{postings: []Posting{p3, p2, p1}}, 2, nil)
		results, err := engine.RankCatalog(context.Background(), candidate)
		require.NoError(t, err)
		assert.Equal(t, []string{"p1", "p3", "p2"}, ids(results))
	})

	t.Run("empty repository", func(t *testing.T) {
		engine := NewEngine(tieScorer(), &stubRepository{}, 2, nil)
		results, err := engine.RankCatalog(context.Background(), candidate)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("repository error", func(t *testing.T) {
		boom := errors.New("boom")
		engine := NewEngine(tieScorer(), &stubRepository{err: boom}, 2, nil)
		_, err := engine.RankCatalog(context.Background(), candidate)
		require.ErrorIs(t, err, boom)
	})

	t.Run("no repository", func(t *testing.T) {
		engine := NewEngine(tieScorer(), nil, 2, nil)
		_, err := engine.RankCatalog(context.Background(), candidate)
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestRankLogs(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	p1, p2, p3 := tiePostings()

	engine := NewEngine(tieScorer(), nil, 1, zap.New(core))
	_, err := engine.Rank(CandidateProfile{Skills: []string{"Go"}}, []Posting{p1, p2, p3})
	require.NoError(t, err)

	assert.Len(t, observed.FilterMessage("posting scored").All(), 3)

	ranked := observed.FilterMessage("postings ranked").All()
	require.Len(t, ranked, 1)
	assert.EqualValues(t, 3, ranked[0].ContextMap()["postings"])
}
