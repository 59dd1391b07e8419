package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchInterests(t *testing.T) {
	t.Parallel()

	tables := DefaultTables()

	tests := []struct {
		name      string
		interests []string
		posting   Posting
		score     float64
		matched   []string
	}{
		{
			name:      "direct containment",
			interests: []string{"Fintech"},
			posting:   Posting{Title: "Backend Engineer", Description: "Join a fintech startup"},
			score:     1,
			matched:   []string{"fintech"},
		},
		{
			name:      "keyword expansion",
			interests: []string{"Web Development"},
			posting:   Posting{Title: "Frontend Engineer"},
			score:     0.5,
			matched:   []string{"web development"},
		},
		{
			name:      "company is searched",
			interests: []string{"healthcare"},
			posting:   Posting{Title: "Data Analyst", Company: "Healthcare Partners"},
			score:     1,
			matched:   []string{"healthcare"},
		},
		{
			name:      "no overlap",
			interests: []string{"healthcare"},
			posting:   Posting{Title: "Go Developer", Company: "Acme"},
			score:     0,
		},
		{
			name:      "untabulated interest",
			interests: []string{"gardening"},
			posting:   Posting{Title: "Landscape designer"},
			score:     0,
		},
		{
			name:      "mixed credit with direct hits first",
			interests: []string{"web development", "fintech", "gardening"},
			posting:   Posting{Title: "React Developer", Description: "Join our fintech team", Company: "PayCo"},
			score:     0.5,
			matched:   []string{"fintech", "web development"},
		},
		{
			name:      "duplicates collapse",
			interests: []string{"Fintech", "fintech ", ""},
			posting:   Posting{Description: "fintech"},
			score:     1,
			matched:   []string{"fintech"},
		},
		{
			name:    "no interests",
			posting: Posting{Title: "Anything"},
			score:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tables.MatchInterests(tt.interests, tt.posting)
			assert.InDelta(t, tt.score, got.Score, 1e-9)
			assert.Equal(t, tt.matched, got.Matched)
		})
	}
}

func TestMatchInterestsUsesMergedTable(t *testing.T) {
	tables := DefaultTables()
	tables.Merge(&Tables{InterestKeywords: map[string][]string{
		" Gardening ": {"Landscape", "horticulture"},
	}})

	got := tables.MatchInterests([]string{"gardening"}, Posting{Title: "Landscape designer"})
	assert.InDelta(t, 0.5, got.Score, 1e-9)
}
