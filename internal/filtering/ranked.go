package filtering

import "github.com/spigell/hh-matcher/internal/matching"

// Ranked is a ranking in progress through the filters.
type Ranked struct {
	Items []matching.MatchResult
}

func (r *Ranked) Len() int {
	return len(r.Items)
}

// Exclude removes results matched by drop and returns their posting ids.
// The relative order of the kept results is preserved.
func (r *Ranked) Exclude(drop func(matching.MatchResult) bool) []string {
	var excluded []string
	kept := make([]matching.MatchResult, 0, len(r.Items))

	for _, result := range r.Items {
		if drop(result) {
			excluded = append(excluded, result.Posting.ID)
			continue
		}
		kept = append(kept, result)
	}

	r.Items = kept
	return excluded
}

func (r *Ranked) step(initial int, dropped []string) Step {
	return Step{Initial: initial, Dropped: len(dropped), Left: r.Len()}
}
