package matching

import "strings"

const (
	directInterestCredit   = 1.0
	expandedInterestCredit = 0.5
)

// InterestMatch is the outcome of comparing candidate interests with the
// posting text.
type InterestMatch struct {
	Score float64
	// Matched holds interests that earned any credit, direct hits first.
	Matched []string
}

// MatchInterests scores candidate interests against the posting title,
// description and company. Interests absent from the text fall back to the
// keyword expansion table for partial credit.
func (t *Tables) MatchInterests(interests []string, p Posting) InterestMatch {
	normalized := normalizeSet(interests)
	if len(normalized) == 0 {
		return InterestMatch{}
	}

	text := postingText(p)

	var (
		sum      float64
		direct   []string
		expanded []string
	)
	for _, interest := range normalized {
		if strings.Contains(text, interest) {
			sum += directInterestCredit
			direct = append(direct, interest)
			continue
		}
		if t.expansionHit(interest, text) {
			sum += expandedInterestCredit
			expanded = append(expanded, interest)
		}
	}

	return InterestMatch{
		Score:   clamp(sum / float64(len(normalized))),
		Matched: append(direct, expanded...),
	}
}

func (t *Tables) expansionHit(interest, text string) bool {
	for _, kw := range t.InterestKeywords[interest] {
		kw = normalize(kw)
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func postingText(p Posting) string {
	return strings.ToLower(strings.Join([]string{p.Title, p.Description, p.Company}, " "))
}
