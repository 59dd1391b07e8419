package matching

import "strings"

const (
	exactSkillCredit   = 1.0
	partialSkillCredit = 0.5
)

// SkillMatch is the outcome of comparing candidate skills with a posting.
type SkillMatch struct {
	Score   float64
	Matched []string
	Missing []string
	// Contributing lists candidate skills that produced credit, in the
	// order of the required skills they satisfied.
	Contributing []string
}

type candidateSkill struct {
	raw  string
	norm string
}

// MatchSkills scores required skills against candidate skills. A required
// skill equal to any candidate skill earns full credit; otherwise a substring
// overlap in either direction earns partial credit.
func MatchSkills(candidate, required []string) SkillMatch {
	skills := dedupeSkills(candidate)

	var (
		sum   float64
		count int
		m     SkillMatch
	)
	seenContributing := make(map[string]struct{})

	for _, req := range required {
		norm := normalize(req)
		if norm == "" {
			continue
		}
		count++

		credit, by := skillCredit(norm, skills)
		sum += credit
		if credit == 0 {
			m.Missing = append(m.Missing, strings.TrimSpace(req))
			continue
		}

		m.Matched = append(m.Matched, strings.TrimSpace(req))
		if _, ok := seenContributing[by.norm]; !ok {
			seenContributing[by.norm] = struct{}{}
			m.Contributing = append(m.Contributing, by.raw)
		}
	}

	if count == 0 {
		return m
	}

	m.Score = clamp(sum / float64(count))
	return m
}

func skillCredit(required string, skills []candidateSkill) (float64, candidateSkill) {
	for _, s := range skills {
		if s.norm == required {
			return exactSkillCredit, s
		}
	}
	for _, s := range skills {
		if strings.Contains(s.norm, required) || strings.Contains(required, s.norm) {
			return partialSkillCredit, s
		}
	}
	return 0, candidateSkill{}
}

func dedupeSkills(in []string) []candidateSkill {
	seen := make(map[string]struct{}, len(in))
	out := make([]candidateSkill, 0, len(in))
	for _, s := range in {
		n := normalize(s)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, candidateSkill{raw: strings.TrimSpace(s), norm: n})
	}
	return out
}
