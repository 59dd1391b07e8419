package matching

import "strings"

const (
	degreeWeight = 0.6
	fieldWeight  = 0.4

	// defaultDegreeThreshold applies when requirements name no degree.
	defaultDegreeThreshold = 1

	relatedFieldCredit = 0.5
)

// EducationMatch is the outcome of comparing education records with the
// posting requirements.
type EducationMatch struct {
	Score       float64
	DegreeMatch float64
	FieldMatch  float64
	// Level is the highest degree level found across the records.
	Level int
	// Degree and Field describe the record holding that level.
	Degree string
	Field  string
}

// MatchEducation scores the candidate's highest degree and fields of study
// against the free-text requirements.
func (t *Tables) MatchEducation(records []EducationRecord, requirements []string) EducationMatch {
	text := requirementText(requirements)
	if len(records) == 0 || text == "" {
		return EducationMatch{}
	}

	levels := t.degreeLevelsDescending()

	m := EducationMatch{}
	fields := make([]string, 0, len(records))
	for i, rec := range records {
		level := degreeLevel(levels, rec.Degree)
		if level > m.Level || (i == 0 && m.Degree == "") {
			m.Level = level
			m.Degree = strings.TrimSpace(rec.Degree)
			m.Field = strings.TrimSpace(rec.Field)
		}
		if f := normalize(rec.Field); f != "" {
			fields = append(fields, f)
		}
	}

	threshold := requiredDegreeLevel(levels, text)
	if m.Level >= threshold {
		m.DegreeMatch = 1
	}

	m.FieldMatch = t.fieldMatch(fields, text)
	m.Score = clamp(degreeWeight*m.DegreeMatch + fieldWeight*m.FieldMatch)
	return m
}

func degreeLevel(levels []DegreeLevel, degree string) int {
	d := normalize(degree)
	if d == "" {
		return 0
	}
	for _, l := range levels {
		if strings.Contains(d, l.Keyword) {
			return l.Level
		}
	}
	return 0
}

// requiredDegreeLevel returns the level of the most advanced degree keyword
// mentioned in the requirement text.
func requiredDegreeLevel(levels []DegreeLevel, text string) int {
	for _, l := range levels {
		if strings.Contains(text, l.Keyword) {
			return l.Level
		}
	}
	return defaultDegreeThreshold
}

func (t *Tables) fieldMatch(fields []string, text string) float64 {
	for _, f := range fields {
		if strings.Contains(text, f) {
			return 1
		}
	}
	for _, f := range fields {
		for key, related := range t.RelatedFields {
			if f != key && !strings.Contains(f, key) {
				continue
			}
			for _, r := range related {
				if r != "" && strings.Contains(text, r) {
					return relatedFieldCredit
				}
			}
		}
	}
	return 0
}

func requirementText(requirements []string) string {
	parts := make([]string, 0, len(requirements))
	for _, r := range requirements {
		if n := normalize(r); n != "" {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, " ")
}
