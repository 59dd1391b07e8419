package matching

import (
	"sort"
	"strings"
)

// TablesVersion identifies the built-in keyword tables.
const TablesVersion = "2024.1"

// DegreeLevel maps a degree keyword to its rank. Higher is more advanced.
type DegreeLevel struct {
	Keyword string `json:"keyword" mapstructure:"keyword"`
	Level   int    `json:"level" mapstructure:"level"`
}

// Tables holds the hand-authored domain knowledge used by the matchers.
type Tables struct {
	Version          string              `json:"version" mapstructure:"version"`
	InterestKeywords map[string][]string `json:"interestKeywords" mapstructure:"interest-keywords"`
	RelatedFields    map[string][]string `json:"relatedFields" mapstructure:"related-fields"`
	DegreeLevels     []DegreeLevel       `json:"degreeLevels" mapstructure:"degree-levels"`
}

var defaultInterestKeywords = map[string][]string{
	"web development":         {"frontend", "backend", "fullstack", "javascript", "react", "node"},
	"mobile development":      {"ios", "android", "mobile", "flutter", "swift", "kotlin", "react native"},
	"data science":            {"data", "analytics", "statistics", "pandas", "python", "sql"},
	"machine learning":        {"machine learning", "deep learning", "neural", "tensorflow", "pytorch", "nlp"},
	"artificial intelligence": {"machine learning", "deep learning", "neural", "llm", "computer vision"},
	"cloud computing":         {"aws", "azure", "gcp", "cloud", "kubernetes", "devops"},
	"devops":                  {"ci/cd", "kubernetes", "docker", "terraform", "infrastructure", "sre"},
	"cybersecurity":           {"security", "cyber", "penetration", "encryption", "soc", "threat"},
	"ui/ux design":            {"ux", "ui", "figma", "user experience", "design", "prototype"},
	"game development":        {"game", "unity", "unreal", "gameplay", "3d"},
	"finance":                 {"finance", "banking", "fintech", "trading", "investment"},
	"healthcare":              {"health", "medical", "clinical", "patient", "pharma"},
	"marketing":               {"marketing", "seo", "social media", "brand", "growth"},
	"education":               {"education", "edtech", "learning", "teaching", "students"},
	"sustainability":          {"climate", "renewable", "energy", "sustainab", "environment"},
}

var defaultRelatedFields = map[string][]string{
	"computer science":        {"software engineering", "computer engineering", "information technology", "informatics", "data science"},
	"software engineering":    {"computer science", "computer engineering", "information technology"},
	"computer engineering":    {"computer science", "electrical engineering", "software engineering"},
	"information technology":  {"computer science", "information systems", "software engineering"},
	"data science":            {"statistics", "mathematics", "computer science", "machine learning"},
	"mathematics":             {"statistics", "physics", "computer science", "data science"},
	"statistics":              {"mathematics", "data science", "economics"},
	"physics":                 {"mathematics", "engineering"},
	"electrical engineering":  {"computer engineering", "electronics", "physics"},
	"business administration": {"management", "business", "economics", "finance", "marketing"},
	"economics":               {"finance", "business", "statistics", "mathematics"},
	"finance":                 {"economics", "accounting", "business"},
	"design":                  {"graphic design", "ux", "interaction design", "hci"},
}

var defaultDegreeLevels = []DegreeLevel{
	{Keyword: "high school", Level: 1},
	{Keyword: "associate", Level: 2},
	{Keyword: "bachelor", Level: 3},
	{Keyword: "master", Level: 4},
	{Keyword: "phd", Level: 5},
	{Keyword: "ph.d", Level: 5},
	{Keyword: "doctorate", Level: 5},
}

// DefaultTables returns a fresh copy of the built-in tables.
func DefaultTables() *Tables {
	t := &Tables{
		Version:          TablesVersion,
		InterestKeywords: make(map[string][]string, len(defaultInterestKeywords)),
		RelatedFields:    make(map[string][]string, len(defaultRelatedFields)),
		DegreeLevels:     append([]DegreeLevel(nil), defaultDegreeLevels...),
	}
	for k, v := range defaultInterestKeywords {
		t.InterestKeywords[k] = append([]string(nil), v...)
	}
	for k, v := range defaultRelatedFields {
		t.RelatedFields[k] = append([]string(nil), v...)
	}
	return t
}

// Merge overlays other onto t key by key. Keys and keywords are lower-cased.
// A non-empty degree level list in other replaces the current one.
func (t *Tables) Merge(other *Tables) {
	if other == nil {
		return
	}
	if v := strings.TrimSpace(other.Version); v != "" {
		t.Version = v
	}
	if t.InterestKeywords == nil {
		t.InterestKeywords = make(map[string][]string)
	}
	for k, v := range other.InterestKeywords {
		if key := normalize(k); key != "" {
			t.InterestKeywords[key] = normalizeAll(v)
		}
	}
	if t.RelatedFields == nil {
		t.RelatedFields = make(map[string][]string)
	}
	for k, v := range other.RelatedFields {
		if key := normalize(k); key != "" {
			t.RelatedFields[key] = normalizeAll(v)
		}
	}
	if len(other.DegreeLevels) > 0 {
		levels := make([]DegreeLevel, 0, len(other.DegreeLevels))
		for _, l := range other.DegreeLevels {
			if kw := normalize(l.Keyword); kw != "" && l.Level > 0 {
				levels = append(levels, DegreeLevel{Keyword: kw, Level: l.Level})
			}
		}
		if len(levels) > 0 {
			t.DegreeLevels = levels
		}
	}
}

// degreeLevelsDescending orders levels from most to least advanced, keeping
// table order among equal levels.
func (t *Tables) degreeLevelsDescending() []DegreeLevel {
	levels := append([]DegreeLevel(nil), t.DegreeLevels...)
	sort.SliceStable(levels, func(i, j int) bool {
		return levels[i].Level > levels[j].Level
	})
	return levels
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if n := normalize(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// normalizeSet lower-cases, drops blanks and collapses duplicates while
// keeping first-seen order.
func normalizeSet(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		n := normalize(s)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
