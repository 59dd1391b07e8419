package matching

import (
	"strings"
	"time"
)

// Level is the experience tier a posting declares.
type Level string

const (
	LevelEntry   Level = "Entry"
	LevelMid     Level = "Mid"
	LevelSenior  Level = "Senior"
	LevelUnknown Level = ""

	neutralExperienceScore = 0.5
	daysPerYear            = 365
)

// levelPriority is the order level words are searched in; the first hit wins.
var levelPriority = []struct {
	keyword string
	level   Level
}{
	{"senior", LevelSenior},
	{"mid", LevelMid},
	{"entry", LevelEntry},
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01",
	"2006",
	"01/2006",
}

// ExperienceMatch is the outcome of comparing work history with the
// posting's declared tier.
type ExperienceMatch struct {
	Score float64
	Years float64
	Level Level
}

// ParseLevel finds the tier named in a free-text level string.
func ParseLevel(s string) Level {
	l := normalize(s)
	for _, p := range levelPriority {
		if strings.Contains(l, p.keyword) {
			return p.level
		}
	}
	return LevelUnknown
}

// MatchExperience scores total years of experience against the level.
func MatchExperience(records []ExperienceRecord, level string, now time.Time) ExperienceMatch {
	years := TotalYears(records, now)
	lvl := ParseLevel(level)
	return ExperienceMatch{
		Score: clamp(levelScore(lvl, years)),
		Years: years,
		Level: lvl,
	}
}

func levelScore(lvl Level, years float64) float64 {
	switch lvl {
	case LevelEntry:
		if years <= 2 {
			return 1
		}
		return 0.8
	case LevelMid:
		switch {
		case years < 2:
			return 0.4
		case years <= 5:
			return 1
		default:
			return 0.8
		}
	case LevelSenior:
		switch {
		case years < 3:
			return 0.2
		case years < 5:
			return 0.6
		default:
			return 1
		}
	default:
		return neutralExperienceScore
	}
}

// TotalYears sums the duration of every record in 365-day years. Current
// roles and roles without an end date run until now. Records with an
// unparsable start or a negative span add nothing.
func TotalYears(records []ExperienceRecord, now time.Time) float64 {
	var total time.Duration
	for _, r := range records {
		start, ok := parseDate(r.StartDate)
		if !ok {
			continue
		}

		end := now
		if !r.IsCurrent && strings.TrimSpace(r.EndDate) != "" {
			parsed, ok := parseDate(r.EndDate)
			if !ok {
				continue
			}
			end = parsed
		}

		if d := end.Sub(start); d > 0 {
			total += d
		}
	}
	return total.Hours() / 24 / daysPerYear
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
