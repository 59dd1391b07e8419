package matching

import (
	"fmt"
	"strings"
)

// Component names the sub-score that dominates a match.
type Component string

const (
	ComponentSkill      Component = "skill"
	ComponentInterest   Component = "interest"
	ComponentEducation  Component = "education"
	ComponentExperience Component = "experience"
	ComponentNone       Component = "none"
)

const maxNamedItems = 2

const noOverlapReason = "This posting has little overlap with your current profile."

// Dominant returns the strictly greatest component. Ties go to the one that
// comes first in skill, interest, education, experience order. ComponentNone
// is returned when every component is zero.
func Dominant(cs ComponentScores) Component {
	ordered := []struct {
		c     Component
		score float64
	}{
		{ComponentSkill, cs.Skill},
		{ComponentInterest, cs.Interest},
		{ComponentEducation, cs.Education},
		{ComponentExperience, cs.Experience},
	}

	best := ComponentNone
	bestScore := 0.0
	for _, o := range ordered {
		if o.score > bestScore {
			best, bestScore = o.c, o.score
		}
	}
	return best
}

// Explain formats a one-sentence reason from already computed values.
func Explain(b Breakdown) string {
	switch Dominant(b.Components()) {
	case ComponentSkill:
		if len(b.Skill.Contributing) == 0 {
			return "Your skills overlap with what this role requires."
		}
		return fmt.Sprintf("Your skills in %s match what this role requires.", joinTop(b.Skill.Contributing))
	case ComponentInterest:
		if len(b.Interest.Matched) == 0 {
			return "This role lines up with your interests."
		}
		return fmt.Sprintf("This role aligns with your interest in %s.", joinTop(b.Interest.Matched))
	case ComponentEducation:
		return educationReason(b.Education)
	case ComponentExperience:
		return experienceReason(b.Experience)
	default:
		return noOverlapReason
	}
}

func educationReason(m EducationMatch) string {
	switch {
	case m.Degree != "" && m.Field != "":
		return fmt.Sprintf("Your %s in %s fits the education requirements.", m.Degree, m.Field)
	case m.Degree != "":
		return fmt.Sprintf("Your %s fits the education requirements.", m.Degree)
	case m.Field != "":
		return fmt.Sprintf("Your background in %s fits the education requirements.", m.Field)
	default:
		return "Your education fits the requirements of this role."
	}
}

func experienceReason(m ExperienceMatch) string {
	years := formatYears(m.Years)
	if m.Level == LevelUnknown {
		return fmt.Sprintf("With %s of experience, you are a reasonable fit for this role.", years)
	}
	return fmt.Sprintf("With %s of experience, you suit this %s-level role.", years, m.Level)
}

func formatYears(y float64) string {
	switch {
	case y < 1:
		return "under a year"
	case y < 1.05:
		return "1 year"
	default:
		return fmt.Sprintf("%.1f years", y)
	}
}

func joinTop(items []string) string {
	if len(items) > maxNamedItems {
		items = items[:maxNamedItems]
	}
	return strings.Join(items, " and ")
}
