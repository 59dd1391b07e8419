package headhunter

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/spigell/hh-matcher/internal/matching"
	"github.com/spigell/hh-matcher/internal/utils"
)

// hh.ru experience dictionary ids.
const (
	ExperienceNone       = "noExperience"
	ExperienceBetween1_3 = "between1And3"
	ExperienceBetween3_6 = "between3And6"
	ExperienceMoreThan6  = "moreThan6"
)

var experienceLevels = map[string]matching.Level{
	ExperienceNone:       matching.LevelEntry,
	ExperienceBetween1_3: matching.LevelMid,
	ExperienceBetween3_6: matching.LevelSenior,
	ExperienceMoreThan6:  matching.LevelSenior,
}

// ToPosting converts a vacancy to a posting. Key skills become required
// skills, HTML is stripped from the description and the snippet.
func (va *Vacancy) ToPosting() matching.Posting {
	requirement := htmlText(va.Snippet.Requirement)
	description := htmlText(va.Description)
	if description == "" {
		description = utils.JoinNonEmpty(" ", requirement, htmlText(va.Snippet.Responsibility))
	}

	var requirements []string
	if requirement != "" {
		requirements = append(requirements, requirement)
	}
	if description != "" && description != requirement {
		requirements = append(requirements, description)
	}

	skills := make([]string, 0, len(va.KeySkills))
	for _, s := range va.KeySkills {
		if name := strings.TrimSpace(s.Name); name != "" {
			skills = append(skills, name)
		}
	}

	return matching.Posting{
		ID:              va.ID,
		Title:           va.Name,
		Company:         va.Employer.Name,
		Description:     description,
		RequiredSkills:  skills,
		Requirements:    requirements,
		ExperienceLevel: string(experienceLevels[va.Experience.ID]),
	}
}

func (v *Vacancies) ToPostings() []matching.Posting {
	postings := make([]matching.Posting, 0, len(v.Items))
	for _, vacancy := range v.Items {
		postings = append(postings, vacancy.ToPosting())
	}
	return postings
}

func htmlText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}

	// Tags are separated by spaces so that text of adjacent blocks does not stick together.
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(strings.ReplaceAll(s, "<", " <")))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}

	return strings.Join(strings.Fields(doc.Text()), " ")
}
