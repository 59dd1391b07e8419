package headhunter

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/hh-matcher/internal/matching"
)

// resumeDocument is the part of the resume representation used for matching.
type resumeDocument struct {
	Title             string   `json:"title"`
	SkillSet          []string `json:"skill_set"`
	ProfessionalRoles []IDName `json:"professional_roles"`
	Education         struct {
		Level   IDName `json:"level"`
		Primary []struct {
			Name         string `json:"name"`
			Organization string `json:"organization"`
			Result       string `json:"result"`
			Year         int    `json:"year"`
		} `json:"primary"`
	} `json:"education"`
	Experience []struct {
		Start    string  `json:"start"`
		End      *string `json:"end"`
		Company  string  `json:"company"`
		Position string  `json:"position"`
	} `json:"experience"`
}

// Degree names for hh.ru education level ids. The names are chosen so that
// they are found in the degree table of the matcher.
var educationDegrees = map[string]string{
	"secondary":         "High School",
	"special_secondary": "High School",
	"unfinished_higher": "Associate",
	"higher":            "Bachelor",
	"bachelor":          "Bachelor",
	"master":            "Master",
	"candidate":         "PhD",
	"doctor":            "Doctorate",
}

// ToProfile converts resume details to a candidate profile. Resume title and
// professional roles are used as interests.
func (r *ResumeDetails) ToProfile() (matching.CandidateProfile, error) {
	var doc resumeDocument

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return matching.CandidateProfile{}, err
	}
	if err := decoder.Decode(r.Raw); err != nil {
		return matching.CandidateProfile{}, fmt.Errorf("decoding resume %s: %w", r.ID, err)
	}

	profile := matching.CandidateProfile{
		Skills:     []string{},
		Interests:  []string{},
		Education:  []matching.EducationRecord{},
		Experience: []matching.ExperienceRecord{},
	}

	for _, s := range doc.SkillSet {
		if s = strings.TrimSpace(s); s != "" {
			profile.Skills = append(profile.Skills, s)
		}
	}

	if title := strings.TrimSpace(doc.Title); title != "" {
		profile.Interests = append(profile.Interests, title)
	}
	for _, role := range doc.ProfessionalRoles {
		if name := strings.TrimSpace(role.Name); name != "" {
			profile.Interests = append(profile.Interests, name)
		}
	}

	degree := educationDegrees[doc.Education.Level.ID]
	for _, e := range doc.Education.Primary {
		record := matching.EducationRecord{
			Institution: e.Name,
			Degree:      degree,
			Field:       e.Result,
		}
		if record.Field == "" {
			record.Field = e.Organization
		}
		if e.Year > 0 {
			year := e.Year
			record.EndYear = &year
		}
		profile.Education = append(profile.Education, record)
	}
	if len(profile.Education) == 0 && degree != "" {
		profile.Education = append(profile.Education, matching.EducationRecord{Degree: degree})
	}

	for _, e := range doc.Experience {
		record := matching.ExperienceRecord{
			Company:   e.Company,
			Position:  e.Position,
			StartDate: e.Start,
			IsCurrent: e.End == nil || *e.End == "",
		}
		if !record.IsCurrent {
			record.EndDate = *e.End
		}
		profile.Experience = append(profile.Experience, record)
	}

	return profile, nil
}
