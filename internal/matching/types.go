package matching

import (
	"context"
	"errors"
)

// ErrInvalidInput is returned when the caller breaks the ranking contract.
var ErrInvalidInput = errors.New("invalid input")

// CandidateProfile is a snapshot of the job seeker taken at scoring time.
type CandidateProfile struct {
	Skills     []string           `json:"skills"`
	Interests  []string           `json:"interests"`
	Education  []EducationRecord  `json:"education"`
	Experience []ExperienceRecord `json:"experience"`
}

type EducationRecord struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartYear   int    `json:"startYear,omitempty"`
	EndYear     *int   `json:"endYear,omitempty"`
}

// ExperienceRecord keeps dates as text; they are parsed while scoring and
// an unparsable start date contributes nothing.
type ExperienceRecord struct {
	Company   string `json:"company"`
	Position  string `json:"position"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate,omitempty"`
	IsCurrent bool   `json:"isCurrent"`
}

// Posting is a job or internship listing supplied by a catalog.
type Posting struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Description     string   `json:"description"`
	RequiredSkills  []string `json:"requiredSkills"`
	Requirements    []string `json:"requirements"`
	ExperienceLevel string   `json:"experienceLevel"`
}

// MatchResult is recomputed for every request and never stored by the engine.
type MatchResult struct {
	Posting              Posting          `json:"posting"`
	MatchScore           float64          `json:"matchScore"`
	MatchPercentage      int              `json:"matchPercentage"`
	MatchedSkills        []string         `json:"matchedSkills"`
	MissingSkills        []string         `json:"missingSkills"`
	RecommendationReason string           `json:"recommendationReason"`
	Components           *ComponentScores `json:"componentScores,omitempty"`
}

// ComponentScores are the four clamped sub-scores that feed the aggregate.
type ComponentScores struct {
	Skill      float64 `json:"skill"`
	Interest   float64 `json:"interest"`
	Education  float64 `json:"education"`
	Experience float64 `json:"experience"`
}

// PostingRepository supplies the catalog the engine ranks against.
type PostingRepository interface {
	Postings(ctx context.Context) ([]Posting, error)
}
