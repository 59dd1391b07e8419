// Package profile loads candidate profiles from YAML or JSON documents.
package profile

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/spigell/hh-matcher/internal/matching"
)

// ValidationError is returned when a profile document is well formed but
// violates field constraints.
type ValidationError struct {
	Source string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("profile %s is invalid: %v", e.Source, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

type document struct {
	Skills     []string           `json:"skills"`
	Interests  []string           `json:"interests"`
	Education  []educationRecord  `json:"education" validate:"dive"`
	Experience []experienceRecord `json:"experience" validate:"dive"`
}

type educationRecord struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree" validate:"required"`
	Field       string `json:"field"`
	StartYear   int    `json:"startYear" validate:"omitempty,gte=1900,lte=2100"`
	EndYear     *int   `json:"endYear" validate:"omitempty,gte=1900,lte=2100"`
}

type experienceRecord struct {
	Company   string `json:"company" validate:"required"`
	Position  string `json:"position"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	IsCurrent bool   `json:"isCurrent"`
}

// Load reads a profile from path. The format is picked by the file extension.
func Load(path string) (matching.CandidateProfile, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return matching.CandidateProfile{}, fmt.Errorf("reading profile %s: %w", path, err)
	}

	return decode(path, v.AllSettings())
}

func decode(source string, raw map[string]any) (matching.CandidateProfile, error) {
	var doc document

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(timeToDateHook),
	})
	if err != nil {
		return matching.CandidateProfile{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return matching.CandidateProfile{}, fmt.Errorf("decoding profile %s: %w", source, err)
	}

	if err := validator.New().Struct(doc); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return matching.CandidateProfile{}, err
		}
		return matching.CandidateProfile{}, &ValidationError{Source: source, Err: err}
	}

	return doc.toProfile(), nil
}

// timeToDateHook keeps unquoted YAML dates as text. The YAML parser turns
// them into time.Time while profile dates are strings.
func timeToDateHook(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	tm, ok := data.(time.Time)
	if !ok || to.Kind() != reflect.String {
		return data, nil
	}
	return tm.Format(time.DateOnly), nil
}

func (d document) toProfile() matching.CandidateProfile {
	p := matching.CandidateProfile{
		Skills:     append([]string{}, d.Skills...),
		Interests:  append([]string{}, d.Interests...),
		Education:  make([]matching.EducationRecord, 0, len(d.Education)),
		Experience: make([]matching.ExperienceRecord, 0, len(d.Experience)),
	}

	for _, e := range d.Education {
		p.Education = append(p.Education, matching.EducationRecord{
			Institution: e.Institution,
			Degree:      e.Degree,
			Field:       e.Field,
			StartYear:   e.StartYear,
			EndYear:     e.EndYear,
		})
	}

	for _, e := range d.Experience {
		p.Experience = append(p.Experience, matching.ExperienceRecord{
			Company:   e.Company,
			Position:  e.Position,
			StartDate: e.StartDate,
			EndDate:   e.EndDate,
			IsCurrent: e.IsCurrent,
		})
	}

	return p
}
