package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func TestMatchExperienceCurrentRoleEntryLevel(t *testing.T) {
	records := []ExperienceRecord{{
		Company:   "Acme",
		Position:  "Intern",
		StartDate: fixedNow.AddDate(-1, 0, 0).Format(time.RFC3339),
		IsCurrent: true,
	}}

	got := MatchExperience(records, "Entry Level", fixedNow)
	assert.InDelta(t, 1, got.Years, 0.01)
	assert.Equal(t, LevelEntry, got.Level)
	assert.InDelta(t, 1, got.Score, 1e-9)
}

func TestMatchExperienceCompletedSixYearsSenior(t *testing.T) {
	records := []ExperienceRecord{{
		Company:   "Globex",
		StartDate: "2015-03-01",
		EndDate:   "2021-03-01",
	}}

	got := MatchExperience(records, "Senior", fixedNow)
	assert.GreaterOrEqual(t, got.Years, 6.0)
	assert.InDelta(t, 1, got.Score, 1e-9)
}

func TestLevelScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level Level
		years float64
		want  float64
	}{
		{LevelEntry, 0, 1},
		{LevelEntry, 2, 1},
		{LevelEntry, 2.1, 0.8},
		{LevelMid, 1.9, 0.4},
		{LevelMid, 2, 1},
		{LevelMid, 5, 1},
		{LevelMid, 5.5, 0.8},
		{LevelSenior, 2.9, 0.2},
		{LevelSenior, 3, 0.6},
		{LevelSenior, 4.9, 0.6},
		{LevelSenior, 5, 1},
		{LevelUnknown, 10, 0.5},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, levelScore(tt.level, tt.years), 1e-9, "%s at %.1f years", tt.level, tt.years)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]Level{
		"Entry Level":                      LevelEntry,
		"ENTRY":                            LevelEntry,
		"Mid-level":                        LevelMid,
		"Senior":                           LevelSenior,
		"Senior-preferred, Mid acceptable": LevelSenior,
		"Mid or Entry":                     LevelMid,
		"Internship":                       LevelUnknown,
		"":                                 LevelUnknown,
	}

	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestTotalYearsFailsSoft(t *testing.T) {
	t.Parallel()

	records := []ExperienceRecord{
		{StartDate: "not a date", EndDate: "2020-01-01"},
		{StartDate: "2020-01-01", EndDate: "garbage"},
		{StartDate: "2022-01-01", EndDate: "2021-01-01"},
		{StartDate: ""},
	}

	assert.Zero(t, TotalYears(records, fixedNow))
}

func TestTotalYearsCurrentIgnoresEndDate(t *testing.T) {
	t.Parallel()

	current := []ExperienceRecord{{StartDate: "2023-06-15", EndDate: "2023-07-15", IsCurrent: true}}
	open := []ExperienceRecord{{StartDate: "2023-06-15"}}

	assert.InDelta(t, 2, TotalYears(current, fixedNow), 0.01)
	assert.InDelta(t, TotalYears(current, fixedNow), TotalYears(open, fixedNow), 1e-9)
}

func TestTotalYearsSumsRecords(t *testing.T) {
	t.Parallel()

	records := []ExperienceRecord{
		{StartDate: "2019-01", EndDate: "2020-01"},
		{StartDate: "2021", EndDate: "2022"},
	}

	assert.InDelta(t, 2, TotalYears(records, fixedNow), 0.01)
}

func TestMatchExperienceWithoutRecords(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.2, MatchExperience(nil, "Senior Engineer", fixedNow).Score, 1e-9)
	assert.InDelta(t, 1, MatchExperience(nil, "entry", fixedNow).Score, 1e-9)
	assert.InDelta(t, 0.5, MatchExperience(nil, "Lead", fixedNow).Score, 1e-9)
}
