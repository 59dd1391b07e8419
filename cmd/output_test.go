package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spigell/hh-matcher/internal/matching"
)

func testResults() []matching.MatchResult {
	return []matching.MatchResult{
		{
			Posting:              matching.Posting{ID: "p1", Title: "Go Developer", Company: "Acme", ExperienceLevel: "Mid"},
			MatchScore:           0.6667,
			MatchPercentage:      67,
			MatchedSkills:        []string{"Go"},
			MissingSkills:        []string{"Kafka"},
			RecommendationReason: "Your skills in Go match the requirements.",
			Components:           &matching.ComponentScores{Skill: 0.5, Interest: 1},
		},
		{
			Posting:              matching.Posting{ID: "p2", Title: "Analyst", Company: "Beta"},
			MatchPercentage:      12,
			RecommendationReason: "This role may help you grow.",
		},
	}
}

func TestEmitJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := emit(&buf, outputJSON, nil); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Fatalf("empty ranking must be an empty array, got %q", got)
	}

	buf.Reset()
	if err := emit(&buf, outputJSON, testResults()); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"matchPercentage": 67`, `"requiredSkills"`, `"componentScores"`} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("expected %s in %s", want, buf.String())
		}
	}
}

func TestEmitText(t *testing.T) {
	var buf bytes.Buffer
	if err := emit(&buf, outputText, testResults()); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two rows, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "#") || !strings.Contains(lines[0], "MATCH") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1") || !strings.Contains(lines[1], "67%") || !strings.Contains(lines[1], "Acme") {
		t.Fatalf("unexpected first row %q", lines[1])
	}
}

func TestPrintDetails(t *testing.T) {
	results := testResults()

	var buf bytes.Buffer
	printDetails(&buf, results[0])
	out := buf.String()
	for _, want := range []string{"Go Developer (Acme)", "67% (0.6667)", "skill 0.50", "missing:  Kafka", "level:    Mid"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %s", want, out)
		}
	}

	buf.Reset()
	printDetails(&buf, results[1])
	out = buf.String()
	if strings.Contains(out, "skill ") || strings.Contains(out, "level:") {
		t.Fatalf("absent components and level must be skipped: %s", out)
	}
	if !strings.Contains(out, "matched:  -") {
		t.Fatalf("empty skills must print a dash: %s", out)
	}
}
