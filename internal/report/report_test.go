package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/spigell/hh-matcher/internal/matching"
)

func sampleResults() []matching.MatchResult {
	return []matching.MatchResult{
		{
			Posting:              matching.Posting{ID: "1", Title: "Go Developer", Company: "Acme"},
			MatchScore:           0.82,
			MatchPercentage:      82,
			MatchedSkills:        []string{"Go", "SQL"},
			MissingSkills:        []string{"Kafka"},
			RecommendationReason: "Your skills in Go and SQL match what this role requires.",
			Components:           &matching.ComponentScores{Skill: 0.667, Interest: 1, Education: 1, Experience: 1},
		},
		{
			Posting:         matching.Posting{ID: "2", Title: "SRE", Company: "Globex"},
			MatchScore:      0.55,
			MatchPercentage: 55,
		},
		{
			Posting:         matching.Posting{ID: "3", Title: "Support", Company: " Acme "},
			MatchScore:      0.3,
			MatchPercentage: 30,
		},
		{
			Posting:         matching.Posting{ID: "4", Title: "Intern"},
			MatchScore:      0.1,
			MatchPercentage: 10,
		},
	}
}

func TestByCompany(t *testing.T) {
	report := ByCompany(sampleResults())

	acme := report["Acme"]
	if len(acme) != 2 || acme[0].ID != "1" || acme[1].ID != "3" {
		t.Fatalf("unexpected Acme entries %+v", acme)
	}
	if acme[0].Percentage != 82 || acme[0].Reason == "" {
		t.Fatalf("unexpected first entry %+v", acme[0])
	}
	if len(report[unknownCompany]) != 1 {
		t.Fatalf("expected posting without company under %q", unknownCompany)
	}

	if names := report.Names(); !reflect.DeepEqual(names, []string{"Acme", "Globex", unknownCompany}) {
		t.Fatalf("unexpected company order %v", names)
	}
}

func TestDumpToTmpFile(t *testing.T) {
	path, err := DumpToTmpFile(sampleResults())
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	t.Cleanup(func() { os.Remove(path) })

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var got []matching.MatchResult
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("dump is not valid JSON: %v", err)
	}
	if len(got) != 4 || got[0].Posting.ID != "1" || got[0].MatchPercentage != 82 {
		t.Fatalf("unexpected dump content %+v", got)
	}
}

func TestExportXLSX(t *testing.T) {
	path, err := ExportXLSX(sampleResults(), filepath.Join(t.TempDir(), "ranking"))
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.HasSuffix(path, ".xlsx") {
		t.Fatalf("expected .xlsx suffix, got %s", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	cells := map[string]string{
		"A1": "Rank",
		"K1": "Reason",
		"A2": "1",
		"B2": "Go Developer",
		"D2": "82",
		"E2": "0.67",
		"I2": "Go, SQL",
		"J2": "Kafka",
		"B5": "Intern",
	}
	for cell, want := range cells {
		got, err := f.GetCellValue(rankingSheet, cell)
		if err != nil {
			t.Fatalf("read %s: %v", cell, err)
		}
		if got != want {
			t.Fatalf("cell %s: got %q, want %q", cell, got, want)
		}
	}

	rows, err := f.GetRows(summarySheet)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	want := [][]string{
		{"Band", "Postings"},
		{"Strong (75-100)", "1"},
		{"Good (50-74)", "1"},
		{"Weak (25-49)", "1"},
		{"Poor (<25)", "1"},
		{"Total", "4"},
		{"Average match %", "44.25"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("unexpected summary %v", rows)
	}
}

func TestExportXLSXEmpty(t *testing.T) {
	path, err := ExportXLSX(nil, filepath.Join(t.TempDir(), "empty.XLSX"))
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if strings.HasSuffix(path, ".xlsx.xlsx") || strings.HasSuffix(path, ".XLSX.xlsx") {
		t.Fatalf("unexpected double suffix %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("workbook not created: %v", err)
	}
}
