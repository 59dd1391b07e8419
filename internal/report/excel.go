package report

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/spigell/hh-matcher/internal/matching"
)

const (
	rankingSheet = "Ranking"
	summarySheet = "Summary"
)

var rankingHeaders = []string{
	"Rank", "Title", "Company", "Match %", "Skill", "Interest", "Education", "Experience",
	"Matched skills", "Missing skills", "Reason",
}

// Score bands and their fill colours.
var bands = []struct {
	name    string
	minimum int
	color   string
}{
	{"Strong (75-100)", 75, "C6EFCE"},
	{"Good (50-74)", 50, "FFEB9C"},
	{"Weak (25-49)", 25, "FFC7CE"},
	{"Poor (<25)", 0, "FF9999"},
}

func bandIndex(percentage int) int {
	for i, b := range bands {
		if percentage >= b.minimum {
			return i
		}
	}
	return len(bands) - 1
}

// ExportXLSX writes results to a workbook at path and returns the final path.
// The .xlsx suffix is added when missing.
func ExportXLSX(results []matching.MatchResult, path string) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	path = filepath.Clean(path)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rankingSheet); err != nil {
		return "", err
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return "", err
	}

	if err := writeRanking(f, results); err != nil {
		return "", fmt.Errorf("writing ranking sheet: %w", err)
	}
	if err := writeSummary(f, results); err != nil {
		return "", fmt.Errorf("writing summary sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving workbook: %w", err)
	}
	return path, nil
}

func border() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border(),
	})
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func writeRanking(f *excelize.File, results []matching.MatchResult) error {
	header, err := headerStyle(f)
	if err != nil {
		return err
	}

	bandStyles := make([]int, len(bands))
	for i, b := range bands {
		bandStyles[i], err = f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{b.color}, Pattern: 1},
			Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
			Border:    border(),
		})
		if err != nil {
			return err
		}
	}

	headers := make([]interface{}, len(rankingHeaders))
	for i, h := range rankingHeaders {
		headers[i] = h
	}
	if err := setRow(f, rankingSheet, 1, headers); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(rankingHeaders))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(rankingSheet, "A1", lastCol+"1", header); err != nil {
		return err
	}

	for i, r := range results {
		row := i + 2
		var cs matching.ComponentScores
		if r.Components != nil {
			cs = *r.Components
		}

		values := []interface{}{
			i + 1, r.Posting.Title, r.Posting.Company, r.MatchPercentage,
			round2(cs.Skill), round2(cs.Interest), round2(cs.Education), round2(cs.Experience),
			strings.Join(r.MatchedSkills, ", "), strings.Join(r.MissingSkills, ", "), r.RecommendationReason,
		}
		if err := setRow(f, rankingSheet, row, values); err != nil {
			return err
		}

		style := bandStyles[bandIndex(r.MatchPercentage)]
		if err := f.SetCellStyle(rankingSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), style); err != nil {
			return err
		}
	}

	widths := map[string]float64{"A": 6, "B": 36, "C": 24, "D": 9, "I": 30, "J": 30, "K": 60}
	for col, width := range widths {
		if err := f.SetColWidth(rankingSheet, col, col, width); err != nil {
			return err
		}
	}

	if len(results) > 0 {
		if err := f.AutoFilter(rankingSheet, fmt.Sprintf("A1:%s%d", lastCol, len(results)+1), []excelize.AutoFilterOptions{}); err != nil {
			return err
		}
	}

	return f.SetPanes(rankingSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeSummary(f *excelize.File, results []matching.MatchResult) error {
	header, err := headerStyle(f)
	if err != nil {
		return err
	}

	counts := make([]int, len(bands))
	total := 0
	for _, r := range results {
		counts[bandIndex(r.MatchPercentage)]++
		total += r.MatchPercentage
	}

	rows := [][]interface{}{
		{"Band", "Postings"},
	}
	for i, b := range bands {
		rows = append(rows, []interface{}{b.name, counts[i]})
	}
	rows = append(rows, []interface{}{"Total", len(results)})
	if len(results) > 0 {
		rows = append(rows, []interface{}{"Average match %", round2(float64(total) / float64(len(results)))})
	}

	for i, values := range rows {
		if err := setRow(f, summarySheet, i+1, values); err != nil {
			return err
		}
	}

	if err := f.SetCellStyle(summarySheet, "A1", "B1", header); err != nil {
		return err
	}
	return f.SetColWidth(summarySheet, "A", "A", 24)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
