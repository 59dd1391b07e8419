// Package report renders ranked results for people: grouped by company,
// dumped as JSON, or exported to a workbook.
package report

import (
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/spigell/hh-matcher/internal/matching"
)

const unknownCompany = "(unknown company)"

// Entry is one posting in a company report.
type Entry struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Percentage int    `json:"match_percentage"`
	Reason     string `json:"reason"`
}

// Companies maps a company name to its postings in ranking order.
type Companies map[string][]Entry

// ByCompany groups results by company keeping the ranking order inside each group.
func ByCompany(results []matching.MatchResult) Companies {
	report := make(Companies)
	for _, r := range results {
		company := strings.TrimSpace(r.Posting.Company)
		if company == "" {
			company = unknownCompany
		}
		report[company] = append(report[company], Entry{
			ID:         r.Posting.ID,
			Title:      r.Posting.Title,
			Percentage: r.MatchPercentage,
			Reason:     r.RecommendationReason,
		})
	}
	return report
}

// Names returns company names ordered by their best match, then by name.
func (c Companies) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		bi, bj := c[names[i]][0].Percentage, c[names[j]][0].Percentage
		if bi != bj {
			return bi > bj
		}
		return names[i] < names[j]
	})
	return names
}

// DumpToTmpFile writes results as indented JSON to a new temporary file and returns its name.
func DumpToTmpFile(results []matching.MatchResult) (string, error) {
	file, err := os.CreateTemp("", "ranking_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return "", err
	}
	return file.Name(), nil
}
