package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spigell/hh-matcher/internal/matching"
)

var stdout io.Writer = os.Stdout

func emit(w io.Writer, output string, results []matching.MatchResult) error {
	if output == outputJSON {
		if results == nil {
			results = []matching.MatchResult{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	return printRanking(w, results)
}

func printRanking(w io.Writer, results []matching.MatchResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "#\tMATCH\tID\tTITLE\tCOMPANY\tREASON")
	for i, r := range results {
		fmt.Fprintf(tw, "%d\t%d%%\t%s\t%s\t%s\t%s\n",
			i+1, r.MatchPercentage, r.Posting.ID, r.Posting.Title, r.Posting.Company, r.RecommendationReason,
		)
	}

	return tw.Flush()
}

func printDetails(w io.Writer, r matching.MatchResult) {
	fmt.Fprintf(w, "%s (%s)\n", r.Posting.Title, r.Posting.Company)
	fmt.Fprintf(w, "  id:       %s\n", r.Posting.ID)
	fmt.Fprintf(w, "  match:    %d%% (%.4f)\n", r.MatchPercentage, r.MatchScore)
	if c := r.Components; c != nil {
		fmt.Fprintf(w, "  skill %.2f, interest %.2f, education %.2f, experience %.2f\n",
			c.Skill, c.Interest, c.Education, c.Experience)
	}
	fmt.Fprintf(w, "  matched:  %s\n", orNone(r.MatchedSkills))
	fmt.Fprintf(w, "  missing:  %s\n", orNone(r.MissingSkills))
	if r.Posting.ExperienceLevel != "" {
		fmt.Fprintf(w, "  level:    %s\n", r.Posting.ExperienceLevel)
	}
	fmt.Fprintf(w, "  reason:   %s\n", r.RecommendationReason)
}

func orNone(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
