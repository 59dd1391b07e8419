package filtering

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spigell/hh-matcher/internal/matching"
)

// Exclusions is the content of the exclude file.
type Exclusions struct {
	Items []*Exclusion
}

type Exclusion struct {
	ID         string
	Title      string
	Company    string
	ExcludedAt time.Time
}

// ReadExclusions reads the exclude file. A missing or empty file holds no exclusions.
func ReadExclusions(path string) (*Exclusions, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Exclusions{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &Exclusions{}, nil
	}

	var exclusions Exclusions
	if err := json.NewDecoder(file).Decode(&exclusions); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &exclusions, nil
}

// ExclusionsFromResults builds exclusions for the given results.
func ExclusionsFromResults(results []matching.MatchResult, now time.Time) *Exclusions {
	exclusions := &Exclusions{Items: make([]*Exclusion, 0, len(results))}
	for _, r := range results {
		exclusions.Items = append(exclusions.Items, &Exclusion{
			ID:         r.Posting.ID,
			Title:      r.Posting.Title,
			Company:    r.Posting.Company,
			ExcludedAt: now.UTC(),
		})
	}
	return exclusions
}

// Append adds exclusions whose ids are not present yet.
func (e *Exclusions) Append(other *Exclusions) int {
	seen := make(map[string]struct{}, len(e.Items))
	for _, item := range e.Items {
		seen[item.ID] = struct{}{}
	}

	added := 0
	for _, item := range other.Items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		e.Items = append(e.Items, item)
		added++
	}
	return added
}

func (e *Exclusions) IDs() []string {
	ids := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

func (e *Exclusions) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// AppendToFile adds results to the exclude file and returns how many were new.
func AppendToFile(path string, results []matching.MatchResult, now time.Time) (int, error) {
	exclusions, err := ReadExclusions(path)
	if err != nil {
		return 0, err
	}

	added := exclusions.Append(ExclusionsFromResults(results, now))
	if err := exclusions.ToFile(path); err != nil {
		return 0, fmt.Errorf("writing exclude file: %w", err)
	}
	return added, nil
}
