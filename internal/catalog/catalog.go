// Package catalog provides sources of postings for the ranking engine.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/spigell/hh-matcher/internal/matching"
)

var ErrDuplicatePosting = errors.New("duplicate posting id")

// postingNamespace scopes ids generated for postings without one.
var postingNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/spigell/hh-matcher/postings"))

// FieldError is a single schema violation.
type FieldError struct {
	Field   string
	Message string
}

// SchemaError lists schema violations of a catalog document.
type SchemaError struct {
	Errors []FieldError
}

func (e *SchemaError) Error() string {
	var sb strings.Builder
	sb.WriteString("catalog does not match schema:")
	for _, fe := range e.Errors {
		sb.WriteString(fmt.Sprintf(" %s: %s;", fe.Field, fe.Message))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// Static serves a fixed list of postings.
type Static []matching.Posting

// NewStatic returns a catalog of the given postings with ids assigned the
// same way as for a catalog file.
func NewStatic(postings []matching.Posting) (Static, error) {
	out := make(Static, len(postings))
	copy(out, postings)

	if err := assignIDs(out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s Static) Postings(context.Context) ([]matching.Posting, error) {
	out := make([]matching.Posting, len(s))
	copy(out, s)
	return out, nil
}

// assignIDs trims ids and derives missing ones from title, company and
// description. Postings with equal content are told apart by their
// occurrence number.
func assignIDs(postings []matching.Posting) error {
	occurrences := make(map[string]int)
	for i := range postings {
		postings[i].ID = strings.TrimSpace(postings[i].ID)
		if postings[i].ID != "" {
			continue
		}

		content := strings.Join([]string{postings[i].Title, postings[i].Company, postings[i].Description}, "\x00")
		key := content
		if n := occurrences[content]; n > 0 {
			key += "\x00" + strconv.Itoa(n)
		}
		occurrences[content]++

		postings[i].ID = uuid.NewSHA1(postingNamespace, []byte(key)).String()
	}

	return checkUnique(postings)
}

func checkUnique(postings []matching.Posting) error {
	seen := make(map[string]struct{}, len(postings))
	for _, p := range postings {
		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicatePosting, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}
