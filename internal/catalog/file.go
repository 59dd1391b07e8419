package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"

	"github.com/spigell/hh-matcher/internal/matching"
)

//go:embed schema.json
var schema string

// File reads postings from a JSON document. The document is either an
// array of postings or an object with a "postings" array.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Postings(ctx context.Context) ([]matching.Posting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	postings, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", f.path, err)
	}

	return postings, nil
}

// Parse validates and decodes a catalog document. Postings without an id
// get one derived from their content, so it is the same on every load.
func Parse(data []byte) ([]matching.Posting, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	var postings []matching.Posting
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &postings); err != nil {
			return nil, err
		}
	} else {
		var doc struct {
			Postings []matching.Posting `json:"postings"`
		}
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, err
		}
		postings = doc.Postings
	}

	if postings == nil {
		postings = []matching.Posting{}
	}

	if err := assignIDs(postings); err != nil {
		return nil, err
	}

	return postings, nil
}

func validate(data []byte) error {
	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(schema), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("parsing catalog: %w", err)
	}

	if result.Valid() {
		return nil
	}

	schemaErr := &SchemaError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		schemaErr.Errors = append(schemaErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return schemaErr
}
