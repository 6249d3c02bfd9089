// Package validation checks generation-service output against stage JSON
// Schemas before any of it is decoded into pipeline types. A response that
// fails here is rejected at the boundary, never forwarded partially shaped.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schema is a compiled JSON Schema safe for concurrent use.
type Schema struct {
	schema *gojsonschema.Schema
}

// MustCompile compiles a schema document and panics on error. Stage schemas
// are package constants, so a failure here is a programming mistake.
func MustCompile(schemaJSON string) *Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		panic(fmt.Sprintf("invalid stage schema: %v", err))
	}
	return &Schema{schema: s}
}

// Validate checks a raw JSON document against the schema. The returned error
// lists every violated constraint.
func (s *Schema) Validate(doc []byte) error {
	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	return fmt.Errorf("schema violation: %s", strings.Join(msgs, "; "))
}
