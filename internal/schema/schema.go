// Package schema validates raw call-log payloads against the upstream record
// contract. The decoding pipeline is deliberately lenient; this package is
// the strict counterpart for diagnosing a misbehaving upstream.
package schema

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed calllog.schema.json
var schemaJSON []byte

// Violation is one failed record.
type Violation struct {
	Index  int    `json:"index"`
	Detail string `json:"detail"`
}

// Validator checks call-log records against the embedded JSON schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("decoding embedded schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("calllog.schema.json", doc); err != nil {
		return nil, fmt.Errorf("registering schema: %w", err)
	}
	schema, err := compiler.Compile("calllog.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// Check validates a raw API response body. It accepts the same shapes the
// client does (bare array or data envelope) and returns one violation per
// failing record. A body that is not valid JSON at all is an error, not a
// violation.
func (v *Validator) Check(body []byte) ([]Violation, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}

	records, err := extractRecords(doc)
	if err != nil {
		return nil, err
	}

	var violations []Violation
	for i, record := range records {
		if err := v.schema.Validate(record); err != nil {
			violations = append(violations, Violation{Index: i, Detail: err.Error()})
		}
	}
	return violations, nil
}

func extractRecords(doc any) ([]any, error) {
	switch d := doc.(type) {
	case []any:
		return d, nil
	case map[string]any:
		if data, ok := d["data"].([]any); ok {
			return data, nil
		}
		return nil, fmt.Errorf("response object has no data array")
	default:
		return nil, fmt.Errorf("response is neither an array nor an object")
	}
}
