package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "validate-test",
		Description: "test schema",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"topics": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"maxItems": 2,
				},
			},
			"required":             []any{"topics"},
			"additionalProperties": false,
		},
	}
}

func TestValidateResponse_Valid(t *testing.T) {
	err := validateResponse(testSchema(), json.RawMessage(`{"topics":["Bitcoin","AI"]}`))
	if err != nil {
		t.Fatalf("expected valid response, got %v", err)
	}
}

func TestValidateResponse_InvalidJSON(t *testing.T) {
	err := validateResponse(testSchema(), json.RawMessage(`not json`))
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestValidateResponse_SchemaViolation(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"missing field", `{}`},
		{"wrong type", `{"topics":"Bitcoin"}`},
		{"too many items", `{"topics":["a","b","c"]}`},
		{"extra field", `{"topics":["a"],"extra":1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateResponse(testSchema(), json.RawMessage(tc.raw))
			var invalid *ErrInvalidResponse
			if !errors.As(err, &invalid) {
				t.Fatalf("expected ErrInvalidResponse, got %v", err)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything`)); err != nil {
		t.Fatalf("nil schema must not validate, got %v", err)
	}
}
