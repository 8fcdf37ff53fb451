package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

var testSchema = &Schema{
	Name:        "llm-validate-test",
	Description: "test schema",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"answer": map[string]any{"type": "string"},
			"level": map[string]any{
				"type": "string",
				"enum": []any{"High", "Medium", "Low"},
			},
		},
		"required": []any{"answer", "level"},
	},
}

func TestCheckOutput(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"answer": "42", "level": "High"}`, false},
		{"missing required", `{"answer": "42"}`, true},
		{"enum violation", `{"answer": "42", "level": "Extreme"}`, true},
		{"wrong type", `{"answer": 42, "level": "High"}`, true},
		{"malformed json", `{"answer": `, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkOutput(testSchema, json.RawMessage(tt.raw))
			if tt.wantErr {
				var bad *ErrBadOutput
				if !errors.As(err, &bad) {
					t.Fatalf("expected ErrBadOutput, got %v", err)
				}
				if string(bad.Content) != tt.raw {
					t.Errorf("error should carry the offending content")
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestCheckOutput_NilSchema(t *testing.T) {
	if err := checkOutput(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("nil schema should skip validation: %v", err)
	}
}
