package contract

// mentorRequestDefinition is the JSON Schema for inbound chat requests.
var mentorRequestDefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"message": map[string]any{
			"type":      "string",
			"minLength": 1,
			"maxLength": 1000,
		},
		"jobRole":   map[string]any{"type": "string"},
		"context":   map[string]any{"type": "string"},
		"sessionId": map[string]any{"type": "string"},
	},
	"required": []any{"message"},
}

// mentorResponseDefinition is the JSON Schema the mentor reply must satisfy.
// The same definition is handed to the upstream model as its requested
// output shape, so validation failures mean the model broke its own contract.
var mentorResponseDefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"summary":  map[string]any{"type": "string"},
		"response": map[string]any{"type": "string"},
		"methodology": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"examples": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"practiceTask": map[string]any{"type": "string"},
		"hints": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"confidence": map[string]any{
			"type": "string",
			"enum": []any{"High", "Medium", "Low"},
		},
		"kpis": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"followUpQuestions": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
	},
	"required": []any{"summary", "response", "confidence"},
}

// MentorResponseDefinition returns the response schema definition for use as
// a structured-output request to the upstream model.
func MentorResponseDefinition() map[string]any {
	return mentorResponseDefinition
}
