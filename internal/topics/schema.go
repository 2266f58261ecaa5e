package topics

import "github.com/bravedhq/beelearn/internal/llm"

// Schema defines the JSON schema for topic analysis responses.
var Schema = &llm.Schema{
	Name:        "lesson-topics",
	Description: "Up to two learning topics extracted from a user's recent posts",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topics": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"maxItems":    maxTopics,
				"description": "Relevant topics from the allowed list, most relevant first",
			},
		},
		"required":             []any{"topics"},
		"additionalProperties": false,
	},
}
