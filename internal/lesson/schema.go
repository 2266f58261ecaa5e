package lesson

import "github.com/bravedhq/beelearn/internal/llm"

// Schema defines the JSON schema for LLM lesson generation responses.
var Schema = &llm.Schema{
	Name:        "quiz-lesson",
	Description: "A single 5-minute quiz lesson with one question and 3-4 answer options",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topic": map[string]any{
				"type":        "string",
				"description": "The lesson topic",
			},
			"lessonDay": map[string]any{
				"type":        "integer",
				"minimum":     1,
				"description": "The per-topic lesson day index",
			},
			"question": map[string]any{
				"type":        "string",
				"description": "An engaging question about a single key concept of the topic",
			},
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    3,
				"maxItems":    4,
				"description": "3-4 answer choices, exactly one of which is correct",
			},
			"answer": map[string]any{
				"type":        "string",
				"description": "The correct choice, repeated verbatim from options",
			},
		},
		"required":             []any{"topic", "lessonDay", "question", "options", "answer"},
		"additionalProperties": false,
	},
}
