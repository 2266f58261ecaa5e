package lesson

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"

	"go.uber.org/zap"

	"github.com/bravedhq/beelearn/internal/llm"
)

// ProgressReader exposes the per-user completion state the generator needs
// to compute the next lesson day. Implemented by the progression engine.
type ProgressReader interface {
	// CompletedDay returns the highest completed lesson day for the topic,
	// or 0 if the user has never seen it.
	CompletedDay(ctx context.Context, userID, topic string) (int, error)
}

// Generator produces the next lesson for a user.
type Generator interface {
	// Generate picks one topic at random, computes the next lesson day and
	// synthesizes lesson content. It never fails: collaborator errors and
	// malformed payloads degrade to the fixed fallback lesson.
	Generate(ctx context.Context, userID string, topics []string) Lesson
}

// Config holds lesson generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for lesson generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 0.5,
	}
}

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	progress ProgressReader
	cfg      Config
	log      *zap.Logger

	// pick selects an index in [0,n); overridable in tests.
	pick func(n int) int
}

// NewGenerator creates an LLMGenerator with the given collaborator and
// progress source.
func NewGenerator(provider llm.Provider, progress ProgressReader, cfg Config, log *zap.Logger) *LLMGenerator {
	if log == nil {
		log = zap.NewNop()
	}
	return &LLMGenerator{
		provider: provider,
		progress: progress,
		cfg:      cfg,
		log:      log,
		pick:     rand.IntN,
	}
}

func (g *LLMGenerator) Generate(ctx context.Context, userID string, topics []string) Lesson {
	topic := topics[g.pick(len(topics))]

	completed, err := g.progress.CompletedDay(ctx, userID, topic)
	if err != nil {
		g.log.Warn("reading completion state failed, assuming day 1",
			zap.String("user_id", userID), zap.String("topic", topic), zap.Error(err))
		completed = 0
	}
	day := completed + 1

	generated, err := g.generate(ctx, userID, topic, day)
	if err != nil {
		g.log.Warn("lesson generation failed, serving fallback",
			zap.String("user_id", userID),
			zap.String("topic", topic),
			zap.Int("lesson_day", day),
			zap.Error(err))
		return Fallback(topic, day)
	}

	return *generated
}

func (g *LLMGenerator) generate(ctx context.Context, userID, topic string, day int) (*Lesson, error) {
	ctx = llm.WithPurpose(ctx, "lesson-gen")

	req := llm.Request{
		System:      systemPrompt,
		Prompt:      buildPrompt(userID, topic, day),
		Schema:      Schema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("lesson generation: %w", err)
	}

	var out Lesson
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse lesson response: %w", err)
	}

	// Topic and day are authoritative on our side, whatever the model says.
	out.Topic = topic
	out.LessonDay = day

	if err := validate(out); err != nil {
		return nil, fmt.Errorf("unusable lesson payload: %w", err)
	}

	return &out, nil
}

// validate applies the semantic checks the JSON schema cannot express.
func validate(l Lesson) error {
	if strings.TrimSpace(l.Question) == "" {
		return fmt.Errorf("empty question")
	}
	if len(l.Options) < 3 || len(l.Options) > 4 {
		return fmt.Errorf("expected 3-4 options, got %d", len(l.Options))
	}

	seen := make(map[string]bool, len(l.Options))
	answerFound := false
	for _, opt := range l.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("empty option")
		}
		if seen[opt] {
			return fmt.Errorf("duplicate option %q", opt)
		}
		seen[opt] = true
		if opt == l.Answer {
			answerFound = true
		}
	}
	if !answerFound {
		return fmt.Errorf("answer %q is not among the options", l.Answer)
	}

	return nil
}
