package topics

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/bravedhq/beelearn/internal/llm"
)

// DefaultTopics is the fixed fallback pair used whenever the analysis
// collaborator fails or finds nothing.
var DefaultTopics = []string{"Bitcoin", "AI"}

// maxTopics caps how many topics one selection may return.
const maxTopics = 2

// Selector picks lesson topics for a user.
type Selector interface {
	// Select returns 1-2 topic names. It never fails and never returns an
	// empty list: collaborator errors degrade to DefaultTopics.
	Select(ctx context.Context, userID string) []string
}

// Config holds topic analysis settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for topic analysis.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   128,
		Temperature: 0.2,
	}
}

// LLMSelector implements Selector by running the user's recent social posts
// through the analysis collaborator.
type LLMSelector struct {
	provider llm.Provider
	cfg      Config
	log      *zap.Logger
}

// NewSelector creates an LLMSelector.
func NewSelector(provider llm.Provider, cfg Config, log *zap.Logger) *LLMSelector {
	if log == nil {
		log = zap.NewNop()
	}
	return &LLMSelector{provider: provider, cfg: cfg, log: log}
}

type topicsOutput struct {
	Topics []string `json:"topics"`
}

func (s *LLMSelector) Select(ctx context.Context, userID string) []string {
	posts := fetchRecentPosts(userID)
	if len(posts) == 0 {
		s.log.Info("no posts found for user, using default topics",
			zap.String("user_id", userID))
		return DefaultTopics
	}

	ctx = llm.WithPurpose(ctx, "topic-analysis")

	req := llm.Request{
		System:      analysisSystemPrompt,
		Prompt:      buildAnalysisPrompt(posts),
		Schema:      Schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		s.log.Warn("topic analysis failed, using default topics",
			zap.String("user_id", userID), zap.Error(err))
		return DefaultTopics
	}

	var out topicsOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		s.log.Warn("unparseable topic analysis, using default topics",
			zap.String("user_id", userID), zap.Error(err))
		return DefaultTopics
	}

	selected := make([]string, 0, maxTopics)
	for _, t := range out.Topics {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		selected = append(selected, t)
		if len(selected) == maxTopics {
			break
		}
	}

	if len(selected) == 0 {
		return DefaultTopics
	}
	return selected
}

// fetchRecentPosts returns a sample of the user's recent posts. Real feed
// access is out of scope; this mirrors the collaborator's mocked feed.
func fetchRecentPosts(userID string) []string {
	return []string{
		"Mock post for " + userID + ": Balaji's ideas on network states are fascinating! #Bitcoin",
		"Another mock: Thinking about how AI impacts decentralization. #AI",
	}
}
