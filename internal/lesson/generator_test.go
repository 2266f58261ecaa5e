package lesson

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/bravedhq/beelearn/internal/llm"
)

// stubProgress returns canned completion days per topic.
type stubProgress struct {
	days map[string]int
}

func (s *stubProgress) CompletedDay(_ context.Context, _, topic string) (int, error) {
	return s.days[topic], nil
}

func validLessonJSON() json.RawMessage {
	return json.RawMessage(`{
		"topic": "Bitcoin",
		"lessonDay": 1,
		"question": "What problem does proof-of-work primarily solve?",
		"options": ["Double spending", "Slow block times", "High fees"],
		"answer": "Double spending"
	}`)
}

func newTestGenerator(provider llm.Provider, days map[string]int) *LLMGenerator {
	if days == nil {
		days = map[string]int{}
	}
	return NewGenerator(provider, &stubProgress{days: days}, DefaultConfig(), nil)
}

func TestGenerate_UsesCollaboratorContent(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validLessonJSON()})
	g := newTestGenerator(mock, nil)

	got := g.Generate(t.Context(), "u1", []string{"Bitcoin"})

	if got.Topic != "Bitcoin" {
		t.Errorf("topic = %q, want Bitcoin", got.Topic)
	}
	if got.LessonDay != 1 {
		t.Errorf("lessonDay = %d, want 1", got.LessonDay)
	}
	if got.Question != "What problem does proof-of-work primarily solve?" {
		t.Errorf("unexpected question %q", got.Question)
	}
	if got.Answer != "Double spending" {
		t.Errorf("unexpected answer %q", got.Answer)
	}
}

func TestGenerate_DayAdvancesFromProgress(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validLessonJSON()})
	g := newTestGenerator(mock, map[string]int{"Bitcoin": 3})

	got := g.Generate(t.Context(), "u1", []string{"Bitcoin"})

	if got.LessonDay != 4 {
		t.Errorf("lessonDay = %d, want 4", got.LessonDay)
	}

	// The computed day must be in the prompt, not the model's echo.
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestGenerate_OverridesModelTopicAndDay(t *testing.T) {
	// Model claims a different topic and day; ours win.
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"topic": "AI",
		"lessonDay": 99,
		"question": "Q?",
		"options": ["a", "b", "c"],
		"answer": "a"
	}`)})
	g := newTestGenerator(mock, map[string]int{"Bitcoin": 1})

	got := g.Generate(t.Context(), "u1", []string{"Bitcoin"})

	if got.Topic != "Bitcoin" || got.LessonDay != 2 {
		t.Errorf("got (%q, %d), want (Bitcoin, 2)", got.Topic, got.LessonDay)
	}
}

func TestGenerate_FallbackOnProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	g := newTestGenerator(mock, map[string]int{"AI": 2})

	got := g.Generate(t.Context(), "u1", []string{"AI"})

	want := Fallback("AI", 3)
	if got.Topic != want.Topic || got.LessonDay != want.LessonDay {
		t.Errorf("got (%q, %d), want (%q, %d)", got.Topic, got.LessonDay, want.Topic, want.LessonDay)
	}
	if got.Question != want.Question || got.Answer != want.Answer {
		t.Errorf("expected fallback content, got %+v", got)
	}
	if got.StreakReward {
		t.Error("fallback lessons must not carry a streak reward")
	}
}

func TestGenerate_FallbackOnMalformedPayload(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"answer not in options", `{"topic":"AI","lessonDay":1,"question":"Q?","options":["a","b","c"],"answer":"z"}`},
		{"too few options", `{"topic":"AI","lessonDay":1,"question":"Q?","options":["a","b"],"answer":"a"}`},
		{"too many options", `{"topic":"AI","lessonDay":1,"question":"Q?","options":["a","b","c","d","e"],"answer":"a"}`},
		{"duplicate options", `{"topic":"AI","lessonDay":1,"question":"Q?","options":["a","a","b"],"answer":"a"}`},
		{"empty question", `{"topic":"AI","lessonDay":1,"question":" ","options":["a","b","c"],"answer":"a"}`},
		{"not json", `oops`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(tc.raw)})
			g := newTestGenerator(mock, nil)

			got := g.Generate(t.Context(), "u1", []string{"AI"})

			if got.Question != Fallback("AI", 1).Question {
				t.Errorf("expected fallback lesson, got %+v", got)
			}
		})
	}
}

func TestGenerate_PicksFromGivenTopics(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validLessonJSON()})
	g := newTestGenerator(mock, nil)
	g.pick = func(n int) int { return n - 1 } // always the last topic

	got := g.Generate(t.Context(), "u1", []string{"Bitcoin", "AI"})

	if got.Topic != "AI" {
		t.Errorf("topic = %q, want AI", got.Topic)
	}
}

func TestGenerate_SchemaAttached(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validLessonJSON()})
	g := newTestGenerator(mock, nil)

	g.Generate(t.Context(), "u1", []string{"Bitcoin"})

	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "quiz-lesson" {
		t.Error("expected schema name 'quiz-lesson' on the request")
	}
}
