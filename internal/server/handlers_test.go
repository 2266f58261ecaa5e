package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/bravedhq/beelearn/internal/lesson"
	"github.com/bravedhq/beelearn/internal/progress"
	"github.com/bravedhq/beelearn/internal/store"
)

type stubSelector struct{ picked []string }

func (s stubSelector) Select(context.Context, string) []string { return s.picked }

// stubGenerator hands out scripted lessons in order, repeating the last one
// once the script runs out.
type stubGenerator struct {
	script []lesson.Lesson
	calls  int
}

func (g *stubGenerator) Generate(context.Context, string, []string) lesson.Lesson {
	i := g.calls
	g.calls++
	if i >= len(g.script) {
		i = len(g.script) - 1
	}
	return g.script[i]
}

type countingPoster struct{ posts []string }

func (p *countingPoster) Post(_ context.Context, _, text string) error {
	p.posts = append(p.posts, text)
	return nil
}

func quiz(topic string, day int, answer string) lesson.Lesson {
	return lesson.Lesson{
		Topic:     topic,
		LessonDay: day,
		Question:  "q",
		Options:   []string{answer, "b", "c"},
		Answer:    answer,
	}
}

func newTestServer(t *testing.T, script ...lesson.Lesson) (*Server, *store.MemoryStore, *countingPoster) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemoryStore()
	poster := &countingPoster{}
	engine := progress.NewEngine(st, poster, nil)
	if len(script) == 0 {
		script = []lesson.Lesson{quiz("AI", 1, "X")}
	}
	gen := &stubGenerator{script: script}
	return New(engine, stubSelector{picked: []string{"AI"}}, gen, nil), st, poster
}

func getLesson(t *testing.T, r http.Handler, userID string) (*httptest.ResponseRecorder, LessonResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/lesson?userId="+userID, nil)
	r.ServeHTTP(w, req)

	var resp LessonResponse
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode lesson response: %v", err)
		}
	}
	return w, resp
}

func postAnswer(t *testing.T, r http.Handler, body string) (*httptest.ResponseRecorder, AnswerResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/answer", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var resp AnswerResponse
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode answer response: %v", err)
		}
	}
	return w, resp
}

func TestGetLesson_MissingUserID(t *testing.T) {
	s, _, _ := newTestServer(t)
	w, _ := getLesson(t, s.Router(), "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetLesson_FirstCallCreatesRecord(t *testing.T) {
	s, st, _ := newTestServer(t)
	w, resp := getLesson(t, s.Router(), "u1")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	if resp.Lesson == nil {
		t.Fatal("lesson is null")
	}
	if resp.Streak != 1 {
		t.Fatalf("streak = %d, want 1 after first delivery", resp.Streak)
	}
	if resp.Message != "Here's your lesson from Mrs. Been!" {
		t.Fatalf("message = %q", resp.Message)
	}

	rec, ok, err := st.Get(context.Background(), "u1")
	if err != nil || !ok {
		t.Fatalf("record not created: ok=%v err=%v", ok, err)
	}
	if rec.CurrentLesson == nil || rec.LessonsCompleted["AI"] != 1 {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestAnswer_MissingFields(t *testing.T) {
	s, _, _ := newTestServer(t)
	r := s.Router()

	for _, body := range []string{``, `{}`, `{"userId":"u1"}`, `{"answer":"x"}`, `not json`} {
		w, _ := postAnswer(t, r, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, w.Code)
		}
	}
}

func TestAnswer_NoActiveLessonIs400(t *testing.T) {
	s, _, _ := newTestServer(t)
	w, _ := postAnswer(t, s.Router(), `{"userId":"never-seen","answer":"x"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (not 500)", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Fetch a lesson first") {
		t.Fatalf("body = %s, want explanatory error", w.Body.String())
	}
}

func TestAnswer_CorrectFlow(t *testing.T) {
	s, st, _ := newTestServer(t, quiz("AI", 1, "X"), quiz("AI", 2, "Y"))
	r := s.Router()

	if w, _ := getLesson(t, r, "u1"); w.Code != http.StatusOK {
		t.Fatalf("get lesson: %d", w.Code)
	}

	// Case-insensitive submission.
	w, resp := postAnswer(t, r, `{"userId":"u1","answer":"x"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	if !resp.Correct {
		t.Fatal("correct = false")
	}
	if resp.NewStreak != 1 {
		t.Fatalf("newStreak = %d, want 1", resp.NewStreak)
	}
	if resp.NextLesson == nil || resp.NextLesson.LessonDay != 2 {
		t.Fatalf("nextLesson = %+v, want AI day 2", resp.NextLesson)
	}

	rec, _, err := st.Get(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if rec.LessonsCompleted["AI"] != 2 {
		t.Fatalf("lessonsCompleted[AI] = %d, want 2", rec.LessonsCompleted["AI"])
	}
	if rec.Streak != 2 {
		t.Fatalf("stored streak = %d, want 2 after follow-up delivery", rec.Streak)
	}
}

func TestAnswer_WrongAnswer(t *testing.T) {
	s, _, _ := newTestServer(t)
	r := s.Router()
	getLesson(t, r, "u1")

	w, resp := postAnswer(t, r, `{"userId":"u1","answer":"definitely wrong"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if resp.Correct {
		t.Fatal("correct = true for wrong answer")
	}
	if resp.NextLesson != nil {
		t.Fatal("nextLesson present after wrong answer")
	}
	if resp.NewStreak != 1 {
		t.Fatalf("newStreak = %d, want unchanged 1", resp.NewStreak)
	}

	// The same lesson is still pending and can be retried.
	w, resp = postAnswer(t, r, `{"userId":"u1","answer":"X"}`)
	if w.Code != http.StatusOK || !resp.Correct {
		t.Fatalf("retry failed: status=%d correct=%v", w.Code, resp.Correct)
	}
}

func TestAnswer_MilestonePostsOnce(t *testing.T) {
	s, _, poster := newTestServer(t,
		quiz("AI", 1, "A"), quiz("AI", 2, "B"), quiz("AI", 3, "C"), quiz("AI", 4, "D"))
	r := s.Router()

	// Three deliveries bring the streak to 3; answering the third lesson
	// evaluates at streak 3 and fires the milestone.
	getLesson(t, r, "u1")
	getLesson(t, r, "u1")
	getLesson(t, r, "u1")

	w, resp := postAnswer(t, r, `{"userId":"u1","answer":"C"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	if resp.NewStreak != 3 {
		t.Fatalf("newStreak = %d, want 3", resp.NewStreak)
	}
	if !strings.Contains(resp.Message, "3-day streak") {
		t.Fatalf("message = %q, want milestone text", resp.Message)
	}
	if len(poster.posts) != 1 {
		t.Fatalf("posts = %d, want exactly 1", len(poster.posts))
	}
	if !strings.Contains(poster.posts[0], "@u1") || !strings.Contains(poster.posts[0], "3-day streak") {
		t.Fatalf("post = %q", poster.posts[0])
	}
}

func TestAnswer_NonMilestoneHasNoPost(t *testing.T) {
	s, _, poster := newTestServer(t, quiz("AI", 1, "A"), quiz("AI", 2, "B"))
	r := s.Router()
	getLesson(t, r, "u1")

	_, resp := postAnswer(t, r, `{"userId":"u1","answer":"A"}`)
	if strings.Contains(resp.Message, "streak!") {
		t.Fatalf("message = %q, unexpected milestone", resp.Message)
	}
	if len(poster.posts) != 0 {
		t.Fatalf("posts = %d, want 0", len(poster.posts))
	}
}

func TestHealthz(t *testing.T) {
	s, _, _ := newTestServer(t)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}
