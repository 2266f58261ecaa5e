package app

import (
	"testing"

	"github.com/bravedhq/beelearn/internal/api"
	"github.com/bravedhq/beelearn/internal/lesson"
)

func sampleLesson(topic string, day int) *lesson.Lesson {
	return &lesson.Lesson{
		Topic:     topic,
		LessonDay: day,
		Question:  "q",
		Options:   []string{"a", "b", "c"},
		Answer:    "a",
	}
}

func TestLessonArrivalShowsQuestion(t *testing.T) {
	m := NewModel()

	next, _ := m.Update(lessonMsg{Resp: &api.LessonResponse{
		Lesson: sampleLesson("AI", 1),
		Streak: 1,
	}})
	got := next.(Model)

	if got.phase != phaseQuestion {
		t.Fatalf("phase = %d, want question", got.phase)
	}
	if got.streak != 1 || got.lesson.Topic != "AI" {
		t.Fatalf("unexpected state: streak=%d lesson=%+v", got.streak, got.lesson)
	}
	if len(got.choices.Options) != 3 {
		t.Fatalf("options = %d", len(got.choices.Options))
	}
}

func TestLessonFetchFailureShowsError(t *testing.T) {
	m := NewModel()

	next, _ := m.Update(lessonMsg{Err: errFake})
	got := next.(Model)

	if got.phase != phaseError {
		t.Fatalf("phase = %d, want error", got.phase)
	}
	if got.errMsg == "" {
		t.Fatal("missing error message")
	}
}

func TestCorrectAnswerStashesNextLesson(t *testing.T) {
	m := NewModel()
	m = m.showLesson(sampleLesson("AI", 1), 1, "")

	next, _ := m.Update(answerMsg{Resp: &api.AnswerResponse{
		Correct:    true,
		NewStreak:  1,
		Message:    "Correct!",
		NextLesson: sampleLesson("AI", 2),
	}})
	got := next.(Model)

	if got.phase != phaseFeedback {
		t.Fatalf("phase = %d, want feedback", got.phase)
	}
	if !got.choices.Correct {
		t.Fatal("verdict not recorded")
	}
	if got.lesson.LessonDay != 2 {
		t.Fatalf("next lesson day = %d, want 2", got.lesson.LessonDay)
	}
}

func TestWrongAnswerKeepsLesson(t *testing.T) {
	m := NewModel()
	m = m.showLesson(sampleLesson("AI", 1), 1, "")

	next, _ := m.Update(answerMsg{Resp: &api.AnswerResponse{
		Correct:   false,
		NewStreak: 1,
		Message:   "Not quite!",
	}})
	got := next.(Model)

	if got.phase != phaseFeedback {
		t.Fatalf("phase = %d, want feedback", got.phase)
	}
	if got.choices.Correct {
		t.Fatal("wrong answer marked correct")
	}
	if got.lesson.LessonDay != 1 {
		t.Fatalf("lesson replaced: day = %d", got.lesson.LessonDay)
	}
}

func TestSubmitFailureReenablesQuestion(t *testing.T) {
	m := NewModel()
	m = m.showLesson(sampleLesson("AI", 1), 1, "")
	m.phase = phaseSubmitting
	m.choices.Locked = true

	next, _ := m.Update(answerMsg{Err: errFake})
	got := next.(Model)

	if got.phase != phaseQuestion {
		t.Fatalf("phase = %d, want question", got.phase)
	}
	if got.choices.Locked {
		t.Fatal("choices still locked after failure")
	}
}

type fakeErr struct{}

func (fakeErr) Error() string { return "boom" }

var errFake = fakeErr{}
