// Package progress owns the streak and completion rules. The Engine is the
// only writer of user records; everything else reads through it.
package progress

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bravedhq/beelearn/internal/lesson"
	"github.com/bravedhq/beelearn/internal/social"
	"github.com/bravedhq/beelearn/internal/store"
)

// ErrNoActiveLesson reports an answer submitted with no lesson pending.
var ErrNoActiveLesson = errors.New("no active lesson for user")

const (
	correctMessage   = "Correct! Well done! Mrs. Been is proud! 🐝"
	incorrectMessage = "Not quite! Give it another thought, or try a different option. You can do it! 🐝"
)

// Evaluation is the outcome of checking a submitted answer.
type Evaluation struct {
	Correct bool
	Message string

	// Streak is the user's streak at evaluation time, before any follow-up
	// lesson is delivered.
	Streak int

	// Topic of the lesson that was answered.
	Topic string
}

// Engine applies the progression rules against a UserStore.
type Engine struct {
	store  store.UserStore
	poster social.Poster
	log    *zap.Logger
}

// NewEngine creates an Engine. poster may be nil when milestone posts are
// not wanted; a nil log disables logging.
func NewEngine(s store.UserStore, poster social.Poster, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{store: s, poster: poster, log: log}
}

// DeliverLesson records l as the user's current lesson and returns the
// resulting streak. The streak increments only when (topic, day) differs
// from the lesson already pending; redelivering the identical lesson leaves
// it unchanged. LessonsCompleted is raised to the delivered day and never
// lowered.
func (e *Engine) DeliverLesson(ctx context.Context, userID string, l lesson.Lesson) (int, error) {
	rec, ok, err := e.store.Get(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("deliver lesson: %w", err)
	}
	if !ok {
		rec = store.NewUserRecord(userID)
	}

	if rec.CurrentLesson == nil ||
		rec.CurrentLesson.Topic != l.Topic ||
		rec.CurrentLesson.LessonDay != l.LessonDay {
		rec.Streak++
	}

	rec.CurrentLesson = &l
	if l.LessonDay > rec.LessonsCompleted[l.Topic] {
		rec.LessonsCompleted[l.Topic] = l.LessonDay
	}

	if err := e.store.Put(ctx, userID, rec); err != nil {
		return 0, fmt.Errorf("deliver lesson: %w", err)
	}

	e.log.Debug("lesson delivered",
		zap.String("user_id", userID),
		zap.String("topic", l.Topic),
		zap.Int("lesson_day", l.LessonDay),
		zap.Int("streak", rec.Streak))
	return rec.Streak, nil
}

// EvaluateAnswer checks answer against the user's pending lesson. The
// comparison ignores case and surrounding whitespace. A correct answer
// re-asserts the completion day for the lesson's topic; a wrong answer
// leaves the record untouched so the same lesson can be retried.
func (e *Engine) EvaluateAnswer(ctx context.Context, userID, answer string) (Evaluation, error) {
	rec, ok, err := e.store.Get(ctx, userID)
	if err != nil {
		return Evaluation{}, fmt.Errorf("evaluate answer: %w", err)
	}
	if !ok || rec.CurrentLesson == nil {
		return Evaluation{}, ErrNoActiveLesson
	}

	cur := rec.CurrentLesson
	correct := strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(cur.Answer))

	ev := Evaluation{
		Correct: correct,
		Streak:  rec.Streak,
		Topic:   cur.Topic,
	}
	if !correct {
		ev.Message = incorrectMessage
		return ev, nil
	}
	ev.Message = correctMessage

	if cur.LessonDay > rec.LessonsCompleted[cur.Topic] {
		rec.LessonsCompleted[cur.Topic] = cur.LessonDay
	}
	if err := e.store.Put(ctx, userID, rec); err != nil {
		return Evaluation{}, fmt.Errorf("evaluate answer: %w", err)
	}
	return ev, nil
}

// CompletedDay reports the highest lesson day delivered for topic, zero for
// unseen users or topics.
func (e *Engine) CompletedDay(ctx context.Context, userID, topic string) (int, error) {
	rec, ok, err := e.store.Get(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("completed day: %w", err)
	}
	if !ok {
		return 0, nil
	}
	return rec.LessonsCompleted[topic], nil
}

// Record returns the user's record, reporting whether one exists.
func (e *Engine) Record(ctx context.Context, userID string) (store.UserRecord, bool, error) {
	return e.store.Get(ctx, userID)
}
