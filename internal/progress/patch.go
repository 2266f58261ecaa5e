package progress

import (
	"context"
	"fmt"

	"github.com/bravedhq/beelearn/internal/lesson"
	"github.com/bravedhq/beelearn/internal/store"
)

// UserPatch is a partial update to a user record. Nil fields are left
// alone; set fields replace the stored value wholesale.
type UserPatch struct {
	Streak           *int
	LessonsCompleted map[string]int
	CurrentLesson    *lesson.Lesson

	// ClearCurrentLesson removes the pending lesson. Ignored when
	// CurrentLesson is also set.
	ClearCurrentLesson bool
}

// UpdateUserData merges patch over the user's record, creating the record
// if the user is unseen, and returns the persisted result.
func (e *Engine) UpdateUserData(ctx context.Context, userID string, patch UserPatch) (store.UserRecord, error) {
	rec, ok, err := e.store.Get(ctx, userID)
	if err != nil {
		return store.UserRecord{}, fmt.Errorf("update user data: %w", err)
	}
	if !ok {
		rec = store.NewUserRecord(userID)
	}

	if patch.Streak != nil {
		rec.Streak = *patch.Streak
	}
	if patch.LessonsCompleted != nil {
		rec.LessonsCompleted = patch.LessonsCompleted
	}
	switch {
	case patch.CurrentLesson != nil:
		rec.CurrentLesson = patch.CurrentLesson
	case patch.ClearCurrentLesson:
		rec.CurrentLesson = nil
	}

	if err := e.store.Put(ctx, userID, rec); err != nil {
		return store.UserRecord{}, fmt.Errorf("update user data: %w", err)
	}
	return rec, nil
}
