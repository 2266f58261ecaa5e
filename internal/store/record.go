package store

import "github.com/bravedhq/beelearn/internal/lesson"

// UserRecord is the per-user state owned by the user store. One record per
// user identifier, created lazily on the first lesson request.
type UserRecord struct {
	UserID string `json:"userId"`

	// Streak counts consecutive distinct lessons delivered to the user.
	Streak int `json:"streak"`

	// LessonsCompleted maps topic name to the highest lesson day ever
	// delivered for that topic. Values never decrease.
	LessonsCompleted map[string]int `json:"lessonsCompleted"`

	// CurrentLesson is the lesson awaiting an answer, nil if none.
	CurrentLesson *lesson.Lesson `json:"currentLesson"`
}

// NewUserRecord returns a fresh record for an unseen user.
func NewUserRecord(userID string) UserRecord {
	return UserRecord{
		UserID:           userID,
		Streak:           0,
		LessonsCompleted: map[string]int{},
	}
}

// Clone returns a deep copy so callers can mutate freely without aliasing
// the stored state.
func (r UserRecord) Clone() UserRecord {
	out := r
	out.LessonsCompleted = make(map[string]int, len(r.LessonsCompleted))
	for k, v := range r.LessonsCompleted {
		out.LessonsCompleted[k] = v
	}
	if r.CurrentLesson != nil {
		cur := *r.CurrentLesson
		cur.Options = append([]string(nil), r.CurrentLesson.Options...)
		out.CurrentLesson = &cur
	}
	return out
}
