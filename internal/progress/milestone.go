package progress

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Milestone describes a streak checkpoint.
type Milestone struct {
	Reached bool
	Message string
}

// CheckStreakMilestone reports whether streak sits on a milestone. Every
// third consecutive lesson is one; zero never is.
func CheckStreakMilestone(streak int) Milestone {
	if streak <= 0 || streak%3 != 0 {
		return Milestone{}
	}
	return Milestone{
		Reached: true,
		Message: fmt.Sprintf("Bee-lliant! You've hit a %d-day streak! Keep buzzing!", streak),
	}
}

// CelebrateMilestone publishes the milestone post for the user. Posting is
// fire-and-forget; a failed post is logged and never surfaces to the
// learner's flow.
func (e *Engine) CelebrateMilestone(ctx context.Context, userID string, streak int, topic string) {
	if e.poster == nil {
		return
	}
	text := fmt.Sprintf("@%s is on a %d-day streak and aced %s! #BravedBalajis via Mrs. Been AI",
		userID, streak, topic)
	if err := e.poster.Post(ctx, userID, text); err != nil {
		e.log.Warn("milestone post failed",
			zap.String("user_id", userID),
			zap.Int("streak", streak),
			zap.Error(err))
	}
}
