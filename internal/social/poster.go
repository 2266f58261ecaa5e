// Package social publishes milestone celebration posts. The current
// implementation simulates the publish by logging the post text; a real
// network integration would slot in behind the same interface.
package social

import (
	"context"

	"go.uber.org/zap"
)

// Poster publishes a short celebration post on behalf of a user.
type Poster interface {
	Post(ctx context.Context, userID, text string) error
}

// SimulatedPoster logs posts instead of sending them anywhere.
type SimulatedPoster struct {
	log *zap.Logger
}

// NewSimulatedPoster creates a poster that writes to log. A nil log
// disables output.
func NewSimulatedPoster(log *zap.Logger) *SimulatedPoster {
	if log == nil {
		log = zap.NewNop()
	}
	return &SimulatedPoster{log: log}
}

func (p *SimulatedPoster) Post(_ context.Context, userID, text string) error {
	p.log.Info("posting to X (simulated)",
		zap.String("user_id", userID),
		zap.String("text", text))
	return nil
}
