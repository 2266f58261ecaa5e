package topics

import (
	"fmt"
	"strings"

	"github.com/bravedhq/beelearn/internal/lesson"
)

const analysisSystemPrompt = `You analyze a user's recent social posts to pick learning topics they will find relevant right now. Choose only from the allowed topic list. Prefer topics the posts actually mention or circle around.`

// buildAnalysisPrompt formats the posts and allowed vocabulary for the
// analysis collaborator.
func buildAnalysisPrompt(posts []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyze these posts: %s.\n", strings.Join(posts, "; "))
	fmt.Fprintf(&b, "Extract up to %d relevant topics from this list: %s.",
		maxTopics, strings.Join(lesson.Vocabulary, ", "))

	return b.String()
}
