package lesson

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are Mrs. Been, a friendly AI learning guide creating concise 5-minute learning modules.

Rules:
- Focus each lesson on a single key concept within the given topic.
- The question should be engaging and self-contained.
- Provide 3-4 answer options where exactly one is correct. Distractors should be plausible, not random.
- The answer must repeat one of the options verbatim.
- Later lesson days should build on earlier ones: day 1 covers fundamentals, higher days go deeper.
- Keep the language encouraging and accessible to a motivated beginner.`

// buildPrompt constructs the generation prompt for a given user, topic and day.
func buildPrompt(userID, topic string, day int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "User %s is starting lesson day %d on the topic %q.\n", userID, day, topic)
	fmt.Fprintf(&b, "BRAVED themes: %s.\n", strings.Join(Vocabulary, ", "))
	fmt.Fprintf(&b, "Create a concise, 5-minute learning module on a single key concept within %s.", topic)

	return b.String()
}
