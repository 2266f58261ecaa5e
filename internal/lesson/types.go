package lesson

// Lesson is a single quiz-style learning module delivered to a user.
// Field names match the wire format consumed by the client.
type Lesson struct {
	// Topic is the subject of the lesson, normally one of Vocabulary.
	Topic string `json:"topic"`

	// LessonDay is the per-topic, per-user sequential index, starting at 1.
	LessonDay int `json:"lessonDay"`

	// Question is the prompt shown to the user.
	Question string `json:"question"`

	// Options holds 3-4 distinct answer choices, in display order.
	Options []string `json:"options"`

	// Answer is the correct choice; always equal to one of Options.
	Answer string `json:"answer"`

	// StreakReward marks lessons that carry a special streak indication.
	// Fallback lessons always set it to false.
	StreakReward bool `json:"streakReward"`
}

// Vocabulary is the BRAVED topic set the generation collaborator is
// instructed to choose from.
var Vocabulary = []string{
	"Bitcoin",
	"RWAs",
	"AI",
	"VR/AR",
	"Emotional Intelligence",
	"Decentralization",
}
