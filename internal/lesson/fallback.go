package lesson

const fallbackQuestion = "What is a key aspect of decentralization?"

// Fallback returns the fixed default lesson served when the generation
// collaborator fails or returns an unusable payload. The topic and day are
// preserved so progression keeps advancing.
func Fallback(topic string, day int) Lesson {
	return Lesson{
		Topic:     topic,
		LessonDay: day,
		Question:  fallbackQuestion,
		Options: []string{
			"Central control",
			"Distributed networks",
			"Single point of failure",
		},
		Answer:       "Distributed networks",
		StreakReward: false,
	}
}

// IsFallback reports whether l is the fixed default lesson.
func IsFallback(l Lesson) bool {
	return l.Question == fallbackQuestion
}
