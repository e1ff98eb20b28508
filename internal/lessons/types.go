// Package lessons generates short teaching texts for a topic, either
// through an LLM provider or from the catalog's built-in content.
package lessons

// Lesson source labels, recorded in the lesson event log.
const (
	SourceLLM      = "llm"
	SourceFallback = "fallback"
)

// Lesson is a micro-lesson for a single topic.
type Lesson struct {
	TopicID          string
	Title            string
	Explanation      string
	WorkedExample    string
	PracticeQuestion PracticeQuestion

	// Source is SourceLLM or SourceFallback. Fallback lessons carry no
	// worked example or practice question.
	Source string
}

// PracticeQuestion is a mini-practice embedded in a lesson.
type PracticeQuestion struct {
	Text        string
	Answer      string
	AnswerType  string // "integer", "decimal", "fraction"
	Explanation string
}

// HasPractice reports whether the lesson includes a practice question.
func (l *Lesson) HasPractice() bool {
	return l.PracticeQuestion.Text != ""
}
