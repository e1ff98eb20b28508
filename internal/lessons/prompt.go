package lessons

import (
	"fmt"
	"strings"

	"github.com/rsarkar/bayestutor/internal/belief"
	"github.com/rsarkar/bayestutor/internal/topicgraph"
)

const lessonSystemPrompt = `You are a patient, encouraging math tutor. A student is working through a structured algebra curriculum and needs a short, clear lesson on their current topic before they attempt a question.`

func buildLessonUserMessage(topic topicgraph.Topic, summary belief.Summary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Topic: %s\n", topic.Name))
	if topic.Content != "" {
		b.WriteString(fmt.Sprintf("Description: %s\n", topic.Content))
	}
	b.WriteString(fmt.Sprintf("Curriculum level: %d (0 = introductory)\n", topic.Level))
	b.WriteString(fmt.Sprintf("Difficulty: %.2f (0 to 1)\n", topic.Difficulty))

	b.WriteString("\nStudent state:\n")
	if summary.Observations == 0 {
		b.WriteString("- First exposure to this topic\n")
	} else {
		b.WriteString(fmt.Sprintf("- Questions answered on this topic: %d\n", summary.Observations))
		b.WriteString(fmt.Sprintf("- Estimated mastery rate: %.2f\n", summary.ExpectedLambda))
		if summary.Interval.Width() > 0.5 {
			b.WriteString("- The estimate is still uncertain; keep the lesson foundational\n")
		}
	}

	b.WriteString(`
Instructions:
Create a micro-lesson that:
1. Explains the concept clearly in 3-5 sentences. Use simple language. Build on the topic description above.
2. Shows a complete worked example with numbered steps. Pick a problem representative of this topic and show every step.
3. Creates one practice question at this topic's level that the student can solve using the explanation and worked example above.
4. The practice question must have a single correct answer. Provide a brief explanation for the practice answer.
5. Use plain ASCII text for all math. No LaTeX, no Unicode symbols. Use / for fractions, * for multiplication.`)

	return b.String()
}
