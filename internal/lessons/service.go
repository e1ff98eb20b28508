package lessons

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rsarkar/bayestutor/internal/belief"
	"github.com/rsarkar/bayestutor/internal/llm"
	"github.com/rsarkar/bayestutor/internal/topicgraph"
)

// Config holds generation settings passed through to the provider.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard lesson generation settings.
func DefaultConfig() Config {
	return Config{MaxTokens: 512, Temperature: 0.5}
}

// Service generates micro-lessons through an LLM provider.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a lesson generation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

type lessonOutput struct {
	Title            string                 `json:"title"`
	Explanation      string                 `json:"explanation"`
	WorkedExample    string                 `json:"worked_example"`
	PracticeQuestion practiceQuestionOutput `json:"practice_question"`
}

type practiceQuestionOutput struct {
	Text        string `json:"text"`
	Answer      string `json:"answer"`
	AnswerType  string `json:"answer_type"`
	Explanation string `json:"explanation"`
}

// Generate produces an LLM micro-lesson for the topic, informed by the
// student's current belief summary. Callers degrade to Fallback on error.
func (s *Service) Generate(ctx context.Context, topic topicgraph.Topic, summary belief.Summary) (*Lesson, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("no LLM provider configured")
	}

	ctx = llm.WithPurpose(ctx, "lesson")

	req := llm.Request{
		System: lessonSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildLessonUserMessage(topic, summary)},
		},
		Schema:      LessonSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("lesson generation: %w", err)
	}

	var out lessonOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse lesson response: %w", err)
	}

	return &Lesson{
		TopicID:       topic.ID,
		Title:         out.Title,
		Explanation:   out.Explanation,
		WorkedExample: out.WorkedExample,
		PracticeQuestion: PracticeQuestion{
			Text:        out.PracticeQuestion.Text,
			Answer:      out.PracticeQuestion.Answer,
			AnswerType:  out.PracticeQuestion.AnswerType,
			Explanation: out.PracticeQuestion.Explanation,
		},
		Source: SourceLLM,
	}, nil
}

// Fallback builds a lesson from the topic's catalog content. Used when no
// provider is configured or generation fails.
func Fallback(topic topicgraph.Topic) *Lesson {
	explanation := topic.Content
	if explanation == "" {
		explanation = fmt.Sprintf("%s is a level %d topic in this curriculum.", topic.Name, topic.Level)
	}
	return &Lesson{
		TopicID:     topic.ID,
		Title:       topic.Name,
		Explanation: explanation,
		Source:      SourceFallback,
	}
}
