package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rsarkar/bayestutor/internal/belief"
	"github.com/rsarkar/bayestutor/internal/grader"
	"github.com/rsarkar/bayestutor/internal/lessons"
	"github.com/rsarkar/bayestutor/internal/llm"
	"github.com/rsarkar/bayestutor/internal/policy"
	"github.com/rsarkar/bayestutor/internal/session"
	"github.com/rsarkar/bayestutor/internal/store"
	"github.com/rsarkar/bayestutor/internal/topicgraph"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start an interactive tutoring session",
	Long: `Work through the catalog one question at a time.

Each round presents the weakest eligible topic, teaches it (with an LLM
lesson when a provider is configured), asks a practice question, and folds
your answer into the mastery estimate. The session ends at the question
target or once every reachable topic is mastered.`,
	RunE: runPlay,
}

func init() {
	addPlayFlags(playCmd)
	// A bare `bayestutor` starts a session directly, so the root command
	// takes the same flags.
	addPlayFlags(rootCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("resume", false, "Resume beliefs from the latest snapshot")
	cmd.Flags().Bool("llm-grading", false, "Grade practice answers with the LLM instead of exact matching")
	cmd.Flags().Int("questions", session.DefaultTargetQuestions, "Questions to ask before ending the session (0 = until mastered)")
	cmd.Flags().Float64("threshold", policy.DefaultMasteredThreshold, "Expected-rate level at which a topic counts as mastered")
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	resume, _ := cmd.Flags().GetBool("resume")
	llmGrading, _ := cmd.Flags().GetBool("llm-grading")
	questions, _ := cmd.Flags().GetInt("questions")
	threshold, _ := cmd.Flags().GetFloat64("threshold")

	graph, err := loadGraph(cmd)
	if err != nil {
		return err
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()
	events := st.EventRepo()

	// Build LLM provider (optional — the session works without it).
	var lessonSvc *lessons.Service
	var llmGrader grader.Grader
	provider, err := llm.NewProviderFromEnv(ctx, events)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Lessons use catalog content; answers are self-reported.")
	} else {
		lessonSvc = lessons.NewService(provider, lessons.DefaultConfig())
		if llmGrading {
			llmGrader = grader.NewLLM(provider, grader.DefaultLLMConfig())
		}
	}
	if llmGrading && llmGrader == nil {
		fmt.Fprintln(os.Stderr, "warning: --llm-grading needs a configured provider; using exact matching")
	}
	selfGrader := grader.NewBinary()

	svc := session.NewService(graph, session.Config{
		MasteredThreshold: threshold,
		TargetQuestions:   questions,
	}, events, st.SnapshotRepo())

	var sess *session.Session
	if resume {
		sess, err = svc.ResumeSession(ctx)
	} else {
		sess, err = svc.StartSession(ctx)
	}
	if err != nil {
		return err
	}

	topic, ok := sess.CurrentTopic()
	if !ok {
		fmt.Println("Every reachable topic is already mastered. Nothing to practice.")
		return svc.EndSession(ctx, sess.ID())
	}

	scanner := bufio.NewScanner(os.Stdin)

	for num := 1; ; num++ {
		if questions > 0 {
			fmt.Printf("── Question %d/%d ──\n", num, questions)
		} else {
			fmt.Printf("── Question %d ──\n", num)
		}
		fmt.Printf("Topic: %s (level %d)\n\n", topic.Name, topic.Level)

		summary, err := sess.Belief(topic.ID)
		if err != nil {
			return err
		}
		lesson := presentLesson(ctx, lessonSvc, topic, summary)

		var correct, answered bool
		if lesson.HasPractice() {
			correct, answered = askPractice(ctx, scanner, llmGrader, topic, lesson)
		} else {
			correct, answered = askSelfReport(ctx, scanner, selfGrader, topic)
		}
		if !answered {
			fmt.Println("\n(input closed)")
			break
		}

		logLesson(ctx, events, sess.ID(), lesson, correct)

		res, err := svc.SubmitAnswer(ctx, sess.ID(), topic.ID, correct)
		if err != nil {
			return err
		}

		b := res.Belief
		fmt.Printf("Mastery: %.2f (90%% CI [%.2f, %.2f], %d answers)\n",
			b.ExpectedLambda, b.Interval.Low, b.Interval.High, b.Observations)
		fmt.Printf("Accuracy: %d/%d (%.0f%%)\n\n",
			res.Stats.CorrectCount, res.Stats.TotalAnswered, res.Stats.Accuracy*100)

		if res.Terminal() {
			fmt.Println("All reachable topics mastered!")
			break
		}
		if res.Done {
			break
		}
		topic = *res.Next
	}

	printSessionSummary(sess, graph)

	if err := svc.EndSession(ctx, sess.ID()); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	fmt.Println("Progress saved.")
	return nil
}

// presentLesson prints a lesson for the topic, falling back to catalog
// content when no provider is configured or generation fails.
func presentLesson(ctx context.Context, svc *lessons.Service, topic topicgraph.Topic, summary belief.Summary) *lessons.Lesson {
	var lesson *lessons.Lesson
	if svc != nil {
		l, err := svc.Generate(ctx, topic, summary)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: lesson generation failed: %v\n", err)
		} else {
			lesson = l
		}
	}
	if lesson == nil {
		lesson = lessons.Fallback(topic)
	}

	if lesson.Title != "" {
		fmt.Printf("%s\n\n", lesson.Title)
	}
	fmt.Println(lesson.Explanation)
	if lesson.WorkedExample != "" {
		fmt.Printf("\nExample: %s\n", lesson.WorkedExample)
	}
	fmt.Println()
	return lesson
}

// askPractice reads and grades the answer to the lesson's practice question.
// A nil llmGrader selects exact matching. The second return is false once
// stdin is closed.
func askPractice(ctx context.Context, scanner *bufio.Scanner, llmGrader grader.Grader, topic topicgraph.Topic, lesson *lessons.Lesson) (bool, bool) {
	q := lesson.PracticeQuestion
	fmt.Printf("Practice: %s\n", q.Text)

	answer, ok := readAnswer(scanner, "\nYour answer: ")
	if !ok {
		return false, false
	}

	if llmGrader != nil {
		verdict, err := llmGrader.Grade(ctx, topic, q.Text, answer)
		if err == nil {
			printResult(verdict.Correct, q.Answer)
			if verdict.Feedback != "" {
				fmt.Printf("Feedback: %s\n", verdict.Feedback)
			}
			return verdict.Correct, true
		}
		fmt.Fprintf(os.Stderr, "warning: LLM grading failed: %v\n", err)
	}

	correct := lessons.CheckPracticeAnswer(q, answer)
	printResult(correct, q.Answer)
	if !correct && q.Explanation != "" {
		fmt.Printf("Explanation: %s\n", q.Explanation)
	}
	return correct, true
}

// askSelfReport covers lessons without a practice question: the learner works
// a problem on paper and reports the outcome.
func askSelfReport(ctx context.Context, scanner *bufio.Scanner, g grader.Grader, topic topicgraph.Topic) (bool, bool) {
	fmt.Println("Work one problem for this topic on paper.")
	answer, ok := readAnswer(scanner, "Did you get it right? (y/n): ")
	if !ok {
		return false, false
	}
	verdict, _ := g.Grade(ctx, topic, "", answer)
	if verdict.Correct {
		fmt.Println("\033[32m✓ Correct!\033[0m")
	} else {
		fmt.Println("\033[31m✗ Marked incorrect.\033[0m")
	}
	return verdict.Correct, true
}

// readAnswer prompts until a non-empty line arrives. The second return is
// false once stdin is closed.
func readAnswer(scanner *bufio.Scanner, prompt string) (string, bool) {
	for {
		fmt.Print(prompt)
		if !scanner.Scan() {
			return "", false
		}
		if answer := strings.TrimSpace(scanner.Text()); answer != "" {
			return answer, true
		}
	}
}

func printResult(correct bool, want string) {
	if correct {
		fmt.Println("\033[32m✓ Correct!\033[0m")
	} else {
		fmt.Printf("\033[31m✗ Wrong.\033[0m Answer: %s\n", want)
	}
}

// logLesson appends a lesson event, warning instead of failing.
func logLesson(ctx context.Context, events store.EventRepo, sessionID string, lesson *lessons.Lesson, correct bool) {
	data := store.LessonEventData{
		SessionID:         sessionID,
		TopicID:           lesson.TopicID,
		Title:             lesson.Title,
		Source:            lesson.Source,
		PracticeAttempted: lesson.HasPractice(),
		PracticeCorrect:   correct && lesson.HasPractice(),
	}
	if err := events.AppendLessonEvent(ctx, data); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log lesson event: %v\n", err)
	}
}

// printSessionSummary writes the end-of-session recap: totals, per-level
// accuracy, and the mastery estimate for every topic touched so far.
func printSessionSummary(sess *session.Session, graph *topicgraph.Graph) {
	stats := sess.Progress().Stats
	fmt.Printf("── Summary: %d/%d correct ──\n", stats.CorrectCount, stats.TotalAnswered)

	levels := make([]int, 0, len(stats.Levels))
	for l := range stats.Levels {
		levels = append(levels, l)
	}
	sort.Ints(levels)
	for _, l := range levels {
		ls := stats.Levels[l]
		fmt.Printf("  Level %d: %d/%d\n", l, ls.Correct, ls.Total)
	}

	states := sess.ExportBeliefs()
	if len(states) == 0 {
		return
	}
	fmt.Println("\nMastery estimates:")
	for _, t := range graph.TopologicalOrder() {
		s, ok := states[t.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-28s %.2f (%d answers)\n", truncate(t.Name, 28), s.ExpectedLambda(), s.Observations)
	}
}
