package cmd

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rsarkar/bayestutor/internal/session"
	"github.com/rsarkar/bayestutor/internal/student"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a simulated learner through a session (no database)",
	Long: `Drive a full tutoring session with a simulated learner instead of stdin.

The learner answers correctly with a probability that falls off with the
distance between the topic level and its true level, so the printed belief
trajectory shows the selection policy homing in on the right tier.`,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().Int("true-level", 2, "Level the simulated learner actually has")
	demoCmd.Flags().Int("questions", 20, "Number of questions to simulate")
	demoCmd.Flags().Uint64("seed", 1, "Random seed for the learner")
}

func runDemo(cmd *cobra.Command, args []string) error {
	trueLevel, _ := cmd.Flags().GetInt("true-level")
	questions, _ := cmd.Flags().GetInt("questions")
	seed, _ := cmd.Flags().GetUint64("seed")

	if questions <= 0 {
		return fmt.Errorf("--questions must be positive")
	}

	graph, err := loadGraph(cmd)
	if err != nil {
		return err
	}

	// Fully in memory: the demo never touches the database.
	svc := session.NewService(graph, session.Config{TargetQuestions: questions}, nil, nil)

	ctx := context.Background()
	sess, err := svc.StartSession(ctx)
	if err != nil {
		return err
	}

	topic, ok := sess.CurrentTopic()
	if !ok {
		fmt.Println("Every topic is already mastered at the prior. Nothing to do.")
		return nil
	}

	learner := student.New(trueLevel, rand.New(rand.NewPCG(seed, seed)))

	fmt.Printf("Simulated learner: true level %d, seed %d, %d questions\n\n", trueLevel, seed, questions)
	fmt.Printf("%-4s  %-28s  %5s  %-6s  %-7s  %s\n",
		"#", "Topic", "Level", "Answer", "Mastery", "90% CI")
	fmt.Println(strings.Repeat("─", 72))

	for i := 1; ; i++ {
		correct := learner.Answer(topic)

		res, err := svc.SubmitAnswer(ctx, sess.ID(), topic.ID, correct)
		if err != nil {
			return err
		}

		mark := "✓"
		if !correct {
			mark = "✗"
		}
		b := res.Belief
		fmt.Printf("%-4d  %-28s  %5d  %-6s  %7.2f  [%.2f, %.2f]\n",
			i, truncate(topic.Name, 28), topic.Level, mark, b.ExpectedLambda, b.Interval.Low, b.Interval.High)

		if res.Terminal() {
			fmt.Println("\nAll reachable topics mastered.")
			break
		}
		if res.Done {
			break
		}
		topic = *res.Next
	}

	fmt.Println()
	printSessionSummary(sess, graph)
	return svc.EndSession(ctx, sess.ID())
}
