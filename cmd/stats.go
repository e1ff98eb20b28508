package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rsarkar/bayestutor/internal/belief"
	"github.com/rsarkar/bayestutor/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime learning statistics",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	graph, err := loadGraph(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	// Mastery from the latest snapshot.
	snap, err := st.SnapshotRepo().Latest(ctx, store.SnapshotKindBeliefs)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if snap == nil || len(snap.Data.Beliefs) == 0 {
		fmt.Println("No saved progress yet. Run a session first.")
	} else {
		fmt.Printf("Mastery (saved %s)\n", snap.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Println(strings.Repeat("─", 76))
		fmt.Printf("%-28s  %5s  %7s  %-14s  %s\n",
			"Topic", "Level", "Rate", "90% CI", "Answers")
		fmt.Println(strings.Repeat("─", 76))
		for _, t := range graph.TopologicalOrder() {
			state, ok := snap.Data.Beliefs[t.ID]
			if !ok {
				continue
			}
			iv := state.CredibleInterval(belief.DefaultIntervalLevel)
			fmt.Printf("%-28s  %5d  %7.2f  [%.2f, %.2f]  %7d\n",
				truncate(t.Name, 28), t.Level, state.ExpectedLambda(), iv.Low, iv.High, state.Observations)
		}
	}

	// Lifetime totals from the event log.
	byTopic, err := st.EventRepo().AnswerTotalsByTopic(ctx)
	if err != nil {
		return fmt.Errorf("query topic totals: %w", err)
	}
	if len(byTopic) > 0 {
		fmt.Println()
		fmt.Println("Lifetime answers by topic")
		fmt.Println(strings.Repeat("─", 48))
		for _, tt := range byTopic {
			fmt.Printf("%-28s  %4d/%-4d  %5.1f%%\n",
				truncate(tt.TopicID, 28), tt.Correct, tt.Total, percent(tt.Correct, tt.Total))
		}
	}

	byLevel, err := st.EventRepo().AnswerTotalsByLevel(ctx)
	if err != nil {
		return fmt.Errorf("query level totals: %w", err)
	}
	if len(byLevel) > 0 {
		fmt.Println()
		fmt.Println("Lifetime answers by level")
		fmt.Println(strings.Repeat("─", 48))
		for _, lt := range byLevel {
			fmt.Printf("Level %-22d  %4d/%-4d  %5.1f%%\n",
				lt.Level, lt.Correct, lt.Total, percent(lt.Correct, lt.Total))
		}
	}

	return nil
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
