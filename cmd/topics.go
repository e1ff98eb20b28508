package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Browse the topic catalog",
}

var topicsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all topics in prerequisite order",
	RunE: func(cmd *cobra.Command, args []string) error {
		graph, err := loadGraph(cmd)
		if err != nil {
			return err
		}

		fmt.Printf("%-24s  %-28s  %5s  %10s  %s\n",
			"ID", "Name", "Level", "Difficulty", "Prerequisites")
		fmt.Println(strings.Repeat("─", 100))

		for _, t := range graph.TopologicalOrder() {
			prereqs := "-"
			if len(t.Prerequisites) > 0 {
				prereqs = strings.Join(t.Prerequisites, ", ")
			}
			fmt.Printf("%-24s  %-28s  %5d  %10.2f  %s\n",
				t.ID, truncate(t.Name, 28), t.Level, t.Difficulty, prereqs)
		}

		fmt.Printf("\n%d topics\n", graph.Len())
		return nil
	},
}

var topicsGraphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the prerequisite edges",
	RunE: func(cmd *cobra.Command, args []string) error {
		graph, err := loadGraph(cmd)
		if err != nil {
			return err
		}

		view := graph.View()
		if len(view.Edges) == 0 {
			fmt.Println("No prerequisite edges; every topic is a root.")
			return nil
		}
		for _, e := range view.Edges {
			fmt.Printf("%s -> %s\n", e.From, e.To)
		}
		return nil
	},
}

func init() {
	topicsCmd.AddCommand(topicsListCmd)
	topicsCmd.AddCommand(topicsGraphCmd)
}
