package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rsarkar/bayestutor/internal/catalog"
	"github.com/rsarkar/bayestutor/internal/store"
	"github.com/rsarkar/bayestutor/internal/topicgraph"
)

var rootCmd = &cobra.Command{
	Use:   "bayestutor",
	Short: "Adaptive tutor driven by Bayesian mastery estimates",
	Long: "Bayestutor — terminal tutor that tracks per-topic mastery as Gamma-Poisson\n" +
		"beliefs and always teaches the weakest topic whose prerequisites are met.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides BAYESTUTOR_DB env var)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a topic catalog file (overrides BAYESTUTOR_CATALOG env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then BAYESTUTOR_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens the store. The caller
// owns the returned store and must Close it.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// loadGraph builds the topic graph using --catalog flag (highest priority),
// then BAYESTUTOR_CATALOG env var, then the built-in default catalog.
func loadGraph(cmd *cobra.Command) (*topicgraph.Graph, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		path = os.Getenv("BAYESTUTOR_CATALOG")
	}

	topics := catalog.Default()
	if path != "" {
		var err error
		topics, err = catalog.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load catalog %s: %w", path, err)
		}
	}
	return topicgraph.New(topics)
}
