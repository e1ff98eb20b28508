package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Populated at build time via -ldflags "-X ...".
var (
	version = "(devel)"
	commit  = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		if commit != "" {
			fmt.Printf("bayestutor %s (%s)\n", version, commit)
			return
		}
		fmt.Println("bayestutor", version)
	},
}
