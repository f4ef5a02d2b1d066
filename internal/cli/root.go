package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "prreview",
	Short: "Automated PR review with static analysis and LLM scoring",
	Long:  "Prreview fetches a pull request from GitHub, GitLab, or Bitbucket, analyzes the changed files, scores the PR, and optionally posts the review back to the forge.",
}

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(artifactsCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return 2
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = 0

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print prreview version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "prreview version %s\n", version)
	},
}
