package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Vibhor2702/pr-review/internal/artifacts"
	"github.com/Vibhor2702/pr-review/internal/ci"
	"github.com/Vibhor2702/pr-review/internal/config"
	"github.com/Vibhor2702/pr-review/internal/output"
	"github.com/Vibhor2702/pr-review/internal/pipeline"
)

var (
	flagProvider string
	flagOwner    string
	flagRepo     string
	flagPR       int
	flagToken    string
	flagLLM      string
	flagModel    string
	flagFormat   string
	flagOut      string
	flagProfile  string
	flagNoLLM    bool
	flagPost     bool
)

func addReviewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagProvider, "provider", "github", "Git provider (github, gitlab, bitbucket)")
	cmd.Flags().StringVar(&flagOwner, "owner", "", "Repository owner or workspace")
	cmd.Flags().StringVar(&flagRepo, "repo", "", "Repository name")
	cmd.Flags().IntVar(&flagPR, "pr", 0, "Pull request number")
	cmd.Flags().StringVar(&flagToken, "token", "", "Forge API token (default: provider token env var)")
	cmd.Flags().StringVar(&flagLLM, "llm", "", "LLM provider (gemini, anthropic, openai)")
	cmd.Flags().StringVar(&flagModel, "model", "", "LLM model name")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format (text, json, markdown, sarif)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&flagProfile, "profile", "", "Scoring profile (default, strict)")
	cmd.Flags().BoolVar(&flagNoLLM, "no-llm", false, "Skip the LLM review pass")
	cmd.Flags().BoolVar(&flagPost, "post", false, "Post the review back to the forge")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagLLM != "" {
		m["llmProvider"] = flagLLM
	}
	if flagModel != "" {
		m["llmModel"] = flagModel
	}
	if flagProfile != "" {
		m["scoringProfile"] = flagProfile
	}
	return m
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review a pull request",
	Long:  "Fetch a pull request, analyze its changed files, score it, and print the review. The exit code reflects the score: 0 for 80+, 1 for 60-79, 2 below 60.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagOwner == "" || flagRepo == "" || flagPR <= 0 {
			return fmt.Errorf("--owner, --repo, and --pr are required")
		}
		if _, err := output.GetWriter(flagFormat); err != nil {
			return err
		}

		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}

		if missing := cfg.MissingFor(flagProvider, flagNoLLM); len(missing) > 0 && flagToken == "" {
			fmt.Fprintf(os.Stderr, "Warning: %s not set, continuing with reduced capability\n", strings.Join(missing, ", "))
		}

		store, err := artifacts.NewStore(cfg.ArtifactsDir)
		if err != nil {
			return err
		}

		progress := func(stage, message string) {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", stage, message)
		}

		p := pipeline.New(cfg, store, progress)
		rec, err := p.Run(context.Background(), pipeline.Options{
			Provider: flagProvider,
			Owner:    flagOwner,
			Repo:     flagRepo,
			Number:   flagPR,
			Token:    flagToken,
			NoLLM:    flagNoLLM,
			Post:     flagPost,
		})
		if err != nil {
			if rec == nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				exitCode = ci.ExitRunErr
				return nil
			}
			// Posting failed but the review completed; report and continue.
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}

		if err := output.WriteReport(rec, flagFormat, flagOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			exitCode = ci.ExitRunErr
			return nil
		}

		if ci.InGitHubActions() {
			if err := ci.PublishGitHubOutputs(rec); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}
		}

		exitCode = ci.ExitCode(rec.Score.Score)
		return nil
	},
}

func init() {
	addReviewFlags(reviewCmd)
}
