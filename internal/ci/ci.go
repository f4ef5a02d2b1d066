// Package ci publishes review results to the surrounding CI system.
//
// GitHub Actions is detected through its well-known environment
// variables. Outputs are appended to the files Actions provides, so
// downstream workflow steps can branch on the score.
package ci

import (
	"bytes"
	"fmt"
	"os"

	"github.com/Vibhor2702/pr-review/internal/artifacts"
	"github.com/Vibhor2702/pr-review/internal/output"
)

// Exit codes for the review command, keyed on the final score.
const (
	ExitPass   = 0 // score >= 80
	ExitWarn   = 1 // score >= 60
	ExitFail   = 2 // score < 60
	ExitRunErr = 3 // the review itself failed
)

// ExitCode maps a final score to the process exit code.
func ExitCode(score float64) int {
	switch {
	case score >= 80:
		return ExitPass
	case score >= 60:
		return ExitWarn
	default:
		return ExitFail
	}
}

// InGitHubActions reports whether the process runs inside a GitHub
// Actions job.
func InGitHubActions() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}

// PublishGitHubOutputs appends step outputs and a job summary for the
// review. Missing env files are skipped silently so the function is safe
// to call outside Actions.
func PublishGitHubOutputs(rec *artifacts.Record) error {
	if path := os.Getenv("GITHUB_OUTPUT"); path != "" {
		lines := fmt.Sprintf("score=%.1f\ngrade=%s\ntotal_findings=%d\n",
			rec.Score.Score, rec.Score.Grade, rec.Score.Metrics.TotalFindings)
		if err := appendFile(path, []byte(lines)); err != nil {
			return fmt.Errorf("writing GITHUB_OUTPUT: %w", err)
		}
	}

	if path := os.Getenv("GITHUB_STEP_SUMMARY"); path != "" {
		var buf bytes.Buffer
		if err := (&output.MarkdownWriter{}).Write(&buf, rec); err != nil {
			return err
		}
		if err := appendFile(path, buf.Bytes()); err != nil {
			return fmt.Errorf("writing GITHUB_STEP_SUMMARY: %w", err)
		}
	}

	return nil
}

func appendFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(data)
	return err
}
