package analyze

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Vibhor2702/pr-review/internal/review"
)

// Cyclomatic complexity thresholds: findings start above reportThreshold,
// and become warnings above warnThreshold.
const (
	reportThreshold = 10
	warnThreshold   = 15
)

// ComplexityAnalyzer runs radon cyclomatic complexity over Python files.
// A missing radon binary produces zero findings.
type ComplexityAnalyzer struct{}

func (a *ComplexityAnalyzer) Name() string { return "complexity" }

type radonBlock struct {
	Name       string `json:"name"`
	LineNo     int    `json:"lineno"`
	Complexity int    `json:"complexity"`
}

func (a *ComplexityAnalyzer) Analyze(ctx context.Context, path, content string) ([]review.Finding, error) {
	if !isPythonFile(path) {
		return nil, nil
	}

	tmp, cleanup, err := writeTemp(content, ".py")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	out, ok, err := runTool(ctx, "radon", "cc", "-j", tmp)
	if err != nil || !ok || out == "" {
		return nil, err
	}

	return parseRadonOutput(out), nil
}

func parseRadonOutput(out string) []review.Finding {
	var report map[string][]radonBlock
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		return nil
	}

	var findings []review.Finding
	for _, blocks := range report {
		for _, b := range blocks {
			if b.Complexity <= reportThreshold {
				continue
			}
			severity := review.SeverityInfo
			if b.Complexity > warnThreshold {
				severity = review.SeverityWarning
			}
			line := b.LineNo
			if line == 0 {
				line = 1
			}
			name := b.Name
			if name == "" {
				name = "function"
			}
			findings = append(findings, review.Finding{
				Line:     line,
				Code:     fmt.Sprintf("COMPLEXITY_%d", b.Complexity),
				Message:  fmt.Sprintf("High cyclomatic complexity (%d) in %s", b.Complexity, name),
				Severity: severity,
			})
		}
	}
	return findings
}
