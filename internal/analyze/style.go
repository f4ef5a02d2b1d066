package analyze

import (
	"context"
	"strconv"
	"strings"

	"github.com/Vibhor2702/pr-review/internal/review"
)

// StyleAnalyzer runs flake8 over Python files. A missing flake8 binary
// produces zero findings.
type StyleAnalyzer struct{}

func (a *StyleAnalyzer) Name() string { return "style" }

func (a *StyleAnalyzer) Analyze(ctx context.Context, path, content string) ([]review.Finding, error) {
	if !isPythonFile(path) {
		return nil, nil
	}

	tmp, cleanup, err := writeTemp(content, ".py")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	out, ok, err := runTool(ctx, "flake8", tmp)
	if err != nil || !ok {
		return nil, err
	}

	return parseFlake8Output(out), nil
}

// parseFlake8Output parses flake8's default output format:
// filename:line:col: CODE message
func parseFlake8Output(out string) []review.Finding {
	var findings []review.Finding
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ":", 4)
		if len(parts) < 4 {
			continue
		}
		lineNum, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			continue
		}
		rest := strings.TrimSpace(parts[3])
		code, msg, found := strings.Cut(rest, " ")
		if !found {
			code, msg = "", rest
		}
		findings = append(findings, review.Finding{
			Line:     lineNum,
			Code:     code,
			Message:  msg,
			Severity: review.SeverityWarning,
		})
	}
	return findings
}
