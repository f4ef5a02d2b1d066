package analyze

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/Vibhor2702/pr-review/internal/review"
)

// SecurityAnalyzer runs bandit over Python files. A missing bandit binary
// produces zero findings.
type SecurityAnalyzer struct{}

func (a *SecurityAnalyzer) Name() string { return "security" }

type banditReport struct {
	Results []banditIssue `json:"results"`
}

type banditIssue struct {
	LineNumber    int    `json:"line_number"`
	TestID        string `json:"test_id"`
	IssueText     string `json:"issue_text"`
	IssueSeverity string `json:"issue_severity"`
}

func (a *SecurityAnalyzer) Analyze(ctx context.Context, path, content string) ([]review.Finding, error) {
	if !isPythonFile(path) {
		return nil, nil
	}

	tmp, cleanup, err := writeTemp(content, ".py")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	out, ok, err := runTool(ctx, "bandit", "-f", "json", tmp)
	if err != nil || !ok || out == "" {
		return nil, err
	}

	return parseBanditOutput(out), nil
}

func parseBanditOutput(out string) []review.Finding {
	var report banditReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		return nil
	}

	var findings []review.Finding
	for _, issue := range report.Results {
		line := issue.LineNumber
		if line == 0 {
			line = 1
		}
		code := issue.TestID
		if code == "" {
			code = "BANDIT"
		}
		msg := issue.IssueText
		if msg == "" {
			msg = "Security issue"
		}
		findings = append(findings, review.Finding{
			Line:     line,
			Code:     code,
			Message:  msg,
			Severity: banditSeverity(issue.IssueSeverity),
		})
	}
	return findings
}

func banditSeverity(s string) review.Severity {
	switch strings.ToUpper(s) {
	case "HIGH":
		return review.SeverityError
	case "MEDIUM":
		return review.SeverityWarning
	default:
		return review.SeverityInfo
	}
}
