package review

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Generate builds a structured review from findings. It is pure and total:
// malformed findings degrade to per-field defaults rather than failing the
// batch, and the Nth input finding always maps to the Nth output comment.
func Generate(findings []Finding, pr PRContext) Result {
	return Result{
		Comments: convertComments(findings),
		Summary:  buildSummary(findings),
		Metadata: buildMetadata(findings, pr),
	}
}

func convertComments(findings []Finding) []Comment {
	comments := make([]Comment, 0, len(findings))
	for _, f := range findings {
		c := Comment{
			File:     f.Path(),
			Line:     f.LineNumber(),
			Side:     "right",
			Message:  messageOrDefault(f),
			Severity: NormalizeSeverity(string(f.Severity)),
			Tool:     f.ToolName(),
			Code:     f.Code,
		}
		if f.Suggestion != "" {
			c.Suggestion = f.Suggestion
		}
		if f.Code != "" {
			c.Rule = f.Code
		}
		if f.Confidence != nil {
			conf := ClampConfidence(*f.Confidence)
			c.Confidence = &conf
		}
		if f.Reasoning != "" {
			c.Reasoning = f.Reasoning
		}
		comments = append(comments, c)
	}
	return comments
}

func messageOrDefault(f Finding) string {
	if f.Message == "" {
		return "No message"
	}
	return f.Message
}

func buildSummary(findings []Finding) string {
	if len(findings) == 0 {
		return "✅ No issues found. This PR looks good!"
	}

	sev := map[Severity]int{}
	toolOrder := []string{}
	toolCounts := map[string]int{}
	for _, f := range findings {
		sev[NormalizeSeverity(string(f.Severity))]++
		tool := f.ToolName()
		if _, seen := toolCounts[tool]; !seen {
			toolOrder = append(toolOrder, tool)
		}
		toolCounts[tool]++
	}

	var parts []string

	total := len(findings)
	switch {
	case sev[SeverityError] > 0:
		parts = append(parts, fmt.Sprintf("❌ Found %d issues (%d errors)", total, sev[SeverityError]))
	case sev[SeverityWarning] > 0:
		parts = append(parts, fmt.Sprintf("⚠️ Found %d issues (%d warnings)", total, sev[SeverityWarning]))
	default:
		parts = append(parts, fmt.Sprintf("ℹ️ Found %d suggestions", total))
	}

	var breakdown []string
	if sev[SeverityError] > 0 {
		breakdown = append(breakdown, fmt.Sprintf("%d errors", sev[SeverityError]))
	}
	if sev[SeverityWarning] > 0 {
		breakdown = append(breakdown, fmt.Sprintf("%d warnings", sev[SeverityWarning]))
	}
	if sev[SeverityInfo] > 0 {
		breakdown = append(breakdown, fmt.Sprintf("%d suggestions", sev[SeverityInfo]))
	}
	if len(breakdown) > 0 {
		parts = append(parts, "Breakdown: "+strings.Join(breakdown, ", "))
	}

	if len(toolOrder) > 1 {
		var sources []string
		for _, tool := range toolOrder {
			sources = append(sources, fmt.Sprintf("%s: %d", tool, toolCounts[tool]))
		}
		parts = append(parts, "Sources: "+strings.Join(sources, ", "))
	}

	if sev[SeverityError] > 0 {
		parts = append(parts, "Please address all errors before merging.")
	} else if sev[SeverityWarning] > 5 {
		parts = append(parts, "Consider addressing the warnings for better code quality.")
	}

	return strings.Join(parts, "\n\n")
}

func buildMetadata(findings []Finding, pr PRContext) Metadata {
	sevCounts := map[string]int{"error": 0, "warning": 0, "info": 0}
	toolCounts := map[string]int{}
	fileCounts := map[string]int{}
	fileOrder := []string{}

	var confSum float64
	var confN int

	for _, f := range findings {
		sevCounts[string(NormalizeSeverity(string(f.Severity)))]++
		toolCounts[f.ToolName()]++
		path := f.Path()
		if _, seen := fileCounts[path]; !seen {
			fileOrder = append(fileOrder, path)
		}
		fileCounts[path]++
		if f.Confidence != nil {
			confSum += ClampConfidence(*f.Confidence)
			confN++
		}
	}

	var avgConf *float64
	if confN > 0 {
		avg := confSum / float64(confN)
		avgConf = &avg
	}

	return Metadata{
		TotalFindings:        len(findings),
		SeverityBreakdown:    sevCounts,
		ToolBreakdown:        toolCounts,
		FileBreakdown:        fileCounts,
		MostProblematicFiles: topFiles(fileOrder, fileCounts, 5),
		AvgLLMConfidence:     avgConf,
		Timestamp:            time.Now().UTC().Format(time.RFC3339),
		PRInfo: PRInfo{
			Provider:     providerOrDefault(pr.Provider),
			PRNumber:     pr.Number,
			FilesChanged: len(pr.Files),
		},
	}
}

func providerOrDefault(p string) string {
	if p == "" {
		return "unknown"
	}
	return p
}

// topFiles returns the files with the most findings, descending, ties kept
// in first-encountered order, truncated to limit.
func topFiles(order []string, counts map[string]int, limit int) []FileIssueCount {
	ranked := make([]FileIssueCount, 0, len(order))
	for _, path := range order {
		ranked = append(ranked, FileIssueCount{File: path, Issues: counts[path]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Issues > ranked[j].Issues
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
