package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Vibhor2702/pr-review/internal/artifacts"
	"github.com/Vibhor2702/pr-review/internal/review"
)

// TextWriter outputs a human-readable text report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, rec *artifacts.Record) error {
	ew := &errWriter{w: w}
	pr := rec.PRContext
	score := rec.Score

	ew.printf("PR Review — %s %s/%s #%d\n", pr.Provider, pr.Owner, pr.Repo, pr.Number)
	if pr.Title != "" {
		ew.printf("Title: %s\n", pr.Title)
	}
	if pr.HeadRef != "" || pr.BaseRef != "" {
		ew.printf("Branch: %s -> %s\n", pr.HeadRef, pr.BaseRef)
	}
	ew.println(strings.Repeat("─", 60))
	ew.printf("Score: %.1f/100 (%s)\n", score.Score, score.Grade)
	ew.printf("Findings: %d total", score.Metrics.TotalFindings)
	if score.Metrics.TotalFindings > 0 {
		ew.printf(" (%d errors, %d warnings, %d info)",
			score.Metrics.ErrorCount,
			score.Metrics.WarningCount,
			score.Metrics.InfoCount,
		)
	}
	ew.println("")
	ew.printf("Changes: %d files, +%d/-%d lines\n",
		score.Metrics.FilesChanged, score.Metrics.LinesAdded, score.Metrics.LinesRemoved)
	ew.println(strings.Repeat("─", 60))

	b := score.Breakdown
	ew.println("\nPenalties:")
	ew.printf("  Style:         -%.1f\n", b.StylePenalty)
	ew.printf("  Security:      -%.1f\n", b.SecurityPenalty)
	ew.printf("  Complexity:    -%.1f\n", b.ComplexityPenalty)
	ew.printf("  Test coverage: -%.1f\n", b.TestCoveragePenalty)
	ew.printf("  PR size:       -%.1f\n", b.SizePenalty)

	if rec.Review.Summary != "" {
		ew.println("")
		for _, line := range wrapText(rec.Review.Summary, 70) {
			ew.printf("%s\n", line)
		}
	}

	if len(score.Recommendations) > 0 {
		ew.println("\nRecommendations:")
		for _, r := range score.Recommendations {
			for i, line := range wrapText(r, 66) {
				if i == 0 {
					ew.printf("  - %s\n", line)
				} else {
					ew.printf("    %s\n", line)
				}
			}
		}
	}

	if len(rec.Review.Comments) == 0 {
		ew.println("\nNo issues found. Looks good!")
		return ew.err
	}

	// Group by severity (errors first), then by file
	grouped := groupBySeverity(rec.Review.Comments)
	for _, sev := range []review.Severity{review.SeverityError, review.SeverityWarning, review.SeverityInfo} {
		comments := grouped[sev]
		if len(comments) == 0 {
			continue
		}

		label := strings.ToUpper(string(sev))
		ew.printf("\n%s %s\n", severityIcon(sev), label)
		ew.println(strings.Repeat("─", 40))

		sort.SliceStable(comments, func(i, j int) bool {
			if comments[i].File != comments[j].File {
				return comments[i].File < comments[j].File
			}
			return comments[i].Line < comments[j].Line
		})

		for _, c := range comments {
			ew.printf("\n  %s:%d  [%s] %s\n", c.File, c.Line, c.Tool, c.Code)
			for _, line := range wrapText(c.Message, 70) {
				ew.printf("    %s\n", line)
			}
			if c.Suggestion != "" {
				ew.println("  Suggestion:")
				for _, line := range wrapText(c.Suggestion, 70) {
					ew.printf("    %s\n", line)
				}
			}
			if c.Confidence != nil {
				ew.printf("  Confidence: %.0f%%\n", *c.Confidence*100)
			}
		}
	}

	ew.printf("\n%s\n", strings.Repeat("─", 60))
	ew.printf("Run %s at %s\n", rec.RunID, rec.Timestamp)

	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

func groupBySeverity(comments []review.Comment) map[review.Severity][]review.Comment {
	m := make(map[review.Severity][]review.Comment)
	for _, c := range comments {
		m[c.Severity] = append(m[c.Severity], c)
	}
	return m
}

func severityIcon(s review.Severity) string {
	switch s {
	case review.SeverityError:
		return "[!!]"
	case review.SeverityWarning:
		return "[!]"
	case review.SeverityInfo:
		return "[-]"
	default:
		return "[?]"
	}
}

func wrapText(text string, width int) []string {
	if len(text) <= width {
		return []string{text}
	}
	var lines []string
	words := strings.Fields(text)
	var current strings.Builder
	for _, word := range words {
		if current.Len()+len(word)+1 > width && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
