package review

import (
	"fmt"
	"strings"
)

// RenderMarkdown produces a markdown report for a generated review. File
// sections appear in first-seen order; comments within a file keep their
// input order.
func RenderMarkdown(res Result) string {
	var b strings.Builder

	b.WriteString("# 🔍 PR Review Report\n\n")

	b.WriteString("## Summary\n")
	b.WriteString(res.Summary)
	b.WriteString("\n\n")

	md := res.Metadata
	b.WriteString("## 📊 Statistics\n")
	fmt.Fprintf(&b, "- **Total Issues:** %d\n", md.TotalFindings)
	fmt.Fprintf(&b, "- **Errors:** %d\n", md.SeverityBreakdown["error"])
	fmt.Fprintf(&b, "- **Warnings:** %d\n", md.SeverityBreakdown["warning"])
	fmt.Fprintf(&b, "- **Suggestions:** %d\n\n", md.SeverityBreakdown["info"])

	if len(md.MostProblematicFiles) > 0 {
		b.WriteString("## 📁 Files with Most Issues\n")
		for _, fi := range md.MostProblematicFiles {
			fmt.Fprintf(&b, "- `%s`: %d issues\n", fi.File, fi.Issues)
		}
		b.WriteString("\n")
	}

	if len(res.Comments) > 0 {
		b.WriteString("## 🔍 Detailed Findings\n\n")

		fileOrder := []string{}
		byFile := map[string][]Comment{}
		for _, c := range res.Comments {
			if _, seen := byFile[c.File]; !seen {
				fileOrder = append(fileOrder, c.File)
			}
			byFile[c.File] = append(byFile[c.File], c)
		}

		for _, path := range fileOrder {
			fmt.Fprintf(&b, "### 📄 `%s`\n\n", path)
			for _, c := range byFile[path] {
				fmt.Fprintf(&b, "**Line %d** %s %s\n", c.Line, severitySymbol(c.Severity), strings.ToUpper(string(c.Severity)))
				fmt.Fprintf(&b, "- **Issue:** %s\n", c.Message)
				if c.Rule != "" {
					fmt.Fprintf(&b, "- **Rule:** `%s`\n", c.Rule)
				}
				if c.Suggestion != "" {
					fmt.Fprintf(&b, "- **Suggestion:** %s\n", c.Suggestion)
				}
				if c.Tool != "" {
					fmt.Fprintf(&b, "- **Tool:** %s\n", c.Tool)
				}
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("---\n")
	fmt.Fprintf(&b, "*Report generated on %s*", md.Timestamp)

	return b.String()
}

func severitySymbol(s Severity) string {
	switch s {
	case SeverityError:
		return "❌"
	case SeverityWarning:
		return "⚠️"
	case SeverityInfo:
		return "ℹ️"
	default:
		return "📝"
	}
}

// FormatCommentBody renders a single comment for posting to a forge.
func FormatCommentBody(c Comment) string {
	parts := []string{
		fmt.Sprintf("%s **%s**", severitySymbol(c.Severity), strings.ToUpper(string(c.Severity))),
		"",
		c.Message,
	}
	if c.Suggestion != "" {
		parts = append(parts, "", "**Suggestion:**", c.Suggestion)
	}
	if c.Rule != "" {
		parts = append(parts, "", fmt.Sprintf("**Rule:** `%s`", c.Rule))
	}
	parts = append(parts, "", fmt.Sprintf("*Found by: %s*", c.Tool))
	return strings.Join(parts, "\n")
}
