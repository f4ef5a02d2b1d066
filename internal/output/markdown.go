package output

import (
	"fmt"
	"io"

	"github.com/Vibhor2702/pr-review/internal/artifacts"
	"github.com/Vibhor2702/pr-review/internal/review"
)

// MarkdownWriter outputs the review report as markdown with a score
// section prepended, suitable for posting as a PR comment or writing
// to a CI step summary.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, rec *artifacts.Record) error {
	pr := rec.PRContext
	score := rec.Score
	b := score.Breakdown

	ew := &errWriter{w: w}
	ew.printf("## Quality Score: %.1f/100 (%s)\n\n", score.Score, score.Grade)
	if pr.Owner != "" || pr.Repo != "" {
		ew.printf("Reviewing %s/%s #%d on %s\n\n", pr.Owner, pr.Repo, pr.Number, pr.Provider)
	}

	ew.println("| Component | Penalty |")
	ew.println("|-----------|---------|")
	ew.printf("| Style | %.1f |\n", b.StylePenalty)
	ew.printf("| Security | %.1f |\n", b.SecurityPenalty)
	ew.printf("| Complexity | %.1f |\n", b.ComplexityPenalty)
	ew.printf("| Test coverage | %.1f |\n", b.TestCoveragePenalty)
	ew.printf("| PR size | %.1f |\n", b.SizePenalty)
	ew.printf("| **Total** | **%.1f** |\n\n", b.TotalPenalty)

	if len(score.Recommendations) > 0 {
		ew.println("### Recommendations")
		for _, r := range score.Recommendations {
			ew.printf("- %s\n", r)
		}
		ew.println("")
	}
	if ew.err != nil {
		return ew.err
	}

	if _, err := io.WriteString(w, review.RenderMarkdown(rec.Review)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
