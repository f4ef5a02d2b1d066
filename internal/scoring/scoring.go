package scoring

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Vibhor2702/pr-review/internal/review"
)

// Per-component penalty caps.
const (
	styleCap      = 15.0
	securityCap   = 30.0
	complexityCap = 20.0
	coverageCap   = 15.0
)

// Breakdown names each penalty component plus the final score.
type Breakdown struct {
	BaseScore           float64 `json:"base_score"`
	StylePenalty        float64 `json:"style_penalty"`
	SecurityPenalty     float64 `json:"security_penalty"`
	ComplexityPenalty   float64 `json:"complexity_penalty"`
	TestCoveragePenalty float64 `json:"test_coverage_penalty"`
	SizePenalty         float64 `json:"size_penalty"`
	TotalPenalty        float64 `json:"total_penalty"`
	FinalScore          float64 `json:"final_score"`
}

// Metrics are simple aggregates over the findings and file changes.
type Metrics struct {
	TotalFindings int `json:"total_findings"`
	FilesChanged  int `json:"files_changed"`
	LinesAdded    int `json:"lines_added"`
	LinesRemoved  int `json:"lines_removed"`
	NetLines      int `json:"net_lines"`
	ErrorCount    int `json:"error_count"`
	WarningCount  int `json:"warning_count"`
	InfoCount     int `json:"info_count"`
}

// Result is the scoring output: final score (rounded to one decimal,
// floored at 0), letter grade, per-component breakdown, ordered
// recommendations, and metrics.
type Result struct {
	Score           float64   `json:"score"`
	Grade           string    `json:"grade"`
	Breakdown       Breakdown `json:"breakdown"`
	Recommendations []string  `json:"recommendations"`
	Metrics         Metrics   `json:"metrics"`
}

// Calculate scores a PR from its findings and file-change metadata.
// Weights are applied as given; build them from DefaultWeights for the
// standard multipliers.
func Calculate(findings []review.Finding, pr review.PRContext, w Weights) Result {
	b := Breakdown{
		BaseScore:           w.BaseScore,
		StylePenalty:        stylePenalty(findings, w),
		SecurityPenalty:     securityPenalty(findings, w),
		ComplexityPenalty:   complexityPenalty(findings),
		TestCoveragePenalty: testCoveragePenalty(pr.Files, w),
		SizePenalty:         sizePenalty(pr.Files),
	}
	b.TotalPenalty = b.StylePenalty + b.SecurityPenalty + b.ComplexityPenalty +
		b.TestCoveragePenalty + b.SizePenalty
	b.FinalScore = math.Max(0, b.BaseScore-b.TotalPenalty)

	return Result{
		Score:           math.Round(b.FinalScore*10) / 10,
		Grade:           Grade(b.FinalScore),
		Breakdown:       b,
		Recommendations: recommendations(b),
		Metrics:         metrics(findings, pr),
	}
}

func stylePenalty(findings []review.Finding, w Weights) float64 {
	var n int
	for _, f := range findings {
		if f.Tool == "style" || strings.HasPrefix(f.Code, "E") || strings.HasPrefix(f.Code, "W") {
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return math.Min(float64(n)*w.StyleIssues, styleCap)
}

func securityPenalty(findings []review.Finding, w Weights) float64 {
	var penalty float64
	for _, f := range findings {
		sev := review.NormalizeSeverity(string(f.Severity))
		if f.Tool != "security" && sev != review.SeverityError {
			continue
		}
		switch sev {
		case review.SeverityError:
			penalty += w.SecurityFindings
		case review.SeverityWarning:
			penalty += w.SecurityFindings * 0.5
		default:
			penalty += w.SecurityFindings * 0.2
		}
	}
	return math.Min(penalty, securityCap)
}

func complexityPenalty(findings []review.Finding) float64 {
	var penalty float64
	for _, f := range findings {
		if f.Tool != "complexity" && !strings.Contains(f.Code, "COMPLEXITY") {
			continue
		}
		penalty += complexityCost(f.Code)
	}
	return math.Min(penalty, complexityCap)
}

// complexityCost tiers the penalty by the numeric score encoded in
// COMPLEXITY_<N> codes; unparseable codes cost a flat 3.0.
func complexityCost(code string) float64 {
	if !strings.Contains(code, "COMPLEXITY_") {
		return 3.0
	}
	parts := strings.Split(code, "_")
	if len(parts) < 2 {
		return 3.0
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return 3.0
	}
	switch {
	case n > 20:
		return 8.0
	case n > 15:
		return 5.0
	default:
		return 2.0
	}
}

func testCoveragePenalty(files []review.FileChange, w Weights) float64 {
	if len(files) == 0 {
		return 0
	}
	var codeFiles, testFiles int
	for _, f := range files {
		if IsTestFile(f.Path) {
			testFiles++
		} else if IsCodeFile(f.Path) {
			codeFiles++
		}
	}
	if codeFiles == 0 || testFiles > 0 {
		return 0
	}
	return math.Min(float64(codeFiles)*w.TestCoverage, coverageCap)
}

func sizePenalty(files []review.FileChange) float64 {
	var total int
	for _, f := range files {
		total += f.Additions + f.Deletions
	}
	switch {
	case total > 1000:
		return 10.0
	case total > 500:
		return 5.0
	case total > 200:
		return 2.0
	default:
		return 0
	}
}

// Grade maps a numeric score to a letter grade via a fixed, non-overlapping
// threshold ladder.
func Grade(score float64) string {
	switch {
	case score >= 95:
		return "A+"
	case score >= 90:
		return "A"
	case score >= 85:
		return "A-"
	case score >= 80:
		return "B+"
	case score >= 75:
		return "B"
	case score >= 70:
		return "B-"
	case score >= 65:
		return "C+"
	case score >= 60:
		return "C"
	case score >= 55:
		return "C-"
	case score >= 50:
		return "D"
	default:
		return "F"
	}
}

// recommendations emits advisory messages in a fixed order: security first,
// then complexity, style, coverage, size, and exactly one overall-quality
// message keyed on the final score.
func recommendations(b Breakdown) []string {
	var recs []string

	if b.SecurityPenalty > 10 {
		recs = append(recs, "🔒 Address security issues before merging")
	} else if b.SecurityPenalty > 0 {
		recs = append(recs, "Review security findings")
	}

	if b.ComplexityPenalty > 10 {
		recs = append(recs, "Simplify complex functions to improve maintainability")
	} else if b.ComplexityPenalty > 0 {
		recs = append(recs, "Consider refactoring complex code sections")
	}

	if b.StylePenalty > 10 {
		recs = append(recs, "🎨 Fix style issues for better code consistency")
	} else if b.StylePenalty > 5 {
		recs = append(recs, "✨ Address major style violations")
	}

	if b.TestCoveragePenalty > 0 {
		recs = append(recs, "🧪 Add tests for new code changes")
	}

	if b.SizePenalty > 5 {
		recs = append(recs, "📏 Consider breaking large PR into smaller chunks")
	}

	switch {
	case b.FinalScore >= 90:
		recs = append(recs, "✅ Excellent code quality!")
	case b.FinalScore >= 80:
		recs = append(recs, "👍 Good code quality with minor improvements needed")
	case b.FinalScore >= 70:
		recs = append(recs, "⚠️ Moderate issues that should be addressed")
	default:
		recs = append(recs, "❌ Significant issues that need attention before merging")
	}

	return recs
}

func metrics(findings []review.Finding, pr review.PRContext) Metrics {
	m := Metrics{
		TotalFindings: len(findings),
		FilesChanged:  len(pr.Files),
	}
	for _, f := range pr.Files {
		m.LinesAdded += f.Additions
		m.LinesRemoved += f.Deletions
	}
	m.NetLines = m.LinesAdded - m.LinesRemoved
	for _, f := range findings {
		switch review.NormalizeSeverity(string(f.Severity)) {
		case review.SeverityError:
			m.ErrorCount++
		case review.SeverityWarning:
			m.WarningCount++
		default:
			m.InfoCount++
		}
	}
	return m
}

var testPatterns = []string{
	"test_", "_test.", "/tests/", "/test/",
	"spec_", "_spec.", "/specs/", "/spec/",
}

var codeExtensions = []string{
	".py", ".js", ".ts", ".java", ".go", ".rs",
	".cpp", ".c", ".cs", ".php", ".rb",
}

// IsTestFile reports whether a path matches a test-file naming pattern.
func IsTestFile(path string) bool {
	lower := strings.ToLower(path)
	for _, p := range testPatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// IsCodeFile reports whether a path has a recognized code extension.
func IsCodeFile(path string) bool {
	for _, ext := range codeExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// FormatScore renders a score and grade for display, e.g. "85.0/100 (B+)".
func FormatScore(r Result) string {
	return fmt.Sprintf("%.1f/100 (%s)", r.Score, r.Grade)
}
