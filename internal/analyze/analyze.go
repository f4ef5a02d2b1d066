package analyze

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Vibhor2702/pr-review/internal/review"
)

// Analyzer runs one static check over a single file's content.
type Analyzer interface {
	Name() string
	Analyze(ctx context.Context, path, content string) ([]review.Finding, error)
}

// toolTimeout bounds each external analyzer invocation.
const toolTimeout = 30 * time.Second

// Runner drives all analyzers over the changed files of a PR.
type Runner struct {
	static []Analyzer
	llm    *LLMReviewer
}

// NewRunner creates a runner with the standard static analyzers. The LLM
// reviewer is optional; pass nil to run static checks only.
func NewRunner(llm *LLMReviewer) *Runner {
	return &Runner{
		static: []Analyzer{
			&SyntaxAnalyzer{},
			&SecurityAnalyzer{},
			&StyleAnalyzer{},
			&ComplexityAnalyzer{},
		},
		llm: llm,
	}
}

// AnalyzeFiles analyzes the changed files of a PR inside a checked-out
// working tree. Missing, binary, and empty files are skipped. Analyzer
// failures are logged and do not abort the run.
func (r *Runner) AnalyzeFiles(ctx context.Context, repoPath string, changedFiles []string, pr review.PRContext) []review.Finding {
	var all []review.Finding

	for _, file := range changedFiles {
		fullPath := filepath.Join(repoPath, file)
		if !isTextFile(file) {
			continue
		}
		data, err := os.ReadFile(fullPath)
		if err != nil || len(data) == 0 {
			continue
		}
		content := string(data)

		log.Printf("analyzing %s", file)
		findings := r.AnalyzeContent(ctx, file, content, pr.PatchFor(file))
		all = append(all, findings...)
	}

	return all
}

// AnalyzeContent runs all analyzers over one file's content and patch. Used
// directly when no working tree is available and the patch is all we have.
func (r *Runner) AnalyzeContent(ctx context.Context, path, content, patch string) []review.Finding {
	var findings []review.Finding

	for _, a := range r.static {
		toolCtx, cancel := context.WithTimeout(ctx, toolTimeout)
		fs, err := a.Analyze(toolCtx, path, content)
		cancel()
		if err != nil {
			log.Printf("analyzer %s failed for %s: %v", a.Name(), path, err)
			continue
		}
		for i := range fs {
			fs[i].File = path
			fs[i].Tool = a.Name()
		}
		findings = append(findings, fs...)
	}

	if r.llm != nil {
		llmFindings := r.llm.ReviewFile(ctx, path, patch, findings)
		for i := range llmFindings {
			llmFindings[i].File = path
		}
		findings = append(findings, llmFindings...)
	}

	return findings
}

var textExtensions = map[string]bool{
	".py": true, ".js": true, ".ts": true, ".jsx": true, ".tsx": true,
	".java": true, ".go": true, ".rs": true, ".c": true, ".cpp": true,
	".h": true, ".hpp": true, ".cs": true, ".php": true, ".rb": true,
	".sh": true, ".sql": true, ".html": true, ".css": true,
	".md": true, ".txt": true, ".json": true, ".yaml": true, ".yml": true,
	".toml": true, ".cfg": true, ".ini": true,
}

func isTextFile(path string) bool {
	return textExtensions[strings.ToLower(filepath.Ext(path))]
}

func isPythonFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".py"
}
