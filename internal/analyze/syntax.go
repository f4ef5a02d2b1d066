package analyze

import (
	"context"
	"errors"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/Vibhor2702/pr-review/internal/review"
)

// SyntaxAnalyzer checks Python files for syntax errors by byte-compiling
// them with the python interpreter.
type SyntaxAnalyzer struct{}

func (a *SyntaxAnalyzer) Name() string { return "syntax" }

var syntaxLineRe = regexp.MustCompile(`, line (\d+)`)

func (a *SyntaxAnalyzer) Analyze(ctx context.Context, path, content string) ([]review.Finding, error) {
	if !isPythonFile(path) {
		return nil, nil
	}

	tmp, cleanup, err := writeTemp(content, ".py")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	cmd := exec.CommandContext(ctx, "python3", "-m", "py_compile", tmp)
	out, err := cmd.CombinedOutput()
	if err == nil {
		return nil, nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		return nil, nil
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return nil, err
	}

	line := 1
	if m := syntaxLineRe.FindSubmatch(out); m != nil {
		if n, err := strconv.Atoi(string(m[1])); err == nil {
			line = n
		}
	}

	msg := "invalid syntax"
	for _, l := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			msg = l
		}
	}

	return []review.Finding{{
		Line:     line,
		Code:     "SYNTAX_ERROR",
		Message:  "Syntax error: " + msg,
		Severity: review.SeverityError,
	}}, nil
}
