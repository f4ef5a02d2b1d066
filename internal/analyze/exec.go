package analyze

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// writeTemp writes file content to a temp file for tools that only read from
// disk. The caller must invoke cleanup.
func writeTemp(content, suffix string) (path string, cleanup func(), err error) {
	f, err := os.CreateTemp("", "prreview-*"+suffix)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", nil, fmt.Errorf("writing temp file: %w", err)
	}
	f.Close()
	return f.Name(), func() { os.Remove(f.Name()) }, nil
}

// runTool executes an external analyzer and returns its stdout. A missing
// binary returns ok=false so callers can degrade to zero findings; a
// non-zero exit with output is not an error, since linters exit non-zero
// when they find issues.
func runTool(ctx context.Context, name string, args ...string) (stdout string, ok bool, err error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", false, nil
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), true, nil
		}
		return "", false, err
	}
	return string(out), true, nil
}
