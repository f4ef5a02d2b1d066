package checkout

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

// Manager clones PR branches into a temp directory and tracks the checkouts
// it owns so they can be cleaned up.
type Manager struct {
	tempDir string

	mu     sync.Mutex
	active map[string]bool
}

// NewManager creates a checkout manager. An empty tempDir uses the system
// temp directory.
func NewManager(tempDir string) *Manager {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Manager{
		tempDir: tempDir,
		active:  make(map[string]bool),
	}
}

// CheckoutPR shallow-clones the repository and checks out the PR head
// branch. If the head branch cannot be checked out it falls back to the base
// branch, and failing that stays on the clone's default branch. Returns the
// checkout path.
func (m *Manager) CheckoutPR(ctx context.Context, repoURL, headRef, baseRef string) (string, error) {
	path := filepath.Join(m.tempDir, fmt.Sprintf("pr_review_%s_%s", RepoName(repoURL), sanitizeRef(headRef)))

	if err := os.RemoveAll(path); err != nil {
		return "", fmt.Errorf("clearing checkout path: %w", err)
	}

	if _, err := gitRun(ctx, "", "clone", "--depth", "1", "--no-single-branch", repoURL, path); err != nil {
		os.RemoveAll(path)
		return "", fmt.Errorf("cloning %s: %w", repoURL, err)
	}

	// Fetching the head ref explicitly covers repos where the shallow clone
	// did not bring the branch tip along.
	if _, err := gitRun(ctx, path, "fetch", "origin",
		fmt.Sprintf("refs/heads/%s:refs/remotes/origin/%s", headRef, headRef)); err != nil {
		log.Printf("checkout: fetching %s: %v", headRef, err)
	}

	if _, err := gitRun(ctx, path, "checkout", "-b", sanitizeRef(headRef), "origin/"+headRef); err != nil {
		log.Printf("checkout: head branch %s unavailable, trying base %s", headRef, baseRef)
		if _, err := gitRun(ctx, path, "checkout", "-b", sanitizeRef(baseRef), "origin/"+baseRef); err != nil {
			log.Printf("checkout: base branch %s unavailable, staying on default branch", baseRef)
		}
	}

	m.mu.Lock()
	m.active[path] = true
	m.mu.Unlock()

	return path, nil
}

// ChangedFiles lists files that differ between the base and head branches.
// When headRef is empty the current branch is compared against the base.
func (m *Manager) ChangedFiles(ctx context.Context, repoPath, baseRef, headRef string) ([]string, error) {
	var out string
	var err error
	if headRef != "" {
		out, err = gitRun(ctx, repoPath, "diff", "--name-only",
			fmt.Sprintf("origin/%s...origin/%s", baseRef, headRef))
		if err != nil {
			out, err = gitRun(ctx, repoPath, "diff", "--name-only", "origin/"+baseRef)
		}
	} else {
		out, err = gitRun(ctx, repoPath, "diff", "--name-only", "origin/"+baseRef)
		if err != nil {
			out, err = gitRun(ctx, repoPath, "diff", "--name-only", "HEAD~1")
		}
	}
	if err != nil {
		return nil, fmt.Errorf("listing changed files: %w", err)
	}

	var files []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// FileDiff returns the unified diff of one file against the base branch.
func (m *Manager) FileDiff(ctx context.Context, repoPath, filePath, baseRef string) (string, error) {
	out, err := gitRun(ctx, repoPath, "diff", "origin/"+baseRef, "--", filePath)
	if err != nil {
		out, err = gitRun(ctx, repoPath, "diff", "HEAD~1", "--", filePath)
	}
	if err != nil {
		return "", fmt.Errorf("diffing %s: %w", filePath, err)
	}
	return out, nil
}

// Cleanup removes a tracked checkout. An empty path removes all of them.
// Cleanup failures are logged, not returned, so a stuck temp dir never fails
// a review run.
func (m *Manager) Cleanup(repoPath string) {
	m.mu.Lock()
	var paths []string
	if repoPath != "" {
		if m.active[repoPath] {
			paths = []string{repoPath}
		}
	} else {
		for p := range m.active {
			paths = append(paths, p)
		}
	}
	m.mu.Unlock()

	for _, p := range paths {
		if err := os.RemoveAll(p); err != nil {
			log.Printf("checkout: cleaning up %s: %v", p, err)
			continue
		}
		m.mu.Lock()
		delete(m.active, p)
		m.mu.Unlock()
	}
}

// RepoName extracts the repository name from a clone URL.
func RepoName(repoURL string) string {
	repoURL = strings.TrimSuffix(repoURL, ".git")
	repoURL = strings.TrimSuffix(repoURL, "/")
	if i := strings.LastIndexAny(repoURL, "/:"); i >= 0 {
		repoURL = repoURL[i+1:]
	}
	if repoURL == "" {
		return "unknown_repo"
	}
	return repoURL
}

// sanitizeRef makes a branch name safe to use as a directory component.
func sanitizeRef(ref string) string {
	return strings.ReplaceAll(ref, "/", "_")
}

func gitRun(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return string(out), fmt.Errorf("%s: %s", err, string(exitErr.Stderr))
		}
		return "", err
	}
	return string(out), nil
}
