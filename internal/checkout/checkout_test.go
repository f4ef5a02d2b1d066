package checkout

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

// initTestRepo creates a local repo with a main branch and a feature branch
// that adds one file.
func initTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}

	run("init")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "test")
	run("checkout", "-b", "main")

	if err := os.WriteFile(filepath.Join(dir, "app.py"), []byte("print('hi')\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	run("add", ".")
	run("commit", "-m", "initial commit")

	run("checkout", "-b", "feature/login")
	if err := os.WriteFile(filepath.Join(dir, "auth.py"), []byte("def login():\n    pass\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	run("add", ".")
	run("commit", "-m", "add login")
	run("checkout", "main")

	return dir
}

func TestCheckoutPR(t *testing.T) {
	requireGit(t)
	src := initTestRepo(t)

	m := NewManager(t.TempDir())
	path, err := m.CheckoutPR(context.Background(), src, "feature/login", "main")
	if err != nil {
		t.Fatalf("CheckoutPR error: %v", err)
	}
	defer m.Cleanup("")

	if _, err := os.Stat(filepath.Join(path, "auth.py")); err != nil {
		t.Errorf("head branch file missing after checkout: %v", err)
	}

	files, err := m.ChangedFiles(context.Background(), path, "main", "feature/login")
	if err != nil {
		t.Fatalf("ChangedFiles error: %v", err)
	}
	if len(files) != 1 || files[0] != "auth.py" {
		t.Errorf("changed files = %v, want [auth.py]", files)
	}

	diff, err := m.FileDiff(context.Background(), path, "auth.py", "main")
	if err != nil {
		t.Fatalf("FileDiff error: %v", err)
	}
	if diff == "" {
		t.Error("expected non-empty diff for changed file")
	}
}

func TestCheckoutPR_HeadRefFallback(t *testing.T) {
	requireGit(t)
	src := initTestRepo(t)

	m := NewManager(t.TempDir())
	path, err := m.CheckoutPR(context.Background(), src, "does-not-exist", "main")
	if err != nil {
		t.Fatalf("CheckoutPR error: %v", err)
	}
	defer m.Cleanup(path)

	if _, err := os.Stat(filepath.Join(path, "app.py")); err != nil {
		t.Errorf("base branch file missing after fallback: %v", err)
	}
}

func TestCleanup(t *testing.T) {
	requireGit(t)
	src := initTestRepo(t)

	m := NewManager(t.TempDir())
	path, err := m.CheckoutPR(context.Background(), src, "feature/login", "main")
	if err != nil {
		t.Fatalf("CheckoutPR error: %v", err)
	}

	m.Cleanup(path)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("checkout dir still exists after cleanup")
	}
}

func TestRepoName(t *testing.T) {
	tests := []struct{ url, want string }{
		{"https://github.com/octo/demo.git", "demo"},
		{"https://gitlab.com/group/sub/proj", "proj"},
		{"git@github.com:octo/demo.git", "demo"},
		{"", "unknown_repo"},
	}
	for _, tt := range tests {
		if got := RepoName(tt.url); got != tt.want {
			t.Errorf("RepoName(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestSanitizeRef(t *testing.T) {
	if got := sanitizeRef("feature/login/v2"); got != "feature_login_v2" {
		t.Errorf("sanitizeRef = %q", got)
	}
}
