package ci

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Vibhor2702/pr-review/internal/artifacts"
	"github.com/Vibhor2702/pr-review/internal/review"
	"github.com/Vibhor2702/pr-review/internal/scoring"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		score float64
		want  int
	}{
		{100, ExitPass},
		{80, ExitPass},
		{79.9, ExitWarn},
		{60, ExitWarn},
		{59.9, ExitFail},
		{0, ExitFail},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.score); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.score, got, tt.want)
		}
	}
}

func TestInGitHubActions(t *testing.T) {
	t.Setenv("GITHUB_ACTIONS", "true")
	if !InGitHubActions() {
		t.Error("expected true when GITHUB_ACTIONS=true")
	}
	t.Setenv("GITHUB_ACTIONS", "")
	if InGitHubActions() {
		t.Error("expected false when GITHUB_ACTIONS is unset")
	}
}

func TestPublishGitHubOutputs(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "output")
	summaryPath := filepath.Join(dir, "summary")
	t.Setenv("GITHUB_OUTPUT", outPath)
	t.Setenv("GITHUB_STEP_SUMMARY", summaryPath)

	rec := &artifacts.Record{
		PRContext: review.PRContext{Provider: "github", Owner: "octo", Repo: "demo", Number: 5},
		Review:    review.Result{Summary: "Found 3 issues."},
		Score: scoring.Result{
			Score:   85.5,
			Grade:   "B+",
			Metrics: scoring.Metrics{TotalFindings: 3},
		},
	}

	if err := PublishGitHubOutputs(rec); err != nil {
		t.Fatalf("PublishGitHubOutputs error: %v", err)
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading outputs: %v", err)
	}
	for _, want := range []string{"score=85.5", "grade=B+", "total_findings=3"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("outputs missing %q:\n%s", want, out)
		}
	}

	summary, err := os.ReadFile(summaryPath)
	if err != nil {
		t.Fatalf("reading summary: %v", err)
	}
	if !strings.Contains(string(summary), "Quality Score: 85.5/100 (B+)") {
		t.Errorf("summary missing score header:\n%s", summary)
	}
}

func TestPublishGitHubOutputs_OutsideActions(t *testing.T) {
	t.Setenv("GITHUB_OUTPUT", "")
	t.Setenv("GITHUB_STEP_SUMMARY", "")

	rec := &artifacts.Record{Score: scoring.Result{Score: 90, Grade: "A-"}}
	if err := PublishGitHubOutputs(rec); err != nil {
		t.Errorf("expected no-op outside Actions, got %v", err)
	}
}

func TestPublishGitHubOutputs_Appends(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "output")
	if err := os.WriteFile(outPath, []byte("existing=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GITHUB_OUTPUT", outPath)
	t.Setenv("GITHUB_STEP_SUMMARY", "")

	rec := &artifacts.Record{Score: scoring.Result{Score: 90, Grade: "A-"}}
	if err := PublishGitHubOutputs(rec); err != nil {
		t.Fatalf("PublishGitHubOutputs error: %v", err)
	}

	out, _ := os.ReadFile(outPath)
	if !strings.Contains(string(out), "existing=1") {
		t.Error("existing outputs should be preserved")
	}
	if !strings.Contains(string(out), "grade=A-") {
		t.Error("new outputs should be appended")
	}
}
