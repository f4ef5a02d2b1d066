package forge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Vibhor2702/pr-review/internal/review"
)

const sampleGitLabDiff = "@@ -1,2 +1,3 @@\n context\n+added one\n-removed\n+added two\n"

func TestGitLab_FetchPR(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/changes"):
			json.NewEncoder(w).Encode(map[string]any{
				"changes": []map[string]any{
					{"old_path": "app.py", "new_path": "app.py", "diff": sampleGitLabDiff},
					{"old_path": "", "new_path": "util.py", "new_file": true, "diff": ""},
				},
			})
		default:
			json.NewEncoder(w).Encode(map[string]any{
				"source_branch":    "feature",
				"target_branch":    "main",
				"sha":              "abc123",
				"merge_commit_sha": "def456",
				"web_url":          "https://gitlab.com/group/demo/-/merge_requests/9",
				"title":            "Refactor config",
				"description":      "Cleans up settings",
			})
		}
	}))
	defer srv.Close()
	t.Setenv("PRREVIEW_GITLAB_BASE_URL", srv.URL)

	g := NewGitLab("tok")
	pc, err := g.FetchPR(context.Background(), "group", "demo", 9)
	if err != nil {
		t.Fatalf("FetchPR error: %v", err)
	}

	if pc.Provider != "gitlab" || pc.Number != 9 {
		t.Errorf("identity = %+v", pc)
	}
	if pc.HeadRef != "feature" || pc.BaseRef != "main" || pc.HeadSHA != "abc123" || pc.BaseSHA != "def456" {
		t.Errorf("refs = %s/%s shas = %s/%s", pc.HeadRef, pc.BaseRef, pc.HeadSHA, pc.BaseSHA)
	}
	if pc.DiffURL != "https://gitlab.com/group/demo/-/merge_requests/9.diff" {
		t.Errorf("DiffURL = %q", pc.DiffURL)
	}
	if pc.RepoURL != "https://gitlab.com/group/demo.git" {
		t.Errorf("RepoURL = %q", pc.RepoURL)
	}
	if len(pc.Files) != 2 {
		t.Fatalf("len(Files) = %d", len(pc.Files))
	}
	f := pc.Files[0]
	if f.Additions != 2 || f.Deletions != 1 {
		t.Errorf("line counts not recovered from diff: +%d -%d", f.Additions, f.Deletions)
	}
	if f.Status != "modified" {
		t.Errorf("status = %q", f.Status)
	}
	if pc.Files[1].Status != "added" {
		t.Errorf("new file status = %q", pc.Files[1].Status)
	}
}

func TestGitLab_PostReview(t *testing.T) {
	var posts []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		posts = append(posts, body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()
	t.Setenv("PRREVIEW_GITLAB_BASE_URL", srv.URL)

	g := NewGitLab("tok")
	pr := review.PRContext{Provider: "gitlab", Owner: "group", Repo: "demo", Number: 9, HeadSHA: "abc", BaseSHA: "def"}
	comments := []review.Comment{
		{File: "app.py", Line: 3, Severity: review.SeverityError, Tool: "security", Message: "sql injection"},
		{File: "app.py", Line: 8, Severity: review.SeverityInfo, Tool: "llm", Message: "naming"},
	}

	if err := g.PostReview(context.Background(), pr, comments); err != nil {
		t.Fatalf("PostReview error: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("posted %d discussions, want 2", len(posts))
	}
	pos, ok := posts[0]["position"].(map[string]any)
	if !ok {
		t.Fatal("missing position in discussion payload")
	}
	if pos["new_path"] != "app.py" || pos["new_line"] != float64(3) {
		t.Errorf("position = %v", pos)
	}
	if pos["head_sha"] != "abc" || pos["base_sha"] != "def" {
		t.Errorf("position shas = %v", pos)
	}
}

func TestDiffLineCounts_EmptyDiff(t *testing.T) {
	adds, dels := diffLineCounts("a.py", "a.py", "")
	if adds != 0 || dels != 0 {
		t.Errorf("empty diff = +%d -%d", adds, dels)
	}
}

func TestRepoURLFromWebURL(t *testing.T) {
	if got := repoURLFromWebURL("https://gitlab.example.com/a/b/-/merge_requests/3"); got != "https://gitlab.example.com/a/b.git" {
		t.Errorf("got %q", got)
	}
	if got := repoURLFromWebURL("garbage"); got != "" {
		t.Errorf("got %q for unrecognized URL", got)
	}
}
