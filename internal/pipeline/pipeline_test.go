package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Vibhor2702/pr-review/internal/artifacts"
	"github.com/Vibhor2702/pr-review/internal/config"
)

// pipelineTestServer serves a minimal GitHub PR with no clone URL so runs
// stay on the patch-analysis path.
func pipelineTestServer(t *testing.T, reviewPosts *int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/demo/pulls/7", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"title": "Tighten input validation",
			"head": {"ref": "feature/validate", "sha": "abc123"},
			"base": {"ref": "main", "sha": "def456"}
		}`))
	})
	mux.HandleFunc("/repos/octo/demo/pulls/7/files", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"filename": "app.py", "additions": 12, "deletions": 2, "status": "modified", "patch": "@@ -1,2 +1,3 @@\n import os\n+import re\n pass"}
		]`))
	})
	mux.HandleFunc("/repos/octo/demo/pulls/7/reviews", func(w http.ResponseWriter, r *http.Request) {
		if reviewPosts != nil {
			*reviewPosts++
		}
		w.Write([]byte(`{"id": 1}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRun_StaticOnly(t *testing.T) {
	srv := pipelineTestServer(t, nil)
	t.Setenv("PRREVIEW_GITHUB_BASE_URL", srv.URL)

	store, err := artifacts.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore error: %v", err)
	}

	var stages []string
	p := New(config.Default(), store, func(stage, _ string) {
		stages = append(stages, stage)
	})

	rec, err := p.Run(context.Background(), Options{
		Provider: "github",
		Owner:    "octo",
		Repo:     "demo",
		Number:   7,
		NoLLM:    true,
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if rec.RunID == "" {
		t.Error("record should carry a run ID")
	}
	if rec.PRContext.Title != "Tighten input validation" {
		t.Errorf("Title = %q", rec.PRContext.Title)
	}
	if rec.Score.Grade == "" {
		t.Error("record should carry a grade")
	}
	if rec.Version != "1.0" {
		t.Errorf("Version = %q, want 1.0", rec.Version)
	}

	if _, err := store.Get("review_github_7"); err != nil {
		t.Errorf("record not persisted: %v", err)
	}

	want := map[string]bool{"fetch": false, "analyze": false, "score": false, "persist": false}
	for _, s := range stages {
		if _, ok := want[s]; ok {
			want[s] = true
		}
	}
	for stage, seen := range want {
		if !seen {
			t.Errorf("stage %q was not reported", stage)
		}
	}
}

func TestRun_UnknownProvider(t *testing.T) {
	store, err := artifacts.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore error: %v", err)
	}
	p := New(config.Default(), store, nil)

	if _, err := p.Run(context.Background(), Options{Provider: "sourcehut"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestRun_PostWithoutComments(t *testing.T) {
	posts := 0
	srv := pipelineTestServer(t, &posts)
	t.Setenv("PRREVIEW_GITHUB_BASE_URL", srv.URL)

	store, err := artifacts.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore error: %v", err)
	}
	p := New(config.Default(), store, nil)

	rec, err := p.Run(context.Background(), Options{
		Provider: "github",
		Owner:    "octo",
		Repo:     "demo",
		Number:   7,
		NoLLM:    true,
		Post:     true,
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if rec == nil {
		t.Fatal("expected a record")
	}
	// With no findings there is nothing to post, so no review request
	// should reach the forge.
	if len(rec.Review.Comments) == 0 && posts != 0 {
		t.Errorf("posts = %d, want 0", posts)
	}
}
