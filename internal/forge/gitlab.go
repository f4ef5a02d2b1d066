package forge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/bluekeyes/go-gitdiff/gitdiff"

	"github.com/Vibhor2702/pr-review/internal/review"
)

const defaultGitLabURL = "https://gitlab.com/api/v4"

// GitLab fetches merge requests through the GitLab REST API v4. Merge
// requests are mapped onto the same PRContext shape as pull requests.
type GitLab struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewGitLab creates a GitLab client.
func NewGitLab(token string) *GitLab {
	baseURL := os.Getenv("PRREVIEW_GITLAB_BASE_URL")
	if baseURL == "" {
		baseURL = defaultGitLabURL
	}
	return &GitLab{
		token:   token,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *GitLab) Name() string { return "gitlab" }

type gitlabMR struct {
	SourceBranch   string  `json:"source_branch"`
	TargetBranch   string  `json:"target_branch"`
	SHA            string  `json:"sha"`
	MergeCommitSHA *string `json:"merge_commit_sha"`
	WebURL         string  `json:"web_url"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
}

type gitlabChanges struct {
	Changes []gitlabChange `json:"changes"`
}

type gitlabChange struct {
	OldPath     string `json:"old_path"`
	NewPath     string `json:"new_path"`
	NewFile     bool   `json:"new_file"`
	RenamedFile bool   `json:"renamed_file"`
	DeletedFile bool   `json:"deleted_file"`
	Diff        string `json:"diff"`
}

// FetchPR retrieves a merge request and its changed files. Line counts are
// not in the changes API response, so they are recovered by parsing each
// change's diff.
func (g *GitLab) FetchPR(ctx context.Context, owner, repo string, number int) (review.PRContext, error) {
	project := url.PathEscape(owner + "/" + repo)

	var mr gitlabMR
	mrURL := fmt.Sprintf("%s/projects/%s/merge_requests/%d", g.baseURL, project, number)
	if err := g.getJSON(ctx, mrURL, &mr); err != nil {
		return review.PRContext{}, fmt.Errorf("fetching merge request: %w", err)
	}

	var changes gitlabChanges
	changesURL := mrURL + "/changes"
	if err := g.getJSON(ctx, changesURL, &changes); err != nil {
		return review.PRContext{}, fmt.Errorf("fetching merge request changes: %w", err)
	}

	pc := review.PRContext{
		Provider: "gitlab",
		Owner:    owner,
		Repo:     repo,
		Number:   number,
		HeadRef:  mr.SourceBranch,
		BaseRef:  mr.TargetBranch,
		HeadSHA:  mr.SHA,
		DiffURL:  mr.WebURL + ".diff",
		RepoURL:  repoURLFromWebURL(mr.WebURL),
		Title:    mr.Title,
		Body:     mr.Description,
	}
	if mr.MergeCommitSHA != nil {
		pc.BaseSHA = *mr.MergeCommitSHA
	}

	for _, ch := range changes.Changes {
		path := ch.NewPath
		if path == "" {
			path = ch.OldPath
		}
		adds, dels := diffLineCounts(ch.OldPath, ch.NewPath, ch.Diff)
		pc.Files = append(pc.Files, review.FileChange{
			Path:      path,
			Additions: adds,
			Deletions: dels,
			Status:    changeStatus(ch),
			Patch:     ch.Diff,
		})
	}

	return pc, nil
}

// PostReview posts each comment as a positioned discussion. GitLab has no
// batch review API, so failures on individual comments are logged and the
// rest still go out.
func (g *GitLab) PostReview(ctx context.Context, pr review.PRContext, comments []review.Comment) error {
	selected := postable(comments)
	if len(selected) == 0 {
		return nil
	}

	project := url.PathEscape(pr.Owner + "/" + pr.Repo)
	discussionsURL := fmt.Sprintf("%s/projects/%s/merge_requests/%d/discussions", g.baseURL, project, pr.Number)

	posted := 0
	var lastErr error
	for _, c := range selected {
		payload := map[string]any{
			"body": review.FormatCommentBody(c),
			"position": map[string]any{
				"position_type": "text",
				"new_path":      c.File,
				"new_line":      c.Line,
				"base_sha":      pr.BaseSHA,
				"start_sha":     pr.BaseSHA,
				"head_sha":      pr.HeadSHA,
			},
		}
		if err := g.postJSON(ctx, discussionsURL, payload); err != nil {
			log.Printf("gitlab: posting comment on %s:%d: %v", c.File, c.Line, err)
			lastErr = err
			continue
		}
		posted++
	}
	if posted == 0 {
		return fmt.Errorf("posting discussions: %w", lastErr)
	}
	return nil
}

func (g *GitLab) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return err
	}
	g.setHeaders(req)

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}
	return json.Unmarshal(body, out)
}

func (g *GitLab) postJSON(ctx context.Context, rawURL string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", rawURL, bytes.NewReader(data))
	if err != nil {
		return err
	}
	g.setHeaders(req)

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}
	return nil
}

func (g *GitLab) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}
}

func changeStatus(ch gitlabChange) string {
	switch {
	case ch.DeletedFile:
		return "deleted"
	case ch.NewFile:
		return "added"
	case ch.RenamedFile:
		return "renamed"
	default:
		return "modified"
	}
}

// repoURLFromWebURL derives a clone URL from a merge request web URL, which
// has the form https://host/group/project/-/merge_requests/N.
func repoURLFromWebURL(webURL string) string {
	if i := strings.Index(webURL, "/-/merge_requests/"); i > 0 {
		return webURL[:i] + ".git"
	}
	return ""
}

// diffLineCounts parses a single change's unified diff to recover added and
// deleted line counts. A bare GitLab diff lacks file headers, so minimal
// ones are prepended before parsing.
func diffLineCounts(oldPath, newPath, diff string) (adds, dels int) {
	if diff == "" {
		return 0, 0
	}
	if oldPath == "" {
		oldPath = newPath
	}
	if newPath == "" {
		newPath = oldPath
	}
	raw := fmt.Sprintf("--- a/%s\n+++ b/%s\n%s", oldPath, newPath, diff)
	files, _, err := gitdiff.Parse(strings.NewReader(raw))
	if err != nil || len(files) == 0 {
		return 0, 0
	}
	for _, frag := range files[0].TextFragments {
		adds += int(frag.LinesAdded)
		dels += int(frag.LinesDeleted)
	}
	return adds, dels
}
