package forge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/bluekeyes/go-gitdiff/gitdiff"

	"github.com/Vibhor2702/pr-review/internal/review"
)

const defaultBitbucketURL = "https://api.bitbucket.org/2.0"

// Bitbucket fetches pull requests through the Bitbucket Cloud REST API 2.0.
// Bitbucket only exposes the raw diff, so per-file changes are recovered by
// parsing it. Posting reviews is not supported.
type Bitbucket struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewBitbucket creates a Bitbucket client.
func NewBitbucket(token string) *Bitbucket {
	baseURL := os.Getenv("PRREVIEW_BITBUCKET_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBitbucketURL
	}
	return &Bitbucket{
		token:   token,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (b *Bitbucket) Name() string { return "bitbucket" }

type bitbucketPR struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      struct {
		Branch struct {
			Name string `json:"name"`
		} `json:"branch"`
		Commit struct {
			Hash string `json:"hash"`
		} `json:"commit"`
		Repository struct {
			Links struct {
				Clone []struct {
					Href string `json:"href"`
					Name string `json:"name"`
				} `json:"clone"`
			} `json:"links"`
		} `json:"repository"`
	} `json:"source"`
	Destination struct {
		Branch struct {
			Name string `json:"name"`
		} `json:"branch"`
		Commit struct {
			Hash string `json:"hash"`
		} `json:"commit"`
	} `json:"destination"`
}

// FetchPR retrieves a pull request and parses its diff into file changes.
// A diff fetch failure degrades to an empty file list rather than failing
// the whole fetch.
func (b *Bitbucket) FetchPR(ctx context.Context, owner, repo string, number int) (review.PRContext, error) {
	prURL := fmt.Sprintf("%s/repositories/%s/%s/pullrequests/%d", b.baseURL, owner, repo, number)

	var pr bitbucketPR
	if err := b.getJSON(ctx, prURL, &pr); err != nil {
		return review.PRContext{}, fmt.Errorf("fetching pull request: %w", err)
	}

	diffURL := prURL + "/diff"
	var files []review.FileChange
	if raw, err := b.getText(ctx, diffURL); err != nil {
		fmt.Fprintf(os.Stderr, "warning: fetching diff: %v\n", err)
	} else {
		files = parseDiffFiles(raw)
	}

	return review.PRContext{
		Provider: "bitbucket",
		Owner:    owner,
		Repo:     repo,
		Number:   number,
		HeadRef:  pr.Source.Branch.Name,
		BaseRef:  pr.Destination.Branch.Name,
		HeadSHA:  pr.Source.Commit.Hash,
		BaseSHA:  pr.Destination.Commit.Hash,
		DiffURL:  diffURL,
		RepoURL:  cloneURL(pr),
		Title:    pr.Title,
		Body:     pr.Description,
		Files:    files,
	}, nil
}

func (b *Bitbucket) getJSON(ctx context.Context, rawURL string, out any) error {
	body, err := b.get(ctx, rawURL, "application/json")
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

func (b *Bitbucket) getText(ctx context.Context, rawURL string) (string, error) {
	body, err := b.get(ctx, rawURL, "text/plain")
	return string(body), err
}

func (b *Bitbucket) get(ctx context.Context, rawURL, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}

func cloneURL(pr bitbucketPR) string {
	clones := pr.Source.Repository.Links.Clone
	for _, c := range clones {
		if c.Name == "https" {
			return c.Href
		}
	}
	if len(clones) > 0 {
		return clones[0].Href
	}
	return ""
}

// parseDiffFiles splits a raw unified diff into per-file changes, keeping
// each file's patch text alongside the parsed line counts.
func parseDiffFiles(raw string) []review.FileChange {
	files, _, err := gitdiff.Parse(strings.NewReader(raw))
	if err != nil {
		return nil
	}

	patches := splitPatches(raw)
	var out []review.FileChange
	for i, f := range files {
		path := f.NewName
		if path == "" {
			path = f.OldName
		}
		fc := review.FileChange{
			Path:   path,
			Status: fileStatus(f),
		}
		for _, frag := range f.TextFragments {
			fc.Additions += int(frag.LinesAdded)
			fc.Deletions += int(frag.LinesDeleted)
		}
		if i < len(patches) {
			fc.Patch = patches[i]
		}
		out = append(out, fc)
	}
	return out
}

// splitPatches cuts a multi-file diff into one chunk per "diff --git"
// header, preserving the header line in each chunk.
func splitPatches(raw string) []string {
	const marker = "diff --git "
	parts := strings.Split(raw, marker)
	var out []string
	for _, p := range parts[1:] {
		out = append(out, marker+p)
	}
	return out
}

func fileStatus(f *gitdiff.File) string {
	switch {
	case f.IsDelete:
		return "deleted"
	case f.IsNew:
		return "added"
	case f.IsRename:
		return "renamed"
	default:
		return "modified"
	}
}
