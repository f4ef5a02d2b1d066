package forge

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/google/go-github/v69/github"
	"golang.org/x/oauth2"

	"github.com/Vibhor2702/pr-review/internal/review"
)

// GitHub fetches pull requests and posts reviews through the GitHub REST API.
type GitHub struct {
	client *github.Client
}

// NewGitHub creates a GitHub client. An empty token produces an
// unauthenticated client limited to public repositories.
func NewGitHub(token string) *GitHub {
	var client *github.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		client = github.NewClient(oauth2.NewClient(context.Background(), ts))
	} else {
		client = github.NewClient(nil)
	}
	if base := os.Getenv("PRREVIEW_GITHUB_BASE_URL"); base != "" {
		if u, err := url.Parse(strings.TrimSuffix(base, "/") + "/"); err == nil {
			client.BaseURL = u
		}
	}
	return &GitHub{client: client}
}

func (g *GitHub) Name() string { return "github" }

// FetchPR retrieves pull request metadata and the full changed-file list,
// following pagination.
func (g *GitHub) FetchPR(ctx context.Context, owner, repo string, number int) (review.PRContext, error) {
	pr, _, err := g.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return review.PRContext{}, fmt.Errorf("fetching pull request: %w", err)
	}

	pc := review.PRContext{
		Provider: "github",
		Owner:    owner,
		Repo:     repo,
		Number:   number,
		HeadRef:  pr.GetHead().GetRef(),
		BaseRef:  pr.GetBase().GetRef(),
		HeadSHA:  pr.GetHead().GetSHA(),
		BaseSHA:  pr.GetBase().GetSHA(),
		RepoURL:  pr.GetHead().GetRepo().GetCloneURL(),
		DiffURL:  pr.GetDiffURL(),
		Title:    pr.GetTitle(),
		Body:     pr.GetBody(),
	}

	opt := &github.ListOptions{PerPage: 100}
	for {
		files, resp, err := g.client.PullRequests.ListFiles(ctx, owner, repo, number, opt)
		if err != nil {
			return review.PRContext{}, fmt.Errorf("listing pull request files: %w", err)
		}
		for _, f := range files {
			pc.Files = append(pc.Files, review.FileChange{
				Path:      f.GetFilename(),
				Additions: f.GetAdditions(),
				Deletions: f.GetDeletions(),
				Status:    f.GetStatus(),
				Patch:     f.GetPatch(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}

	return pc, nil
}

// PostReview publishes the comments as a single batch review on the pull
// request head commit. Posting nothing is not an error.
func (g *GitHub) PostReview(ctx context.Context, pr review.PRContext, comments []review.Comment) error {
	selected := postable(comments)
	if len(selected) == 0 {
		return nil
	}

	drafts := make([]*github.DraftReviewComment, 0, len(selected))
	for _, c := range selected {
		drafts = append(drafts, &github.DraftReviewComment{
			Path: github.Ptr(c.File),
			Line: github.Ptr(c.Line),
			Side: github.Ptr("RIGHT"),
			Body: github.Ptr(review.FormatCommentBody(c)),
		})
	}

	req := &github.PullRequestReviewRequest{
		CommitID: github.Ptr(pr.HeadSHA),
		Body:     github.Ptr("Automated code review by prreview"),
		Event:    github.Ptr("COMMENT"),
		Comments: drafts,
	}
	if _, _, err := g.client.PullRequests.CreateReview(ctx, pr.Owner, pr.Repo, pr.Number, req); err != nil {
		return fmt.Errorf("creating review: %w", err)
	}
	return nil
}
