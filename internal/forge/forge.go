package forge

import (
	"context"
	"fmt"
	"strings"

	"github.com/Vibhor2702/pr-review/internal/review"
)

// Fetcher retrieves pull request metadata and changed files from a git
// hosting provider.
type Fetcher interface {
	FetchPR(ctx context.Context, owner, repo string, number int) (review.PRContext, error)
	Name() string
}

// Poster publishes review comments back to the provider. Not every provider
// supports posting; callers should type-assert a Fetcher to Poster.
type Poster interface {
	PostReview(ctx context.Context, pr review.PRContext, comments []review.Comment) error
}

// Posting limits shared by all providers. Large reviews drop informational
// comments to avoid drowning the PR, and inline comments are capped per
// review round.
const (
	maxInlineComments = 20
	infoSkipThreshold = 10
)

// postable filters comments down to what should be published: info comments
// are skipped when the review is large, and the result is capped at
// maxInlineComments in original order.
func postable(comments []review.Comment) []review.Comment {
	var out []review.Comment
	for _, c := range comments {
		if c.Severity == review.SeverityInfo && len(comments) > infoSkipThreshold {
			continue
		}
		out = append(out, c)
	}
	if len(out) > maxInlineComments {
		out = out[:maxInlineComments]
	}
	return out
}

// New creates a fetcher for the named provider. The token may be empty for
// public repositories on providers that allow unauthenticated reads.
func New(provider, token string) (Fetcher, error) {
	switch strings.ToLower(provider) {
	case "github":
		return NewGitHub(token), nil
	case "gitlab":
		return NewGitLab(token), nil
	case "bitbucket":
		return NewBitbucket(token), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

// Names lists the supported provider names in display order.
func Names() []string {
	return []string{"github", "gitlab", "bitbucket"}
}
