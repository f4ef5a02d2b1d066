// Package forge talks to git hosting providers.
//
// Each provider implements Fetcher, returning pull request metadata and the
// changed-file list as a review.PRContext. GitHub and GitLab additionally
// implement Poster for publishing review comments back to the PR; Bitbucket
// is fetch-only.
//
// GitHub uses the go-github client; GitLab and Bitbucket use their REST APIs
// directly. Providers whose APIs omit per-file line counts recover them by
// parsing diffs with go-gitdiff.
//
// Use [New] to obtain a Fetcher by provider name.
package forge
