// Prreview reviews pull requests with static analyzers and LLM providers.
//
// It fetches PR metadata and diffs from GitHub, GitLab, or Bitbucket, checks
// out the head branch, runs syntax, security, style, and complexity analysis
// alongside an LLM review pass, scores the result, and can post the review
// back to the forge or publish it to CI outputs.
//
// Usage:
//
//	prreview review --owner octo --repo demo --pr 5     # review a PR
//	prreview review --provider gitlab --post ...        # review and post comments
//	prreview serve                                      # run the HTTP API
//	prreview artifacts list                             # list saved reviews
//
// See https://github.com/Vibhor2702/pr-review for full documentation.
package main
