// Package redact scrubs secrets from pull request diffs before they are sent
// to an LLM provider.
//
// Detection uses regex heuristics covering common secret shapes: API keys,
// JWTs, private key blocks, AWS credentials, bearer tokens, and
// provider-specific tokens (GitHub, GitLab, Google, Slack, OpenAI).
//
// Path-based redaction is also supported: diffs for files whose paths match
// sensitive glob patterns (.env files, PEM keys, credential stores) are
// withheld entirely rather than scanned line by line.
package redact
