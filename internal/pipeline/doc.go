// Package pipeline orchestrates a full PR review run.
//
// A run fetches PR metadata from the configured forge, checks out the head
// branch, runs static and LLM analyzers over the changed files, scores the
// result, persists a review record, and optionally posts the review back
// to the forge. Each stage degrades rather than aborts where the original
// data allows it: a failed checkout falls back to reviewing the fetched
// patches, and a missing LLM API key downgrades the run to static analysis.
package pipeline
