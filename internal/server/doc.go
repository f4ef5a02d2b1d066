// Package server implements the HTTP API for running PR reviews remotely.
//
// Endpoints:
//   - GET  /health          - liveness check
//   - POST /review_pr       - run a full review, returns the review record
//   - GET  /providers       - supported forges, LLM providers, and output formats
//   - GET  /config          - effective configuration with tokens redacted
//   - GET  /artifacts       - list persisted review records
//   - GET  /artifacts/{id}  - fetch one review record
//   - GET  /ws              - WebSocket review with streamed stage progress
package server
