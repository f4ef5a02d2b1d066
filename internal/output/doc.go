// Package output formats review records for display or machine consumption.
//
// Four formats are supported:
//   - text     - human-readable terminal output (default)
//   - json     - full structured JSON record
//   - markdown - PR-comment-friendly report with a score table
//   - sarif    - SARIF v2.1.0 for upload to GitHub code scanning and other CI tools
//
// Use [GetWriter] to obtain a [Writer] for a given format string, then call
// [Writer.Write] with an [io.Writer] and a [*artifacts.Record]. [WriteReport]
// is a convenience helper that handles destination selection.
package output
