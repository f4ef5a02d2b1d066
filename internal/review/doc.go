// Package review defines the core finding and PR context types shared by
// the analyzers, scorer, and forge clients, and generates structured review
// output from a set of findings.
//
// [Generate] converts findings into inline comments (one per finding, input
// order preserved), a human-readable summary, and metadata breakdowns.
// [RenderMarkdown] produces a markdown report of the same data for artifact
// files and CI step summaries.
package review
