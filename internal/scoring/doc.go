// Package scoring computes a PR quality score from analysis findings and
// file-change metadata.
//
// [Calculate] is pure and total: five independently capped penalty
// components (style, security, complexity, test coverage, size) are summed,
// subtracted from a base score, and floored at zero. The result carries a
// letter grade, a penalty breakdown, ordered recommendations, and aggregate
// metrics. Malformed findings degrade to per-field defaults.
package scoring
