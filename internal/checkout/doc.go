// Package checkout clones PR branches into temp directories so analyzers can
// run against a real working tree.
//
// All git operations shell out to the git binary. Checkout failures degrade
// gracefully: if the head branch cannot be fetched the base branch is used,
// and if that fails the clone's default branch is kept.
package checkout
