// Package artifacts persists review runs to disk.
//
// Each run is stored as review_<provider>_<pr>.json together with a rendered
// markdown report under the same name. Records are keyed by provider and PR
// number, so re-reviewing a PR overwrites its previous artifact.
package artifacts
