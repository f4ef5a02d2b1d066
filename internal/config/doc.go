// Package config loads and merges prreview configuration from multiple
// sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (GITHUB_TOKEN, SERVER_PORT, WEIGHT_SECURITY, etc.)
//  3. Config file ($XDG_CONFIG_HOME/prreview/config.json)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged [Config]. Tokens never leave the process:
// [Config.Redacted] produces a version safe to expose over the server's
// /config endpoint.
package config
