package redact

import (
	"path/filepath"
	"regexp"
	"strings"
)

const placeholder = "[REDACTED]"

// secretPatterns are regex heuristics for common secret types that show up
// in pull request diffs.
var secretPatterns = []*regexp.Regexp{
	// Generic API keys in assignments
	regexp.MustCompile(`(?i)(api[_-]?key|apikey|api[_-]?secret)\s*[:=]\s*["']?([A-Za-z0-9/+=_-]{20,})["']?`),
	// AWS access key IDs
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	// AWS secret access keys
	regexp.MustCompile(`(?i)(aws[_-]?secret[_-]?access[_-]?key)\s*[:=]\s*["']?([A-Za-z0-9/+=]{40})["']?`),
	// Generic secrets/tokens/passwords in assignments
	regexp.MustCompile(`(?i)(secret|token|password|passwd|credential)\s*[:=]\s*["']([^"']{8,})["']`),
	// Bearer tokens
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`),
	// JWTs (three base64 segments separated by dots)
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
	// Private key blocks
	regexp.MustCompile(`-----BEGIN\s+(RSA\s+|EC\s+|OPENSSH\s+)?PRIVATE KEY-----`),
	// GitHub tokens
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`),
	// GitLab personal access tokens
	regexp.MustCompile(`glpat-[A-Za-z0-9_-]{20,}`),
	// Google API keys (covers Gemini keys)
	regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`),
	// Slack tokens
	regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`),
	// OpenAI API keys
	regexp.MustCompile(`sk-[A-Za-z0-9_-]{20,}`),
	// Generic long hex strings in assignments
	regexp.MustCompile(`(?i)(key|secret|token)\s*[:=]\s*["']?[0-9a-f]{32,}["']?`),
}

// DefaultPathPatterns name files whose entire diff is dropped rather than
// scanned, since they exist only to hold credentials.
var DefaultPathPatterns = []string{
	"**/.env",
	"**/.env.*",
	"**/*secrets*",
	"**/*.pem",
	"**/id_rsa*",
	"**/credentials*",
}

// Secrets replaces detected secrets in text with [REDACTED].
func Secrets(text string) string {
	result := text
	for _, pat := range secretPatterns {
		result = pat.ReplaceAllString(result, placeholder)
	}
	return result
}

// SensitivePath reports whether a file path matches any of the given glob
// patterns. Patterns of the form "**/name" also match against the base name
// so that ".env" is caught at any depth.
func SensitivePath(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := filepath.Match(pattern, path); err == nil && matched {
			return true
		}
		if short := strings.TrimPrefix(pattern, "**/"); short != pattern {
			if matched, err := filepath.Match(short, filepath.Base(path)); err == nil && matched {
				return true
			}
		}
	}
	return false
}

// Patch scrubs a unified diff for one file before it is sent to an LLM
// provider. If the path matches a sensitive pattern the whole patch is
// withheld; otherwise secrets are replaced inline.
func Patch(patch, path string, pathPatterns []string) string {
	if SensitivePath(path, pathPatterns) {
		return placeholder + " (diff withheld: sensitive file path)\n"
	}
	return Secrets(patch)
}
