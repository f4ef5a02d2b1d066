// Package analyze turns changed files into review findings.
//
// Static checks shell out to the standard Python toolchain: py_compile for
// syntax, bandit for security, flake8 for style, and radon for cyclomatic
// complexity. A missing tool degrades to zero findings for its category, so
// the pipeline works on machines with any subset of the tools installed.
//
// An optional LLM reviewer adds one aggregated finding per file, built from
// the file's diff and the static findings. Diffs are scrubbed with the
// redact package before being sent to a provider.
package analyze
