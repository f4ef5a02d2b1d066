package analyze

import (
	"context"
	"encoding/json"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/Vibhor2702/pr-review/internal/providers"
	"github.com/Vibhor2702/pr-review/internal/redact"
	"github.com/Vibhor2702/pr-review/internal/review"
)

const llmSystemPrompt = `You are an expert code reviewer. Your job is to review code changes and provide constructive feedback.

Focus on:
- Code quality and readability
- Potential bugs or security issues
- Performance considerations
- Best practices and conventions
- Maintainability

Provide responses in JSON format with these fields:
- "comment": Brief, actionable feedback
- "suggestion": Specific code improvement (if applicable)
- "severity": "error", "warning", or "info"
- "confidence": Number between 0 and 1
- "reasoning": Brief explanation of the issue

Be constructive and helpful. Avoid nitpicking trivial issues.`

// LLMReviewer asks an LLM for one aggregated review finding per file, using
// the file's diff and static findings as context. Diffs are scrubbed for
// secrets before leaving the process.
type LLMReviewer struct {
	client        providers.Client
	temperature   float64
	redactSecrets bool
}

// NewLLMReviewer wraps a provider client.
func NewLLMReviewer(client providers.Client, temperature float64, redactSecrets bool) *LLMReviewer {
	return &LLMReviewer{
		client:        client,
		temperature:   temperature,
		redactSecrets: redactSecrets,
	}
}

// ReviewFile produces at most one finding for the file. Any LLM failure
// degrades to zero findings so reviews never fail on provider errors.
func (l *LLMReviewer) ReviewFile(ctx context.Context, path, patch string, static []review.Finding) []review.Finding {
	if l.redactSecrets {
		patch = redact.Patch(patch, path, redact.DefaultPathPatterns)
	}

	resp, err := l.client.Complete(ctx, providers.Request{
		SystemPrompt: llmSystemPrompt,
		UserPrompt:   buildUserPrompt(path, patch, static),
		MaxTokens:    800,
		Temperature:  l.temperature,
	})
	if err != nil {
		log.Printf("llm review failed for %s: %v", path, err)
		return nil
	}

	parsed, err := parseLLMResponse(resp.Content)
	if err != nil {
		log.Printf("llm response for %s not parseable: %v", path, err)
		return nil
	}

	conf := 0.5
	if parsed.Confidence != nil {
		conf = review.ClampConfidence(*parsed.Confidence)
	}
	return []review.Finding{{
		Line:       lineFromDiff(patch),
		Tool:       "llm",
		Code:       "LLM_REVIEW",
		Message:    parsed.Comment,
		Severity:   review.NormalizeSeverity(parsed.Severity),
		Suggestion: parsed.Suggestion,
		Confidence: &conf,
		Reasoning:  parsed.Reasoning,
	}}
}

func buildUserPrompt(path, patch string, static []review.Finding) string {
	parts := []string{
		"Please review this code change in file: " + path,
		"",
		"Code diff:",
		patch,
	}
	if len(static) > 0 {
		if data, err := json.MarshalIndent(static, "", "  "); err == nil {
			parts = append(parts, "", "Static analysis findings:", string(data))
		}
	}
	parts = append(parts, "", "Provide your review as JSON only, no additional text.")
	return strings.Join(parts, "\n")
}

type llmResponse struct {
	Comment    string   `json:"comment"`
	Suggestion string   `json:"suggestion"`
	Severity   string   `json:"severity"`
	Confidence *float64 `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
}

// parseLLMResponse decodes the model's JSON reply, tolerating markdown code
// fences around the payload.
func parseLLMResponse(content string) (llmResponse, error) {
	text := strings.TrimSpace(content)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var resp llmResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return llmResponse{}, err
	}
	if resp.Comment == "" {
		resp.Comment = "No comment provided"
	}
	resp.Severity = strings.ToLower(resp.Severity)
	return resp, nil
}

var hunkHeaderRe = regexp.MustCompile(`@@ -\d+(?:,\d+)? \+(\d+)`)

// lineFromDiff picks a representative line number from the first hunk header
// of a unified diff, defaulting to 1.
func lineFromDiff(patch string) int {
	if m := hunkHeaderRe.FindStringSubmatch(patch); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return 1
}
