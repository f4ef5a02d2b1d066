package review

import (
	"math"
	"strings"
	"testing"
)

func conf(v float64) *float64 { return &v }

func TestGenerate_Empty(t *testing.T) {
	res := Generate(nil, PRContext{Provider: "github", Number: 1})

	if len(res.Comments) != 0 {
		t.Errorf("got %d comments, want 0", len(res.Comments))
	}
	if !strings.Contains(res.Summary, "No issues found") {
		t.Errorf("Summary = %q, want a no-issues message", res.Summary)
	}
	if res.Metadata.TotalFindings != 0 {
		t.Errorf("TotalFindings = %d, want 0", res.Metadata.TotalFindings)
	}
	if res.Metadata.AvgLLMConfidence != nil {
		t.Error("AvgLLMConfidence should be nil with no findings")
	}
	if res.Metadata.PRInfo.Provider != "github" || res.Metadata.PRInfo.PRNumber != 1 {
		t.Errorf("PRInfo = %+v", res.Metadata.PRInfo)
	}
}

func TestGenerate_OrderPreserving(t *testing.T) {
	findings := []Finding{
		{File: "b.go", Line: 5, Severity: SeverityWarning, Tool: "style", Message: "first"},
		{File: "a.go", Line: 2, Severity: SeverityError, Tool: "security", Message: "second"},
		{File: "b.go", Line: 9, Severity: SeverityInfo, Tool: "llm", Message: "third"},
	}
	res := Generate(findings, PRContext{})

	if len(res.Comments) != 3 {
		t.Fatalf("got %d comments, want 3", len(res.Comments))
	}
	for i, want := range []string{"first", "second", "third"} {
		if res.Comments[i].Message != want {
			t.Errorf("comment[%d].Message = %q, want %q", i, res.Comments[i].Message, want)
		}
	}
	if res.Comments[0].File != "b.go" || res.Comments[0].Line != 5 {
		t.Errorf("comment[0] location = %s:%d", res.Comments[0].File, res.Comments[0].Line)
	}
	if res.Comments[0].Side != "right" {
		t.Errorf("Side = %q, want right", res.Comments[0].Side)
	}
}

func TestGenerate_OptionalCommentFields(t *testing.T) {
	findings := []Finding{
		{File: "a.go", Line: 1, Severity: SeverityInfo, Tool: "style"},
		{
			File: "a.go", Line: 2, Severity: SeverityInfo, Tool: "llm",
			Code: "LLM_REVIEW", Suggestion: "use x", Confidence: conf(1.7), Reasoning: "because",
		},
	}
	res := Generate(findings, PRContext{})

	bare := res.Comments[0]
	if bare.Suggestion != "" || bare.Rule != "" || bare.Confidence != nil || bare.Reasoning != "" {
		t.Errorf("bare comment carries optional fields: %+v", bare)
	}
	if bare.Message != "No message" {
		t.Errorf("Message = %q, want default", bare.Message)
	}

	rich := res.Comments[1]
	if rich.Rule != "LLM_REVIEW" || rich.Suggestion != "use x" || rich.Reasoning != "because" {
		t.Errorf("rich comment = %+v", rich)
	}
	if rich.Confidence == nil || *rich.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want clamped to 1.0", rich.Confidence)
	}
}

func TestGenerate_SummaryWorstSeverity(t *testing.T) {
	errFindings := []Finding{
		{Severity: SeverityError, Tool: "security"},
		{Severity: SeverityInfo, Tool: "style"},
	}
	res := Generate(errFindings, PRContext{})
	if !strings.Contains(res.Summary, "Found 2 issues (1 errors)") {
		t.Errorf("error summary = %q", res.Summary)
	}
	if !strings.Contains(res.Summary, "Please address all errors before merging.") {
		t.Errorf("error summary missing close: %q", res.Summary)
	}

	warnFindings := make([]Finding, 6)
	for i := range warnFindings {
		warnFindings[i] = Finding{Severity: SeverityWarning, Tool: "style"}
	}
	res = Generate(warnFindings, PRContext{})
	if !strings.Contains(res.Summary, "Found 6 issues (6 warnings)") {
		t.Errorf("warning summary = %q", res.Summary)
	}
	if !strings.Contains(res.Summary, "Consider addressing the warnings") {
		t.Errorf("warning summary missing close: %q", res.Summary)
	}

	res = Generate([]Finding{{Severity: SeverityInfo, Tool: "llm"}}, PRContext{})
	if !strings.Contains(res.Summary, "Found 1 suggestions") {
		t.Errorf("info summary = %q", res.Summary)
	}
	if strings.Contains(res.Summary, "address") {
		t.Errorf("info summary should have no closing recommendation: %q", res.Summary)
	}
}

func TestGenerate_SummarySources(t *testing.T) {
	res := Generate([]Finding{
		{Severity: SeverityInfo, Tool: "style"},
		{Severity: SeverityInfo, Tool: "security"},
		{Severity: SeverityInfo, Tool: "style"},
	}, PRContext{})
	if !strings.Contains(res.Summary, "Sources: style: 2, security: 1") {
		t.Errorf("summary = %q, want first-seen tool order", res.Summary)
	}

	// Single tool: no sources clause
	res = Generate([]Finding{{Severity: SeverityInfo, Tool: "style"}}, PRContext{})
	if strings.Contains(res.Summary, "Sources:") {
		t.Errorf("single-tool summary should omit sources: %q", res.Summary)
	}
}

func TestGenerate_MetadataBreakdowns(t *testing.T) {
	findings := []Finding{
		{File: "a.go", Severity: SeverityError, Tool: "security", Confidence: conf(0.8)},
		{File: "b.go", Severity: SeverityWarning, Tool: "style"},
		{File: "a.go", Severity: SeverityInfo, Tool: "llm", Confidence: conf(0.4)},
	}
	pr := PRContext{Provider: "gitlab", Number: 7, Files: []FileChange{{Path: "a.go"}, {Path: "b.go"}}}
	res := Generate(findings, pr)

	md := res.Metadata
	if md.SeverityBreakdown["error"] != 1 || md.SeverityBreakdown["warning"] != 1 || md.SeverityBreakdown["info"] != 1 {
		t.Errorf("SeverityBreakdown = %v", md.SeverityBreakdown)
	}
	if md.ToolBreakdown["security"] != 1 || md.ToolBreakdown["style"] != 1 || md.ToolBreakdown["llm"] != 1 {
		t.Errorf("ToolBreakdown = %v", md.ToolBreakdown)
	}
	if md.FileBreakdown["a.go"] != 2 || md.FileBreakdown["b.go"] != 1 {
		t.Errorf("FileBreakdown = %v", md.FileBreakdown)
	}
	if md.AvgLLMConfidence == nil || math.Abs(*md.AvgLLMConfidence-0.6) > 1e-9 {
		t.Errorf("AvgLLMConfidence = %v, want 0.6", md.AvgLLMConfidence)
	}
	if md.Timestamp == "" {
		t.Error("Timestamp should be set")
	}
	if md.PRInfo.FilesChanged != 2 {
		t.Errorf("FilesChanged = %d, want 2", md.PRInfo.FilesChanged)
	}
}

func TestTopFiles(t *testing.T) {
	findings := []Finding{
		{File: "one.go"},
		{File: "two.go"}, {File: "two.go"},
		{File: "three.go"},
		{File: "four.go"}, {File: "four.go"},
		{File: "five.go"},
		{File: "six.go"},
		{File: "seven.go"},
	}
	res := Generate(findings, PRContext{})

	top := res.Metadata.MostProblematicFiles
	if len(top) != 5 {
		t.Fatalf("got %d top files, want 5", len(top))
	}
	// two.go and four.go (2 each) lead, ties keep first-encountered order.
	if top[0].File != "two.go" || top[0].Issues != 2 {
		t.Errorf("top[0] = %+v", top[0])
	}
	if top[1].File != "four.go" || top[1].Issues != 2 {
		t.Errorf("top[1] = %+v", top[1])
	}
	if top[2].File != "one.go" {
		t.Errorf("top[2] = %+v, want one.go (first-seen tie order)", top[2])
	}
	for i := 1; i < len(top); i++ {
		if top[i].Issues > top[i-1].Issues {
			t.Errorf("top files not descending at %d: %v", i, top)
		}
	}
}
