package review

// Severity represents the priority of a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// NormalizeSeverity maps unrecognized severity values to info.
func NormalizeSeverity(s string) Severity {
	switch Severity(s) {
	case SeverityError, SeverityWarning, SeverityInfo:
		return Severity(s)
	default:
		return SeverityInfo
	}
}

// ClampConfidence forces a confidence value into [0,1].
func ClampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// Finding is a single issue detected by a static analyzer or the LLM
// reviewer. Confidence and Reasoning are set only for LLM findings.
type Finding struct {
	File       string   `json:"file"`
	Line       int      `json:"line"`
	Severity   Severity `json:"severity"`
	Tool       string   `json:"tool"`
	Code       string   `json:"code,omitempty"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
	Reasoning  string   `json:"reasoning,omitempty"`
}

// Path returns the finding's file path, defaulting to "unknown".
func (f Finding) Path() string {
	if f.File == "" {
		return "unknown"
	}
	return f.File
}

// LineNumber returns the finding's line number, defaulting to 1.
func (f Finding) LineNumber() int {
	if f.Line < 1 {
		return 1
	}
	return f.Line
}

// ToolName returns the producing tool, defaulting to "unknown".
func (f Finding) ToolName() string {
	if f.Tool == "" {
		return "unknown"
	}
	return f.Tool
}

// FileChange describes one changed file in a PR. Duplicate paths are
// tolerated; consumers simply sum their line counts.
type FileChange struct {
	Path      string `json:"path"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Status    string `json:"status,omitempty"`
	Patch     string `json:"patch,omitempty"`
}

// PRContext is the metadata describing a pull/merge request under review.
type PRContext struct {
	Provider string       `json:"provider"`
	Owner    string       `json:"owner"`
	Repo     string       `json:"repo"`
	Number   int          `json:"pr_number"`
	HeadRef  string       `json:"head_ref,omitempty"`
	BaseRef  string       `json:"base_ref,omitempty"`
	HeadSHA  string       `json:"head_sha,omitempty"`
	BaseSHA  string       `json:"base_sha,omitempty"`
	RepoURL  string       `json:"repo_url,omitempty"`
	DiffURL  string       `json:"diff_url,omitempty"`
	Title    string       `json:"title,omitempty"`
	Body     string       `json:"body,omitempty"`
	Files    []FileChange `json:"files"`
}

// PatchFor returns the diff text for a changed file, if the fetcher
// captured one.
func (pr PRContext) PatchFor(path string) string {
	for _, fc := range pr.Files {
		if fc.Path == path {
			return fc.Patch
		}
	}
	return ""
}

// Comment is one inline review comment, derived 1:1 from a finding.
// Optional fields are omitted rather than null-filled to keep posted
// payloads minimal.
type Comment struct {
	File       string   `json:"file"`
	Line       int      `json:"line"`
	Side       string   `json:"side"`
	Message    string   `json:"message"`
	Severity   Severity `json:"severity"`
	Tool       string   `json:"tool"`
	Code       string   `json:"code"`
	Suggestion string   `json:"suggestion,omitempty"`
	Rule       string   `json:"rule,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
	Reasoning  string   `json:"reasoning,omitempty"`
}

// FileIssueCount pairs a file path with its finding count.
type FileIssueCount struct {
	File   string `json:"file"`
	Issues int    `json:"issues"`
}

// PRInfo echoes the reviewed PR's identity into review metadata.
type PRInfo struct {
	Provider     string `json:"provider"`
	PRNumber     int    `json:"pr_number"`
	FilesChanged int    `json:"files_changed"`
}

// Metadata holds aggregate breakdowns for a generated review.
// AvgLLMConfidence is nil when no finding carried a confidence.
type Metadata struct {
	TotalFindings        int              `json:"total_findings"`
	SeverityBreakdown    map[string]int   `json:"severity_breakdown"`
	ToolBreakdown        map[string]int   `json:"tool_breakdown"`
	FileBreakdown        map[string]int   `json:"file_breakdown"`
	MostProblematicFiles []FileIssueCount `json:"most_problematic_files"`
	AvgLLMConfidence     *float64         `json:"avg_llm_confidence"`
	Timestamp            string           `json:"timestamp"`
	PRInfo               PRInfo           `json:"pr_info"`
}

// Result is the structured review produced by Generate.
type Result struct {
	Comments []Comment `json:"comments"`
	Summary  string    `json:"summary"`
	Metadata Metadata  `json:"metadata"`
}
