package scoring

// Weights configures the per-category penalty multipliers. Values are
// applied exactly as given, including zero, which disables the penalty.
// Start from DefaultWeights and override fields; loaders (config, scoring
// profiles) fill omitted keys from the defaults.
type Weights struct {
	BaseScore        float64 `json:"base_score" yaml:"base_score"`
	StyleIssues      float64 `json:"style_issues" yaml:"style_issues"`
	SecurityFindings float64 `json:"security_findings" yaml:"security_findings"`
	Complexity       float64 `json:"complexity" yaml:"complexity"`
	TestCoverage     float64 `json:"test_coverage" yaml:"test_coverage"`
}

// DefaultWeights returns the standard scoring weights.
func DefaultWeights() Weights {
	return Weights{
		BaseScore:        100.0,
		StyleIssues:      5.0,
		SecurityFindings: 15.0,
		Complexity:       10.0,
		TestCoverage:     8.0,
	}
}
