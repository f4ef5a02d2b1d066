package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Vibhor2702/pr-review/internal/artifacts"
	"github.com/Vibhor2702/pr-review/internal/review"
)

// SARIFWriter outputs findings in SARIF v2.1.0 format for upload to
// GitHub code scanning and similar CI integrations.
type SARIFWriter struct{}

func (s *SARIFWriter) Write(w io.Writer, rec *artifacts.Record) error {
	sarif := buildSARIF(rec)
	data, err := json.MarshalIndent(sarif, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling SARIF: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing SARIF: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}

// SARIF schema types (v2.1.0)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	ShortDescription sarifMessage       `json:"shortDescription"`
	DefaultConfig    sarifDefaultConfig `json:"defaultConfiguration"`
}

type sarifDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
	Fixes     []sarifFix      `json:"fixes,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

type sarifFix struct {
	Description sarifMessage `json:"description"`
}

func buildSARIF(rec *artifacts.Record) sarifLog {
	var rules []sarifRule
	seen := make(map[string]bool)
	var results []sarifResult

	for _, c := range rec.Review.Comments {
		ruleID := sarifRuleID(c)

		if !seen[ruleID] {
			seen[ruleID] = true
			rules = append(rules, sarifRule{
				ID:               ruleID,
				Name:             c.Code,
				ShortDescription: sarifMessage{Text: fmt.Sprintf("%s finding from %s", c.Code, c.Tool)},
				DefaultConfig:    sarifDefaultConfig{Level: severityToLevel(c.Severity)},
			})
		}

		result := sarifResult{
			RuleID:  ruleID,
			Level:   severityToLevel(c.Severity),
			Message: sarifMessage{Text: c.Message},
			Locations: []sarifLocation{
				{
					PhysicalLocation: sarifPhysicalLocation{
						ArtifactLocation: sarifArtifactLocation{URI: c.File},
						Region:           sarifRegion{StartLine: c.Line},
					},
				},
			},
		}

		if c.Suggestion != "" {
			result.Fixes = append(result.Fixes, sarifFix{
				Description: sarifMessage{Text: c.Suggestion},
			})
		}

		results = append(results, result)
	}

	return sarifLog{
		Version: "2.1.0",
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json",
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:           "prreview",
						Version:        rec.Version,
						InformationURI: "https://github.com/Vibhor2702/pr-review",
						Rules:          rules,
					},
				},
				Results: results,
			},
		},
	}
}

// severityToLevel maps finding severity to SARIF level.
func severityToLevel(s review.Severity) string {
	switch s {
	case review.SeverityError:
		return "error"
	case review.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}

// sarifRuleID builds a stable rule ID from the producing tool and code.
func sarifRuleID(c review.Comment) string {
	tool := c.Tool
	if tool == "" {
		tool = "prreview"
	}
	code := c.Code
	if code == "" {
		code = "FINDING"
	}
	return fmt.Sprintf("%s/%s", tool, code)
}
