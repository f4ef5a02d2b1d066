package scoring

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBuiltinProfile(t *testing.T) {
	p, err := LoadBuiltinProfile("default")
	if err != nil {
		t.Fatalf("LoadBuiltinProfile error: %v", err)
	}
	if p.Name != "default" {
		t.Errorf("Name = %q", p.Name)
	}
	if p.Weights != DefaultWeights() {
		t.Errorf("default profile weights = %+v, want %+v", p.Weights, DefaultWeights())
	}

	strict, err := LoadBuiltinProfile("strict")
	if err != nil {
		t.Fatalf("LoadBuiltinProfile(strict) error: %v", err)
	}
	if strict.Weights.SecurityFindings <= p.Weights.SecurityFindings {
		t.Error("strict profile should penalize security harder than default")
	}

	if _, err := LoadBuiltinProfile("nope"); err == nil {
		t.Error("expected error for unknown profile")
	}
}

func TestListBuiltinProfiles(t *testing.T) {
	names := ListBuiltinProfiles()
	if len(names) < 2 {
		t.Fatalf("got %d profiles, want at least 2", len(names))
	}
	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}
	if !found["default"] || !found["strict"] {
		t.Errorf("profiles = %v, want default and strict", names)
	}
}

func TestLoadProfileFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := "name: custom\nweights:\n  security_findings: 20.0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadProfileFile(path)
	if err != nil {
		t.Fatalf("LoadProfileFile error: %v", err)
	}
	if p.Weights.SecurityFindings != 20.0 {
		t.Errorf("SecurityFindings = %v, want 20.0", p.Weights.SecurityFindings)
	}
	if p.Weights.StyleIssues != DefaultWeights().StyleIssues {
		t.Errorf("StyleIssues = %v, omitted keys should keep defaults", p.Weights.StyleIssues)
	}

	zeroed := filepath.Join(dir, "zeroed.yaml")
	if err := os.WriteFile(zeroed, []byte("name: zeroed\nweights:\n  style_issues: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	zp, err := LoadProfileFile(zeroed)
	if err != nil {
		t.Fatalf("LoadProfileFile(zeroed) error: %v", err)
	}
	if zp.Weights.StyleIssues != 0 {
		t.Errorf("StyleIssues = %v, explicit zero should be kept", zp.Weights.StyleIssues)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("weights:\n  base_score: -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProfileFile(bad); err == nil {
		t.Error("expected error for negative weight")
	}
}
