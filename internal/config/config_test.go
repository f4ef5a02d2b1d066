package config

import (
	"testing"

	"github.com/Vibhor2702/pr-review/internal/scoring"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.ServerHost != "0.0.0.0" || cfg.ServerPort != 5000 {
		t.Errorf("server defaults = %s:%d", cfg.ServerHost, cfg.ServerPort)
	}
	if cfg.LLMProvider != "gemini" || cfg.LLMModel != "gemini-1.5-flash" {
		t.Errorf("llm defaults = %s/%s", cfg.LLMProvider, cfg.LLMModel)
	}
	if cfg.LLMTemperature != 0.3 {
		t.Errorf("LLMTemperature = %v", cfg.LLMTemperature)
	}
	if cfg.Weights != scoring.DefaultWeights() {
		t.Errorf("Weights = %+v", cfg.Weights)
	}
	if !cfg.RedactSecrets {
		t.Error("RedactSecrets should default to true")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir()) // isolate from any real config file
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("WEIGHT_SECURITY", "20.0")
	t.Setenv("CI_POST_REVIEW", "TRUE")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.GitHubToken != "ghp_test" {
		t.Errorf("GitHubToken = %q", cfg.GitHubToken)
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d", cfg.ServerPort)
	}
	if cfg.Weights.SecurityFindings != 20.0 {
		t.Errorf("SecurityFindings = %v", cfg.Weights.SecurityFindings)
	}
	if !cfg.PostReview {
		t.Error("PostReview should be set from env")
	}
}

func TestLoad_FlagOverridesBeatEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SERVER_PORT", "8080")

	cfg, err := Load(map[string]string{"serverPort": "9000"})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.ServerPort != 9000 {
		t.Errorf("ServerPort = %d, want flag value 9000", cfg.ServerPort)
	}
}

func TestLoad_ScoringProfile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(map[string]string{"scoringProfile": "strict"})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	strict, _ := scoring.LoadBuiltinProfile("strict")
	if cfg.Weights != strict.Weights {
		t.Errorf("Weights = %+v, want strict profile", cfg.Weights)
	}

	if _, err := Load(map[string]string{"scoringProfile": "bogus"}); err == nil {
		t.Error("expected error for unknown scoring profile")
	}
}

func TestSetField(t *testing.T) {
	cfg := Default()
	if err := SetField(&cfg, "llmModel", "gemini-1.5-pro"); err != nil {
		t.Fatalf("SetField error: %v", err)
	}
	if cfg.LLMModel != "gemini-1.5-pro" {
		t.Errorf("LLMModel = %q", cfg.LLMModel)
	}
	if err := SetField(&cfg, "serverPort", "abc"); err == nil {
		t.Error("expected error for non-integer port")
	}
	if err := SetField(&cfg, "nope", "x"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestTokenFor(t *testing.T) {
	cfg := Config{GitHubToken: "gh", GitLabToken: "gl", BitbucketToken: "bb"}
	tests := []struct{ provider, want string }{
		{"github", "gh"},
		{"GitHub", "gh"},
		{"gitlab", "gl"},
		{"bitbucket", "bb"},
		{"sourcehut", ""},
	}
	for _, tt := range tests {
		if got := cfg.TokenFor(tt.provider); got != tt.want {
			t.Errorf("TokenFor(%q) = %q, want %q", tt.provider, got, tt.want)
		}
	}
}

func TestMissingFor(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	cfg := Default()
	missing := cfg.MissingFor("github", false)
	found := map[string]bool{}
	for _, m := range missing {
		found[m] = true
	}
	if !found["GEMINI_API_KEY"] || !found["GITHUB_TOKEN"] {
		t.Errorf("missing = %v", missing)
	}

	// no-llm drops the LLM key requirement
	missing = cfg.MissingFor("github", true)
	for _, m := range missing {
		if m == "GEMINI_API_KEY" {
			t.Errorf("no-llm should not require GEMINI_API_KEY: %v", missing)
		}
	}

	cfg.GitHubToken = "tok"
	t.Setenv("GEMINI_API_KEY", "key")
	if missing := cfg.MissingFor("github", false); len(missing) != 0 {
		t.Errorf("fully configured: missing = %v", missing)
	}
}

func TestRedacted(t *testing.T) {
	cfg := Default()
	cfg.GitHubToken = "secret"
	r := cfg.Redacted()
	if !r.ProvidersConfigured["github"] || r.ProvidersConfigured["gitlab"] {
		t.Errorf("ProvidersConfigured = %v", r.ProvidersConfigured)
	}
}

func TestLoad_ZeroWeightEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("WEIGHT_STYLE", "0")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Weights.StyleIssues != 0 {
		t.Errorf("StyleIssues = %v, explicit zero should be kept", cfg.Weights.StyleIssues)
	}
	if cfg.Weights.SecurityFindings != scoring.DefaultWeights().SecurityFindings {
		t.Errorf("SecurityFindings = %v, untouched weights should keep defaults", cfg.Weights.SecurityFindings)
	}
}
