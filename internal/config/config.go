package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/Vibhor2702/pr-review/internal/scoring"
)

// Config is the effective prreview configuration.
type Config struct {
	// Forge tokens, looked up per provider. Never serialized.
	GitHubToken    string `json:"-"`
	GitLabToken    string `json:"-"`
	BitbucketToken string `json:"-"`

	// Server settings.
	ServerHost string `json:"server_host"`
	ServerPort int    `json:"server_port"`

	// LLM settings.
	LLMProvider    string  `json:"llm_provider"`
	LLMModel       string  `json:"llm_model"`
	LLMTemperature float64 `json:"llm_temperature"`

	// CI settings.
	PostReview bool `json:"ci_post_review"`

	// Artifact settings.
	ArtifactsDir string `json:"artifacts_dir"`

	// Scoring settings.
	ScoringProfile string          `json:"scoring_profile,omitempty"`
	Weights        scoring.Weights `json:"scoring_weights"`

	// Secret redaction before diffs are sent to the LLM.
	RedactSecrets bool `json:"redact_secrets"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		ServerHost:     "0.0.0.0",
		ServerPort:     5000,
		LLMProvider:    "gemini",
		LLMModel:       "gemini-1.5-flash",
		LLMTemperature: 0.3,
		ArtifactsDir:   "artifacts",
		Weights:        scoring.DefaultWeights(),
		RedactSecrets:  true,
	}
}

// ConfigDir returns the platform-appropriate config directory for prreview.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "prreview"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "prreview"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "prreview"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "prreview"), nil
	default:
		return filepath.Join(home, ".config", "prreview"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil
// error if the file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	// Seed weights so a file that sets only some of them keeps the
	// defaults for the rest while explicit zeros are honored.
	cfg := Config{Weights: scoring.DefaultWeights()}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <-
// overrides. The overrides map comes from CLI flags (only non-zero values
// should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	if cfg.ScoringProfile != "" {
		p, err := scoring.LoadBuiltinProfile(cfg.ScoringProfile)
		if err != nil {
			return Config{}, err
		}
		cfg.Weights = p.Weights
	}

	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.ServerHost != "" {
		dst.ServerHost = src.ServerHost
	}
	if src.ServerPort > 0 {
		dst.ServerPort = src.ServerPort
	}
	if src.LLMProvider != "" {
		dst.LLMProvider = src.LLMProvider
	}
	if src.LLMModel != "" {
		dst.LLMModel = src.LLMModel
	}
	if src.LLMTemperature > 0 {
		dst.LLMTemperature = src.LLMTemperature
	}
	if src.ArtifactsDir != "" {
		dst.ArtifactsDir = src.ArtifactsDir
	}
	if src.ScoringProfile != "" {
		dst.ScoringProfile = src.ScoringProfile
	}
	if src.Weights != (scoring.Weights{}) {
		dst.Weights = src.Weights
	}
	dst.PostReview = src.PostReview || dst.PostReview
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		cfg.GitHubToken = v
	}
	if v := os.Getenv("GITLAB_TOKEN"); v != "" {
		cfg.GitLabToken = v
	}
	if v := os.Getenv("BITBUCKET_TOKEN"); v != "" {
		cfg.BitbucketToken = v
	}
	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.ServerHost = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ServerPort = n
		}
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLMProvider = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.LLMModel = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.LLMTemperature = f
		}
	}
	if v := os.Getenv("CI_POST_REVIEW"); v != "" {
		cfg.PostReview = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("ARTIFACTS_DIR"); v != "" {
		cfg.ArtifactsDir = v
	}
	mergeWeightEnv(cfg)
}

func mergeWeightEnv(cfg *Config) {
	set := func(env string, field *float64) {
		if v := os.Getenv(env); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
				*field = f
			}
		}
	}
	set("BASE_SCORE", &cfg.Weights.BaseScore)
	set("WEIGHT_STYLE", &cfg.Weights.StyleIssues)
	set("WEIGHT_SECURITY", &cfg.Weights.SecurityFindings)
	set("WEIGHT_COMPLEXITY", &cfg.Weights.Complexity)
	set("WEIGHT_TEST_COVERAGE", &cfg.Weights.TestCoverage)
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	for key, v := range overrides {
		if v == "" {
			continue
		}
		// Errors for individual overrides are ignored; flags are validated
		// at the CLI layer before they reach here.
		_ = SetField(cfg, key, v)
	}
}

// SetField sets a single config field by key name. Returns an error if the
// key is unknown or the value does not parse.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "serverHost":
		cfg.ServerHost = value
	case "serverPort":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("serverPort must be an integer: %w", err)
		}
		cfg.ServerPort = n
	case "llmProvider":
		cfg.LLMProvider = value
	case "llmModel":
		cfg.LLMModel = value
	case "llmTemperature":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("llmTemperature must be a number: %w", err)
		}
		cfg.LLMTemperature = f
	case "postReview":
		cfg.PostReview = strings.EqualFold(value, "true")
	case "artifactsDir":
		cfg.ArtifactsDir = value
	case "scoringProfile":
		cfg.ScoringProfile = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// TokenFor returns the auth token for a git provider, or "" if none is
// configured.
func (c Config) TokenFor(provider string) string {
	switch strings.ToLower(provider) {
	case "github":
		return c.GitHubToken
	case "gitlab":
		return c.GitLabToken
	case "bitbucket":
		return c.BitbucketToken
	default:
		return ""
	}
}

// MissingFor returns the names of required environment variables that are
// unset for a review against the given provider. When noLLM is true the LLM
// key is not required.
func (c Config) MissingFor(provider string, noLLM bool) []string {
	var missing []string
	if !noLLM && !llmKeyPresent(c.LLMProvider) {
		missing = append(missing, llmKeyName(c.LLMProvider))
	}
	if provider != "" && c.TokenFor(provider) == "" {
		missing = append(missing, strings.ToUpper(provider)+"_TOKEN")
	}
	return missing
}

func llmKeyName(provider string) string {
	switch provider {
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	case "openai":
		return "OPENAI_API_KEY"
	default:
		return "GEMINI_API_KEY"
	}
}

func llmKeyPresent(provider string) bool {
	switch provider {
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY") != ""
	case "openai":
		return os.Getenv("OPENAI_API_KEY") != ""
	default:
		return os.Getenv("GEMINI_API_KEY") != "" || os.Getenv("GOOGLE_API_KEY") != ""
	}
}

// Redacted is the display form of a Config. Tokens are replaced by booleans
// reporting whether each is configured.
type Redacted struct {
	ServerHost          string          `json:"server_host"`
	ServerPort          int             `json:"server_port"`
	LLMProvider         string          `json:"llm_provider"`
	LLMModel            string          `json:"llm_model"`
	LLMTemperature      float64         `json:"llm_temperature"`
	PostReview          bool            `json:"ci_post_review"`
	ScoringWeights      scoring.Weights `json:"scoring_weights"`
	ProvidersConfigured map[string]bool `json:"providers_configured"`
	LLMConfigured       bool            `json:"llm_configured"`
}

// Redacted produces the display form of the config.
func (c Config) Redacted() Redacted {
	return Redacted{
		ServerHost:     c.ServerHost,
		ServerPort:     c.ServerPort,
		LLMProvider:    c.LLMProvider,
		LLMModel:       c.LLMModel,
		LLMTemperature: c.LLMTemperature,
		PostReview:     c.PostReview,
		ScoringWeights: c.Weights,
		ProvidersConfigured: map[string]bool{
			"github":    c.GitHubToken != "",
			"gitlab":    c.GitLabToken != "",
			"bitbucket": c.BitbucketToken != "",
		},
		LLMConfigured: llmKeyPresent(c.LLMProvider),
	}
}
