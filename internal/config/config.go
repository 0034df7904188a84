// Package config loads the run configuration from the process environment,
// an optional .env file and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/sevigo/pr-review/internal/core"
	"github.com/sevigo/pr-review/internal/gitutil"
	"github.com/sevigo/pr-review/internal/logger"
)

// Supported generative providers.
const (
	ProviderGemini    = "gemini"
	ProviderVertex    = "vertex"
	ProviderOllama    = "ollama"
	ProviderAnthropic = "anthropic"
)

// Keys are the environment variable names; flags are bound to the same keys.
const (
	KeyPRNumber        = "PR_NUMBER"
	KeyRepository      = "GITHUB_REPOSITORY"
	KeyPRURL           = "PR_URL"
	KeyGitHubToken     = "GITHUB_TOKEN"
	KeyGitHubAPIURL    = "GITHUB_API_URL"
	KeyAppID           = "GITHUB_APP_ID"
	KeyInstallationID  = "GITHUB_INSTALLATION_ID"
	KeyPrivateKeyPath  = "GITHUB_PRIVATE_KEY_PATH"
	KeyLLMProvider     = "LLM_PROVIDER"
	KeyGeneratorModel  = "GENERATOR_MODEL_NAME"
	KeyGeminiAPIKey    = "GEMINI_API_KEY"
	KeyAnthropicAPIKey = "ANTHROPIC_API_KEY"
	KeyGCPProjectID    = "GCP_PROJECT_ID"
	KeyGCPLocation     = "GCP_LOCATION"
	KeyOllamaHost      = "OLLAMA_HOST"
	KeyLogLevel        = "LOG_LEVEL"
	KeyLogFormat       = "LOG_FORMAT"
	KeyLogOutput       = "LOG_OUTPUT"
	KeyLogFile         = "LOG_FILE"
	KeyDryRun          = "DRY_RUN"
)

// DefaultGitHubAPIURL is the public GitHub REST endpoint.
const DefaultGitHubAPIURL = "https://api.github.com"

var defaultModels = map[string]string{
	ProviderGemini:    "gemini-1.5-flash",
	ProviderVertex:    "gemini-1.5-flash",
	ProviderOllama:    "gemma3:latest",
	ProviderAnthropic: "claude-sonnet-4-5",
}

// Config holds everything a run needs. It is built once at start-up and
// passed to the components that need it.
type Config struct {
	PullRequest core.PullRequest
	GitHub      GitHubConfig
	AI          AIConfig
	Logging     logger.Config
	DryRun      bool
}

// GitHubConfig holds the hosting API settings. Either Token or the three
// App fields must be set.
type GitHubConfig struct {
	Token          string
	APIURL         string
	AppID          int64
	InstallationID int64
	PrivateKeyPath string
}

// UsesApp reports whether GitHub App installation credentials are complete.
func (g GitHubConfig) UsesApp() bool {
	return g.AppID != 0 && g.InstallationID != 0 && g.PrivateKeyPath != ""
}

// IsEnterprise reports whether a non-default API URL is configured.
func (g GitHubConfig) IsEnterprise() bool {
	return IsEnterpriseAPIURL(g.APIURL)
}

// IsEnterpriseAPIURL reports whether apiURL points at a GitHub Enterprise
// Server. An empty URL means the public API.
func IsEnterpriseAPIURL(apiURL string) bool {
	apiURL = strings.TrimRight(apiURL, "/")
	return apiURL != "" && apiURL != DefaultGitHubAPIURL
}

// WebHost is the host pull request URLs are served from: github.com for the
// public API, the API host for an Enterprise Server.
func (g GitHubConfig) WebHost() string {
	if !g.IsEnterprise() {
		return "github.com"
	}
	u, err := url.Parse(g.APIURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// AIConfig holds the generative provider settings.
type AIConfig struct {
	LLMProvider     string
	GeneratorModel  string
	GeminiAPIKey    string
	AnthropicAPIKey string
	GCPProjectID    string
	GCPLocation     string
	OllamaHost      string
}

// LogValue keeps credentials out of structured logs.
func (c *Config) LogValue() slog.Value {
	auth := "token"
	if c.GitHub.UsesApp() {
		auth = "app"
	}
	return slog.GroupValue(
		slog.String("pull_request", c.PullRequest.String()),
		slog.String("github_api", c.GitHub.APIURL),
		slog.String("github_auth", auth),
		slog.String("provider", c.AI.LLMProvider),
		slog.String("model", c.AI.GeneratorModel),
		slog.Bool("dry_run", c.DryRun),
	)
}

// LoadDotEnv loads variables from a .env file into the process environment
// without overriding values that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyGitHubAPIURL, DefaultGitHubAPIURL)
	v.SetDefault(KeyLLMProvider, ProviderGemini)
	v.SetDefault(KeyGCPLocation, "us-central1")
	v.SetDefault(KeyOllamaHost, "http://localhost:11434")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyLogOutput, "stderr")
}

// LoadConfig reads the configuration from v, which must already have the
// environment and any flags bound. Every missing or invalid value is
// collected into a single *core.ConfigError.
func LoadConfig(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	problems := &core.ConfigError{}
	missing := func(key string) { problems.Missing = append(problems.Missing, key) }
	invalid := func(format string, args ...any) {
		problems.Invalid = append(problems.Invalid, fmt.Sprintf(format, args...))
	}

	cfg := &Config{
		GitHub: GitHubConfig{
			Token:          strings.TrimSpace(v.GetString(KeyGitHubToken)),
			APIURL:         strings.TrimRight(v.GetString(KeyGitHubAPIURL), "/"),
			AppID:          parseID(v, KeyAppID, invalid),
			InstallationID: parseID(v, KeyInstallationID, invalid),
			PrivateKeyPath: v.GetString(KeyPrivateKeyPath),
		},
		Logging: logger.Config{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
			Output: v.GetString(KeyLogOutput),
			File:   v.GetString(KeyLogFile),
		},
		DryRun: v.GetBool(KeyDryRun),
	}

	loadPullRequest(v, cfg, missing, invalid)

	if cfg.GitHub.Token == "" && !cfg.GitHub.UsesApp() {
		missing(KeyGitHubToken)
	}

	cfg.AI = loadAI(v, missing, invalid)

	if problems.HasProblems() {
		return nil, problems
	}
	return cfg, nil
}

// LoadAIConfig reads only the generative provider settings. It backs
// commands that never touch a pull request.
func LoadAIConfig(v *viper.Viper) (*AIConfig, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	problems := &core.ConfigError{}
	ai := loadAI(v,
		func(key string) { problems.Missing = append(problems.Missing, key) },
		func(format string, args ...any) {
			problems.Invalid = append(problems.Invalid, fmt.Sprintf(format, args...))
		},
	)
	if problems.HasProblems() {
		return nil, problems
	}
	return &ai, nil
}

func loadAI(v *viper.Viper, missing func(string), invalid func(string, ...any)) AIConfig {
	ai := AIConfig{
		LLMProvider:     strings.ToLower(strings.TrimSpace(v.GetString(KeyLLMProvider))),
		GeneratorModel:  strings.TrimSpace(v.GetString(KeyGeneratorModel)),
		GeminiAPIKey:    strings.TrimSpace(v.GetString(KeyGeminiAPIKey)),
		AnthropicAPIKey: strings.TrimSpace(v.GetString(KeyAnthropicAPIKey)),
		GCPProjectID:    strings.TrimSpace(v.GetString(KeyGCPProjectID)),
		GCPLocation:     v.GetString(KeyGCPLocation),
		OllamaHost:      v.GetString(KeyOllamaHost),
	}

	switch ai.LLMProvider {
	case ProviderGemini:
		if ai.GeminiAPIKey == "" {
			missing(KeyGeminiAPIKey)
		}
	case ProviderVertex:
		if ai.GCPProjectID == "" {
			missing(KeyGCPProjectID)
		}
	case ProviderAnthropic:
		if ai.AnthropicAPIKey == "" {
			missing(KeyAnthropicAPIKey)
		}
	case ProviderOllama:
	default:
		invalid("%s must be one of gemini, vertex, ollama, anthropic, got %q", KeyLLMProvider, ai.LLMProvider)
	}
	if ai.GeneratorModel == "" {
		ai.GeneratorModel = defaultModels[ai.LLMProvider]
	}
	return ai
}

// parseID reads an optional positive numeric GitHub App identifier.
func parseID(v *viper.Viper, key string, invalid func(string, ...any)) int64 {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		invalid("%s must be a positive integer, got %q", key, raw)
		return 0
	}
	return id
}

// loadPullRequest resolves the target either from PR_URL or from
// GITHUB_REPOSITORY and PR_NUMBER.
func loadPullRequest(v *viper.Viper, cfg *Config, missing func(string), invalid func(string, ...any)) {
	if prURL := strings.TrimSpace(v.GetString(KeyPRURL)); prURL != "" {
		ref, err := gitutil.ParsePullRequestURL(prURL)
		if err != nil {
			invalid("%s: %v", KeyPRURL, err)
			return
		}
		if host := cfg.GitHub.WebHost(); !strings.EqualFold(ref.Host, host) {
			invalid("%s: host %q does not match the GitHub host %q (set %s for Enterprise Server)",
				KeyPRURL, ref.Host, host, KeyGitHubAPIURL)
			return
		}
		cfg.PullRequest = core.PullRequest{Owner: ref.Owner, Repo: ref.Repo, Number: ref.Number}
		return
	}

	if fullName := v.GetString(KeyRepository); fullName == "" {
		missing(KeyRepository)
	} else if owner, repo, err := gitutil.ParseRepository(fullName); err != nil {
		invalid("%s: %v", KeyRepository, err)
	} else {
		cfg.PullRequest.Owner = owner
		cfg.PullRequest.Repo = repo
	}

	if raw := v.GetString(KeyPRNumber); raw == "" {
		missing(KeyPRNumber)
	} else if number, err := gitutil.ParsePullRequestNumber(raw); err != nil {
		invalid("%s: %v", KeyPRNumber, err)
	} else {
		cfg.PullRequest.Number = number
	}
}
