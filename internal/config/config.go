package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config represents the updater configuration.
type Config struct {
	Provider  string          `yaml:"provider"`
	Providers ProvidersConfig `yaml:"providers"`
}

// ProvidersConfig holds git provider configurations.
type ProvidersConfig struct {
	GitHub GitHubConfig `yaml:"github"`
	GitLab GitLabConfig `yaml:"gitlab"`
}

// GitHubConfig holds GitHub-specific settings.
type GitHubConfig struct {
	Token   string `yaml:"token"`
	BaseURL string `yaml:"base_url"`
}

// GitLabConfig holds GitLab-specific settings.
type GitLabConfig struct {
	Token   string `yaml:"token"`
	BaseURL string `yaml:"base_url"`
	MRIID   int    `yaml:"mr_iid"`
}

// envVarPattern matches ${VAR_NAME} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// DefaultConfig returns a Config with default values. Tokens come from the
// conventional environment variables so a config file is only needed when
// overriding them or targeting GitLab.
func DefaultConfig() *Config {
	return &Config{
		Provider: "github",
		Providers: ProvidersConfig{
			GitHub: GitHubConfig{Token: os.Getenv("GITHUB_TOKEN")},
			GitLab: GitLabConfig{Token: os.Getenv("GITLAB_TOKEN")},
		},
	}
}

// Load reads and parses the config file at the given path. A missing file is
// not an error; defaults apply.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Substitute environment variables
	data = envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		varName := envVarPattern.FindSubmatch(match)[1]
		return []byte(os.Getenv(string(varName)))
	})

	// Start with defaults
	cfg := DefaultConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}
