// Package config loads the CLI configuration from an optional YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL      = "https://gitlab.ddbuild.io/api/v4"
	DefaultProject      = "DataDog/datadog-agent"
	DefaultPollInterval = 10 * time.Second
)

type Config struct {
	BaseURL      string   `yaml:"base_url"`
	Project      string   `yaml:"project"`
	APIToken     string   `yaml:"api_token"`
	TriggerToken string   `yaml:"trigger_token"`
	PollInterval Duration `yaml:"poll_interval"`
}

// Duration wraps time.Duration so intervals can be written as "10s" in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("failed to parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// DefaultPath returns the default config file location, ~/.gitlab-pipelines.yml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gitlab-pipelines.yml"
	}
	return filepath.Join(home, ".gitlab-pipelines.yml")
}

// Load reads the config file at path and applies environment overrides. A
// missing file is not an error; the environment alone can supply everything.
func Load(path string) (*Config, error) {
	cfg := &Config{
		BaseURL:      DefaultBaseURL,
		Project:      DefaultProject,
		PollInterval: Duration(DefaultPollInterval),
	}

	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// config file is optional
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if v := os.Getenv("GITLAB_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("GITLAB_PROJECT"); v != "" {
		cfg.Project = v
	}
	if v := os.Getenv("GITLAB_TOKEN"); v != "" {
		cfg.APIToken = v
	}
	if v := os.Getenv("GITLAB_TRIGGER_TOKEN"); v != "" {
		cfg.TriggerToken = v
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = Duration(DefaultPollInterval)
	}

	return cfg, nil
}
