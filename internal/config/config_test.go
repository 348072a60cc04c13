package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GITLAB_BASE_URL", "GITLAB_PROJECT", "GITLAB_TOKEN", "GITLAB_TRIGGER_TOKEN"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultProject, cfg.Project)
	assert.Equal(t, Duration(DefaultPollInterval), cfg.PollInterval)
	assert.Empty(t, cfg.APIToken)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
base_url: https://gitlab.example.com/api/v4
project: DataDog/other-repo
api_token: file-token
trigger_token: file-trigger
poll_interval: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://gitlab.example.com/api/v4", cfg.BaseURL)
	assert.Equal(t, "DataDog/other-repo", cfg.Project)
	assert.Equal(t, "file-token", cfg.APIToken)
	assert.Equal(t, "file-trigger", cfg.TriggerToken)
	assert.Equal(t, Duration(30*time.Second), cfg.PollInterval)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("api_token: file-token\n"), 0o600))

	clearEnv(t)
	t.Setenv("GITLAB_TOKEN", "env-token")
	t.Setenv("GITLAB_PROJECT", "DataDog/env-repo")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.APIToken)
	assert.Equal(t, "DataDog/env-repo", cfg.Project)
}

func TestLoadInvalidYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: [\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadInvalidDuration(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("poll_interval: soon\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
