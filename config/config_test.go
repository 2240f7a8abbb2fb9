package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"JINC_LOG_LEVEL", "JINC_PROVIDER", "JINC_MODEL", "GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".jinc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
	require.Equal(t, 300*time.Millisecond, cfg.Watch.DebounceDuration())
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
log_level: debug
notebook:
  title_from_heading: false
  kernel:
    name: python3
    display_name: Python 3
    language: python
generate:
  seed: 42
watch:
  debounce: 1s
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.False(t, cfg.Notebook.TitleFromHeading)
	require.True(t, cfg.Notebook.ValidateSchema, "unset keys keep their defaults")
	require.Equal(t, "python3", cfg.Notebook.Kernel.Name)
	require.Equal(t, uint64(42), cfg.Generate.Seed)
	require.Equal(t, ProviderTemplate, cfg.Generate.Provider)
	require.Equal(t, time.Second, cfg.Watch.DebounceDuration())
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JINC_LOG_LEVEL", "warn")
	t.Setenv("JINC_PROVIDER", "genai")
	t.Setenv("GOOGLE_API_KEY", "secret")

	cfg, err := Load(writeConfig(t, "log_level: debug\n"))
	require.NoError(t, err)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, ProviderGenAI, cfg.Generate.Provider)
	require.Equal(t, "secret", cfg.Generate.APIKey)
}

func TestLoadDotEnvFromConfigDir(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("GEMINI_API_KEY")

	path := writeConfig(t, "generate:\n  provider: genai\n")
	envPath := filepath.Join(filepath.Dir(path), ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("GEMINI_API_KEY=from-dotenv\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("GEMINI_API_KEY") })

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "from-dotenv", cfg.Generate.APIKey)
}

func TestNotebookSchemaValidationToggle(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, "notebook:\n  validate: false\n"))
	require.NoError(t, err)
	require.False(t, cfg.Notebook.ValidateSchema)
	require.NoError(t, cfg.Notebook.Validate())

	cfg.Notebook.Kernel.Name = "python3"
	require.Error(t, cfg.Notebook.Validate(), "kernel name needs a display name")
}

func TestLoadRejectsBadYAML(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, "log_level: [unterminated\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: "log_level"},
		{name: "unknown provider", mutate: func(c *Config) { c.Generate.Provider = "gpt" }, wantErr: "provider"},
		{name: "genai without key", mutate: func(c *Config) { c.Generate.Provider = ProviderGenAI }, wantErr: "api_key"},
		{name: "genai with key", mutate: func(c *Config) {
			c.Generate.Provider = ProviderGenAI
			c.Generate.APIKey = "k"
		}},
		{name: "kernel without display name", mutate: func(c *Config) { c.Notebook.Kernel.Name = "python3" }, wantErr: "display_name"},
		{name: "bad debounce", mutate: func(c *Config) { c.Watch.Debounce = "soon" }, wantErr: "debounce"},
		{name: "negative debounce", mutate: func(c *Config) { c.Watch.Debounce = "-1s" }, wantErr: "debounce"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
