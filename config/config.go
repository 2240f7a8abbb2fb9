package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/reecepbcups/jinc/logger"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".jinc.yaml"

const (
	ProviderTemplate = "template"
	ProviderGenAI    = "genai"
)

func init() {
	// report yaml keys in validation errors
	validation.ErrorTag = "yaml"
}

// Config holds all jinc configuration.
type Config struct {
	LogLevel string         `yaml:"log_level"`
	Notebook NotebookConfig `yaml:"notebook"`
	Generate GenerateConfig `yaml:"generate"`
	Watch    WatchConfig    `yaml:"watch"`
}

// NotebookConfig controls how notebooks are built.
type NotebookConfig struct {
	TitleFromHeading bool         `yaml:"title_from_heading"`
	ValidateSchema   bool         `yaml:"validate"`
	Kernel           KernelConfig `yaml:"kernel"`
}

// KernelConfig is written as the notebook kernelspec when Name is set.
type KernelConfig struct {
	Name        string `yaml:"name"`
	DisplayName string `yaml:"display_name"`
	Language    string `yaml:"language"`
}

// GenerateConfig configures tutorial generation.
type GenerateConfig struct {
	Provider string `yaml:"provider"` // template, genai
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	Seed     uint64 `yaml:"seed"` // 0 picks a time-based seed
}

// WatchConfig configures --watch.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Notebook: NotebookConfig{
			TitleFromHeading: true,
			ValidateSchema:   true,
		},
		Generate: GenerateConfig{
			Provider: ProviderTemplate,
			Model:    "gemini-2.5-flash",
		},
		Watch: WatchConfig{
			Debounce: "300ms",
		},
	}
}

// Load reads configuration from path on top of the defaults, then applies
// .env and environment overrides and validates the result. A missing file
// is not an error. Variables already set in the environment win over .env.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	log := logger.GetLogger()

	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		log.Debug("Loaded config file", "path", path)
	case os.IsNotExist(err):
		log.Debug("No config file found, using defaults", "path", path)
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	loadDotEnv(filepath.Dir(path))
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadDotEnv loads .env from the working directory and the config directory.
func loadDotEnv(configDir string) {
	_ = godotenv.Load()
	if configDir != "" && configDir != "." {
		envPath := filepath.Join(configDir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
		}
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("JINC_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("JINC_PROVIDER"); v != "" {
		c.Generate.Provider = v
	}
	if v := os.Getenv("JINC_MODEL"); v != "" {
		c.Generate.Model = v
	}
	if c.Generate.APIKey == "" {
		c.Generate.APIKey = firstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY")
	}
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// Validate checks field values and cross-field rules.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.By(func(value any) error {
			if _, _, ok := logger.ParseLevel(value.(string)); !ok {
				return validation.NewError("jinc.config.log_level", "must be one of debug, info, warn, error, off")
			}
			return nil
		})),
		validation.Field(&c.Notebook),
		validation.Field(&c.Generate),
		validation.Field(&c.Watch),
	)
}

// Validate requires name and display_name together.
func (k KernelConfig) Validate() error {
	return validation.ValidateStruct(&k,
		validation.Field(&k.Name, validation.When(k.DisplayName != "", validation.Required)),
		validation.Field(&k.DisplayName, validation.When(k.Name != "", validation.Required)),
	)
}

// Validate checks the nested kernel settings.
func (n NotebookConfig) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.Kernel),
	)
}

// Validate checks the provider and its credentials.
func (g GenerateConfig) Validate() error {
	return validation.ValidateStruct(&g,
		validation.Field(&g.Provider, validation.Required, validation.In(ProviderTemplate, ProviderGenAI)),
		validation.Field(&g.Model, validation.When(g.Provider == ProviderGenAI, validation.Required)),
		validation.Field(&g.APIKey, validation.When(g.Provider == ProviderGenAI,
			validation.Required.Error("is required for the genai provider (set GEMINI_API_KEY)"))),
	)
}

// Validate checks that the debounce parses as a non-negative duration.
func (w WatchConfig) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.Debounce, validation.By(func(value any) error {
			if _, err := parseDebounce(value.(string)); err != nil {
				return err
			}
			return nil
		})),
	)
}

// DebounceDuration returns the parsed watch debounce.
func (w WatchConfig) DebounceDuration() time.Duration {
	d, err := parseDebounce(w.Debounce)
	if err != nil {
		return 0
	}
	return d
}

func parseDebounce(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, validation.NewError("jinc.config.watch.debounce", "must be a duration such as 300ms")
	}
	if d < 0 {
		return 0, validation.NewError("jinc.config.watch.debounce", "must not be negative")
	}
	return d, nil
}
