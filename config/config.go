package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	viper "github.com/spf13/viper"
	yaml "gopkg.in/yaml.v3"
)

// DefaultConfigPath is read when no --config flag is given. A missing file is not an error.
const DefaultConfigPath = ".costgate/config.yaml"

// Config represents the estimator configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
	Scanner   ScannerConfig   `yaml:"scanner" mapstructure:"scanner"`
	Tokenizer TokenizerConfig `yaml:"tokenizer" mapstructure:"tokenizer"`
	Estimator EstimatorConfig `yaml:"estimator" mapstructure:"estimator"`
	Pricing   PricingConfig   `yaml:"pricing" mapstructure:"pricing"`
	Approval  ApprovalConfig  `yaml:"approval" mapstructure:"approval"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Debug bool   `yaml:"debug" mapstructure:"debug"`
	File  string `yaml:"file" mapstructure:"file"`
}

// ScannerConfig contains the tokenizing filesystem scanner settings
type ScannerConfig struct {
	// Root resolves relative scan targets. Empty means the process working directory.
	Root             string   `yaml:"root" mapstructure:"root"`
	IgnoreDirs       []string `yaml:"ignore_dirs" mapstructure:"ignore_dirs"`
	IgnoreExtensions []string `yaml:"ignore_extensions" mapstructure:"ignore_extensions"`
	RespectGitignore bool     `yaml:"respect_gitignore" mapstructure:"respect_gitignore"`
	MaxFileBytes     int64    `yaml:"max_file_bytes" mapstructure:"max_file_bytes"`
	Workers          int      `yaml:"workers" mapstructure:"workers"`
}

// TokenizerConfig selects the reference tokenizer
type TokenizerConfig struct {
	Model string `yaml:"model" mapstructure:"model"`
}

// ApprovalConfig contains approval round-trip settings
type ApprovalConfig struct {
	// Timeout in seconds for the host to answer. 0 waits for as long as the request lives.
	Timeout int `yaml:"timeout" mapstructure:"timeout"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Debug: false,
		},
		Scanner: ScannerConfig{
			IgnoreDirs: []string{
				".git",
				"node_modules",
				"dist",
				"build",
				"out",
				"coverage",
				"vendor",
				"target",
				"__pycache__",
				".next",
				".venv",
				".idea",
				".vscode",
			},
			IgnoreExtensions: []string{
				".png", ".jpg", ".jpeg", ".gif", ".bmp", ".ico", ".webp", ".svg",
				".pdf", ".zip", ".gz", ".tar", ".tgz", ".7z", ".rar",
				".exe", ".dll", ".so", ".dylib", ".bin", ".class", ".jar", ".wasm",
				".mp3", ".mp4", ".mov", ".avi", ".wav",
				".woff", ".woff2", ".ttf", ".eot", ".otf",
				".lock", ".map", ".db", ".sqlite",
			},
			RespectGitignore: false,
			MaxFileBytes:     0,
			Workers:          1,
		},
		Tokenizer: TokenizerConfig{
			Model: "gpt-4o",
		},
		Estimator: GetDefaultEstimatorConfig(),
		Pricing:   GetDefaultPricingConfig(),
		Approval: ApprovalConfig{
			Timeout: 0,
		},
	}
}

// Load reads configuration from path on top of the defaults. An empty path falls back to
// DefaultConfigPath, which may be absent.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to access config file %s: %w", path, err)
	}

	// Model names such as "ollama/llama3.2" contain dots, so keys use another delimiter.
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	if err := setDefaults(v); err != nil {
		return nil, err
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// setDefaults registers DefaultConfig as the lowest viper layer so that a partial file
// only overrides the keys it names. Lists in the file replace the default lists.
func setDefaults(v *viper.Viper) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	var defaults map[string]any
	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return fmt.Errorf("failed to decode default config: %w", err)
	}

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	return nil
}

// Save writes the configuration as YAML, creating the parent directory.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultConfigPath
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Marshal renders the configuration as YAML with two-space indentation.
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to close YAML encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// Validate rejects settings the estimator cannot compute with.
func (c *Config) Validate() error {
	est := c.Estimator
	if len(est.Tiers) == 0 {
		return fmt.Errorf("estimator.tiers must not be empty")
	}
	for _, tier := range est.Tiers {
		if strings.TrimSpace(tier.Name) == "" {
			return fmt.Errorf("estimator.tiers: tier name must not be empty")
		}
		if tier.MinIterations < 1 {
			return fmt.Errorf("estimator.tiers: tier %s needs min_iterations >= 1", tier.Name)
		}
	}
	if _, ok := c.Tier(est.DefaultComplexity); !ok {
		return fmt.Errorf("estimator.default_complexity %q is not a configured tier", est.DefaultComplexity)
	}
	if est.NewInputRatio < 0 || est.NewInputRatio > 1 {
		return fmt.Errorf("estimator.new_input_ratio must be between 0 and 1, got %g", est.NewInputRatio)
	}
	for _, rule := range est.Risk.Rules {
		if rule.Multiplier < 1 {
			return fmt.Errorf("estimator.risk.rules: rule %q multiplier must be >= 1", rule.Name)
		}
	}
	if c.Scanner.Workers < 1 {
		return fmt.Errorf("scanner.workers must be >= 1")
	}
	if c.Approval.Timeout < 0 {
		return fmt.Errorf("approval.timeout must be >= 0")
	}
	return nil
}

// Tier looks up a complexity tier by name, case-insensitively.
func (c *Config) Tier(name string) (TierConfig, bool) {
	for _, tier := range c.Estimator.Tiers {
		if strings.EqualFold(tier.Name, strings.TrimSpace(name)) {
			return tier, true
		}
	}
	return TierConfig{}, false
}

// TierNames lists the configured tier names in configuration order.
func (c *Config) TierNames() []string {
	names := make([]string, 0, len(c.Estimator.Tiers))
	for _, tier := range c.Estimator.Tiers {
		names = append(names, tier.Name)
	}
	return names
}
