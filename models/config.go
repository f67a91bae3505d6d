package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AIConfig configures the external model client. Credentials and endpoint are
// injected here rather than read from ambient globals.
type AIConfig struct {
	Endpoint    string        `yaml:"endpoint,omitempty" mapstructure:"endpoint"`
	APIKey      string        `yaml:"api_key,omitempty" mapstructure:"api_key"`
	Model       string        `yaml:"model" mapstructure:"model"`
	MaxTokens   int64         `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float64       `yaml:"temperature" mapstructure:"temperature"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// LinterConfig configures the external linter invocation.
type LinterConfig struct {
	Binary       string        `yaml:"binary" mapstructure:"binary"`
	Args         []string      `yaml:"args,omitempty" mapstructure:"args"`
	DefaultScore float64       `yaml:"default_score" mapstructure:"default_score"`
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// DBConfig configures the persistence store location.
type DBConfig struct {
	Dir string `yaml:"dir,omitempty" mapstructure:"dir"`
}

// Config is the root configuration for the analysis pipeline.
type Config struct {
	AI     AIConfig     `yaml:"ai" mapstructure:"ai"`
	Linter LinterConfig `yaml:"linter" mapstructure:"linter"`
	DB     DBConfig     `yaml:"db" mapstructure:"db"`

	// AIRatePerMinute paces model calls during bulk analysis.
	AIRatePerMinute int `yaml:"ai_rate_per_minute" mapstructure:"ai_rate_per_minute"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		AI: AIConfig{
			Model:       "claude-3-5-haiku-latest",
			MaxTokens:   2000,
			Temperature: 0.3,
			Timeout:     60 * time.Second,
		},
		Linter: LinterConfig{
			Binary:       "pylint",
			DefaultScore: 10.0,
			Timeout:      30 * time.Second,
		},
		AIRatePerMinute: 30,
	}
}

// LoadConfig reads a YAML config file over the defaults. A missing path
// returns the defaults unchanged.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}
