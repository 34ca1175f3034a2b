package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Output formats supported by the CLI
const (
	OutputText = "text"
	OutputJSON = "json"
)

// HistoryConfig represents detection history configuration
type HistoryConfig struct {
	// Enabled records every detection in the history database
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the history database
	DBPath string `yaml:"db_path"`

	// InitialCount seeds the "haikus detected" tally
	InitialCount int `yaml:"initial_count"`
}

// WatchConfig represents configuration for the watch command
type WatchConfig struct {
	// Debounce coalesces rapid writes to the watched file
	Debounce time.Duration `yaml:"debounce"`
}

// Config represents haiku configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where run logs are written (empty = console only)
	LogDir string `yaml:"log_dir"`

	// MaxTextLength is the largest input accepted, in bytes (0 = unlimited)
	MaxTextLength int `yaml:"max_text_length"`

	// MaxConcurrency is the maximum number of files scanned at once
	MaxConcurrency int `yaml:"max_concurrency"`

	// Output selects the result format (text, json)
	Output string `yaml:"output"`

	// History contains detection history configuration
	History HistoryConfig `yaml:"history"`

	// Watch contains watch command configuration
	Watch WatchConfig `yaml:"watch"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:       "info",
		LogDir:         "",
		MaxTextLength:  100000,
		MaxConcurrency: 4,
		Output:         OutputText,
		History: HistoryConfig{
			Enabled:      true,
			DBPath:       filepath.Join(".haiku", "history.db"),
			InitialCount: 1245,
		},
		Watch: WatchConfig{
			Debounce: 100 * time.Millisecond,
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Durations are parsed by hand so "250ms" style values work
	type yamlWatch struct {
		Debounce string `yaml:"debounce"`
	}
	type yamlConfig struct {
		LogLevel       string        `yaml:"log_level"`
		LogDir         string        `yaml:"log_dir"`
		MaxTextLength  int           `yaml:"max_text_length"`
		MaxConcurrency int           `yaml:"max_concurrency"`
		Output         string        `yaml:"output"`
		History        HistoryConfig `yaml:"history"`
		Watch          yamlWatch     `yaml:"watch"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if _, exists := rawMap["log_dir"]; exists {
		cfg.LogDir = yamlCfg.LogDir
	}
	// max_text_length: 0 is meaningful (unlimited), so presence decides
	if _, exists := rawMap["max_text_length"]; exists {
		cfg.MaxTextLength = yamlCfg.MaxTextLength
	}
	if yamlCfg.MaxConcurrency != 0 {
		cfg.MaxConcurrency = yamlCfg.MaxConcurrency
	}
	if yamlCfg.Output != "" {
		cfg.Output = yamlCfg.Output
	}

	if historySection, exists := rawMap["history"]; exists && historySection != nil {
		history := yamlCfg.History
		historyMap, _ := historySection.(map[string]interface{})

		if _, exists := historyMap["enabled"]; exists {
			cfg.History.Enabled = history.Enabled
		}
		if _, exists := historyMap["db_path"]; exists {
			cfg.History.DBPath = history.DBPath
		}
		if _, exists := historyMap["initial_count"]; exists {
			cfg.History.InitialCount = history.InitialCount
		}
	}

	if yamlCfg.Watch.Debounce != "" {
		debounce, err := time.ParseDuration(yamlCfg.Watch.Debounce)
		if err != nil {
			return nil, fmt.Errorf("invalid watch.debounce format %q: %w", yamlCfg.Watch.Debounce, err)
		}
		cfg.Watch.Debounce = debounce
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .haiku/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ".haiku", "config.yaml")
	return LoadConfig(configPath)
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(logLevel *string, output *string, maxConcurrency *int, noHistory *bool) {
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if output != nil {
		c.Output = *output
	}
	if maxConcurrency != nil {
		c.MaxConcurrency = *maxConcurrency
	}
	if noHistory != nil && *noHistory {
		c.History.Enabled = false
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.MaxTextLength < 0 {
		return fmt.Errorf("max_text_length must be >= 0, got %d", c.MaxTextLength)
	}

	if c.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be >= 1, got %d", c.MaxConcurrency)
	}

	if c.Output != OutputText && c.Output != OutputJSON {
		return fmt.Errorf("invalid output %q, must be one of: text, json", c.Output)
	}

	if c.History.Enabled {
		if c.History.DBPath == "" {
			return fmt.Errorf("history.db_path cannot be empty when history is enabled")
		}
		if c.History.InitialCount < 0 {
			return fmt.Errorf("history.initial_count must be >= 0, got %d", c.History.InitialCount)
		}
	}

	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must be >= 0, got %v", c.Watch.Debounce)
	}

	return nil
}
