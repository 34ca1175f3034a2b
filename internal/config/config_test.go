package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies default configuration values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogDir != "" {
		t.Errorf("LogDir = %q, want empty", cfg.LogDir)
	}
	if cfg.MaxTextLength != 100000 {
		t.Errorf("MaxTextLength = %d, want 100000", cfg.MaxTextLength)
	}
	if cfg.MaxConcurrency != 4 {
		t.Errorf("MaxConcurrency = %d, want 4", cfg.MaxConcurrency)
	}
	if cfg.Output != OutputText {
		t.Errorf("Output = %q, want %q", cfg.Output, OutputText)
	}
	if !cfg.History.Enabled {
		t.Error("History.Enabled = false, want true")
	}
	if cfg.History.DBPath != filepath.Join(".haiku", "history.db") {
		t.Errorf("History.DBPath = %q", cfg.History.DBPath)
	}
	if cfg.History.InitialCount != 1245 {
		t.Errorf("History.InitialCount = %d, want 1245", cfg.History.InitialCount)
	}
	if cfg.Watch.Debounce != 100*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want 100ms", cfg.Watch.Debounce)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

// TestLoadConfigValidFile tests loading a valid YAML config file
func TestLoadConfigValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `log_level: debug
log_dir: /tmp/haiku-logs
max_text_length: 2048
max_concurrency: 8
output: json
history:
  enabled: false
  db_path: /tmp/h.db
  initial_count: 0
watch:
  debounce: 250ms
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.LogDir != "/tmp/haiku-logs" {
		t.Errorf("LogDir = %q", cfg.LogDir)
	}
	if cfg.MaxTextLength != 2048 {
		t.Errorf("MaxTextLength = %d, want 2048", cfg.MaxTextLength)
	}
	if cfg.MaxConcurrency != 8 {
		t.Errorf("MaxConcurrency = %d, want 8", cfg.MaxConcurrency)
	}
	if cfg.Output != OutputJSON {
		t.Errorf("Output = %q, want json", cfg.Output)
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled = true, want false")
	}
	if cfg.History.DBPath != "/tmp/h.db" {
		t.Errorf("History.DBPath = %q", cfg.History.DBPath)
	}
	if cfg.History.InitialCount != 0 {
		t.Errorf("History.InitialCount = %d, want 0", cfg.History.InitialCount)
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want 250ms", cfg.Watch.Debounce)
	}
}

// TestLoadConfigPartialFile verifies unspecified keys keep their defaults
func TestLoadConfigPartialFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `history:
  initial_count: 10
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	defaults := DefaultConfig()
	if cfg.History.InitialCount != 10 {
		t.Errorf("History.InitialCount = %d, want 10", cfg.History.InitialCount)
	}
	if cfg.History.Enabled != defaults.History.Enabled {
		t.Errorf("History.Enabled = %v, want default", cfg.History.Enabled)
	}
	if cfg.History.DBPath != defaults.History.DBPath {
		t.Errorf("History.DBPath = %q, want default", cfg.History.DBPath)
	}
	if cfg.MaxTextLength != defaults.MaxTextLength {
		t.Errorf("MaxTextLength = %d, want default", cfg.MaxTextLength)
	}
}

func TestLoadConfigZeroMaxTextLength(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("max_text_length: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.MaxTextLength != 0 {
		t.Errorf("MaxTextLength = %d, want 0 (unlimited)", cfg.MaxTextLength)
	}
}

// TestLoadConfigMissingFile verifies defaults are returned without error
func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"malformed yaml", "log_level: [unterminated", "failed to parse config file"},
		{"bad debounce", "watch:\n  debounce: soon\n", "invalid watch.debounce format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			_, err := LoadConfig(configPath)
			if err == nil {
				t.Fatal("LoadConfig() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigFromDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".haiku"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".haiku", "config.yaml"), []byte("output: json\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFromDir(dir)
	if err != nil {
		t.Fatalf("LoadConfigFromDir() error = %v", err)
	}
	if cfg.Output != OutputJSON {
		t.Errorf("Output = %q, want json", cfg.Output)
	}
}

func TestMergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()
	level := "debug"
	output := OutputJSON
	concurrency := 2
	noHistory := true

	cfg.MergeWithFlags(&level, &output, &concurrency, &noHistory)

	if cfg.LogLevel != "debug" || cfg.Output != OutputJSON || cfg.MaxConcurrency != 2 {
		t.Errorf("flags not merged: %+v", cfg)
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled should be false after --no-history")
	}

	untouched := DefaultConfig()
	untouched.MergeWithFlags(nil, nil, nil, nil)
	if *untouched != *DefaultConfig() {
		t.Errorf("nil flags changed config: %+v", untouched)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"negative max text length", func(c *Config) { c.MaxTextLength = -1 }, true},
		{"unlimited text length", func(c *Config) { c.MaxTextLength = 0 }, false},
		{"zero concurrency", func(c *Config) { c.MaxConcurrency = 0 }, true},
		{"bad output", func(c *Config) { c.Output = "xml" }, true},
		{"empty db path", func(c *Config) { c.History.DBPath = "" }, true},
		{"empty db path with history off", func(c *Config) { c.History.Enabled = false; c.History.DBPath = "" }, false},
		{"negative initial count", func(c *Config) { c.History.InitialCount = -5 }, true},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetHaikuHome(t *testing.T) {
	t.Setenv("HAIKU_HOME", "/srv/haiku")
	home, err := GetHaikuHome()
	if err != nil {
		t.Fatal(err)
	}
	if home != "/srv/haiku" {
		t.Errorf("GetHaikuHome() = %q, want /srv/haiku", home)
	}

	t.Setenv("HAIKU_HOME", "")
	home, err = GetHaikuHome()
	if err != nil {
		t.Fatal(err)
	}
	cwd, _ := os.Getwd()
	if home != cwd {
		t.Errorf("GetHaikuHome() = %q, want %q", home, cwd)
	}
}
