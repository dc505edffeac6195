package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
	if cfg.Logging.MaxSizeMB != 10 {
		t.Errorf("expected max size 10, got %d", cfg.Logging.MaxSizeMB)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
logging:
  level: "debug"
  log_file: "quizgen.log"
  max_size_mb: 2
  max_backups: 0
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "quizgen.log" {
		t.Errorf("expected log file 'quizgen.log', got %s", cfg.Logging.LogFile)
	}
	if cfg.Logging.MaxSizeMB != 2 {
		t.Errorf("expected max size 2, got %d", cfg.Logging.MaxSizeMB)
	}
	if cfg.Logging.MaxBackups != 0 {
		t.Errorf("expected max backups 0, got %d", cfg.Logging.MaxBackups)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
logging:
  level: [not, a, string
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/quizgen.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty level", func(c *Config) { c.Logging.Level = "" }, false},
		{"unknown level", func(c *Config) { c.Logging.Level = "trace" }, true},
		{"negative size", func(c *Config) { c.Logging.MaxSizeMB = -1 }, true},
		{"negative backups", func(c *Config) { c.Logging.MaxBackups = -5 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoggerFile(t *testing.T) {
	cfg := Default()
	if fc := cfg.LoggerFile(); fc.Path != "" {
		t.Errorf("expected file logging disabled, got path %s", fc.Path)
	}

	cfg.Logging.LogFile = "out.log"
	cfg.Logging.MaxSizeMB = 5
	cfg.Logging.MaxBackups = 1
	fc := cfg.LoggerFile()
	if fc.Path != "out.log" || fc.MaxSizeMB != 5 || fc.MaxBackups != 1 {
		t.Errorf("unexpected file config: %+v", fc)
	}
	if !fc.Compress {
		t.Error("expected compression from defaults")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(FileName, []byte("logging:\n  level: warn\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Error("expected to find config in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	*flagDebug = true
	*flagLogFile = "flag.log"
	defer func() {
		*flagDebug = false
		*flagLogFile = ""
	}()

	cfg := Default()
	applyFlags(cfg)

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "flag.log" {
		t.Errorf("expected log file 'flag.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
logging:
  level: warn
  log_file: file.log
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagDebug = true
	defer func() {
		*flagConfig = ""
		*flagDebug = false
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Level comes from the flag, log file from the file.
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected level debug from flag, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "file.log" {
		t.Errorf("expected log file from config file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadRejectsBadLevel(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)
	if err := os.WriteFile(configPath, []byte("logging:\n  level: chatty\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected validation error for unknown level")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	cfg.Logging.Level = "error"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reloading saved config: %v", err)
	}
	if loaded.Logging.Level != "error" {
		t.Errorf("expected saved level 'error', got %s", loaded.Logging.Level)
	}
}

func TestSave(t *testing.T) {
	if ConfigDir() == "" {
		t.Skip("no config dir on this platform")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())

	path, err := Default().Save()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected saved config at %s: %v", path, err)
	}
}

func TestParseFlags(t *testing.T) {
	defer func() {
		*flagDebug = false
		*flagLogFile = ""
	}()

	var out bytes.Buffer
	err := ParseFlags([]string{"-debug", "-log-file", "x.log", "dump", "quiz001"}, &out, func() {})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !*flagDebug || *flagLogFile != "x.log" {
		t.Errorf("flags not applied: debug=%v log-file=%q", *flagDebug, *flagLogFile)
	}
	if got := Args(); len(got) != 2 || got[0] != "dump" || got[1] != "quiz001" {
		t.Errorf("unexpected remaining args: %v", got)
	}

	if err := ParseFlags([]string{"-nope"}, &out, func() {}); err == nil {
		t.Error("expected error for unknown flag")
	}
	if !strings.Contains(out.String(), "-nope") {
		t.Errorf("expected flag error on output, got %q", out.String())
	}
}
