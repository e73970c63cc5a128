package confloader

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	API struct {
		BaseURL string        `koanf:"base_url"`
		Timeout time.Duration `koanf:"timeout"`
	} `koanf:"api"`
	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
	Output string `koanf:"output"`
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cli.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestNewLoader(t *testing.T) {
	l := NewLoader()
	if l == nil {
		t.Fatal("NewLoader() returned nil")
	}
	if l.envPrefix != DefaultEnvPrefix {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, DefaultEnvPrefix)
	}
}

func TestNewLoader_WithOptions(t *testing.T) {
	l := NewLoader(
		WithEnvPrefix("TEST_"),
		WithConfigFile("/path/to/cli.yaml"),
		WithDefaults(map[string]any{"output": "table"}),
		WithOverrides(map[string]any{"output": "json"}),
	)

	if l.envPrefix != "TEST_" {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, "TEST_")
	}
	if l.filePath != "/path/to/cli.yaml" {
		t.Errorf("filePath = %q", l.filePath)
	}
	if l.defaults["output"] != "table" || l.overrides["output"] != "json" {
		t.Errorf("defaults/overrides not stored: %v %v", l.defaults, l.overrides)
	}
}

func TestLoader_LoadFile(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: "http://console.internal:5000"
  timeout: 30s
log:
  level: debug
`)

	l := NewLoader()
	if err := l.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if got := l.GetString("api.base_url"); got != "http://console.internal:5000" {
		t.Errorf("api.base_url = %q", got)
	}
	if got := l.GetString("log.level"); got != "debug" {
		t.Errorf("log.level = %q", got)
	}
}

func TestLoader_LoadFile_NotFound(t *testing.T) {
	l := NewLoader()
	if err := l.LoadFile("/nonexistent/cli.yaml"); err == nil {
		t.Error("LoadFile() should return error for nonexistent file")
	}
}

func TestLoader_LoadFile_Empty(t *testing.T) {
	l := NewLoader()
	if err := l.LoadFile(""); err != nil {
		t.Errorf("LoadFile(\"\") should not error, got: %v", err)
	}
}

func TestLoader_LoadEnv(t *testing.T) {
	t.Setenv("LLMOPS_API_BASE_URL", "http://127.0.0.1:8080")
	t.Setenv("LLMOPS_OUTPUT", "yaml")

	l := NewLoader()
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	if got := l.GetString("api.base_url"); got != "http://127.0.0.1:8080" {
		t.Errorf("api.base_url = %q", got)
	}
	if got := l.GetString("output"); got != "yaml" {
		t.Errorf("output = %q", got)
	}
}

func TestLoader_LoadEnv_CustomPrefix(t *testing.T) {
	t.Setenv("MYAPP_LOG_LEVEL", "info")

	l := NewLoader(WithEnvPrefix("MYAPP_"))
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	if got := l.GetString("log.level"); got != "info" {
		t.Errorf("log.level = %q", got)
	}
}

func TestLoader_LoadMap_DottedKeys(t *testing.T) {
	l := NewLoader()
	if err := l.LoadMap(map[string]any{"api.base_url": "localhost:3000", "debug": true}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}

	var cfg testConfig
	if err := l.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if cfg.API.BaseURL != "localhost:3000" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if !l.GetBool("debug") {
		t.Error("debug should be true")
	}
}

func TestLoader_Load_Priority(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: "http://from-file"
  timeout: 30s
log:
  level: debug
output: yaml
`)
	t.Setenv("LLMOPS_API_BASE_URL", "http://from-env")
	t.Setenv("LLMOPS_LOG_LEVEL", "error")

	l := NewLoader(
		WithConfigFile(path),
		WithDefaults(map[string]any{
			"api.base_url": "http://default",
			"api.timeout":  "100s",
			"log.level":    "warn",
			"output":       "table",
		}),
		WithOverrides(map[string]any{"log.level": "info"}),
	)

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "http://from-env" {
		t.Errorf("BaseURL = %q, env should override file", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, file should override default", cfg.API.Timeout)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Level = %q, overrides should win", cfg.Log.Level)
	}
	if cfg.Output != "yaml" {
		t.Errorf("Output = %q", cfg.Output)
	}
}

func TestLoader_Load_DefaultsOnly(t *testing.T) {
	l := NewLoader(WithEnvPrefix("LLMOPS_TEST_UNSET_"), WithDefaults(map[string]any{
		"api.timeout": "100s",
		"output":      "table",
	}))

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.Timeout != 100*time.Second {
		t.Errorf("Timeout = %v", cfg.API.Timeout)
	}
	if cfg.Output != "table" {
		t.Errorf("Output = %q", cfg.Output)
	}
}

func TestLoader_IsLoaded(t *testing.T) {
	l := NewLoader()

	if l.IsLoaded() {
		t.Error("IsLoaded() should be false before Load()")
	}

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !l.IsLoaded() {
		t.Error("IsLoaded() should be true after Load()")
	}
}

func TestLoader_AllAndKeys(t *testing.T) {
	l := NewLoader()
	_ = l.LoadMap(map[string]any{
		"key1": "value1",
		"key2": "value2",
	})

	if all := l.All(); len(all) < 2 {
		t.Errorf("All() returned %d keys, want at least 2", len(all))
	}
	if keys := l.Keys(); len(keys) < 2 {
		t.Errorf("Keys() returned %d keys, want at least 2", len(keys))
	}
}

func TestLoader_GetInt(t *testing.T) {
	l := NewLoader()
	_ = l.LoadMap(map[string]any{"page_size": 50})

	if got := l.GetInt("page_size"); got != 50 {
		t.Errorf("GetInt(page_size) = %d, want %d", got, 50)
	}
}

func TestMapProvider_ReadBytes(t *testing.T) {
	if _, err := (mapProvider{}).ReadBytes(); err != ErrReadBytesNotSupported {
		t.Errorf("ReadBytes() error = %v", err)
	}
}
