package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Server.BaseURL == "" {
			t.Error("expected default base URL to be set")
		}
		if config.Server.PollSeconds != 5 {
			t.Errorf("expected default poll period 5s, got %d", config.Server.PollSeconds)
		}
		if config.Display.TimeZone != "Asia/Vladivostok" {
			t.Errorf("expected default time zone Asia/Vladivostok, got %s", config.Display.TimeZone)
		}
		if config.Display.TimelineDays != 30 {
			t.Errorf("expected 30 timeline days, got %d", config.Display.TimelineDays)
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")

		content := `
[server]
base_url = "http://example.com:9000"
timeout_seconds = 5
poll_seconds = 2
rate_limit = 1.0

[database]
path = ":memory:"

[display]
time_zone = "UTC"
timeline_days = 7
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if config.Server.BaseURL != "http://example.com:9000" {
			t.Errorf("unexpected base URL %s", config.Server.BaseURL)
		}
		if config.Display.TimelineDays != 7 {
			t.Errorf("expected 7 timeline days, got %d", config.Display.TimelineDays)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("LoadConfig Invalid TOML", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		os.WriteFile(path, []byte("not [valid toml"), 0644)

		if _, err := LoadConfig(path); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when file already exists")
		}
	})
}
