package ember

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingConfigFallsBackToDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Level != "info" || cfg.Theme != defaultTheme || cfg.Width != defaultWidth {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.Console == nil || cfg.Console.Format != "pretty" {
		t.Fatalf("default console = %+v", cfg.Console)
	}
}

func TestLoadParsesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
level = "  debug  "
width = 100
theme = "slate"
redact = ["password"]

[file]
path = "/tmp/ember.log"
format = "plain"
max_size = 1048576
max_backups = 3

[http]
url = "http://127.0.0.1:9000/logs"
batch_size = 4
flush_every = "500ms"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Level != "debug" {
		t.Fatalf("Level = %q, want trimmed %q", cfg.Level, "debug")
	}
	if cfg.Width != 100 || cfg.Theme != "slate" {
		t.Fatalf("Width/Theme = %d/%q", cfg.Width, cfg.Theme)
	}
	if len(cfg.Redact) != 1 || cfg.Redact[0] != "password" {
		t.Fatalf("Redact = %v", cfg.Redact)
	}
	if cfg.Console != nil {
		t.Fatalf("Console = %+v, want nil when other sections are present", cfg.Console)
	}
	if cfg.File == nil || cfg.File.MaxBackups != 3 || cfg.File.MaxSize != 1048576 {
		t.Fatalf("File = %+v", cfg.File)
	}
	if cfg.HTTP == nil || cfg.HTTP.BatchSize != 4 || cfg.HTTP.FlushEvery != "500ms" {
		t.Fatalf("HTTP = %+v", cfg.HTTP)
	}
}

func TestLoadMalformedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("level = [\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load = %v, want a parse error", err)
	}
}

func TestLoadDefaultPathExpandsTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "ember")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`level = "error"`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Level != "error" {
		t.Fatalf("Level = %q, want the file under HOME", cfg.Level)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Theme = "slate"
	cfg.Redact = []string{"token"}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Theme != "slate" {
		t.Fatalf("Theme = %q", loaded.Theme)
	}
	if len(loaded.Redact) != 1 || loaded.Redact[0] != "token" {
		t.Fatalf("Redact = %v", loaded.Redact)
	}
	if loaded.Console == nil || loaded.Console.Format != "pretty" {
		t.Fatalf("Console = %+v", loaded.Console)
	}
}

func TestBuildRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"unknown level", Config{Level: "loud", Console: &ConsoleConfig{}}, "config level"},
		{"unknown format", Config{Level: "info", Console: &ConsoleConfig{Format: "yaml"}}, `unknown format "yaml"`},
		{"file without path", Config{Level: "info", File: &FileConfig{}}, "path is required"},
		{"http without url", Config{Level: "info", HTTP: &HTTPConfig{}}, "url is required"},
		{"bad flush_every", Config{Level: "info", HTTP: &HTTPConfig{URL: "http://x", FlushEvery: "soon"}}, "flush_every"},
		{"socket without url", Config{Level: "info", Socket: &SocketConfig{}}, "url is required"},
		{"no destinations", Config{Level: "info"}, "no destinations"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.Build()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Build = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestBuildFileDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	cfg := Config{
		Level: "info",
		Width: 80,
		File:  &FileConfig{Path: path},
	}

	logger, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	logger.Info("written to disk", String("user", "ada"))
	if err := logger.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "written to disk") || !strings.Contains(out, "user=ada") {
		t.Fatalf("log file = %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("log file has escape sequences: %q", out)
	}
}

func TestBuildFileJSONDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	cfg := Config{
		Level: "info",
		File:  &FileConfig{Path: path, Format: "json"},
	}

	logger, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	logger.Info("hello", String("user", "ada"))
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	line := strings.TrimSuffix(string(data), "\n")
	if !json.Valid([]byte(line)) {
		t.Fatalf("log line is not JSON: %q", line)
	}
	if !strings.Contains(line, `"msg":"hello"`) {
		t.Fatalf("log line = %q", line)
	}
}

func TestBuildRedactsConfiguredKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	cfg := Config{
		Level:  "info",
		Redact: []string{"password"},
		File:   &FileConfig{Path: path},
	}

	logger, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	logger.Info("login", String("user", "ada"), String("password", "hunter2"))
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if strings.Contains(out, "hunter2") {
		t.Fatalf("log file leaked the secret: %q", out)
	}
	if !strings.Contains(out, "password=***") {
		t.Fatalf("log file = %q, want a masked value", out)
	}
	if !strings.Contains(out, "user=ada") {
		t.Fatalf("log file = %q, unrelated field masked", out)
	}
}
