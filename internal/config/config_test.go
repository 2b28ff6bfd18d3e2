package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if !cfg.Server.EmbeddedWorker {
		t.Fatal("embedded worker should default to enabled")
	}
	if cfg.Paths.APIBind != "127.0.0.1:8000" {
		t.Fatalf("unexpected api bind %q", cfg.Paths.APIBind)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("missing file reported as existing")
	}
	if cfg.Whisper.Model != "small" || cfg.Ollama.Model != "llama3.2" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadParsesAndExpands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
data_dir = "` + filepath.Join(dir, "data") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"
api_bind = "127.0.0.1:9999"

[server]
api_token = "sekrit"
embedded_worker = false

[whisper]
model = "medium"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolution wrong: exists=%v path=%q", exists, resolved)
	}
	if cfg.Paths.APIBind != "127.0.0.1:9999" {
		t.Fatalf("api bind %q", cfg.Paths.APIBind)
	}
	if cfg.Server.APIToken != "sekrit" || cfg.Server.EmbeddedWorker {
		t.Fatalf("server section %+v", cfg.Server)
	}
	if cfg.Whisper.Model != "medium" {
		t.Fatalf("whisper model %q", cfg.Whisper.Model)
	}
	// Untouched sections keep their defaults.
	if cfg.Ollama.BaseURL != "http://localhost:11434" {
		t.Fatalf("ollama base url %q", cfg.Ollama.BaseURL)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("NOTION_API_KEY", "env-key")
	t.Setenv("WORKER_SECRET", "env-token")
	t.Setenv("POLL_INTERVAL", "7")
	t.Setenv("OLLAMA_MODEL_NAME", "mistral")

	cfg, _, _, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Notion.APIKey != "env-key" {
		t.Fatalf("notion key %q", cfg.Notion.APIKey)
	}
	if cfg.Server.APIToken != "env-token" {
		t.Fatalf("api token %q", cfg.Server.APIToken)
	}
	if cfg.Worker.PollInterval != 7 {
		t.Fatalf("poll interval %d", cfg.Worker.PollInterval)
	}
	if cfg.Ollama.Model != "mistral" {
		t.Fatalf("ollama model %q", cfg.Ollama.Model)
	}
}

func TestEnvOverrideIgnoresInvalidInt(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "not-a-number")
	cfg, _, _, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Worker.PollInterval != defaultPollInterval {
		t.Fatalf("poll interval %d", cfg.Worker.PollInterval)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing data dir", func(c *Config) { c.Paths.DataDir = "" }, "paths.data_dir"},
		{"missing api bind", func(c *Config) { c.Paths.APIBind = "" }, "paths.api_bind"},
		{"zero poll interval", func(c *Config) { c.Worker.PollInterval = 0 }, "worker.poll_interval"},
		{"missing whisper model", func(c *Config) { c.Whisper.Model = "" }, "whisper.model"},
		{"missing ollama url", func(c *Config) { c.Ollama.BaseURL = "" }, "ollama.base_url"},
		{"zero notion timeout", func(c *Config) { c.Notion.TimeoutSeconds = 0 }, "notion.timeout_seconds"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestNotionCredentialsAreOptional(t *testing.T) {
	cfg := Default()
	cfg.Notion.APIKey = ""
	cfg.Notion.DatabaseID = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("worker-only hosts must validate without notion credentials: %v", err)
	}
}

func TestCreateSampleParses(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, exists, err := Load(target); err != nil || !exists {
		t.Fatalf("sample config does not load: exists=%v err=%v", exists, err)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	expanded, err := ExpandPath("~/voxlog")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if expanded != filepath.Join(home, "voxlog") {
		t.Fatalf("expanded to %q", expanded)
	}
}
