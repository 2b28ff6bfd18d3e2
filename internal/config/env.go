package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotenv reads a .env file from the working directory when present.
// Missing files are not an error; the original deployment shipped secrets
// this way and the habit stuck.
func LoadDotenv() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
}

// applyEnvOverrides overlays secrets and connection settings from the
// environment on top of whatever the TOML file provided. Environment wins so
// deployments can keep credentials out of the config file.
func (c *Config) applyEnvOverrides() {
	overrideString(&c.Notion.APIKey, "NOTION_API_KEY")
	overrideString(&c.Notion.DatabaseID, "NOTION_DATABASE_ID")
	overrideString(&c.Notion.DefaultStatus, "NOTION_STATUS_DEFAULT")
	overrideString(&c.Server.APIToken, "WORKER_SECRET")
	overrideString(&c.Worker.ServerURL, "VOXLOG_SERVER_URL")
	overrideInt(&c.Worker.PollInterval, "POLL_INTERVAL")
	overrideString(&c.Whisper.Model, "WHISPER_MODEL_NAME")
	overrideString(&c.Ollama.Model, "OLLAMA_MODEL_NAME")
	overrideString(&c.Ollama.BaseURL, "OLLAMA_BASE_URL")
	overrideString(&c.Paths.APIBind, "VOXLOG_API_BIND")
}

func overrideString(target *string, key string) {
	if value, ok := os.LookupEnv(key); ok {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			*target = trimmed
		}
	}
}

func overrideInt(target *int, key string) {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && parsed > 0 {
			*target = parsed
		}
	}
}
