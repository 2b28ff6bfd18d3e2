package config

const (
	defaultDataDir            = "~/.local/share/voxlog"
	defaultLogDir             = "~/.local/share/voxlog/logs"
	defaultAPIBind            = "127.0.0.1:8000"
	defaultServerURL          = "http://localhost:8000"
	defaultPollInterval       = 30
	defaultErrorRetryInterval = 10
	defaultWhisperBinary      = "whisper"
	defaultWhisperModel       = "small"
	defaultWhisperTimeout     = 600
	defaultOllamaBaseURL      = "http://localhost:11434"
	defaultOllamaModel        = "llama3.2"
	defaultOllamaTimeout      = 120
	defaultNotionStatus       = "Draft"
	defaultNotionTimeout      = 30
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Server: Server{
			EmbeddedWorker: true,
		},
		Worker: Worker{
			ServerURL:          defaultServerURL,
			PollInterval:       defaultPollInterval,
			ErrorRetryInterval: defaultErrorRetryInterval,
		},
		Whisper: Whisper{
			Binary:         defaultWhisperBinary,
			Model:          defaultWhisperModel,
			TimeoutSeconds: defaultWhisperTimeout,
		},
		Ollama: Ollama{
			BaseURL:        defaultOllamaBaseURL,
			Model:          defaultOllamaModel,
			TimeoutSeconds: defaultOllamaTimeout,
		},
		Notion: Notion{
			DefaultStatus:  defaultNotionStatus,
			TimeoutSeconds: defaultNotionTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
