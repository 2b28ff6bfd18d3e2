package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"voxlog/internal/config"
	"voxlog/internal/services"
)

const (
	// DefaultBinary is the whisper CLI executable name.
	DefaultBinary = "whisper"
	// DefaultModel mirrors the original deployment's model choice.
	DefaultModel = "small"
)

// Service provides transcription through the Whisper CLI.
type Service struct {
	binary        string
	model         string
	timeout       time.Duration
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a whisper service from configuration.
func NewService(cfg config.Whisper) *Service {
	binary := strings.TrimSpace(cfg.Binary)
	if binary == "" {
		binary = DefaultBinary
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &Service{binary: binary, model: model, timeout: timeout}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	return s.model
}

// TranscribeFile transcribes the audio file at path and returns the plain
// text. Whisper writes a JSON sidecar next to the source; outputDir scopes
// it so callers can clean up the whole directory afterwards.
func (s *Service) TranscribeFile(ctx context.Context, path, outputDir string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", services.Wrap(services.ErrValidation, "whisper", "transcribe", "source path required", nil)
	}
	if _, err := os.Stat(path); err != nil {
		return "", services.Wrap(services.ErrNotFound, "whisper", "transcribe", fmt.Sprintf("audio file %s", path), err)
	}
	if outputDir == "" {
		outputDir = filepath.Dir(path)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "whisper", "ensure output dir", outputDir, err)
	}

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	args := []string{
		path,
		"--model", s.model,
		"--output_format", "json",
		"--output_dir", outputDir,
		// CPU-only hosts choke on fp16; keep parity with the original setup.
		"--fp16", "False",
	}
	if err := s.run(runCtx, s.binary, args...); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "whisper", "transcribe", "", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	jsonPath := filepath.Join(outputDir, baseName+".json")
	text, err := loadTranscriptText(jsonPath)
	if err != nil {
		return "", services.Wrap(services.ErrParse, "whisper", "read transcript", jsonPath, err)
	}
	if text == "" {
		return "", services.Wrap(services.ErrExternalTool, "whisper", "transcribe", "empty transcript", nil)
	}
	return text, nil
}

func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// transcriptPayload is the JSON structure whisper writes next to the source.
type transcriptPayload struct {
	Text     string `json:"text"`
	Segments []struct {
		Text string `json:"text"`
	} `json:"segments"`
}

func loadTranscriptText(jsonPath string) (string, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return "", err
	}
	var payload transcriptPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("parse whisper json: %w", err)
	}
	if text := strings.TrimSpace(payload.Text); text != "" {
		return text, nil
	}
	var parts []string
	for _, seg := range payload.Segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " "), nil
}
