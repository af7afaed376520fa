package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// InputDir is scanned for recordings when `scribe run` is invoked
	// without an explicit directory argument.
	InputDir string `toml:"input_dir"`
	// OutputDir is the base under which per-recording output directories
	// are created.
	OutputDir string `toml:"output_dir"`
	// WorkspaceDir holds the outcome database, the batch lock, and the
	// second metadata-sidecar fallback location.
	WorkspaceDir string `toml:"workspace_dir"`
	LogDir       string `toml:"log_dir"`
}

// WhisperX contains configuration for the speech model toolchain.
type WhisperX struct {
	Model       string `toml:"model"`
	CUDAEnabled bool   `toml:"cuda_enabled"`
	ComputeType string `toml:"compute_type"`
	BatchSize   int    `toml:"batch_size"`
	// HFToken authenticates the diarization pipeline download.
	HFToken string `toml:"hf_token"`
}

// Processing contains batch enumeration and pipeline policy settings.
type Processing struct {
	// Extension selects recordings during directory scans (default ".wav").
	Extension string `toml:"extension"`
	// Recursive controls whether the input directory is walked as a tree
	// or scanned flat.
	Recursive bool `toml:"recursive"`
	// DefaultSpeakerCount is applied when no metadata sidecar resolves.
	DefaultSpeakerCount int `toml:"default_speaker_count"`
	// Language is the transcription language. Alignment follows the
	// detected language when the model reports one, else this value.
	Language string `toml:"language"`
	// StageTimeoutSeconds bounds each model call. Zero disables the bound.
	StageTimeoutSeconds int `toml:"stage_timeout_seconds"`
	// SkipCompleted makes reruns skip recordings already materialized.
	SkipCompleted bool `toml:"skip_completed"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for scribe.
type Config struct {
	Paths      Paths      `toml:"paths"`
	WhisperX   WhisperX   `toml:"whisperx"`
	Processing Processing `toml:"processing"`
	Logging    Logging    `toml:"logging"`
}

// StageTimeout returns the per-stage model call bound, zero when disabled.
func (c *Config) StageTimeout() time.Duration {
	if c.Processing.StageTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Processing.StageTimeoutSeconds) * time.Second
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/scribe/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a config file was actually found.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("scribe.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories scribe owns. The input directory
// is deliberately not created: a missing input directory is a setup error,
// not something to paper over.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.WorkspaceDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
