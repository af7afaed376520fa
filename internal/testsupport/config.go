package testsupport

import (
	"path/filepath"
	"testing"

	"scribe/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.InputDir = filepath.Join(base, "recordings")
	cfg.Paths.OutputDir = filepath.Join(base, "transcripts")
	cfg.Paths.WorkspaceDir = filepath.Join(base, "workspace")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.WhisperX.CUDAEnabled = false

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithSpeakerCount overrides the default speaker count on the test config.
func WithSpeakerCount(count int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Processing.DefaultSpeakerCount = count
	}
}

// WithExtension overrides the recording extension on the test config.
func WithExtension(ext string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Processing.Extension = ext
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.WorkspaceDir)
}
