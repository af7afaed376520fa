package whisperx

import appconfig "scribe/internal/config"

// RunnerCommand is the stage runner executable. It wraps the WhisperX
// Python toolchain and exposes one subcommand per model capability.
const RunnerCommand = "scribe-models"

// DefaultModel is used when no model is configured.
const DefaultModel = "large-v2"

// Config carries the model toolchain settings for the runner.
type Config struct {
	Model       string
	CUDAEnabled bool
	ComputeType string
	BatchSize   int
	HFToken     string
}

// FromAppConfig maps application configuration onto runner settings.
func FromAppConfig(cfg *appconfig.Config) Config {
	if cfg == nil {
		return Config{Model: DefaultModel}
	}
	return Config{
		Model:       cfg.WhisperX.Model,
		CUDAEnabled: cfg.WhisperX.CUDAEnabled,
		ComputeType: cfg.WhisperX.ComputeType,
		BatchSize:   cfg.WhisperX.BatchSize,
		HFToken:     cfg.WhisperX.HFToken,
	}
}
