package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateProcessing(); err != nil {
		return err
	}
	if err := c.validateWhisperX(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateProcessing() error {
	if c.Processing.DefaultSpeakerCount < 1 || c.Processing.DefaultSpeakerCount > 10 {
		return errors.New("processing.default_speaker_count must be between 1 and 10")
	}
	if c.Processing.StageTimeoutSeconds < 0 {
		return errors.New("processing.stage_timeout_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateWhisperX() error {
	switch c.WhisperX.ComputeType {
	case "float16", "float32", "int8":
		return nil
	default:
		return fmt.Errorf("whisperx.compute_type: unsupported value %q", c.WhisperX.ComputeType)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
