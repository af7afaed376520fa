package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeWhisperX()
	c.normalizeProcessing()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.InputDir) == "" {
		c.Paths.InputDir = defaultInputDir
	}
	if c.Paths.InputDir, err = expandPath(c.Paths.InputDir); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.WorkspaceDir) == "" {
		c.Paths.WorkspaceDir = defaultWorkspaceDir
	}
	if c.Paths.WorkspaceDir, err = expandPath(c.Paths.WorkspaceDir); err != nil {
		return fmt.Errorf("paths.workspace_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeWhisperX() {
	c.WhisperX.Model = strings.TrimSpace(c.WhisperX.Model)
	if c.WhisperX.Model == "" {
		c.WhisperX.Model = defaultModel
	}
	c.WhisperX.ComputeType = strings.TrimSpace(c.WhisperX.ComputeType)
	if c.WhisperX.ComputeType == "" {
		c.WhisperX.ComputeType = defaultComputeType
	}
	if c.WhisperX.BatchSize <= 0 {
		c.WhisperX.BatchSize = defaultBatchSize
	}
	if c.WhisperX.HFToken == "" {
		if value, ok := os.LookupEnv("HF_TOKEN"); ok {
			c.WhisperX.HFToken = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeProcessing() {
	c.Processing.Extension = strings.ToLower(strings.TrimSpace(c.Processing.Extension))
	if c.Processing.Extension == "" {
		c.Processing.Extension = defaultExtension
	}
	if !strings.HasPrefix(c.Processing.Extension, ".") {
		c.Processing.Extension = "." + c.Processing.Extension
	}
	if c.Processing.DefaultSpeakerCount <= 0 {
		c.Processing.DefaultSpeakerCount = defaultSpeakerCount
	}
	c.Processing.Language = strings.ToLower(strings.TrimSpace(c.Processing.Language))
	if c.Processing.Language == "" {
		c.Processing.Language = defaultLanguage
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
