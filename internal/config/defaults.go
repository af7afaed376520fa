package config

const (
	defaultInputDir            = "~/recordings"
	defaultOutputDir           = "~/transcripts"
	defaultWorkspaceDir        = "~/.local/share/scribe"
	defaultLogDir              = "~/.local/share/scribe/logs"
	defaultModel               = "large-v2"
	defaultComputeType         = "float16"
	defaultBatchSize           = 16
	defaultExtension           = ".wav"
	defaultSpeakerCount        = 2
	defaultLanguage            = "en"
	defaultStageTimeoutSeconds = 0
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:     defaultInputDir,
			OutputDir:    defaultOutputDir,
			WorkspaceDir: defaultWorkspaceDir,
			LogDir:       defaultLogDir,
		},
		WhisperX: WhisperX{
			Model:       defaultModel,
			CUDAEnabled: true,
			ComputeType: defaultComputeType,
			BatchSize:   defaultBatchSize,
		},
		Processing: Processing{
			Extension:           defaultExtension,
			Recursive:           true,
			DefaultSpeakerCount: defaultSpeakerCount,
			Language:            defaultLanguage,
			StageTimeoutSeconds: defaultStageTimeoutSeconds,
			SkipCompleted:       true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
