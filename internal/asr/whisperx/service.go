package whisperx

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"scribe/internal/asr"
)

// Service provides the speech model gateway backed by the WhisperX stage
// runner. It satisfies asr.Gateway.
type Service struct {
	cfg           Config
	runnerBinary  string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a WhisperX-backed gateway with the given configuration.
func NewService(cfg Config, runnerBinary string) *Service {
	if runnerBinary == "" {
		runnerBinary = RunnerCommand
	}
	return &Service{cfg: cfg, runnerBinary: runnerBinary}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	if s.cfg.Model != "" {
		return s.cfg.Model
	}
	return DefaultModel
}

// Transcribe runs speech recognition in a dedicated runner process.
func (s *Service) Transcribe(ctx context.Context, audioPath, language string) (asr.Transcript, error) {
	var result asr.Transcript
	if audioPath == "" {
		return result, fmt.Errorf("transcribe: audio path required")
	}

	outPath, cleanup, err := stageOutputFile("transcribe")
	if err != nil {
		return result, err
	}
	defer cleanup()

	args := []string{
		"transcribe",
		"--audio", audioPath,
		"--model", s.Model(),
		"--batch-size", strconv.Itoa(s.batchSize()),
		"--output", outPath,
	}
	if language != "" {
		args = append(args, "--language", language)
	}
	args = append(args, s.deviceArgs()...)

	if err := s.run(ctx, args...); err != nil {
		return result, fmt.Errorf("whisperx transcribe: %w", err)
	}

	if err := readJSON(outPath, &result); err != nil {
		return result, fmt.Errorf("whisperx transcribe: %w", err)
	}
	return result, nil
}

// Align refines segment timing in a dedicated runner process.
func (s *Service) Align(ctx context.Context, segments []asr.Segment, audioPath, language string) ([]asr.Segment, error) {
	if audioPath == "" {
		return nil, fmt.Errorf("align: audio path required")
	}

	inPath, inCleanup, err := stageInputFile("align", asr.Transcript{Segments: segments})
	if err != nil {
		return nil, err
	}
	defer inCleanup()

	outPath, outCleanup, err := stageOutputFile("align")
	if err != nil {
		return nil, err
	}
	defer outCleanup()

	args := []string{
		"align",
		"--audio", audioPath,
		"--segments", inPath,
		"--output", outPath,
	}
	if language != "" {
		args = append(args, "--language", language)
	}
	args = append(args, s.deviceArgs()...)

	if err := s.run(ctx, args...); err != nil {
		return nil, fmt.Errorf("whisperx align: %w", err)
	}

	var result asr.Transcript
	if err := readJSON(outPath, &result); err != nil {
		return nil, fmt.Errorf("whisperx align: %w", err)
	}
	return result.Segments, nil
}

// Diarize produces speaker intervals in a dedicated runner process.
func (s *Service) Diarize(ctx context.Context, audioPath string, minSpeakers, maxSpeakers int) ([]asr.SpeakerInterval, error) {
	if audioPath == "" {
		return nil, fmt.Errorf("diarize: audio path required")
	}
	if minSpeakers < 1 || maxSpeakers < minSpeakers {
		return nil, fmt.Errorf("diarize: invalid speaker bounds %d..%d", minSpeakers, maxSpeakers)
	}

	outPath, cleanup, err := stageOutputFile("diarize")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	args := []string{
		"diarize",
		"--audio", audioPath,
		"--min-speakers", strconv.Itoa(minSpeakers),
		"--max-speakers", strconv.Itoa(maxSpeakers),
		"--output", outPath,
	}
	if s.cfg.HFToken != "" {
		args = append(args, "--hf-token", s.cfg.HFToken)
	}
	args = append(args, s.deviceArgs()...)

	if err := s.run(ctx, args...); err != nil {
		return nil, fmt.Errorf("whisperx diarize: %w", err)
	}

	var payload struct {
		Segments []asr.SpeakerInterval `json:"segments"`
	}
	if err := readJSON(outPath, &payload); err != nil {
		return nil, fmt.Errorf("whisperx diarize: %w", err)
	}
	return payload.Segments, nil
}

// AssignSpeakers merges intervals onto segments by temporal overlap. This
// runs in-process; no model is involved.
func (s *Service) AssignSpeakers(segments []asr.Segment, intervals []asr.SpeakerInterval) []asr.Segment {
	return asr.Assign(segments, intervals)
}

func (s *Service) batchSize() int {
	if s.cfg.BatchSize > 0 {
		return s.cfg.BatchSize
	}
	return 16
}

func (s *Service) deviceArgs() []string {
	if s.cfg.CUDAEnabled {
		return []string{"--device", "cuda", "--compute-type", s.computeType()}
	}
	return []string{"--device", "cpu", "--compute-type", "float32"}
}

func (s *Service) computeType() string {
	if s.cfg.ComputeType != "" {
		return s.cfg.ComputeType
	}
	return "float16"
}

func (s *Service) run(ctx context.Context, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, s.runnerBinary, args...)
	}
	cmd := exec.CommandContext(ctx, s.runnerBinary, args...) //nolint:gosec

	// Torch 2.6 changed torch.load default to weights_only=true, breaking
	// WhisperX/pyannote checkpoint loading. Force legacy behavior.
	if os.Getenv("TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD") == "" {
		cmd.Env = append(os.Environ(), "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1")
	}

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", s.runnerBinary, err, strings.TrimSpace(string(output)))
	}
	return nil
}

func stageOutputFile(stage string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "scribe-"+stage+"-*")
	if err != nil {
		return "", nil, fmt.Errorf("%s: create work dir: %w", stage, err)
	}
	return filepath.Join(dir, "result.json"), func() { _ = os.RemoveAll(dir) }, nil
}

func stageInputFile(stage string, payload any) (string, func(), error) {
	dir, err := os.MkdirTemp("", "scribe-"+stage+"-in-*")
	if err != nil {
		return "", nil, fmt.Errorf("%s: create work dir: %w", stage, err)
	}
	path := filepath.Join(dir, "input.json")
	data, err := json.Marshal(payload)
	if err != nil {
		_ = os.RemoveAll(dir)
		return "", nil, fmt.Errorf("%s: marshal input: %w", stage, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		_ = os.RemoveAll(dir)
		return "", nil, fmt.Errorf("%s: write input: %w", stage, err)
	}
	return path, func() { _ = os.RemoveAll(dir) }, nil
}

func readJSON(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read runner output: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parse runner output: %w", err)
	}
	return nil
}
