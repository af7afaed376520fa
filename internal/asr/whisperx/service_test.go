package whisperx

import (
	"context"
	"errors"
	"os"
	"testing"

	"scribe/internal/asr"
)

func outputArg(t *testing.T, args []string) string {
	t.Helper()
	for i, arg := range args {
		if arg == "--output" && i+1 < len(args) {
			return args[i+1]
		}
	}
	t.Fatal("no --output flag in runner args")
	return ""
}

func hasFlag(args []string, flag, value string) bool {
	for i, arg := range args {
		if arg == flag && i+1 < len(args) && args[i+1] == value {
			return true
		}
	}
	return false
}

func TestTranscribeParsesRunnerOutput(t *testing.T) {
	svc := NewService(Config{Model: "large-v2", CUDAEnabled: true, ComputeType: "float16", BatchSize: 8}, "")
	var gotArgs []string
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotArgs = args
		payload := `{"segments": [{"start": 0.5, "end": 2.0, "text": "hello"}], "language": "en"}`
		return os.WriteFile(outputArg(t, args), []byte(payload), 0o644)
	})

	transcript, err := svc.Transcribe(context.Background(), "/audio/rec.wav", "en")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if transcript.Language != "en" {
		t.Fatalf("language = %q, want en", transcript.Language)
	}
	if len(transcript.Segments) != 1 || transcript.Segments[0].Text != "hello" {
		t.Fatalf("segments = %+v", transcript.Segments)
	}
	if gotArgs[0] != "transcribe" {
		t.Fatalf("subcommand = %q", gotArgs[0])
	}
	if !hasFlag(gotArgs, "--device", "cuda") || !hasFlag(gotArgs, "--batch-size", "8") {
		t.Fatalf("missing device/batch flags in %v", gotArgs)
	}
}

func TestDiarizePassesExactBounds(t *testing.T) {
	svc := NewService(Config{HFToken: "tok"}, "")
	var gotArgs []string
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotArgs = args
		payload := `{"segments": [{"start": 0, "end": 3, "speaker": "SPEAKER_00"}]}`
		return os.WriteFile(outputArg(t, args), []byte(payload), 0o644)
	})

	intervals, err := svc.Diarize(context.Background(), "/audio/rec.wav", 3, 3)
	if err != nil {
		t.Fatalf("Diarize: %v", err)
	}
	if len(intervals) != 1 || intervals[0].Speaker != "SPEAKER_00" {
		t.Fatalf("intervals = %+v", intervals)
	}
	if !hasFlag(gotArgs, "--min-speakers", "3") || !hasFlag(gotArgs, "--max-speakers", "3") {
		t.Fatalf("speaker bounds not forwarded: %v", gotArgs)
	}
	if !hasFlag(gotArgs, "--hf-token", "tok") {
		t.Fatalf("hf token not forwarded: %v", gotArgs)
	}
}

func TestDiarizeRejectsInvalidBounds(t *testing.T) {
	svc := NewService(Config{}, "")
	if _, err := svc.Diarize(context.Background(), "/audio/rec.wav", 0, 2); err == nil {
		t.Fatal("expected error for zero min speakers")
	}
	if _, err := svc.Diarize(context.Background(), "/audio/rec.wav", 3, 2); err == nil {
		t.Fatal("expected error for max < min")
	}
}

func TestRunnerFailureSurfaces(t *testing.T) {
	svc := NewService(Config{}, "")
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return errors.New("CUDA out of memory")
	})
	if _, err := svc.Transcribe(context.Background(), "/audio/rec.wav", "en"); err == nil {
		t.Fatal("expected runner failure to surface")
	}
}

func TestAlignRoundTripsSegments(t *testing.T) {
	svc := NewService(Config{}, "")
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		payload := `{"segments": [{"start": 0.42, "end": 1.9, "text": "hello"}]}`
		return os.WriteFile(outputArg(t, args), []byte(payload), 0o644)
	})

	aligned, err := svc.Align(context.Background(), []asr.Segment{{Start: 0, End: 2, Text: "hello"}}, "/audio/rec.wav", "en")
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if len(aligned) != 1 || aligned[0].Start != 0.42 {
		t.Fatalf("aligned = %+v", aligned)
	}
}
