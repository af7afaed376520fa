package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scribe/internal/asr"
	"scribe/internal/metadata"
	"scribe/internal/pipeline"
	"scribe/internal/queue"
	"scribe/internal/testsupport"
)

type stubResolver struct {
	meta    *metadata.SpeakerMetadata
	sidecar string
}

func (r stubResolver) Resolve(string) (*metadata.SpeakerMetadata, string) {
	return r.meta, r.sidecar
}

func TestProcessCompletesAndMaterializes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	gateway := &testsupport.FakeGateway{}

	source := filepath.Join(cfg.Paths.InputDir, "AO_REC_Weekly_Sync_20240115_093000.wav")
	testsupport.WriteRecording(t, source)
	item := testsupport.NewRecording(t, store, source, "AO_REC_Weekly_Sync_20240115_093000")

	p := pipeline.New(cfg, store, gateway, stubResolver{}, nil)
	if err := p.Process(context.Background(), item); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if item.Status != queue.StatusCompleted {
		t.Fatalf("status = %s, want completed", item.Status)
	}
	if item.SpeakerSource != pipeline.SpeakerSourceDefault {
		t.Fatalf("speaker source = %q, want default", item.SpeakerSource)
	}
	if item.SpeakerCount != cfg.Processing.DefaultSpeakerCount {
		t.Fatalf("speaker count = %d", item.SpeakerCount)
	}
	wantDir := filepath.Join(cfg.Paths.OutputDir, "Weekly_Sync_2024-01-15")
	if item.OutputDir != wantDir {
		t.Fatalf("output dir = %q, want %q", item.OutputDir, wantDir)
	}
	for _, path := range []string{item.TranscriptPath, item.ConversationPath, item.TextPath} {
		if path == "" {
			t.Fatal("artifact path missing on item")
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("artifact %s: %v", path, err)
		}
	}

	reloaded, err := store.GetByID(context.Background(), item.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !reloaded.Succeeded() {
		t.Fatalf("persisted status = %s", reloaded.Status)
	}
}

func TestProcessUsesMetadataSpeakerCountAndNames(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	var gotMin, gotMax int
	gateway := &testsupport.FakeGateway{
		DiarizeFunc: func(_ context.Context, _ string, minSpeakers, maxSpeakers int) ([]asr.SpeakerInterval, error) {
			gotMin, gotMax = minSpeakers, maxSpeakers
			return []asr.SpeakerInterval{
				{Start: 0, End: 2.5, Speaker: "SPEAKER_00"},
				{Start: 2.5, End: 5, Speaker: "SPEAKER_01"},
			}, nil
		},
	}
	resolver := stubResolver{
		meta: &metadata.SpeakerMetadata{
			Title:        "Weekly Sync",
			SpeakerCount: 3,
			Attendees:    []metadata.Attendee{{Name: "Alice"}, {Name: "Bob"}},
		},
		sidecar: "/audio/AO_REC_Weekly_Sync_20240115_093000_metadata.json",
	}

	source := filepath.Join(cfg.Paths.InputDir, "AO_REC_Weekly_Sync_20240115_093000.wav")
	testsupport.WriteRecording(t, source)
	item := testsupport.NewRecording(t, store, source, "AO_REC_Weekly_Sync_20240115_093000")

	p := pipeline.New(cfg, store, gateway, resolver, nil)
	if err := p.Process(context.Background(), item); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if gotMin != 3 || gotMax != 3 {
		t.Fatalf("diarize bounds = %d..%d, want 3..3", gotMin, gotMax)
	}
	if item.SpeakerSource != resolver.sidecar {
		t.Fatalf("speaker source = %q", item.SpeakerSource)
	}

	text, err := os.ReadFile(item.TextPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"Alice:", "Bob:"} {
		if !strings.Contains(string(text), name) {
			t.Fatalf("text output missing %q:\n%s", name, text)
		}
	}
}

func TestProcessRecordsStageFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	alignErr := errors.New("alignment model load failed")
	gateway := &testsupport.FakeGateway{
		AlignFunc: func(context.Context, []asr.Segment, string, string) ([]asr.Segment, error) {
			return nil, alignErr
		},
	}

	source := filepath.Join(cfg.Paths.InputDir, "AO_REC_Sync_20240115_093000.wav")
	testsupport.WriteRecording(t, source)
	item := testsupport.NewRecording(t, store, source, "AO_REC_Sync_20240115_093000")

	p := pipeline.New(cfg, store, gateway, stubResolver{}, nil)
	err := p.Process(context.Background(), item)
	if !errors.Is(err, alignErr) {
		t.Fatalf("Process error = %v, want align failure", err)
	}

	if item.Status != queue.StatusFailed || item.FailedStage != string(queue.StatusAligning) {
		t.Fatalf("item = %+v", item)
	}
	if gateway.DiarizeCalls != 0 {
		t.Fatal("diarize must not run after align failure")
	}
	if item.TranscriptPath != "" {
		t.Fatal("no artifacts expected after failure")
	}

	reloaded, err := store.GetByID(context.Background(), item.ID)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Status != queue.StatusFailed || reloaded.ErrorMessage == "" {
		t.Fatalf("persisted failure record = %+v", reloaded)
	}
}

func TestProcessHonorsCancellation(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	gateway := &testsupport.FakeGateway{
		TranscribeFunc: func(ctx context.Context, _, _ string) (asr.Transcript, error) {
			return asr.Transcript{}, ctx.Err()
		},
	}

	source := filepath.Join(cfg.Paths.InputDir, "AO_REC_Sync_20240115_093000.wav")
	testsupport.WriteRecording(t, source)
	item := testsupport.NewRecording(t, store, source, "AO_REC_Sync_20240115_093000")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := pipeline.New(cfg, store, gateway, stubResolver{}, nil)
	if err := p.Process(ctx, item); !errors.Is(err, context.Canceled) {
		t.Fatalf("Process error = %v, want context.Canceled", err)
	}
}
