package queue_test

import (
	"context"
	"testing"

	"scribe/internal/queue"
	"scribe/internal/testsupport"
)

func TestNewRecordingAndRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	item, err := store.NewRecording(ctx, "/audio/AO_REC_Sync_20240115_093000.wav", "AO_REC_Sync_20240115_093000")
	if err != nil {
		t.Fatalf("NewRecording: %v", err)
	}
	if item.Status != queue.StatusPending {
		t.Fatalf("status = %s, want pending", item.Status)
	}

	item.Status = queue.StatusCompleted
	item.SpeakerCount = 3
	item.SpeakerSource = "/audio/AO_REC_Sync_20240115_093000_metadata.json"
	item.OutputDir = "/out/Sync_2024-01-15"
	item.TranscriptPath = "/out/Sync_2024-01-15/AO_REC_Sync_20240115_093000.json"
	if err := store.Update(ctx, item); err != nil {
		t.Fatalf("Update: %v", err)
	}

	reloaded, err := store.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if reloaded == nil || !reloaded.Succeeded() {
		t.Fatalf("reloaded = %+v", reloaded)
	}
	if reloaded.SpeakerCount != 3 || reloaded.OutputDir != item.OutputDir {
		t.Fatalf("fields lost on round trip: %+v", reloaded)
	}
}

func TestNewRecordingIsIdempotentPerSource(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	first, err := store.NewRecording(ctx, "/audio/a.wav", "a")
	if err != nil {
		t.Fatal(err)
	}
	first.Status = queue.StatusFailed
	if err := store.Update(ctx, first); err != nil {
		t.Fatal(err)
	}

	again, err := store.NewRecording(ctx, "/audio/a.wav", "a")
	if err != nil {
		t.Fatal(err)
	}
	if again.ID != first.ID {
		t.Fatalf("expected existing record, got new id %d", again.ID)
	}
	if again.Status != queue.StatusFailed {
		t.Fatalf("existing record must not be reset, status = %s", again.Status)
	}
}

func TestListAndClear(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	for _, path := range []string{"/audio/a.wav", "/audio/b.wav", "/audio/c.wav"} {
		if _, err := store.NewRecording(ctx, path, path); err != nil {
			t.Fatal(err)
		}
	}

	items, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 {
		t.Fatalf("list = %d items, want 3", len(items))
	}

	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if removed != 3 {
		t.Fatalf("cleared %d, want 3", removed)
	}
}

func TestReopenPreservesSchemaAndData(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	first, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("queue.Open: %v", err)
	}
	item, err := first.NewRecording(ctx, "/audio/a.wav", "a")
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopening runs the schema upgrade again; applied versions must be
	// skipped and existing rows left intact.
	second, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	reloaded, err := second.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded == nil || reloaded.SourcePath != "/audio/a.wav" {
		t.Fatalf("reloaded = %+v", reloaded)
	}
}

func TestSetFailed(t *testing.T) {
	item := &queue.Item{Status: queue.StatusAligning}
	item.SetFailed("aligning", "alignment model load failed")
	if item.Status != queue.StatusFailed || item.FailedStage != "aligning" {
		t.Fatalf("item = %+v", item)
	}
}

func TestParseStatus(t *testing.T) {
	if status, ok := queue.ParseStatus(" Completed "); !ok || status != queue.StatusCompleted {
		t.Fatalf("ParseStatus = %v %v", status, ok)
	}
	if _, ok := queue.ParseStatus("bogus"); ok {
		t.Fatal("bogus status must not parse")
	}
}
