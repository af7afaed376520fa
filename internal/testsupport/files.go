package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// WriteRecording creates a placeholder audio file at path. The content is a
// fixed pattern; pipeline tests never decode it because the gateway is faked.
func WriteRecording(t testing.TB, path string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("RIFF\x00\x00\x00\x00WAVE"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteSidecar marshals the given value as a metadata sidecar next to nothing
// in particular; callers choose the exact path.
func WriteSidecar(t testing.TB, path string, value any) {
	t.Helper()

	data, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal sidecar: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
