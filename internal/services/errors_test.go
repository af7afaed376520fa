package services

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	inner := errors.New("decode blew up")
	err := Wrap(ErrExternalTool, "transcribing", "run whisperx", "model invocation failed", inner)
	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool marker, got %v", err)
	}
	if !errors.Is(err, inner) {
		t.Fatalf("expected wrapped inner error, got %v", err)
	}
	for _, want := range []string{"transcribing", "run whisperx", "model invocation failed"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing detail %q", err.Error(), want)
		}
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := Wrap(nil, "aligning", "", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("expected ErrTransient default, got %v", err)
	}
}

func TestIsFatalSetup(t *testing.T) {
	fatal := Wrap(ErrConfiguration, "", "scan input", "input directory missing", nil)
	if !IsFatalSetup(fatal) {
		t.Fatal("configuration errors should be fatal to the batch")
	}
	if IsFatalSetup(Wrap(ErrExternalTool, "diarizing", "", "boom", nil)) {
		t.Fatal("stage failures must not abort the batch")
	}
}
