package turns

import (
	"reflect"
	"strings"
	"testing"

	"scribe/internal/asr"
	"scribe/internal/metadata"
)

func TestCoalesceMergesConsecutiveSpeakers(t *testing.T) {
	segments := []asr.Segment{
		{Start: 0.0, End: 1.0, Text: "Hi", Speaker: "S1"},
		{Start: 1.0, End: 2.0, Text: "there", Speaker: "S1"},
		{Start: 2.0, End: 3.0, Text: "Bye", Speaker: "S2"},
	}
	speakerMap := metadata.SpeakerMap{"S1": "Alice", "S2": "Bob"}

	got := Coalesce(segments, speakerMap)
	want := []Turn{
		{Speaker: "Alice", Text: "Hi there"},
		{Speaker: "Bob", Text: "Bye"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("turns = %+v, want %+v", got, want)
	}
}

func TestCoalesceUnlabeledSegmentsBecomeUnknown(t *testing.T) {
	segments := []asr.Segment{
		{Start: 0, End: 1, Text: "who said this", Speaker: ""},
		{Start: 1, End: 2, Text: "and this", Speaker: ""},
		{Start: 2, End: 3, Text: "me", Speaker: "SPEAKER_00"},
	}

	got := Coalesce(segments, nil)
	if len(got) != 2 {
		t.Fatalf("turns = %+v, want 2", got)
	}
	if got[0].Speaker != UnknownSpeaker || got[0].Text != "who said this and this" {
		t.Fatalf("first turn = %+v", got[0])
	}
	if got[1].Speaker != "SPEAKER_00" {
		t.Fatalf("unmapped label should pass through, got %+v", got[1])
	}
}

func TestCoalesceEmptyInput(t *testing.T) {
	if got := Coalesce(nil, nil); len(got) != 0 {
		t.Fatalf("expected no turns, got %+v", got)
	}
}

func TestCoalesceTrimsAndSkipsBlankText(t *testing.T) {
	segments := []asr.Segment{
		{Start: 0, End: 1, Text: "  padded  ", Speaker: "S1"},
		{Start: 1, End: 2, Text: "   ", Speaker: "S1"},
		{Start: 2, End: 3, Text: "end", Speaker: "S1"},
	}
	got := Coalesce(segments, nil)
	if len(got) != 1 || got[0].Text != "padded end" {
		t.Fatalf("turns = %+v", got)
	}
}

func TestCoalesceIdempotent(t *testing.T) {
	segments := []asr.Segment{
		{Start: 0, End: 1, Text: "a", Speaker: "S1"},
		{Start: 1, End: 2, Text: "b", Speaker: "S2"},
		{Start: 2, End: 3, Text: "c", Speaker: "S1"},
	}
	speakerMap := metadata.SpeakerMap{"S1": "Alice"}

	first := Coalesce(segments, speakerMap)
	second := Coalesce(segments, speakerMap)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("coalesce not idempotent: %+v vs %+v", first, second)
	}
}

func TestCoalescePreservesEveryWord(t *testing.T) {
	segments := []asr.Segment{
		{Start: 0, End: 1, Text: " one two ", Speaker: "A"},
		{Start: 1, End: 2, Text: "three", Speaker: "A"},
		{Start: 2, End: 3, Text: "four five", Speaker: "B"},
		{Start: 3, End: 4, Text: "six", Speaker: "A"},
	}

	var fromSegments []string
	for _, segment := range segments {
		fromSegments = append(fromSegments, strings.Fields(segment.Text)...)
	}

	var fromTurns []string
	for _, turn := range Coalesce(segments, nil) {
		fromTurns = append(fromTurns, strings.Fields(turn.Text)...)
	}

	if !reflect.DeepEqual(fromSegments, fromTurns) {
		t.Fatalf("word round-trip mismatch: %v vs %v", fromSegments, fromTurns)
	}
}

func TestCoalesceSpeakerAlternation(t *testing.T) {
	segments := []asr.Segment{
		{Start: 0, End: 1, Text: "a", Speaker: "S1"},
		{Start: 1, End: 2, Text: "b", Speaker: "S2"},
		{Start: 2, End: 3, Text: "c", Speaker: "S1"},
	}
	got := Coalesce(segments, nil)
	if len(got) != 3 {
		t.Fatalf("alternating speakers must not merge: %+v", got)
	}
}
