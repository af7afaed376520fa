package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"scribe/internal/asr"
	"scribe/internal/metadata"
	"scribe/internal/turns"
)

// Artifacts holds the paths of the three files written per recording.
type Artifacts struct {
	TranscriptPath   string
	ConversationPath string
	TextPath         string
}

// segmentRecord is the persisted shape of one transcript segment. The
// speaker field always carries the mapped human name (or "Unknown").
type segmentRecord struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
	Speaker string  `json:"speaker"`
}

// Materialize writes the three artifacts for a recording stem into
// outputDir, overwriting existing files. Outputs are byte-stable: the same
// inputs always reproduce identical files.
func Materialize(stem string, segments []asr.Segment, turnList []turns.Turn, speakerMap metadata.SpeakerMap, outputDir string) (Artifacts, error) {
	var artifacts Artifacts

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return artifacts, fmt.Errorf("create output directory: %w", err)
	}

	records := make([]segmentRecord, 0, len(segments))
	for _, segment := range segments {
		speaker := segment.Speaker
		if speaker == "" {
			speaker = turns.UnknownSpeaker
		} else {
			speaker = speakerMap.Map(speaker)
		}
		records = append(records, segmentRecord{
			Start:   segment.Start,
			End:     segment.End,
			Text:    segment.Text,
			Speaker: speaker,
		})
	}

	artifacts.TranscriptPath = filepath.Join(outputDir, stem+".json")
	if err := writeJSON(artifacts.TranscriptPath, records); err != nil {
		return artifacts, err
	}

	artifacts.ConversationPath = filepath.Join(outputDir, stem+"_conversation.json")
	if err := writeJSON(artifacts.ConversationPath, emptySafeTurns(turnList)); err != nil {
		return artifacts, err
	}

	artifacts.TextPath = filepath.Join(outputDir, stem+".txt")
	if err := writeText(artifacts.TextPath, turnList); err != nil {
		return artifacts, err
	}

	return artifacts, nil
}

// emptySafeTurns keeps "no turns" serializing as [] rather than null.
func emptySafeTurns(turnList []turns.Turn) []turns.Turn {
	if turnList == nil {
		return []turns.Turn{}
	}
	return turnList
}

func writeJSON(path string, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	// Match the upstream sidecar conventions: 4-space indentation and
	// non-ASCII text preserved literally.
	encoder.SetIndent("", "    ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(payload); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeText(path string, turnList []turns.Turn) error {
	var sb strings.Builder
	for _, turn := range turnList {
		sb.WriteString(turn.Speaker)
		sb.WriteString(": ")
		sb.WriteString(turn.Text)
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
