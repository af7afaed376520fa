package metadata

import (
	"fmt"
	"strings"
)

// Attendee is one participant from the metadata sidecar.
type Attendee struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
}

// SpeakerMetadata is the sidecar record consumed read-only by the resolver.
// SpeakerCount is authoritative for diarization; the attendee list need not
// match it in length.
type SpeakerMetadata struct {
	Title           string     `json:"title"`
	SpeakerCount    int        `json:"speaker_count"`
	Date            string     `json:"date"`
	Attendees       []Attendee `json:"attendees"`
	FileName        string     `json:"file_name"`
	MetadataVersion string     `json:"metadata_version"`
}

// Valid reports whether the record carries the one required field.
func (m *SpeakerMetadata) Valid() bool {
	return m != nil && m.SpeakerCount >= 1
}

// SpeakerMap translates raw diarization labels (SPEAKER_00, SPEAKER_01, ...)
// into attendee names. Labels without an entry pass through unchanged.
type SpeakerMap map[string]string

// BuildSpeakerMap maps each attendee, by ordinal position, onto the
// zero-based label the diarization model emits: the first attendee becomes
// SPEAKER_00, the second SPEAKER_01, and so on.
func BuildSpeakerMap(attendees []Attendee) SpeakerMap {
	if len(attendees) == 0 {
		return nil
	}
	m := make(SpeakerMap, len(attendees))
	for i, attendee := range attendees {
		name := strings.TrimSpace(attendee.Name)
		if name == "" {
			continue
		}
		m[fmt.Sprintf("SPEAKER_%02d", i)] = name
	}
	return m
}

// Map returns the human name for a raw label, or the label itself when no
// mapping exists. A nil map is usable and maps nothing.
func (m SpeakerMap) Map(rawLabel string) string {
	if name, ok := m[rawLabel]; ok {
		return name
	}
	return rawLabel
}
