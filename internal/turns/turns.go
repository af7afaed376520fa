package turns

import (
	"strings"

	"scribe/internal/asr"
	"scribe/internal/metadata"
)

// UnknownSpeaker labels segments the diarization stage left unattributed.
const UnknownSpeaker = "Unknown"

// Turn is one conversational turn: everything a speaker said before the
// floor changed hands.
type Turn struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Coalesce walks segments in their given (start-time) order, maps each raw
// speaker label through speakerMap, and merges consecutive same-speaker
// segments into turns. Segment text is trimmed and joined by single spaces.
// An empty segment list yields an empty turn list.
func Coalesce(segments []asr.Segment, speakerMap metadata.SpeakerMap) []Turn {
	var result []Turn

	currentSpeaker := ""
	var buffer strings.Builder

	flush := func() {
		if buffer.Len() == 0 {
			return
		}
		result = append(result, Turn{Speaker: currentSpeaker, Text: buffer.String()})
		buffer.Reset()
	}

	for _, segment := range segments {
		speaker := segment.Speaker
		if speaker == "" {
			speaker = UnknownSpeaker
		} else {
			speaker = speakerMap.Map(speaker)
		}

		if speaker != currentSpeaker {
			flush()
			currentSpeaker = speaker
		}

		text := strings.TrimSpace(segment.Text)
		if text == "" {
			continue
		}
		if buffer.Len() > 0 {
			buffer.WriteByte(' ')
		}
		buffer.WriteString(text)
	}
	flush()

	return result
}
