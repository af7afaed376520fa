package asr

import "context"

// Segment is a transcribed span of speech. Speaker is empty until
// assignment and carries a raw diarization label (SPEAKER_00, ...) after.
type Segment struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
	Speaker string  `json:"speaker,omitempty"`
}

// Transcript is the transcription result: ordered segments plus the
// language the model detected, when it reports one.
type Transcript struct {
	Segments []Segment `json:"segments"`
	Language string    `json:"language,omitempty"`
}

// SpeakerInterval is a diarized time span attributed to a raw speaker label.
type SpeakerInterval struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
}

// Gateway exposes the four speech model capabilities the pipeline consumes.
// Every model call takes a context; implementations must honor cancellation
// between, if not during, model invocations.
type Gateway interface {
	// Transcribe runs speech recognition over the audio file and returns
	// raw, unlabeled segments in start-time order.
	Transcribe(ctx context.Context, audioPath, language string) (Transcript, error)

	// Align refines segment timings against the audio using an alignment
	// model for the given language.
	Align(ctx context.Context, segments []Segment, audioPath, language string) ([]Segment, error)

	// Diarize produces speaker-labeled intervals. minSpeakers and
	// maxSpeakers bound the search; the pipeline always passes them equal.
	Diarize(ctx context.Context, audioPath string, minSpeakers, maxSpeakers int) ([]SpeakerInterval, error)

	// AssignSpeakers merges diarized intervals onto segments by temporal
	// overlap. Pure with respect to its inputs.
	AssignSpeakers(segments []Segment, intervals []SpeakerInterval) []Segment
}
