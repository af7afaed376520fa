package queue

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a recording in the pipeline.
type Status string

const (
	StatusPending       Status = "pending"
	StatusTranscribing  Status = "transcribing"
	StatusAligning      Status = "aligning"
	StatusDiarizing     Status = "diarizing"
	StatusLabeling      Status = "labeling"
	StatusMaterializing Status = "materializing"
	StatusCompleted     Status = "completed"
	StatusFailed        Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusTranscribing,
	StatusAligning,
	StatusDiarizing,
	StatusLabeling,
	StatusMaterializing,
	StatusCompleted,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// Item represents a recording's processing record persisted in SQLite.
type Item struct {
	ID               int64
	SourcePath       string
	Stem             string
	Status           Status
	SpeakerCount     int
	SpeakerSource    string // metadata sidecar path, or "default"
	MetadataJSON     string
	OutputDir        string
	TranscriptPath   string
	ConversationPath string
	TextPath         string
	FailedStage      string
	ErrorMessage     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// Succeeded reports whether the recording completed the full pipeline.
func (i Item) Succeeded() bool {
	return i.Status == StatusCompleted
}

// SetFailed marks the item as failed at the named stage.
func (i *Item) SetFailed(stage, message string) {
	i.Status = StatusFailed
	i.FailedStage = stage
	i.ErrorMessage = message
}
