package metadata

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"scribe/internal/logging"
	"scribe/internal/naming"
)

// SidecarName returns the metadata sidecar filename for a recording stem.
func SidecarName(stem string) string {
	return stem + "_metadata.json"
}

// Resolver locates speaker metadata sidecars for recordings.
type Resolver struct {
	workspaceDir string
	outputBase   string
	logger       *slog.Logger
}

// NewResolver constructs a resolver. workspaceDir is the fixed fallback root
// and outputBase the directory under which per-recording output directories
// live (the third candidate location).
func NewResolver(workspaceDir, outputBase string, logger *slog.Logger) *Resolver {
	return &Resolver{
		workspaceDir: workspaceDir,
		outputBase:   outputBase,
		logger:       logging.NewComponentLogger(logger, "metadata"),
	}
}

// Resolve searches the ordered candidate locations for a valid sidecar and
// returns the first hit along with the path it was loaded from. A candidate
// that is missing, unparseable, or lacks a speaker count is treated as a
// miss; only exhaustion of all candidates yields (nil, ""). Individual I/O
// and parse failures are logged, never propagated.
func (r *Resolver) Resolve(recordingPath string) (*SpeakerMetadata, string) {
	stem := naming.Stem(recordingPath)
	sidecar := SidecarName(stem)

	candidates := []string{
		filepath.Join(filepath.Dir(recordingPath), sidecar),
		filepath.Join(r.workspaceDir, sidecar),
		filepath.Join(r.outputBase, naming.OutputDirName(stem), sidecar),
	}

	for _, candidate := range candidates {
		record, err := load(candidate)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				r.logger.Warn("skipping unreadable metadata candidate",
					logging.String("candidate", candidate),
					logging.Error(err),
				)
			}
			continue
		}
		if !record.Valid() {
			r.logger.Warn("metadata candidate lacks speaker_count",
				logging.String("candidate", candidate),
			)
			continue
		}
		r.logger.Info("resolved speaker metadata",
			logging.String("candidate", candidate),
			logging.Int("speaker_count", record.SpeakerCount),
			logging.Int("attendees", len(record.Attendees)),
		)
		return record, candidate
	}

	return nil, ""
}

func load(path string) (*SpeakerMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var record SpeakerMetadata
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}
