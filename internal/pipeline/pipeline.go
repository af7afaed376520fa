package pipeline

import (
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"scribe/internal/asr"
	"scribe/internal/config"
	"scribe/internal/logging"
	"scribe/internal/metadata"
	"scribe/internal/naming"
	"scribe/internal/output"
	"scribe/internal/queue"
	"scribe/internal/services"
	"scribe/internal/turns"
)

// SpeakerSourceDefault marks recordings whose speaker count came from
// configuration because no metadata sidecar was found.
const SpeakerSourceDefault = "default"

// MetadataResolver locates the speaker metadata for a recording. The second
// return value is the sidecar path the metadata came from, empty on a miss.
type MetadataResolver interface {
	Resolve(recordingPath string) (*metadata.SpeakerMetadata, string)
}

// Pipeline processes a single recording end to end.
type Pipeline struct {
	cfg      *config.Config
	store    *queue.Store
	gateway  asr.Gateway
	resolver MetadataResolver
	logger   *slog.Logger
}

// New assembles a pipeline. A nil resolver gets the standard sidecar search
// chain; a nil logger is replaced with a no-op logger.
func New(cfg *config.Config, store *queue.Store, gateway asr.Gateway, resolver MetadataResolver, logger *slog.Logger) *Pipeline {
	if resolver == nil {
		resolver = metadata.NewResolver(cfg.Paths.WorkspaceDir, cfg.Paths.OutputDir, logger)
	}
	return &Pipeline{
		cfg:      cfg,
		store:    store,
		gateway:  gateway,
		resolver: resolver,
		logger:   logging.NewComponentLogger(logger, "pipeline"),
	}
}

// Process runs every stage for the recording. The returned error describes
// the first stage failure; the item's failure fields are already persisted
// by the time it returns.
func (p *Pipeline) Process(ctx context.Context, item *queue.Item) error {
	ctx = services.WithRecording(ctx, item.SourcePath)
	ctx = services.WithRequestID(ctx, uuid.NewString())
	logger := logging.WithContext(ctx, p.logger)

	// A rerun of a previously failed recording starts from a clean record.
	item.FailedStage = ""
	item.ErrorMessage = ""

	meta, sidecarPath := p.resolver.Resolve(item.SourcePath)
	if meta.Valid() {
		item.SpeakerCount = meta.SpeakerCount
		item.SpeakerSource = sidecarPath
		if encoded, err := json.Marshal(meta); err == nil {
			item.MetadataJSON = string(encoded)
		}
		logger.Info("speaker metadata resolved",
			logging.String("sidecar", sidecarPath),
			logging.Int("speaker_count", meta.SpeakerCount))
	} else {
		item.SpeakerCount = p.cfg.Processing.DefaultSpeakerCount
		item.SpeakerSource = SpeakerSourceDefault
		item.MetadataJSON = ""
		logger.Warn("no speaker metadata found, using configured default",
			logging.Int("speaker_count", item.SpeakerCount))
	}

	item.OutputDir = filepath.Join(p.cfg.Paths.OutputDir, naming.OutputDirName(item.Stem))

	var transcript asr.Transcript
	if err := p.runStage(ctx, item, queue.StatusTranscribing, func(stageCtx context.Context) error {
		result, err := p.gateway.Transcribe(stageCtx, item.SourcePath, p.cfg.Processing.Language)
		if err != nil {
			return err
		}
		transcript = result
		return nil
	}); err != nil {
		return err
	}

	language := strings.TrimSpace(transcript.Language)
	if language == "" {
		language = p.cfg.Processing.Language
	}

	var aligned []asr.Segment
	if err := p.runStage(ctx, item, queue.StatusAligning, func(stageCtx context.Context) error {
		result, err := p.gateway.Align(stageCtx, transcript.Segments, item.SourcePath, language)
		if err != nil {
			return err
		}
		aligned = result
		return nil
	}); err != nil {
		return err
	}

	var intervals []asr.SpeakerInterval
	if err := p.runStage(ctx, item, queue.StatusDiarizing, func(stageCtx context.Context) error {
		result, err := p.gateway.Diarize(stageCtx, item.SourcePath, item.SpeakerCount, item.SpeakerCount)
		if err != nil {
			return err
		}
		intervals = result
		return nil
	}); err != nil {
		return err
	}

	speakerMap := metadata.SpeakerMap(nil)
	if meta.Valid() {
		speakerMap = metadata.BuildSpeakerMap(meta.Attendees)
	}

	var labeled []asr.Segment
	var turnList []turns.Turn
	if err := p.runStage(ctx, item, queue.StatusLabeling, func(context.Context) error {
		labeled = p.gateway.AssignSpeakers(aligned, intervals)
		turnList = turns.Coalesce(labeled, speakerMap)
		return nil
	}); err != nil {
		return err
	}

	if err := p.runStage(ctx, item, queue.StatusMaterializing, func(context.Context) error {
		artifacts, err := output.Materialize(item.Stem, labeled, turnList, speakerMap, item.OutputDir)
		if err != nil {
			return err
		}
		item.TranscriptPath = artifacts.TranscriptPath
		item.ConversationPath = artifacts.ConversationPath
		item.TextPath = artifacts.TextPath
		return nil
	}); err != nil {
		return err
	}

	item.Status = queue.StatusCompleted
	if err := p.store.Update(ctx, item); err != nil {
		return services.Wrap(services.ErrTransient, "complete", "persist", "record completion", err)
	}
	logger.Info("recording completed",
		logging.String(logging.FieldEventType, "recording_complete"),
		logging.String("output_dir", item.OutputDir))
	return nil
}

// runStage persists the stage transition, executes fn under the configured
// timeout, and persists either the stage result or the failure record.
func (p *Pipeline) runStage(ctx context.Context, item *queue.Item, status queue.Status, fn func(context.Context) error) error {
	stageName := string(status)
	stageCtx := services.WithStage(ctx, stageName)
	logger := logging.WithContext(stageCtx, p.logger)

	item.Status = status
	if err := p.store.Update(stageCtx, item); err != nil {
		return services.Wrap(services.ErrTransient, stageName, "persist", "record stage transition", err)
	}

	logger.Info("stage started", logging.String(logging.FieldEventType, "stage_start"))
	started := time.Now()

	runCtx := stageCtx
	if timeout := p.cfg.StageTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(stageCtx, timeout)
		defer cancel()
	}

	if err := fn(runCtx); err != nil {
		item.SetFailed(stageName, err.Error())
		if updateErr := p.store.Update(stageCtx, item); updateErr != nil {
			logger.Error("failed to persist stage failure", logging.Error(updateErr))
		}
		logger.Error("stage failed",
			logging.String(logging.FieldEventType, "stage_failure"),
			logging.Duration("elapsed", time.Since(started)),
			logging.Error(err))
		return err
	}

	if err := p.store.Update(stageCtx, item); err != nil {
		return services.Wrap(services.ErrTransient, stageName, "persist", "record stage result", err)
	}
	logger.Info("stage completed",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.Duration("elapsed", time.Since(started)))
	return nil
}
