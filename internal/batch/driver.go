package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gofrs/flock"

	"scribe/internal/config"
	"scribe/internal/logging"
	"scribe/internal/naming"
	"scribe/internal/pipeline"
	"scribe/internal/queue"
	"scribe/internal/services"
)

// Processor is the per-recording contract the driver drives. Satisfied by
// *pipeline.Pipeline.
type Processor interface {
	Process(ctx context.Context, item *queue.Item) error
}

// Driver enumerates recordings and processes them one at a time.
type Driver struct {
	cfg       *config.Config
	store     *queue.Store
	processor Processor
	logger    *slog.Logger

	lockPath string
	lock     *flock.Flock
}

// NewDriver assembles a batch driver around the given processor.
func NewDriver(cfg *config.Config, store *queue.Store, processor Processor, logger *slog.Logger) *Driver {
	lockPath := filepath.Join(cfg.Paths.WorkspaceDir, "scribe.lock")
	return &Driver{
		cfg:       cfg,
		store:     store,
		processor: processor,
		logger:    logging.NewComponentLogger(logger, "batch"),
		lockPath:  lockPath,
		lock:      flock.New(lockPath),
	}
}

// LockPath returns the workspace lock file location.
func (d *Driver) LockPath() string {
	return d.lockPath
}

// Run processes every matching recording under the input directory. A
// recording failure is recorded and the run continues; only setup problems
// (bad directories, a concurrent run) produce a non-nil error. Cancellation
// is honored between recordings and the partial summary is still returned.
func (d *Driver) Run(ctx context.Context) (Summary, error) {
	acquired, err := d.lock.TryLock()
	if err != nil {
		return Summary{}, services.Wrap(services.ErrConfiguration, "", "lock", "acquire workspace lock", err)
	}
	if !acquired {
		return Summary{}, services.Wrap(services.ErrConfiguration, "", "lock",
			fmt.Sprintf("another run holds %s", d.lockPath), nil)
	}
	defer func() {
		if unlockErr := d.lock.Unlock(); unlockErr != nil {
			d.logger.Warn("release workspace lock", logging.Error(unlockErr))
		}
	}()

	recordings, err := Discover(d.cfg.Paths.InputDir, d.cfg.Processing.Extension, d.cfg.Processing.Recursive)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Total: len(recordings)}
	if len(recordings) == 0 {
		d.logger.Info("no recordings found", logging.String("input_dir", d.cfg.Paths.InputDir))
		return summary, nil
	}
	d.logger.Info("batch started",
		logging.Int("recordings", len(recordings)),
		logging.String("input_dir", d.cfg.Paths.InputDir))

	for i, path := range recordings {
		if ctxErr := ctx.Err(); ctxErr != nil {
			d.logger.Warn("batch interrupted", logging.Int("remaining", summary.Total-summary.Succeeded-summary.Failed-summary.Skipped))
			return summary, ctxErr
		}

		item, err := d.store.NewRecording(ctx, path, naming.Stem(path))
		if err != nil {
			return summary, services.Wrap(services.ErrConfiguration, "", "enqueue", path, err)
		}

		d.logger.Info("processing recording",
			logging.String(logging.FieldRecording, path),
			logging.String("progress", fmt.Sprintf("%d/%d", i+1, summary.Total)))

		if d.cfg.Processing.SkipCompleted && item.Succeeded() {
			summary.Skipped++
			d.logger.Info("recording already completed, skipping",
				logging.String(logging.FieldRecording, path))
			continue
		}

		if err := d.processor.Process(ctx, item); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				if ctx.Err() != nil {
					summary.Failed++
					return summary, ctx.Err()
				}
			}
			if services.IsFatalSetup(err) {
				return summary, err
			}
			summary.Failed++
			d.logger.Error("recording failed",
				logging.String(logging.FieldRecording, path),
				logging.Error(err))
			continue
		}
		summary.Succeeded++
	}

	d.logger.Info("batch finished",
		logging.Int("succeeded", summary.Succeeded),
		logging.Int("failed", summary.Failed),
		logging.Int("skipped", summary.Skipped),
		logging.String("summary", summary.String()))
	return summary, nil
}

var _ Processor = (*pipeline.Pipeline)(nil)
