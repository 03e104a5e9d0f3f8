package runner

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/my-ijet/odysee-uploader/internal/models"
	"github.com/my-ijet/odysee-uploader/internal/session"
)

// The run's collaborators, kept as small interfaces so they can be mocked
// for testing.

// Scanner produces the ordered list of pending work items.
type Scanner interface {
	Scan() ([]models.WorkItem, error)
}

// Authenticator logs in and persists a fresh session.
type Authenticator interface {
	Login() (*models.SessionState, error)
}

// Publisher pushes one item through the platform's upload UI.
type Publisher interface {
	Publish(item models.WorkItem) error
}

// Committer archives a successfully published item.
type Committer interface {
	Commit(item models.WorkItem) error
}

// Recorder keeps the publish history.
type Recorder interface {
	Record(rec models.PublishRecord) error
	Count() (int, error)
	Recent(limit int) ([]models.PublishRecord, error)
}

// Waiter enforces the inter-item cool-down.
type Waiter interface {
	WaitBetween(isLast bool)
}

// Runner executes one end-to-end run: scan the inbox, make sure a session
// exists, then publish, archive, and record each item in order. Items are
// strictly sequential; the first fatal error aborts the run, leaving earlier
// archived items archived.
type Runner struct {
	scanner   Scanner
	store     *session.Store
	auth      Authenticator
	publisher Publisher
	archiver  Committer
	recorder  Recorder
	throttler Waiter
	logger    *zap.Logger

	runID string
	now   func() time.Time
}

func New(scanner Scanner, store *session.Store, auth Authenticator, publisher Publisher,
	archiver Committer, recorder Recorder, throttler Waiter, logger *zap.Logger) *Runner {
	return &Runner{
		scanner:   scanner,
		store:     store,
		auth:      auth,
		publisher: publisher,
		archiver:  archiver,
		recorder:  recorder,
		throttler: throttler,
		logger:    logger,
		runID:     uuid.NewString(),
		now:       time.Now,
	}
}

// Run processes the whole inbox. An empty inbox is a normal no-op.
func (r *Runner) Run() error {
	items, err := r.scanner.Scan()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		r.logger.Info("no video files found")
		return nil
	}

	r.narrateHistory(len(items))

	if err := r.ensureSession(); err != nil {
		return err
	}

	for i, item := range items {
		r.logger.Info("found", zap.String("item", item.Base()))

		if err := r.publisher.Publish(item); err != nil {
			return fmt.Errorf("failed to publish %s: %w", item.Base(), err)
		}
		if err := r.archiver.Commit(item); err != nil {
			return err
		}
		if err := r.recorder.Record(models.PublishRecord{
			RunID:       r.runID,
			Title:       item.Title,
			VideoFile:   item.Base(),
			PublishAt:   item.PublishAt,
			PublishedAt: r.now(),
		}); err != nil {
			return fmt.Errorf("failed to record publish of %s: %w", item.Base(), err)
		}

		r.throttler.WaitBetween(i == len(items)-1)
	}
	return nil
}

// narrateHistory logs how much has been published before, and the most
// recent ledger entry. A broken ledger shows up here rather than after the
// first item has already been uploaded and archived.
func (r *Runner) narrateHistory(pending int) {
	count, err := r.recorder.Count()
	if err != nil {
		r.logger.Warn("failed to read publish ledger", zap.Error(err))
		return
	}
	r.logger.Info("starting run",
		zap.String("run_id", r.runID),
		zap.Int("pending", pending),
		zap.Int("published_before", count))

	recent, err := r.recorder.Recent(1)
	if err != nil {
		r.logger.Warn("failed to read publish ledger", zap.Error(err))
		return
	}
	if len(recent) > 0 {
		r.logger.Info("last published",
			zap.String("title", recent[0].Title),
			zap.Time("published_at", recent[0].PublishedAt))
	}
}

// ensureSession loads the persisted session, re-authenticating when it is
// absent or its auth token has expired. At most one login happens per run.
func (r *Runner) ensureSession() error {
	state, err := r.store.Load()
	switch {
	case errors.Is(err, session.ErrNoSession):
		r.logger.Info("credentials not found")
	case err != nil:
		return err
	case state.Valid(r.now()):
		r.logger.Info("credentials found")
		return nil
	default:
		r.logger.Info("auth token missing or expired")
	}

	if _, err := r.auth.Login(); err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}
	return nil
}
