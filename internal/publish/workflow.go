package publish

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/my-ijet/odysee-uploader/internal/browser"
	"github.com/my-ijet/odysee-uploader/internal/models"
	"github.com/my-ijet/odysee-uploader/internal/queue"
)

const (
	// maxScheduleRetries bounds the expand-and-retry rounds for the date
	// picker, which starts collapsed below the fold.
	maxScheduleRetries = 5

	// widgetClickBudget is the per-attempt wait for the date picker's year
	// field to become clickable.
	widgetClickBudget = 3 * time.Second

	// defaultClickBudget applies to ordinary clicks that are expected to
	// succeed promptly.
	defaultClickBudget = 30 * time.Second
)

// ErrScheduleExhausted is returned when the scheduling widget never became
// visible within the retry budget. It aborts the whole run.
var ErrScheduleExhausted = errors.New("failed to fill in publish date: retries exhausted")

// Workflow drives one work item through the platform's upload UI. Each item
// gets its own isolated browsing context seeded from the persisted session,
// so no item can mutate the shared session.
type Workflow struct {
	browser   browser.Browser
	statePath string
	tags      string
	logger    *zap.Logger
}

func NewWorkflow(b browser.Browser, statePath, tags string, logger *zap.Logger) *Workflow {
	return &Workflow{browser: b, statePath: statePath, tags: tags, logger: logger}
}

// Publish runs the per-item state machine: upload video, fill metadata,
// attach thumbnail, tag, schedule, publish, and wait for the platform to
// finish ingesting. Any error is fatal for the run.
func (w *Workflow) Publish(item models.WorkItem) error {
	log := w.logger.With(zap.String("item", item.Base()))

	description, err := os.ReadFile(item.DescriptionPath)
	if err != nil {
		return fmt.Errorf("failed to read description: %w", err)
	}

	page, err := w.browser.NewSession(w.statePath)
	if err != nil {
		return fmt.Errorf("failed to open browsing context: %w", err)
	}
	defer page.Close()

	log.Info("opening upload page")
	if err := page.Navigate(uploadURL); err != nil {
		return err
	}

	log.Info("attaching video file")
	if err := page.SetFiles(videoFileInput, item.VideoPath); err != nil {
		return err
	}

	log.Info("filling title")
	if err := page.Fill(titleInput, item.Title); err != nil {
		return err
	}
	if err := w.fixContentName(page); err != nil {
		return err
	}

	log.Info("filling description")
	if err := page.Fill(descriptionInput, string(description)); err != nil {
		return err
	}

	log.Info("attaching thumbnail")
	if err := page.SetFiles(thumbnailFileInput, item.ThumbnailPath); err != nil {
		return err
	}
	if err := page.Click(modalConfirmButton, defaultClickBudget); err != nil {
		return err
	}

	log.Info("filling tags")
	if err := page.Fill(tagInput, w.tags); err != nil {
		return err
	}
	if err := page.Press("Enter"); err != nil {
		return err
	}

	if err := w.scheduleDate(page, item.PublishAt, log); err != nil {
		return err
	}

	log.Info("publishing")
	if err := page.Press("End"); err != nil {
		return err
	}
	if err := page.Click(publishButton, defaultClickBudget); err != nil {
		return err
	}
	// The confirmation may stay busy while the platform processes the file
	// server-side, so this click gets no time limit.
	if err := page.Click(modalConfirmButton, 0); err != nil {
		return err
	}

	// Completion proxy: the modal's primary button settling again means the
	// upload finished ingesting. Deliberately unbounded; the operator would
	// rather block than race a timeout against unknown transcoding time.
	log.Info("waiting for upload to finish")
	if err := page.WaitFor(modalConfirmButton, 0); err != nil {
		return err
	}

	log.Info("upload complete")
	return nil
}

// fixContentName rewrites the platform's auto-derived content slug, which
// otherwise keeps the timestamp prefix the title was stripped of.
func (w *Workflow) fixContentName(page browser.Surface) error {
	slug, err := page.ReadValue(contentNameInput)
	if err != nil {
		return err
	}
	if len(slug) > queue.TimestampLen+1 {
		slug = slug[queue.TimestampLen+1:]
	} else {
		slug = ""
	}
	return page.Fill(contentNameInput, slug)
}

// scheduleDate clicks into the date picker's year field and types the
// publish time. The widget starts collapsed: when the click times out, the
// page is scrolled to the end and the "show more" toggle clicked, up to
// maxScheduleRetries expansions before giving up.
func (w *Workflow) scheduleDate(page browser.Surface, at time.Time, log *zap.Logger) error {
	for attempt := 0; attempt <= maxScheduleRetries; attempt++ {
		if attempt > 0 {
			log.Info("date picker hidden, expanding form", zap.Int("attempt", attempt))
			if err := page.Press("End"); err != nil {
				return err
			}
			if err := page.Click(showMoreButton, defaultClickBudget); err != nil {
				return err
			}
		}

		err := page.Click(yearInput, widgetClickBudget)
		if err == nil {
			log.Info("filling publish date", zap.Time("publish_at", at))
			return w.typeDate(page, at)
		}
		if !errors.Is(err, browser.ErrTimeout) {
			return err
		}
	}
	return ErrScheduleExhausted
}

func (w *Workflow) typeDate(page browser.Surface, at time.Time) error {
	parts := []string{
		fmt.Sprintf("%04d", at.Year()),
		fmt.Sprintf("%02d", int(at.Month())),
		fmt.Sprintf("%02d", at.Day()),
		fmt.Sprintf("%02d", at.Hour()),
		fmt.Sprintf("%02d", at.Minute()),
	}
	for _, part := range parts {
		if err := page.TypeText(part); err != nil {
			return err
		}
	}
	return nil
}
