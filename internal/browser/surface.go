package browser

import (
	"errors"
	"time"

	"github.com/my-ijet/odysee-uploader/internal/models"
)

// ErrTimeout marks a UI interaction that ran out of its time budget, e.g. a
// click on an element that never became visible. The publish workflow treats
// it as retryable inside its schedule loop; everything else is fatal.
var ErrTimeout = errors.New("timed out waiting for element")

// Surface is the slice of browser automation the publish workflow and the
// authenticator need. A timeout of zero or less means wait without limit.
type Surface interface {
	// Navigate opens the URL and returns once the DOM is ready. It never
	// times out: an unresponsive platform blocks rather than fails.
	Navigate(url string) error

	Fill(selector, value string) error
	Click(selector string, timeout time.Duration) error
	SetFiles(selector string, paths ...string) error
	WaitFor(selector string, timeout time.Duration) error
	ReadValue(selector string) (string, error)

	// TypeText and Press drive the keyboard at page focus.
	TypeText(text string) error
	Press(key string) error

	// State captures the cookie jar of the page's browsing context.
	State() (*models.SessionState, error)

	// Close tears down the page and any context owned by it.
	Close() error
}

// Browser hands out pages. NewSession opens an isolated context seeded from
// the persisted session state file with the fixed publishing viewport;
// NewPage opens a bare page for interactive login.
type Browser interface {
	NewSession(statePath string) (Surface, error)
	NewPage() (Surface, error)
	Close() error
}
