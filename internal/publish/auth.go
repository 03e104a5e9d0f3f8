package publish

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/my-ijet/odysee-uploader/internal/browser"
	"github.com/my-ijet/odysee-uploader/internal/config"
	"github.com/my-ijet/odysee-uploader/internal/models"
	"github.com/my-ijet/odysee-uploader/internal/session"
)

// sleep is swappable in tests.
var sleep = time.Sleep

// Authenticator performs interactive login when no usable session exists and
// persists the fresh session state.
type Authenticator struct {
	browser browser.Browser
	store   *session.Store
	creds   config.Credentials
	settle  time.Duration
	logger  *zap.Logger
	now     func() time.Time
}

func NewAuthenticator(b browser.Browser, store *session.Store, creds config.Credentials, settle time.Duration, logger *zap.Logger) *Authenticator {
	return &Authenticator{
		browser: b,
		store:   store,
		creds:   creds,
		settle:  settle,
		logger:  logger,
		now:     time.Now,
	}
}

// Login signs in on a fresh page, waits a fixed settling interval for the
// session to establish, verifies a valid auth token actually landed, and
// persists the captured state.
func (a *Authenticator) Login() (*models.SessionState, error) {
	a.logger.Info("logging in to odysee")

	page, err := a.browser.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to open login page: %w", err)
	}
	defer page.Close()

	if err := page.Navigate(signinURL); err != nil {
		return nil, err
	}
	if err := page.Fill(loginUsernameInput, a.creds.Username); err != nil {
		return nil, err
	}
	if err := page.Click(loginSubmitButton, defaultClickBudget); err != nil {
		return nil, err
	}
	if err := page.Fill(loginPasswordInput, a.creds.Password); err != nil {
		return nil, err
	}
	if err := page.Click(loginSubmitButton, defaultClickBudget); err != nil {
		return nil, err
	}

	// The platform sets its cookies shortly after the final submit; there is
	// no DOM event to key off, so give it a moment before capturing.
	sleep(a.settle)

	state, err := page.State()
	if err != nil {
		return nil, err
	}
	if !state.Valid(a.now()) {
		return nil, fmt.Errorf("login did not yield a valid %s cookie, check credentials", models.AuthTokenCookie)
	}

	a.logger.Info("logged in, saving session state")
	if err := a.store.Persist(state); err != nil {
		return nil, err
	}
	return state, nil
}
