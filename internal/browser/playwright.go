package browser

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/my-ijet/odysee-uploader/internal/models"
)

const (
	viewportWidth  = 1920
	viewportHeight = 1080
)

// Engine drives a headless Chromium through playwright. One Engine lives for
// the whole run; pages and contexts are per item.
type Engine struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	logger  *zap.Logger
}

// Launch starts the playwright driver and a Chromium instance.
func Launch(headless bool, logger *zap.Logger) (*Engine, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
		Args:     []string{"--start-maximized"},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch chromium: %w", err)
	}

	return &Engine{pw: pw, browser: b, logger: logger}, nil
}

// NewSession opens an isolated context seeded from the state file, with the
// fixed viewport the upload page is laid out for.
func (e *Engine) NewSession(statePath string) (Surface, error) {
	ctx, err := e.browser.NewContext(playwright.BrowserNewContextOptions{
		StorageStatePath: playwright.String(statePath),
		Viewport:         &playwright.Size{Width: viewportWidth, Height: viewportHeight},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	p, err := ctx.NewPage()
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return &page{pw: p, ctx: ctx}, nil
}

// NewPage opens a bare page in a fresh context, used for interactive login.
func (e *Engine) NewPage() (Surface, error) {
	p, err := e.browser.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return &page{pw: p}, nil
}

func (e *Engine) Close() error {
	if err := e.browser.Close(); err != nil {
		e.logger.Warn("failed to close browser", zap.Error(err))
	}
	return e.pw.Stop()
}

// page adapts a playwright page to the Surface interface. ctx is set when the
// page owns its context and must tear it down on Close.
type page struct {
	pw  playwright.Page
	ctx playwright.BrowserContext
}

func (p *page) Navigate(url string) error {
	_, err := p.pw.Goto(url, playwright.PageGotoOptions{
		Timeout:   playwright.Float(0),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

func (p *page) Fill(selector, value string) error {
	if err := p.pw.Locator(selector).Fill(value); err != nil {
		return fmt.Errorf("failed to fill %s: %w", selector, err)
	}
	return nil
}

func (p *page) Click(selector string, timeout time.Duration) error {
	err := p.pw.Locator(selector).Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(millis(timeout)),
	})
	if err != nil {
		return wrapTimeout(err, "failed to click "+selector)
	}
	return nil
}

func (p *page) SetFiles(selector string, paths ...string) error {
	if err := p.pw.Locator(selector).SetInputFiles(paths); err != nil {
		return fmt.Errorf("failed to attach files to %s: %w", selector, err)
	}
	return nil
}

func (p *page) WaitFor(selector string, timeout time.Duration) error {
	err := p.pw.Locator(selector).WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(millis(timeout)),
	})
	if err != nil {
		return wrapTimeout(err, "failed to wait for "+selector)
	}
	return nil
}

func (p *page) ReadValue(selector string) (string, error) {
	value, err := p.pw.Locator(selector).InputValue()
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", selector, err)
	}
	return value, nil
}

func (p *page) TypeText(text string) error {
	return p.pw.Keyboard().Type(text)
}

func (p *page) Press(key string) error {
	return p.pw.Keyboard().Press(key)
}

func (p *page) State() (*models.SessionState, error) {
	raw, err := p.pw.Context().StorageState()
	if err != nil {
		return nil, fmt.Errorf("failed to capture storage state: %w", err)
	}

	// Round-trip through JSON so the persisted file keeps the engine's own
	// serialization shape.
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode storage state: %w", err)
	}
	var state models.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode storage state: %w", err)
	}
	return &state, nil
}

func (p *page) Close() error {
	if err := p.pw.Close(); err != nil {
		return err
	}
	if p.ctx != nil {
		return p.ctx.Close()
	}
	return nil
}

// millis converts a wait budget to playwright's millisecond convention,
// where zero means no limit.
func millis(timeout time.Duration) float64 {
	if timeout <= 0 {
		return 0
	}
	return float64(timeout.Milliseconds())
}

func wrapTimeout(err error, msg string) error {
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%s: %w", msg, ErrTimeout)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
