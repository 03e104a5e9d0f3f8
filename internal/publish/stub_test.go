package publish

import (
	"fmt"
	"time"

	"github.com/my-ijet/odysee-uploader/internal/browser"
	"github.com/my-ijet/odysee-uploader/internal/models"
)

// stubCall records one interaction with the fake automation surface.
type stubCall struct {
	op       string
	selector string
	value    string
}

// stubSurface is a scripted automation surface. The year input only becomes
// clickable after revealAfter clicks of the show-more toggle, simulating the
// collapsed scheduling section.
type stubSurface struct {
	calls  []stubCall
	values map[string]string

	revealAfter    int
	showMoreClicks int

	state  *models.SessionState
	closed bool

	errOn map[string]error
}

func newStubSurface() *stubSurface {
	return &stubSurface{
		values: map[string]string{},
		errOn:  map[string]error{},
	}
}

func (s *stubSurface) record(op, selector, value string) {
	s.calls = append(s.calls, stubCall{op: op, selector: selector, value: value})
}

func (s *stubSurface) Navigate(url string) error {
	s.record("navigate", url, "")
	return s.errOn["navigate"]
}

func (s *stubSurface) Fill(selector, value string) error {
	s.record("fill", selector, value)
	return s.errOn["fill:"+selector]
}

func (s *stubSurface) Click(selector string, timeout time.Duration) error {
	s.record("click", selector, timeout.String())
	if selector == showMoreButton {
		s.showMoreClicks++
	}
	if selector == yearInput && s.showMoreClicks < s.revealAfter {
		return fmt.Errorf("click %s: %w", selector, browser.ErrTimeout)
	}
	return s.errOn["click:"+selector]
}

func (s *stubSurface) SetFiles(selector string, paths ...string) error {
	value := ""
	if len(paths) > 0 {
		value = paths[0]
	}
	s.record("setFiles", selector, value)
	return s.errOn["setFiles:"+selector]
}

func (s *stubSurface) WaitFor(selector string, timeout time.Duration) error {
	s.record("waitFor", selector, timeout.String())
	return s.errOn["waitFor:"+selector]
}

func (s *stubSurface) ReadValue(selector string) (string, error) {
	s.record("readValue", selector, "")
	return s.values[selector], s.errOn["readValue:"+selector]
}

func (s *stubSurface) TypeText(text string) error {
	s.record("type", "", text)
	return nil
}

func (s *stubSurface) Press(key string) error {
	s.record("press", "", key)
	return nil
}

func (s *stubSurface) State() (*models.SessionState, error) {
	s.record("state", "", "")
	if s.state == nil {
		return &models.SessionState{}, nil
	}
	return s.state, nil
}

func (s *stubSurface) Close() error {
	s.closed = true
	return nil
}

// typed returns the text typed through the keyboard, in order.
func (s *stubSurface) typed() []string {
	var out []string
	for _, c := range s.calls {
		if c.op == "type" {
			out = append(out, c.value)
		}
	}
	return out
}

// filled returns the last value written to the selector, if any.
func (s *stubSurface) filled(selector string) (string, bool) {
	var value string
	var ok bool
	for _, c := range s.calls {
		if c.op == "fill" && c.selector == selector {
			value, ok = c.value, true
		}
	}
	return value, ok
}

// stubBrowser hands out a single prepared surface.
type stubBrowser struct {
	surface      *stubSurface
	sessionPaths []string
	pages        int
}

func (b *stubBrowser) NewSession(statePath string) (browser.Surface, error) {
	b.sessionPaths = append(b.sessionPaths, statePath)
	return b.surface, nil
}

func (b *stubBrowser) NewPage() (browser.Surface, error) {
	b.pages++
	return b.surface, nil
}

func (b *stubBrowser) Close() error { return nil }
