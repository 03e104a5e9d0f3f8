package models

import (
	"encoding/json"
	"time"
)

// AuthTokenCookie is the cookie whose presence and expiry decide whether the
// persisted session is still usable.
const AuthTokenCookie = "auth_token"

// Cookie mirrors one entry of the browser storage state's cookie jar. The
// field set matches what the automation engine serializes, so a state file
// written by it round-trips unchanged.
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain,omitempty"`
	Path     string  `json:"path,omitempty"`
	Expires  float64 `json:"expires,omitempty"`
	HttpOnly bool    `json:"httpOnly,omitempty"`
	Secure   bool    `json:"secure,omitempty"`
	SameSite string  `json:"sameSite,omitempty"`
}

// SessionState is the serialized authenticated browsing identity, reused
// read-only across every item in a run. Origins carries localStorage entries
// the engine may include; we never inspect them.
type SessionState struct {
	Cookies []Cookie          `json:"cookies"`
	Origins []json.RawMessage `json:"origins,omitempty"`
}

// AuthToken returns the auth token cookie, or nil when absent.
func (s *SessionState) AuthToken() *Cookie {
	for i := range s.Cookies {
		if s.Cookies[i].Name == AuthTokenCookie {
			return &s.Cookies[i]
		}
	}
	return nil
}

// Valid reports whether the session carries an auth token expiring strictly
// after now.
func (s *SessionState) Valid(now time.Time) bool {
	token := s.AuthToken()
	if token == nil {
		return false
	}
	return time.Unix(int64(token.Expires), 0).After(now)
}
