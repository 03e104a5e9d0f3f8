package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/my-ijet/odysee-uploader/internal/models"
)

// ErrNoSession is returned by Load when no state file exists yet. It is a
// normal first-run outcome, not a failure.
var ErrNoSession = errors.New("no persisted session")

// Store reads and writes the serialized session state file.
type Store struct {
	path   string
	logger *zap.Logger
}

func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Path returns the location of the state file, handed to the automation
// engine when seeding per-item contexts.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted session. Absence is reported as ErrNoSession.
func (s *Store) Load() (*models.SessionState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to read session state: %w", err)
	}

	var state models.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse session state: %w", err)
	}
	return &state, nil
}

// Persist overwrites the state file with the given session.
func (s *Store) Persist(state *models.SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session state: %w", err)
	}
	s.logger.Info("session state saved", zap.String("path", s.path))
	return nil
}
