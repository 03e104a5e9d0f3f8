package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"
)

// Credentials is the two-line auth file: username, then password.
type Credentials struct {
	Username string
	Password string
}

// Config is everything the run needs, resolved once at startup and threaded
// into components explicitly.
type Config struct {
	InboxDir   string
	ArchiveDir string
	StatePath  string
	LedgerPath string

	Tags        string
	Credentials Credentials

	Cooldown    time.Duration
	LoginSettle time.Duration
	Headless    bool
}

// Load resolves configuration from the environment (after any .env load in
// main) and reads the tags and credentials files.
func Load() (*Config, error) {
	cfg := &Config{
		InboxDir:    getenv("UPLOAD_DIR", "upload"),
		ArchiveDir:  getenv("UPLOADED_DIR", "uploaded"),
		StatePath:   getenv("STATE_FILE", "state.json"),
		LedgerPath:  getenv("LEDGER_FILE", "uploads.db"),
		Cooldown:    5 * time.Minute,
		LoginSettle: 3 * time.Second,
		Headless:    getenv("HEADLESS", "true") != "false",
	}

	if v := os.Getenv("UPLOAD_COOLDOWN"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("failed to parse UPLOAD_COOLDOWN: %w", err)
		}
		cfg.Cooldown = d
	}

	tags, err := readFirstLine(getenv("TAGS_FILE", "tags"))
	if err != nil {
		return nil, fmt.Errorf("failed to read tags file: %w", err)
	}
	cfg.Tags = tags

	creds, err := readCredentials(getenv("AUTH_FILE", "auth"))
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	cfg.Credentials = creds

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func readFirstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("%s is empty", path)
	}
	return strings.TrimSpace(scanner.Text()), nil
}

func readCredentials(path string) (Credentials, error) {
	f, err := os.Open(path)
	if err != nil {
		return Credentials{}, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	var lines []string
	for scanner.Scan() && len(lines) < 2 {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return Credentials{}, err
	}
	if len(lines) < 2 || lines[0] == "" || lines[1] == "" {
		return Credentials{}, fmt.Errorf("%s must contain a username line and a password line", path)
	}
	return Credentials{Username: lines[0], Password: lines[1]}, nil
}
