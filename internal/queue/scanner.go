package queue

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/my-ijet/odysee-uploader/internal/models"
)

// TimestampLen is the fixed width of the unix-seconds prefix every inbox
// filename starts with.
const TimestampLen = 10

const (
	thumbExt = ".webp"
	descExt  = ".description"
)

var videoExts = map[string]bool{
	".webm": true,
	".mp4":  true,
	".mkv":  true,
}

// Scanner discovers pending work items in the inbox directory.
type Scanner struct {
	inboxDir string
	logger   *zap.Logger
}

func NewScanner(inboxDir string, logger *zap.Logger) *Scanner {
	return &Scanner{inboxDir: inboxDir, logger: logger}
}

// Scan lists the inbox and returns work items in processing order: reverse
// lexical order of the video filenames, so with the fixed-width timestamp
// prefix the newest item runs first. A video missing either sibling file
// fails the scan. An empty inbox returns an empty slice and no error.
func (s *Scanner) Scan() ([]models.WorkItem, error) {
	entries, err := os.ReadDir(s.inboxDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read inbox directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if videoExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			names = append(names, entry.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	items := make([]models.WorkItem, 0, len(names))
	for _, name := range names {
		item, err := s.buildItem(name)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *Scanner) buildItem(name string) (models.WorkItem, error) {
	stem := strings.TrimSuffix(name, filepath.Ext(name))

	publishAt, title, err := ParseStem(stem)
	if err != nil {
		return models.WorkItem{}, fmt.Errorf("failed to parse filename %q: %w", name, err)
	}

	item := models.WorkItem{
		VideoPath:       filepath.Join(s.inboxDir, name),
		ThumbnailPath:   filepath.Join(s.inboxDir, stem+thumbExt),
		DescriptionPath: filepath.Join(s.inboxDir, stem+descExt),
		Title:           title,
		PublishAt:       publishAt,
	}

	for _, sibling := range []string{item.ThumbnailPath, item.DescriptionPath} {
		if _, err := os.Stat(sibling); err != nil {
			return models.WorkItem{}, fmt.Errorf("missing sibling for %s: %w", name, err)
		}
	}

	s.logger.Debug("found pending item",
		zap.String("video", name),
		zap.Time("publish_at", publishAt))
	return item, nil
}

// ParseStem splits a filename stem of the form <10-digit-unix-ts>-<title>
// into its publish time and title.
func ParseStem(stem string) (time.Time, string, error) {
	if len(stem) < TimestampLen+2 || stem[TimestampLen] != '-' {
		return time.Time{}, "", fmt.Errorf("expected <%d-digit-timestamp>-<title>", TimestampLen)
	}
	ts, err := strconv.ParseInt(stem[:TimestampLen], 10, 64)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("bad timestamp prefix: %w", err)
	}
	return time.Unix(ts, 0), stem[TimestampLen+1:], nil
}
