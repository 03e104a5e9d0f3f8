package models

import (
	"path/filepath"
	"time"
)

// WorkItem is one publishable unit: a video file plus its thumbnail and
// description siblings sharing the same filename stem. Items are built by the
// queue scanner and are immutable afterwards.
type WorkItem struct {
	VideoPath       string
	ThumbnailPath   string
	DescriptionPath string

	// Title is the filename stem with the timestamp prefix stripped.
	Title string

	// PublishAt is decoded from the 10-digit unix prefix of the filename.
	PublishAt time.Time
}

// Base returns the video filename without its directory, used for ordering
// and log output.
func (w WorkItem) Base() string {
	return filepath.Base(w.VideoPath)
}
