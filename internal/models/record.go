package models

import "time"

// PublishRecord is one row of the publish ledger, written after an item has
// been published and archived.
type PublishRecord struct {
	ID          int       `db:"id"`
	RunID       string    `db:"run_id"`
	Title       string    `db:"title"`
	VideoFile   string    `db:"video_file"`
	PublishAt   time.Time `db:"publish_at"`
	PublishedAt time.Time `db:"published_at"`
}
