package ledger

import (
	"github.com/my-ijet/odysee-uploader/internal/models"
)

// Record appends one published item to the ledger.
func (l *Ledger) Record(rec models.PublishRecord) error {
	_, err := l.db.Exec(`
		INSERT INTO publishes (run_id, title, video_file, publish_at, published_at)
		VALUES (?, ?, ?, ?, ?)`,
		rec.RunID, rec.Title, rec.VideoFile, rec.PublishAt, rec.PublishedAt)
	return err
}

// Count returns the number of items published across all runs.
func (l *Ledger) Count() (int, error) {
	var count int
	err := l.db.Get(&count, "SELECT COUNT(*) FROM publishes")
	return count, err
}

// Recent returns the newest records, most recent first.
func (l *Ledger) Recent(limit int) ([]models.PublishRecord, error) {
	records := []models.PublishRecord{}
	err := l.db.Select(&records, "SELECT * FROM publishes ORDER BY id DESC LIMIT ?", limit)
	return records, err
}
