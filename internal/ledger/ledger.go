package ledger

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // The database driver
)

const schema = `
CREATE TABLE IF NOT EXISTS publishes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	title TEXT NOT NULL,
	video_file TEXT NOT NULL,
	publish_at TIMESTAMP NOT NULL,
	published_at TIMESTAMP NOT NULL
)`

// Ledger is the durable history of everything this tool has published. It is
// bookkeeping only: the archive directory, not the ledger, decides whether an
// item is done.
type Ledger struct {
	db *sqlx.DB
}

// Open opens (creating if needed) the sqlite ledger at path.
func Open(path string) (*Ledger, error) {
	db, err := sqlx.Connect("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create ledger schema: %w", err)
	}
	return &Ledger{db: db}, nil
}

// New wraps an existing connection; used by tests.
func New(db *sqlx.DB) *Ledger {
	return &Ledger{db: db}
}

func (l *Ledger) Close() error {
	return l.db.Close()
}
