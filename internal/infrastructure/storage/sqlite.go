// Package storage persists input recordings in SQLite through the pure-Go
// modernc.org/sqlite driver.
package storage

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/younwookim/webgames/internal/application/replay"
)

// ErrNotFound is returned when a recording id does not exist
var ErrNotFound = errors.New("storage: recording not found")

// Store manages the SQLite database connection
type Store struct {
	db *sql.DB
}

// RecordingEntry summarises a stored recording
type RecordingEntry struct {
	ID        int64
	Variant   string
	Ticks     uint64
	Events    int
	StartTime string
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS recordings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			variant TEXT NOT NULL,
			ticks INTEGER NOT NULL,
			events INTEGER NOT NULL,
			start_time TEXT NOT NULL,
			payload BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_recordings_variant ON recordings(variant);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRecording stores a recording and returns its id
func (s *Store) SaveRecording(data replay.ReplayData) (int64, error) {
	if data.Ticks == 0 {
		return 0, replay.ErrNoFrames
	}

	var payload bytes.Buffer
	if err := json.NewEncoder(&payload).Encode(data); err != nil {
		return 0, fmt.Errorf("storage: cannot encode recording: %w", err)
	}

	events := 0
	for _, f := range data.Frames {
		events += len(f.E)
	}

	result, err := s.db.Exec(
		"INSERT INTO recordings (variant, ticks, events, start_time, payload) VALUES (?, ?, ?, ?, ?)",
		data.Variant, int64(data.Ticks), events, data.StartTime, payload.Bytes(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save recording: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// ListRecordings returns the newest recordings first. An empty variant lists
// every variant.
func (s *Store) ListRecordings(variant string, limit int) ([]RecordingEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, variant, ticks, events, start_time, created_at
		 FROM recordings
		 WHERE ? = '' OR variant = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		variant, variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recordings: %w", err)
	}
	defer rows.Close()

	var entries []RecordingEntry
	for rows.Next() {
		var e RecordingEntry
		var ticks int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Variant, &ticks, &e.Events, &e.StartTime, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Ticks = uint64(ticks)

		switch v := createdAt.(type) {
		case time.Time:
			e.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				e.CreatedAt = parsed
			}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// LoadRecording returns the recording with the given id
func (s *Store) LoadRecording(id int64) (*replay.ReplayData, error) {
	var payload []byte
	err := s.db.QueryRow("SELECT payload FROM recordings WHERE id = ?", id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load recording: %w", err)
	}

	data, err := replay.DecodeReplay(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("storage: recording %d: %w", id, err)
	}
	return data, nil
}

// DeleteRecording removes a recording
func (s *Store) DeleteRecording(id int64) error {
	result, err := s.db.Exec("DELETE FROM recordings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete recording: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete recording: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}
