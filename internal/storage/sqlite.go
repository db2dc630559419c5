// Package storage provides SQLite-based persistence for recorded replays.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a replay does not exist.
var ErrNotFound = errors.New("storage: replay not found")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ReplayRecord is one recorded game session.
// Inputs holds the encoded intent stream, Config the YAML the game ran with.
type ReplayRecord struct {
	ID         string
	GameID     string
	Frames     int
	FinalTick  int
	FinalScore int
	GameOver   bool
	Config     string
	Inputs     []byte
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandHome(dbPath)
	if err != nil {
		return nil, err
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

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			frames INTEGER NOT NULL,
			final_tick INTEGER NOT NULL,
			final_score INTEGER NOT NULL,
			game_over INTEGER NOT NULL DEFAULT 0,
			config TEXT NOT NULL,
			inputs BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveReplay stores a replay and returns its newly assigned ID.
// Any ID already set on rec is ignored.
func (s *Store) SaveReplay(rec ReplayRecord) (string, error) {
	id := uuid.NewString()

	_, err := s.db.Exec(
		`INSERT INTO replays
		 (id, game_id, frames, final_tick, final_score, game_over, config, inputs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		rec.GameID,
		rec.Frames,
		rec.FinalTick,
		rec.FinalScore,
		rec.GameOver,
		rec.Config,
		rec.Inputs,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save replay: %w", err)
	}

	return id, nil
}

// Replay retrieves a replay by ID, including its input stream.
// A unique ID prefix is accepted as well.
func (s *Store) Replay(id string) (*ReplayRecord, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	// substr keeps the prefix literal; LIKE would treat _ and % as wildcards.
	rows, err := s.db.Query(
		`SELECT id, game_id, frames, final_tick, final_score, game_over, config, inputs, created_at
		 FROM replays
		 WHERE id = ? OR substr(id, 1, length(?)) = ?
		 LIMIT 2`,
		id, id, id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}
	defer rows.Close()

	var found []ReplayRecord
	for rows.Next() {
		rec, err := scanReplay(rows, true)
		if err != nil {
			return nil, err
		}
		if rec.ID == id {
			return &rec, nil
		}
		found = append(found, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(found) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return &found[0], nil
	default:
		return nil, fmt.Errorf("storage: replay id prefix %q is ambiguous", id)
	}
}

// RecentReplays lists the most recent replays without their input streams.
func (s *Store) RecentReplays(limit int) ([]ReplayRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, frames, final_tick, final_score, game_over, config, created_at
		 FROM replays
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var records []ReplayRecord
	for rows.Next() {
		rec, err := scanReplay(rows, false)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// DeleteReplay removes a replay by exact ID.
func (s *Store) DeleteReplay(id string) error {
	res, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountReplays returns how many replays are stored.
func (s *Store) CountReplays() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM replays").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count replays: %w", err)
	}
	return n, nil
}

// scanReplay reads one row. withInputs selects whether the inputs column is present.
func scanReplay(rows *sql.Rows, withInputs bool) (ReplayRecord, error) {
	var rec ReplayRecord
	var createdAt any

	dest := []any{
		&rec.ID,
		&rec.GameID,
		&rec.Frames,
		&rec.FinalTick,
		&rec.FinalScore,
		&rec.GameOver,
		&rec.Config,
	}
	if withInputs {
		dest = append(dest, &rec.Inputs)
	}
	dest = append(dest, &createdAt)

	if err := rows.Scan(dest...); err != nil {
		return rec, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
