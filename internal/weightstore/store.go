// Package weightstore persists baked weight channels in a SQLite database.
package weightstore

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite" // SQLite driver
)

const (
	// DefaultBatchSize is the number of writes to buffer before flushing to
	// the database.
	DefaultBatchSize = 500
)

type entry struct {
	channel string
	vertex  int
	weight  float64
}

// Store is a weight-channel database. Writes replace any prior weight for
// the same (channel, vertex) pair.
type Store struct {
	db        *sql.DB
	path      string
	batch     []entry
	batchSize int
	mu        sync.Mutex
}

// Open creates or opens a weight store at path and initializes the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{
		db:        db,
		path:      path,
		batch:     make([]entry, 0, DefaultBatchSize),
		batchSize: DefaultBatchSize,
	}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS channels (
			name TEXT NOT NULL PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS weights (
			channel TEXT NOT NULL,
			vertex INTEGER NOT NULL,
			weight REAL NOT NULL,
			PRIMARY KEY (channel, vertex)
		);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// EnsureChannel registers a channel. With overwrite set, weights already
// stored in it are dropped; otherwise they stay and later writes replace
// them vertex by vertex.
func (s *Store) EnsureChannel(name string, overwrite bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Pending writes for this channel must land before a delete.
	if err := s.flushLocked(); err != nil {
		return err
	}

	if _, err := s.db.Exec("INSERT OR IGNORE INTO channels (name) VALUES (?)", name); err != nil {
		return fmt.Errorf("failed to register channel %q: %w", name, err)
	}
	if overwrite {
		if _, err := s.db.Exec("DELETE FROM weights WHERE channel = ?", name); err != nil {
			return fmt.Errorf("failed to clear channel %q: %w", name, err)
		}
	}
	return nil
}

// WriteWeight buffers one replacing weight write. When the batch is full,
// it is automatically flushed.
func (s *Store) WriteWeight(channel string, vertex int, weight float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.batch = append(s.batch, entry{channel: channel, vertex: vertex, weight: weight})

	if len(s.batch) >= s.batchSize {
		return s.flushLocked()
	}

	return nil
}

// Flush writes any buffered weights to the database.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

// flushLocked writes buffered entries. Must be called with lock held.
func (s *Store) flushLocked() error {
	if len(s.batch) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // nolint:errcheck

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO weights (channel, vertex, weight) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range s.batch {
		if _, err := stmt.Exec(e.channel, e.vertex, e.weight); err != nil {
			return fmt.Errorf("failed to insert weight %s/%d: %w", e.channel, e.vertex, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.batch = s.batch[:0]
	return nil
}

// Channels returns the registered channel names in sorted order.
func (s *Store) Channels() ([]string, error) {
	if err := s.Flush(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query("SELECT name FROM channels ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query channels: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Weights returns the stored weights of one channel keyed by vertex index.
func (s *Store) Weights(channel string) (map[int]float64, error) {
	if err := s.Flush(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query("SELECT vertex, weight FROM weights WHERE channel = ?", channel)
	if err != nil {
		return nil, fmt.Errorf("failed to query weights: %w", err)
	}
	defer rows.Close()

	weights := make(map[int]float64)
	for rows.Next() {
		var vertex int
		var weight float64
		if err := rows.Scan(&vertex, &weight); err != nil {
			return nil, err
		}
		weights[vertex] = weight
	}
	return weights, rows.Err()
}

// Close flushes any remaining writes and closes the database.
func (s *Store) Close() error {
	if err := s.Flush(); err != nil {
		s.db.Close()
		return err
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}
