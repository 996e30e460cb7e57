package store

import (
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // pure Go driver registered as "sqlite"
)

// SQLiteStore keeps programs in a SQLite database, one row per name, with the program held as a
// JSON array of strings.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore opens or creates the database at path. Use ":memory:" for a throwaway store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	// each connection to :memory: would otherwise see its own empty database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "enable WAL mode")
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS programs (
			name TEXT NOT NULL PRIMARY KEY,
			id TEXT NOT NULL,
			saved TEXT NOT NULL,
			token_count INTEGER NOT NULL,
			tokens TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create table")
	}

	return &SQLiteStore{db: db}, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(name string, program []string) (Info, error) {
	if program == nil {
		program = []string{}
	}
	encoded, err := json.Marshal(program)
	if err != nil {
		return Info{}, errors.Wrap(err, "encode program")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Info{}, ErrClosed
	}
	if name == "" {
		return Info{}, ErrEmptyName
	}

	info := Info{
		ID:     uuid.New().String(),
		Name:   name,
		Saved:  time.Now().UTC(),
		Tokens: len(program),
	}
	_, err = s.db.Exec(`
		INSERT INTO programs (name, id, saved, token_count, tokens)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			id = excluded.id,
			saved = excluded.saved,
			token_count = excluded.token_count,
			tokens = excluded.tokens
	`, info.Name, info.ID, info.Saved.Format(time.RFC3339Nano), info.Tokens, string(encoded))
	if err != nil {
		return Info{}, errors.Wrapf(err, "save program %q", name)
	}
	return info, nil
}

// Load implements Store.
func (s *SQLiteStore) Load(name string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}

	var encoded string
	err := s.db.QueryRow(`SELECT tokens FROM programs WHERE name = ?`, name).Scan(&encoded)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load program %q", name)
	}

	var program []string
	if err := json.Unmarshal([]byte(encoded), &program); err != nil {
		return nil, errors.Wrapf(err, "decode program %q", name)
	}
	return program, nil
}

// List implements Store.
func (s *SQLiteStore) List() ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}

	rows, err := s.db.Query(`SELECT name, id, saved, token_count FROM programs ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(err, "list programs")
	}
	defer rows.Close()

	infos := []Info{}
	for rows.Next() {
		var info Info
		var saved string
		if err := rows.Scan(&info.Name, &info.ID, &saved, &info.Tokens); err != nil {
			return nil, errors.Wrap(err, "scan program info")
		}
		if info.Saved, err = time.Parse(time.RFC3339Nano, saved); err != nil {
			return nil, errors.Wrapf(err, "parse saved time of program %q", info.Name)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate programs")
	}
	return infos, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	if _, err := s.db.Exec(`DELETE FROM programs WHERE name = ?`, name); err != nil {
		return errors.Wrapf(err, "delete program %q", name)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
