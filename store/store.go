// Package store persists calculator programs by name. A program is the flat list of token
// strings returned by rpncalc.Engine.Program.
package store

import (
	"time"

	"github.com/pkg/errors"
)

// Store saves and restores named programs. Implementations are safe for concurrent use.
type Store interface {
	// Save stores program under name, replacing any program already saved under it.
	Save(name string, program []string) (Info, error)

	// Load returns the program saved under name, or ErrNotFound.
	Load(name string) ([]string, error)

	// List returns metadata for every saved program ordered by name. No saved programs is an
	// empty slice, not an error.
	List() ([]Info, error)

	// Delete removes the program saved under name. Deleting a missing name returns nil.
	Delete(name string) error

	// Close releases resources. Calling Close more than once returns nil.
	Close() error
}

// Info describes a saved program without loading it.
type Info struct {
	ID     string // unique per save
	Name   string
	Saved  time.Time
	Tokens int
}

var (
	// ErrNotFound is returned by Load when no program is saved under the name.
	ErrNotFound = errors.New("program not found")

	// ErrClosed is returned by every operation but Close once the store is closed.
	ErrClosed = errors.New("program store closed")

	// ErrEmptyName is returned by Save when name is empty.
	ErrEmptyName = errors.New("empty program name")
)
