// Package jsonstore persists the task list as a single JSON file.
// No locking; the last writer wins, which is fine for a local single-user CLI.
package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todo-cli/internal/model"
)

const dataFileName = ".todo-cli.json"

// DefaultPath resolves the store file inside the user's home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHomeUnavailable, err)
	}
	if home == "" {
		return "", ErrHomeUnavailable
	}
	return filepath.Join(home, dataFileName), nil
}

// Store loads and saves tasks at a fixed path.
type Store struct {
	path   string
	logger *log.Logger
}

// New returns a store bound to path. The path is used as given.
func New(path string) *Store {
	return &Store{path: path, logger: log.New(io.Discard)}
}

// WithLogger sets the diagnostic logger and returns the store.
func (s *Store) WithLogger(l *log.Logger) *Store {
	if l != nil {
		s.logger = l
	}
	return s
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string { return s.path }

// Load reads every task from disk. A missing file is an empty store.
func (s *Store) Load() ([]model.Task, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("store file missing, starting empty", "path", s.path)
			return []model.Task{}, nil
		}
		return nil, &IOError{Op: "read", Path: s.path, Err: err}
	}

	tasks, err := decode(b)
	if err != nil {
		return nil, &CorruptError{Path: s.path, Err: err}
	}
	s.logger.Debug("loaded tasks", "path", s.path, "count", len(tasks))
	return tasks, nil
}

// Save overwrites the store file with tasks. The write is not atomic:
// a failure midway can leave a truncated file behind.
func (s *Store) Save(tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	b, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	s.logger.Debug("saved tasks", "path", s.path, "count", len(tasks))
	return nil
}

func decode(b []byte) ([]model.Task, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}
	var tasks []model.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return tasks, nil
}

// NextID returns one past the largest id present, or 1 for an empty list.
func NextID(tasks []model.Task) (uint32, error) {
	var hi uint32
	for _, t := range tasks {
		if t.ID > hi {
			hi = t.ID
		}
	}
	if hi == math.MaxUint32 {
		return 0, ErrIDsExhausted
	}
	return hi + 1, nil
}

// MarkDone sets Done on the first task with id and reports whether one matched.
func MarkDone(tasks []model.Task, id uint32) bool {
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].Done = true
			return true
		}
	}
	return false
}

// Remove drops every task with id, keeping the order of the rest.
// The returned slice shares the backing array of tasks.
func Remove(tasks []model.Task, id uint32) ([]model.Task, bool) {
	out := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out, len(out) < len(tasks)
}
