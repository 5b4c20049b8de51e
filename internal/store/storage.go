package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/nhle/todo/internal/logging"
	"github.com/nhle/todo/internal/model"
)

// Storage owns the task collection and mirrors it to a single JSON file.
// Every mutation rewrites the whole file before returning. There is no
// locking: two processes on the same file race, last writer wins.
type Storage struct {
	path   string
	tasks  []model.Task
	logger *log.Logger
}

// Option configures a Storage at Open.
type Option func(*Storage)

// WithLogger sets the logger used for load/save diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Storage) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open loads the task collection stored at path. The parent directory is
// created if missing. A missing file yields an empty collection and is not
// created until the first mutation.
func Open(path string, opts ...Option) (*Storage, error) {
	s := &Storage{
		path:   path,
		tasks:  []model.Task{},
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &WriteError{Path: path, Err: err}
		}
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.logger.Debug("tasks file not found, starting empty", "path", path)
		return s, nil
	case err != nil:
		return nil, &ReadError{Path: path, Err: err}
	}

	tasks, err := decodeTasks(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if tasks != nil {
		s.tasks = tasks
	}

	s.logger.Debug("loaded tasks", "path", path, "count", len(s.tasks))
	return s, nil
}

// Path returns the file this storage mirrors.
func (s *Storage) Path() string {
	return s.path
}

// List returns a copy of the collection in insertion order.
func (s *Storage) List() []model.Task {
	return slices.Clone(s.tasks)
}

// Add appends task and persists the collection. If the write fails the
// task remains in memory; the file keeps the last successful save.
func (s *Storage) Add(task model.Task) error {
	s.tasks = append(s.tasks, task)
	return s.save()
}

// Complete marks the task at the zero-based position as completed and
// persists. It reports false, without writing, when pos is out of range.
// A persist failure is returned as a *WriteError; the in-memory change stays.
func (s *Storage) Complete(pos int) (bool, error) {
	if !s.inBounds(pos) {
		return false, nil
	}
	s.tasks[pos].Completed = true
	if err := s.save(); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the task at the zero-based position; later tasks shift
// down by one. It reports false, without writing, when pos is out of range.
func (s *Storage) Delete(pos int) (bool, error) {
	if !s.inBounds(pos) {
		return false, nil
	}
	s.tasks = slices.Delete(s.tasks, pos, pos+1)
	if err := s.save(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Storage) inBounds(pos int) bool {
	return pos >= 0 && pos < len(s.tasks)
}

// save overwrites the file with the entire collection.
func (s *Storage) save() error {
	tasks := s.tasks
	if tasks == nil {
		tasks = []model.Task{}
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}

	s.logger.Debug("saved tasks", "path", s.path, "count", len(tasks), "bytes", len(data))
	return nil
}
