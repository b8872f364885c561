package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	defaultMaxSize = 10 << 20

	// backupStamp names rotated files. Nanosecond precision keeps the
	// names unique and lexically ordered by age.
	backupStamp = "2006-01-02T15-04-05.000000000"
)

// File appends encoded events to a log file and rotates it by size. A
// write that would push the file past MaxSize first renames it to a
// timestamped backup and reopens a fresh file; the oldest backups are
// removed once there are more than MaxBackups.
type File struct {
	mu         sync.Mutex
	path       string
	file       *os.File
	size       int64
	maxSize    int64
	maxBackups int
	closed     bool
}

var _ Sink = (*File)(nil)

// NewFile opens the log file at path, creating parent directories as
// needed. maxSize <= 0 selects a 10 MiB default; maxBackups <= 0 keeps
// every backup.
func NewFile(path string, maxSize int64, maxBackups int) (*File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat log file: %w", err)
	}
	if maxSize <= 0 {
		maxSize = defaultMaxSize
	}
	return &File{
		path:       path,
		file:       f,
		size:       info.Size(),
		maxSize:    maxSize,
		maxBackups: maxBackups,
	}, nil
}

// Write appends one encoded event, rotating first when the event would not
// fit. An event larger than MaxSize still lands in a fresh file whole.
func (s *File) Write(p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.size > 0 && s.size+int64(len(p)) > s.maxSize {
		if err := s.rotate(); err != nil {
			return err
		}
	}
	n, err := s.file.Write(p)
	s.size += int64(n)
	return err
}

// rotate renames the current file to a timestamped backup and reopens the
// path. When the rename fails the original file is reopened so logging can
// continue.
func (s *File) rotate() error {
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("rotate sync: %w", err)
	}
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("rotate close: %w", err)
	}

	backup := fmt.Sprintf("%s.%s", s.path, time.Now().Format(backupStamp))
	if err := os.Rename(s.path, backup); err != nil {
		f, openErr := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			return fmt.Errorf("rotate rename: %v, reopen: %v", err, openErr)
		}
		s.file = f
		return fmt.Errorf("rotate rename: %w", err)
	}

	if s.maxBackups > 0 {
		s.cleanupBackups()
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("rotate reopen: %w", err)
	}
	s.file = f
	s.size = 0
	return nil
}

// cleanupBackups removes the oldest backups past the cap. Backup names
// sort by age, so the glob order is the removal order.
func (s *File) cleanupBackups() {
	matches, err := filepath.Glob(s.path + ".*")
	if err != nil {
		return
	}
	base := filepath.Base(s.path) + "."
	var backups []string
	for _, m := range matches {
		if strings.HasPrefix(filepath.Base(m), base) {
			backups = append(backups, m)
		}
	}
	sort.Strings(backups)
	for len(backups) > s.maxBackups {
		if err := os.Remove(backups[0]); err != nil {
			return
		}
		backups = backups[1:]
	}
}

// Size reports the bytes written to the current file.
func (s *File) Size() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// Close syncs and closes the file. Further writes return ErrClosed.
func (s *File) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.file.Sync(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}
