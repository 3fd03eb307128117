package filelock

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/renato0307/cardwatch/internal/logging"
	"github.com/renato0307/cardwatch/internal/ports"
)

// Lock is an exclusive advisory lock on a file, shared by every cardwatch
// process that points at the same home directory
type Lock struct {
	file *os.File
	mu   sync.Mutex
	path string
}

var _ ports.Locker = (*Lock)(nil)

// New creates a Lock for path. The file is created on first Lock.
func New(path string) *Lock {
	return &Lock{path: path}
}

// Path returns the lock file path
func (l *Lock) Path() string {
	return l.path
}

// Lock blocks until the lock is held
func (l *Lock) Lock() error {
	l.mu.Lock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		l.mu.Unlock()
		return fmt.Errorf("failed to create lock directory: %w", err)
	}

	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		l.mu.Unlock()
		return fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := lockFile(file); err != nil {
		file.Close()
		l.mu.Unlock()
		return fmt.Errorf("failed to lock %s: %w", l.path, err)
	}

	logging.Logger.Debug("Acquired file lock", "path", l.path)
	l.file = file
	return nil
}

// Unlock releases a lock taken by Lock
func (l *Lock) Unlock() error {
	if l.file == nil {
		return fmt.Errorf("lock %s is not held", l.path)
	}
	defer l.mu.Unlock()

	file := l.file
	l.file = nil

	unlockErr := unlockFile(file)
	closeErr := file.Close()
	if unlockErr != nil {
		return fmt.Errorf("failed to unlock %s: %w", l.path, unlockErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close lock file: %w", closeErr)
	}

	logging.Logger.Debug("Released file lock", "path", l.path)
	return nil
}
