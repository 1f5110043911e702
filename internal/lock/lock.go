package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// FileName is the name of the lock file inside a profile directory.
const FileName = "LOCK"

// LockHeldError is returned when another process is already driving the
// profile, typically a running blessing TUI.
type LockHeldError struct {
	PID  int
	Path string
}

func (e *LockHeldError) Error() string {
	if e.PID == 0 {
		return fmt.Sprintf("profile is in use by another process (%s)", e.Path)
	}
	return fmt.Sprintf("profile is in use by PID %d (%s)", e.PID, e.Path)
}

// Lock is an acquired exclusive profile lock.
type Lock struct {
	file *os.File
	path string
}

// Acquire takes an exclusive, non-blocking flock on dir/LOCK.
// Returns *LockHeldError if another process already holds it.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create profile dir: %w", err)
	}

	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		data, _ := os.ReadFile(path)
		_ = f.Close()
		return nil, &LockHeldError{PID: parsePID(string(data)), Path: path}
	}

	if err := writeOwner(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write lock owner: %w", err)
	}
	return &Lock{file: f, path: path}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release drops the lock. Safe to call on a nil receiver and more than once.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	_ = os.Remove(l.path)
	err := l.file.Close()
	l.file = nil
	return err
}

func writeOwner(f *os.File) error {
	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.Seek(0, 0); err != nil {
		return err
	}
	_, err := fmt.Fprintf(f, "pid=%d\ntime=%s\n", os.Getpid(), time.Now().UTC().Format(time.RFC3339))
	return err
}

func parsePID(content string) int {
	for _, line := range strings.Split(content, "\n") {
		if after, ok := strings.CutPrefix(line, "pid="); ok {
			pid, _ := strconv.Atoi(strings.TrimSpace(after))
			return pid
		}
	}
	return 0
}
