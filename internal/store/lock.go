package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

const lockFileName = "plan.lock"

// ErrPlanLocked is returned when another live process holds a plan's lock.
var ErrPlanLocked = errors.New("plan is locked by another process")

// Lock serialises writers of a single plan folder. It is a pid file
// created with O_EXCL; locks left behind by dead processes are removed.
type Lock struct {
	path string
}

// NewLock creates a lock manager for the given plan directory.
func NewLock(planDir string) *Lock {
	return &Lock{
		path: filepath.Join(planDir, lockFileName),
	}
}

// Acquire takes the lock or returns an error wrapping ErrPlanLocked when
// a live process already holds it.
func (l *Lock) Acquire() error {
	err := l.create()
	if err == nil {
		return nil
	}
	if !os.IsExist(err) {
		return fmt.Errorf("failed to create lock file: %w", err)
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return fmt.Errorf("failed to read existing lock file: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		// Another writer created the file and has not written its pid yet.
		return fmt.Errorf("%w (lock is being taken)", ErrPlanLocked)
	}
	if pid, ok := parsePID(data); ok && processExists(pid) {
		return fmt.Errorf("%w (PID %d)", ErrPlanLocked, pid)
	}

	// Stale or unreadable lock: remove it and try exactly once more.
	if removeErr := os.Remove(l.path); removeErr != nil && !os.IsNotExist(removeErr) {
		return fmt.Errorf("failed to remove stale lock file: %w", removeErr)
	}
	if err := l.create(); err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w (acquired during retry)", ErrPlanLocked)
		}
		return fmt.Errorf("failed to create lock file on retry: %w", err)
	}
	return nil
}

// Release removes the lock file. Releasing an unheld lock is not an error.
func (l *Lock) Release() error {
	err := os.Remove(l.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

// Do runs fn while holding the lock.
func (l *Lock) Do(fn func() error) (err error) {
	if err := l.Acquire(); err != nil {
		return err
	}
	defer func() {
		if releaseErr := l.Release(); releaseErr != nil && err == nil {
			err = releaseErr
		}
	}()
	return fn()
}

// IsLocked reports whether a live process holds the lock. Stale lock
// files are cleaned up as a side effect.
func (l *Lock) IsLocked() (bool, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read existing lock file: %w", err)
	}
	if pid, ok := parsePID(data); ok && processExists(pid) {
		return true, nil
	}

	if removeErr := os.Remove(l.path); removeErr != nil && !os.IsNotExist(removeErr) {
		return false, fmt.Errorf("failed to remove stale lock file: %w", removeErr)
	}
	return false, nil
}

func (l *Lock) create() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	_, writeErr := fmt.Fprintf(f, "%d", os.Getpid())
	f.Close()
	if writeErr != nil {
		os.Remove(l.path)
		return fmt.Errorf("failed to write lock file: %w", writeErr)
	}
	return nil
}

func parsePID(data []byte) (int, bool) {
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false
	}
	return pid, true
}

// processExists checks if a process with the given PID is running.
// Uses kill with signal 0, which checks for process existence without sending a signal.
func processExists(pid int) bool {
	if pid == os.Getpid() {
		return true
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = process.Signal(syscall.Signal(0))
	return err == nil
}
