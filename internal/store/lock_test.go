package store

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
)

func readLockPID(t *testing.T, lockPath string) int {
	t.Helper()
	data, err := os.ReadFile(lockPath)
	if err != nil {
		t.Fatalf("failed to read lock file: %v", err)
	}
	pid, err := strconv.Atoi(string(data))
	if err != nil {
		t.Fatalf("failed to parse PID from lock file: %v", err)
	}
	return pid
}

func TestLock_Acquire_Success(t *testing.T) {
	tmpDir := t.TempDir()

	lock := NewLock(tmpDir)
	if err := lock.Acquire(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pid := readLockPID(t, filepath.Join(tmpDir, lockFileName)); pid != os.Getpid() {
		t.Errorf("lock file PID mismatch: got %d, want %d", pid, os.Getpid())
	}
}

func TestLock_Acquire_AlreadyLocked(t *testing.T) {
	tmpDir := t.TempDir()

	// Our own PID stands in for another live process.
	lockPath := filepath.Join(tmpDir, lockFileName)
	if err := os.WriteFile(lockPath, []byte(strconv.Itoa(os.Getpid())), 0644); err != nil {
		t.Fatalf("failed to create lock file: %v", err)
	}

	err := NewLock(tmpDir).Acquire()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, ErrPlanLocked) {
		t.Errorf("expected ErrPlanLocked, got %v", err)
	}
}

func TestLock_Acquire_StaleLock(t *testing.T) {
	tmpDir := t.TempDir()

	// PID 99999999 is unlikely to exist
	lockPath := filepath.Join(tmpDir, lockFileName)
	if err := os.WriteFile(lockPath, []byte("99999999"), 0644); err != nil {
		t.Fatalf("failed to create lock file: %v", err)
	}

	if err := NewLock(tmpDir).Acquire(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pid := readLockPID(t, lockPath); pid != os.Getpid() {
		t.Errorf("lock file PID mismatch: got %d, want %d", pid, os.Getpid())
	}
}

func TestLock_Acquire_InvalidLockFile(t *testing.T) {
	tmpDir := t.TempDir()

	lockPath := filepath.Join(tmpDir, lockFileName)
	if err := os.WriteFile(lockPath, []byte("not-a-pid"), 0644); err != nil {
		t.Fatalf("failed to create lock file: %v", err)
	}

	if err := NewLock(tmpDir).Acquire(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pid := readLockPID(t, lockPath); pid != os.Getpid() {
		t.Errorf("lock file PID mismatch: got %d, want %d", pid, os.Getpid())
	}
}

func TestLock_Acquire_RaceCondition(t *testing.T) {
	tmpDir := t.TempDir()

	const numGoroutines = 10
	var wg sync.WaitGroup
	var successCount atomic.Int32

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := NewLock(tmpDir).Acquire(); err == nil {
				successCount.Add(1)
			}
		}()
	}

	wg.Wait()

	if count := successCount.Load(); count != 1 {
		t.Errorf("expected exactly 1 successful acquire, got %d", count)
	}
}

func TestLock_ReleaseAndReacquire(t *testing.T) {
	tmpDir := t.TempDir()
	lock := NewLock(tmpDir)

	if err := lock.Release(); err != nil {
		t.Errorf("unexpected error when releasing unheld lock: %v", err)
	}
	if err := lock.Acquire(); err != nil {
		t.Fatalf("failed to acquire lock: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("failed to release lock: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, lockFileName)); !os.IsNotExist(err) {
		t.Error("lock file should be removed after release")
	}
	if err := lock.Acquire(); err != nil {
		t.Fatalf("failed to re-acquire lock after release: %v", err)
	}
}

func TestLock_Do(t *testing.T) {
	tmpDir := t.TempDir()
	lock := NewLock(tmpDir)

	ran := false
	err := lock.Do(func() error {
		ran = true
		locked, err := lock.IsLocked()
		if err != nil {
			return err
		}
		if !locked {
			t.Error("expected lock to be held inside Do")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ran {
		t.Fatal("expected fn to run")
	}

	locked, err := lock.IsLocked()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if locked {
		t.Error("expected lock to be released after Do")
	}

	wantErr := errors.New("boom")
	if err := lock.Do(func() error { return wantErr }); !errors.Is(err, wantErr) {
		t.Errorf("expected fn error to propagate, got %v", err)
	}
}

func TestLock_IsLocked_StaleFileRemoved(t *testing.T) {
	tmpDir := t.TempDir()
	lockPath := filepath.Join(tmpDir, lockFileName)
	if err := os.WriteFile(lockPath, []byte("99999999"), 0644); err != nil {
		t.Fatalf("failed to create lock file: %v", err)
	}

	locked, err := NewLock(tmpDir).IsLocked()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if locked {
		t.Error("stale lock should not be reported as held")
	}
	if _, err := os.Stat(lockPath); !os.IsNotExist(err) {
		t.Error("stale lock file should be removed")
	}
}
