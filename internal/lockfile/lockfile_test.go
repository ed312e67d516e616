package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLockfile_AcquireRelease(t *testing.T) {
	lock := New(filepath.Join(t.TempDir(), "test.lock"))

	if err := lock.TryAcquire(); err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}
	if !lock.Locked() {
		t.Error("Lock should be locked")
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Failed to release lock: %v", err)
	}
	if lock.Locked() {
		t.Error("Lock should not be locked after release")
	}
	if _, err := os.Stat(lock.Path()); !os.IsNotExist(err) {
		t.Errorf("Lockfile should be removed, stat: %v", err)
	}
	if err := lock.TryAcquire(); err != nil {
		t.Fatalf("Failed to reacquire lock: %v", err)
	}
	lock.Release()
}

func TestLockfile_ForSheet(t *testing.T) {
	dir := t.TempDir()
	lock, err := ForSheet(filepath.Join(dir, "budget.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, ".budget.csv.xl-lock"); lock.Path() != want {
		t.Errorf("Path() = %q, want %q", lock.Path(), want)
	}
}

func TestLockfile_HeldByLiveProcess(t *testing.T) {
	sheet := filepath.Join(t.TempDir(), "s.csv")
	lock, err := ForSheet(sheet)
	if err != nil {
		t.Fatal(err)
	}

	// The parent process stands in for another running xl.
	content := fmt.Sprintf("%d\n%s\n", os.Getppid(), time.Now().Format(time.RFC3339))
	if err := os.WriteFile(lock.Path(), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err = lock.TryAcquire()
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("Expected ErrLocked, got: %v", err)
	}
	var locked *LockedError
	if !errors.As(err, &locked) || locked.PID != os.Getppid() {
		t.Fatalf("Expected LockedError for pid %d, got: %v", os.Getppid(), err)
	}
	if lock.Locked() {
		t.Error("Lock should not be held")
	}
}

func TestLockfile_Stale(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")
	for _, content := range []string{"garbage\n", fmt.Sprintf("%d\n", 1<<30)} {
		if err := os.WriteFile(lockPath, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		lock := New(lockPath)
		if err := lock.TryAcquire(); err != nil {
			t.Fatalf("Failed to take over stale lock %q: %v", content, err)
		}
		lock.Release()
	}
}

func TestLockfile_ReleaseNotLocked(t *testing.T) {
	lock := New(filepath.Join(t.TempDir(), "test.lock"))
	if err := lock.Release(); err != nil {
		t.Errorf("Expected no error when releasing unlocked lock, got: %v", err)
	}
}
