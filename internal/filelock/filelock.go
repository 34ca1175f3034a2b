// Package filelock serializes writers of a shared output file across
// processes and replaces the file atomically.
package filelock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// retryDelay is how often a blocked Acquire polls the lock.
const retryDelay = 25 * time.Millisecond

// Locker guards a target file through a sibling "<target>.lock" file.
type Locker struct {
	flock  *flock.Flock
	target string
}

// For returns a Locker for target. Nothing is created until Acquire.
func For(target string) *Locker {
	return &Locker{
		flock:  flock.New(target + ".lock"),
		target: target,
	}
}

// LockPath returns the path of the lock file.
func (l *Locker) LockPath() string {
	return l.flock.Path()
}

// Acquire takes the exclusive lock, waiting until it is free or ctx is done.
func (l *Locker) Acquire(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(l.target), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", l.target, err)
	}

	locked, err := l.flock.TryLockContext(ctx, retryDelay)
	if err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", l.target, err)
	}
	if !locked {
		return fmt.Errorf("failed to acquire lock on %s", l.target)
	}
	return nil
}

// TryAcquire takes the lock without waiting. It reports false when another
// holder has it.
func (l *Locker) TryAcquire() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(l.target), 0755); err != nil {
		return false, fmt.Errorf("failed to create directory for %s: %w", l.target, err)
	}

	locked, err := l.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", l.target, err)
	}
	return locked, nil
}

// Release drops the lock.
func (l *Locker) Release() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", l.target, err)
	}
	return nil
}

// WriteAtomic replaces path with data through a temp file in the same
// directory and a rename, so readers see the old or the new file, never a
// partial one.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	committed = true
	return nil
}

// Write holds the lock for path while replacing it atomically.
func Write(ctx context.Context, path string, data []byte) error {
	l := For(path)
	if err := l.Acquire(ctx); err != nil {
		return err
	}
	defer l.Release()

	return WriteAtomic(path, data)
}
