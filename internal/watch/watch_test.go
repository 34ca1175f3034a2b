package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := New(filepath.Join(dir, "missing.txt"), 0)
	assert.ErrorContains(t, err, "failed to access")

	_, err = New(dir, 0)
	assert.ErrorContains(t, err, "is a directory")
}

func TestRun_CallsOnStartAndOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.txt")
	require.NoError(t, os.WriteFile(path, []byte("first"), 0644))

	fw, err := New(path, 20*time.Millisecond)
	require.NoError(t, err)
	defer fw.Close()

	calls := make(chan struct{}, 10)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- fw.Run(ctx, func() { calls <- struct{}{} }, nil)
	}()

	waitCall(t, calls)

	require.NoError(t, os.WriteFile(path, []byte("second"), 0644))
	waitCall(t, calls)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_DebouncesBursts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.txt")
	require.NoError(t, os.WriteFile(path, []byte("0"), 0644))

	fw, err := New(path, 200*time.Millisecond)
	require.NoError(t, err)
	defer fw.Close()

	calls := make(chan struct{}, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go fw.Run(ctx, func() { calls <- struct{}{} }, nil)

	waitCall(t, calls)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte('a' + i)}, 0644))
		time.Sleep(10 * time.Millisecond)
	}

	waitCall(t, calls)
	select {
	case <-calls:
		t.Error("burst of writes should produce a single rescan")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestRelevant(t *testing.T) {
	fw := &FileWatcher{path: "/tmp/x/draft.txt"}

	assert.True(t, fw.relevant(fsnotify.Event{Name: "/tmp/x/draft.txt", Op: fsnotify.Write}))
	assert.True(t, fw.relevant(fsnotify.Event{Name: "/tmp/x/draft.txt", Op: fsnotify.Create}))
	assert.False(t, fw.relevant(fsnotify.Event{Name: "/tmp/x/draft.txt", Op: fsnotify.Chmod}))
	assert.False(t, fw.relevant(fsnotify.Event{Name: "/tmp/x/draft.txt", Op: fsnotify.Remove}))
	assert.False(t, fw.relevant(fsnotify.Event{Name: "/tmp/x/other.txt", Op: fsnotify.Write}))
}

func waitCall(t *testing.T, calls <-chan struct{}) {
	t.Helper()
	select {
	case <-calls:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for onChange")
	}
}
