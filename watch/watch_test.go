package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_RerunsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.tsv")
	require.NoError(t, os.WriteFile(path, []byte("a\tb\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runs := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- New(path).WithDebounce(20*time.Millisecond).Run(ctx, func(context.Context) error {
			runs <- struct{}{}
			return nil
		})
	}()

	waitRun(t, runs)

	// give the watcher time to register before writing
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("c\td\n"), 0o644))
	waitRun(t, runs)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.tsv")
	require.NoError(t, os.WriteFile(path, []byte("a\tb\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var count atomic.Int32
	go func() {
		_ = New(path).WithDebounce(10*time.Millisecond).Run(ctx, func(context.Context) error {
			count.Add(1)
			return nil
		})
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "out.tsv"), []byte("x\n"), 0o644))
	time.Sleep(150 * time.Millisecond)

	assert.Equal(t, int32(1), count.Load())
}

func TestWatcher_LogsErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.tsv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	logger, hook := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())

	err := New(path).WithLogger(logger).Run(ctx, func(context.Context) error {
		cancel()
		return errors.New("bad row")
	})

	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "bad row", hook.LastEntry().Data[logrus.ErrorKey].(error).Error())
}

func TestWatcher_PollChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.tsv")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := New(path).WithPollInterval(10 * time.Millisecond)
	ch := make(chan struct{}, 1)
	go w.pollChanges(ctx, ch)

	time.Sleep(30 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("expected change notification")
	}
}

func waitRun(t *testing.T, runs <-chan struct{}) {
	t.Helper()
	select {
	case <-runs:
	case <-time.After(3 * time.Second):
		t.Fatal("expected a run")
	}
}
