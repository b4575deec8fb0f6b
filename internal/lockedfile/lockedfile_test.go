package lockedfile

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockBlocksSecondHolder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", ".vkbuild.lock")

	unlock, err := MutexAt(path).Lock()
	require.NoError(t, err)

	acquired := make(chan func())
	go func() {
		unlock2, err := MutexAt(path).Lock()
		if err != nil {
			t.Error(err)
			close(acquired)
			return
		}
		acquired <- unlock2
	}()

	select {
	case <-acquired:
		t.Fatal("second Lock returned while the first holder still has the mutex")
	case <-time.After(100 * time.Millisecond):
	}

	unlock()
	select {
	case unlock2, ok := <-acquired:
		require.True(t, ok)
		unlock2()
	case <-time.After(5 * time.Second):
		t.Fatal("second Lock did not return after unlock")
	}
}

func TestTryLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".vkbuild.lock")
	mu := MutexAt(path)

	unlock, ok, err := mu.TryLock()
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = MutexAt(path).TryLock()
	require.NoError(t, err)
	assert.False(t, ok)

	unlock()
	unlock2, ok, err := MutexAt(path).TryLock()
	require.NoError(t, err)
	assert.True(t, ok)
	unlock2()
}

func TestLockCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "lock")
	unlock, err := MutexAt(path).Lock()
	require.NoError(t, err)
	unlock()
	assert.FileExists(t, path)
}
