// Package lockedfile provides an advisory, inter-process mutex backed by a
// lock file. It guards a build output directory against concurrent vkbuild
// invocations.
package lockedfile

import (
	"os"
	"path/filepath"
)

// A Mutex is held by locking the file at Path. The file itself is never
// removed; its existence means nothing.
type Mutex struct {
	Path string
}

// MutexAt returns a mutex that locks the file at path.
func MutexAt(path string) *Mutex {
	return &Mutex{Path: path}
}

// Lock blocks until the mutex is held and returns the function releasing it.
func (mu *Mutex) Lock() (unlock func(), err error) {
	f, err := mu.open()
	if err != nil {
		return nil, err
	}
	if err := lockFile(f); err != nil {
		f.Close()
		return nil, &os.PathError{Op: "lock", Path: mu.Path, Err: err}
	}
	return release(f), nil
}

// TryLock is like Lock but reports ok=false instead of waiting when
// another process holds the mutex.
func (mu *Mutex) TryLock() (unlock func(), ok bool, err error) {
	f, err := mu.open()
	if err != nil {
		return nil, false, err
	}
	ok, err = tryLockFile(f)
	if err != nil || !ok {
		f.Close()
		if err != nil {
			err = &os.PathError{Op: "lock", Path: mu.Path, Err: err}
		}
		return nil, false, err
	}
	return release(f), true, nil
}

func (mu *Mutex) open() (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(mu.Path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(mu.Path, os.O_RDWR|os.O_CREATE, 0o666)
}

func release(f *os.File) func() {
	return func() {
		_ = unlockFile(f)
		f.Close()
	}
}
