package queue

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/vidqueue/vidqueue/constant"
)

// ErrLocked means another run owns the working directory.
var ErrLocked = errors.New("working directory is used by another run")

// Lock takes an exclusive lock on dir. The returned function releases it.
func Lock(dir string) (unlock func() error, err error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, constant.LockFile)
	lock := flock.New(path)

	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}

	return lock.Unlock, nil
}
