package store

import (
	"github.com/gofrs/flock"

	"usajobs-list/internal/common"
)

// Lock takes an exclusive, non-blocking lock on <path>.lock for the length
// of a run. The returned func releases it. The lock file is left in place;
// removing it races with a concurrent opener.
func Lock(path string) (func() error, error) {
	lockPath := path + ".lock"
	fl := flock.New(lockPath)

	ok, err := fl.TryLock()
	if err != nil {
		return nil, common.FSError("lock "+lockPath, err)
	}
	if !ok {
		return nil, common.FSError(lockPath, common.ErrLocked)
	}

	return func() error {
		if err := fl.Unlock(); err != nil {
			return common.FSError("unlock "+lockPath, err)
		}
		return nil
	}, nil
}
