package catalog

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the catalog lock.
var ErrLocked = errors.New("catalog is locked by another process")

// Lock is an exclusive advisory lock on a catalog database.
type Lock struct {
	lock *flock.Flock
}

// LockPath returns the sidecar lock file used for dbPath.
func LockPath(dbPath string) string {
	return dbPath + ".lock"
}

// AcquireLock takes the writer lock for dbPath without blocking.
func AcquireLock(dbPath string) (*Lock, error) {
	l := flock.New(LockPath(dbPath))
	ok, err := l.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire catalog lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return &Lock{lock: l}, nil
}

// Release drops the lock. It is safe to call on a nil Lock.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release catalog lock: %w", err)
	}
	return nil
}
