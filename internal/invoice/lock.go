package invoice

import (
	"context"
	"errors"
	"sync"
)

// ErrLocked is returned by a Locker when the key is already held.
var ErrLocked = errors.New("lock already held")

// Locker provides non-blocking mutual exclusion per key.
type Locker interface {
	// Lock acquires key or fails with ErrLocked. The returned func releases it.
	Lock(ctx context.Context, key string) (func(), error)
}

// MutexLocker is an in-process Locker.
type MutexLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewMutexLocker creates an in-process locker.
func NewMutexLocker() *MutexLocker {
	return &MutexLocker{held: make(map[string]struct{})}
}

// Lock implements Locker.
func (l *MutexLocker) Lock(ctx context.Context, key string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[key]; ok {
		return nil, ErrLocked
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, nil
}
