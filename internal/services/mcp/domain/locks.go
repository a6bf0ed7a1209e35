package domain

import (
	"context"
	"sync"
)

// KeyedMutex serializes work per key. Keys nobody holds are forgotten.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	sem  chan struct{}
	refs int
}

// NewKeyedMutex creates an empty keyed mutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyedLock)}
}

// Lock blocks until key is free or ctx ends. The returned function releases
// the key and must be called exactly once. A nil KeyedMutex never blocks.
func (k *KeyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	if k == nil {
		return func() {}, nil
	}
	k.mu.Lock()
	lock, ok := k.locks[key]
	if !ok {
		lock = &keyedLock{sem: make(chan struct{}, 1)}
		k.locks[key] = lock
	}
	lock.refs++
	k.mu.Unlock()

	select {
	case lock.sem <- struct{}{}:
		return func() {
			<-lock.sem
			k.release(key, lock)
		}, nil
	case <-ctx.Done():
		k.release(key, lock)
		return nil, ctx.Err()
	}
}

func (k *KeyedMutex) release(key string, lock *keyedLock) {
	k.mu.Lock()
	defer k.mu.Unlock()
	lock.refs--
	if lock.refs == 0 {
		delete(k.locks, key)
	}
}

