// Package keylock provides mutual exclusion keyed by string. Keys are
// hashed onto a fixed set of stripes, so operations on the same key always
// serialize while operations on different keys rarely contend and never
// take a global lock.
package keylock

import (
	"hash/fnv"
	"sync"
)

// DefaultStripes is the stripe count used by New when given a
// non-positive value.
const DefaultStripes = 64

// KeyLock is a striped set of mutexes addressed by string key.
// The zero value is not usable; use New.
type KeyLock struct {
	stripes []sync.Mutex
}

// New creates a KeyLock with the given number of stripes.
func New(stripes int) *KeyLock {
	if stripes <= 0 {
		stripes = DefaultStripes
	}
	return &KeyLock{stripes: make([]sync.Mutex, stripes)}
}

// Lock acquires the mutex owning key. It blocks until the stripe is free.
func (l *KeyLock) Lock(key string) {
	l.stripes[l.index(key)].Lock()
}

// Unlock releases the mutex owning key. It must pair with a prior Lock
// for the same key.
func (l *KeyLock) Unlock(key string) {
	l.stripes[l.index(key)].Unlock()
}

// Do runs fn while holding the lock for key.
func (l *KeyLock) Do(key string, fn func()) {
	l.Lock(key)
	defer l.Unlock(key)
	fn()
}

func (l *KeyLock) index(key string) int {
	h := fnv.New32a()
	h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(l.stripes)))
}
