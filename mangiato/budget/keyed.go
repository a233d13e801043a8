package budget

import (
	"sort"
	"sync"
)

// KeyedMutex hands out one read-write mutex per key. Entries are dropped
// once no holder or waiter remains.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	mu   sync.RWMutex
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyedEntry)}
}

// Lock blocks until key is free and returns its unlock function.
func (k *KeyedMutex) Lock(key string) func() {
	e := k.acquire(key)
	e.mu.Lock()
	return k.releaser(key, e, e.mu.Unlock)
}

// RLock blocks until no exclusive holder has key. Any number of shared
// holders may hold it together.
func (k *KeyedMutex) RLock(key string) func() {
	e := k.acquire(key)
	e.mu.RLock()
	return k.releaser(key, e, e.mu.RUnlock)
}

func (k *KeyedMutex) acquire(key string) *keyedEntry {
	k.mu.Lock()
	defer k.mu.Unlock()
	e, ok := k.locks[key]
	if !ok {
		e = &keyedEntry{}
		k.locks[key] = e
	}
	e.refs++
	return e
}

func (k *KeyedMutex) releaser(key string, e *keyedEntry, unlock func()) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			unlock()
			k.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(k.locks, key)
			}
			k.mu.Unlock()
		})
	}
}

// LockAll locks every distinct key in sorted order, so two callers asking
// for the same pair cannot deadlock.
func (k *KeyedMutex) LockAll(keys ...string) func() {
	uniq := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		uniq = append(uniq, key)
	}
	sort.Strings(uniq)

	unlocks := make([]func(), 0, len(uniq))
	for _, key := range uniq {
		unlocks = append(unlocks, k.Lock(key))
	}
	return func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
}

func (k *KeyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
