package ticket

import "sync"

// keyedLocks serializes claim handling per card so two activations on
// the same card cannot interleave between the claimed-state check and
// channel creation.
type keyedLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{m: make(map[string]*sync.Mutex)}
}

// acquire locks the mutex for key and returns its unlock func.
func (k *keyedLocks) acquire(key string) func() {
	k.mu.Lock()
	l, ok := k.m[key]
	if !ok {
		l = &sync.Mutex{}
		k.m[key] = l
	}
	k.mu.Unlock()
	l.Lock()
	return l.Unlock
}
