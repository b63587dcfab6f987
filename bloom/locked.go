package bloom

import "sync"

// Locked guards a Filter with a read/write mutex so it can be shared between
// goroutines. Inserts take the write lock; queries take the read lock.
type Locked struct {
	mu sync.RWMutex
	f  *Filter
}

// NewLocked takes ownership of f. The caller must not use f directly
// afterwards.
func NewLocked(f *Filter) *Locked {
	return &Locked{f: f}
}

func (l *Locked) Insert(elem []byte) {
	l.mu.Lock()
	l.f.Insert(elem)
	l.mu.Unlock()
}

func (l *Locked) InsertAll(elems [][]byte) {
	if len(elems) == 0 {
		return
	}
	l.mu.Lock()
	l.f.InsertAll(elems)
	l.mu.Unlock()
}

// TestAndInsert is atomic with respect to other Locked operations.
func (l *Locked) TestAndInsert(elem []byte) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.TestAndInsert(elem)
}

func (l *Locked) Contains(elem []byte) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.f.Contains(elem)
}

func (l *Locked) ContainsAll(elems [][]byte) []bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.f.ContainsAll(elems)
}

func (l *Locked) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.f.Stats()
}

// MarshalBinary encodes the filter under the read lock.
func (l *Locked) MarshalBinary() ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.f.MarshalBinary()
}

// Snapshot returns a deep copy of the guarded filter.
func (l *Locked) Snapshot() *Filter {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.f.Clone()
}
