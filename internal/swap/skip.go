package swap

import "sync"

// SkipTracker remembers the lowest block of a chain cycle whose receipt could
// not be loaded, so the next cycle can resume there. Blocks older than
// maxAge relative to head are not tracked and the cursor may move past them.
// It is safe for concurrent use.
type SkipTracker struct {
	mu        sync.Mutex
	head      int64
	headKnown bool
	maxAge    int64
	lowest    *int64
}

// NewSkipTracker tracks against head. With an unknown head every block is
// tracked: re-reading a block is harmless, losing one is not.
func NewSkipTracker(head int64, headKnown bool, maxAge int64) *SkipTracker {
	if maxAge <= 0 {
		maxAge = DefaultMaxSkipAgeBlocks
	}
	return &SkipTracker{head: head, headKnown: headKnown, maxAge: maxAge}
}

// Track records block and reports whether it is young enough to retry.
func (t *SkipTracker) Track(block int64) bool {
	if t.headKnown && t.head-block > t.maxAge {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.lowest == nil || block < *t.lowest {
		b := block
		t.lowest = &b
	}
	return true
}

// Lowest returns the lowest tracked block, or nil.
func (t *SkipTracker) Lowest() *int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.lowest == nil {
		return nil
	}
	b := *t.lowest
	return &b
}
