package corpus

import "sync"

// Budget is the shared size guard all producers reserve against. It is the
// only state producers mutate concurrently.
type Budget struct {
	mu      sync.Mutex
	target  int64
	current int64
}

func NewBudget(target int64) *Budget {
	return &Budget{target: target}
}

// TryReserve admits n bytes if the running total would stay strictly below
// the target. A rejected reservation leaves the total unchanged.
func (b *Budget) TryReserve(n int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current+n >= b.target {
		return false
	}
	b.current += n
	return true
}

// Reserved returns the number of bytes admitted so far.
func (b *Budget) Reserved() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

func (b *Budget) Target() int64 {
	return b.target
}
