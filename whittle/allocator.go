package whittle

import (
	"fmt"
	"sync"
)

// Allocator is the storage source every node is drawn from.
// Allocate reserves room for one node and Release gives it back.
type Allocator interface {
	Allocate() error
	Release()
}

type unbounded struct{}

func (unbounded) Allocate() error { return nil }
func (unbounded) Release()        {}

// Unbounded returns an allocator that never refuses.
func Unbounded() Allocator {
	return unbounded{}
}

// Limited refuses allocations once Max nodes are live.
type Limited struct {
	Max  int
	live int
	mu   sync.Mutex
}

func NewLimited(maxLive int) *Limited {
	return &Limited{Max: maxLive}
}

func (limited *Limited) Allocate() error {
	limited.mu.Lock()
	defer limited.mu.Unlock()
	if limited.live >= limited.Max {
		return fmt.Errorf("limit of %v live nodes reached", limited.Max)
	}
	limited.live++
	return nil
}

func (limited *Limited) Release() {
	limited.mu.Lock()
	defer limited.mu.Unlock()
	if limited.live > 0 {
		limited.live--
	}
}

// Live reports how many nodes are currently allocated.
func (limited *Limited) Live() int {
	limited.mu.Lock()
	defer limited.mu.Unlock()
	return limited.live
}
