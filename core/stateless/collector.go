package stateless

import (
	"errors"
	"sync"

	"github.com/chainproc/chainproc/common"
)

// ErrAlreadyTracking is returned by TrackOnThisThread when a scope is
// already active. The branch driver's one-goroutine-at-a-time contract
// (spec.md §5) means this should never trigger in practice; it exists so a
// misuse is loud rather than silently corrupting a witness across blocks.
var ErrAlreadyTracking = errors.New("stateless: a witness scope is already active on this collector")

// PersistFunc writes a completed witness against the hash of the block it
// was collected for (spec.md §6, "Witness collector: persist(blockHash)").
type PersistFunc func(blockHash common.Hash, w *Witness) error

// Collector realizes the "thread-local witness-tracking scope" of
// spec.md §9 as a scoped resource acquisition bound to the driver
// goroutine: on entry it installs a per-call collector, and on every exit
// path — success or failure — the caller releases it. Go has no native
// thread-locals, so ownership is enforced with a simple exclusive latch
// rather than goroutine-keyed storage; the branch driver is the only
// caller and drives one witness scope at a time.
type Collector struct {
	mu      sync.Mutex
	active  bool
	witness *Witness
	persist PersistFunc
}

// NewCollector returns a Collector that writes completed witnesses via
// persist. persist may be nil, in which case Persist is a no-op (useful
// for ReadOnlyChain processing, spec.md §6's options table).
func NewCollector(persist PersistFunc) *Collector {
	return &Collector{witness: New(), persist: persist}
}

// Scope is the handle returned by TrackOnThisThread. Callers must call
// Release exactly once, on every exit path.
type Scope struct {
	c *Collector
}

// TrackOnThisThread acquires exclusive ownership of the collector for the
// scope's lifetime and resets its witness for a fresh block.
func (c *Collector) TrackOnThisThread() (*Scope, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active {
		return nil, ErrAlreadyTracking
	}
	c.active = true
	c.witness.Reset()
	return &Scope{c: c}, nil
}

// Touch records addr as touched in the active scope's witness.
func (s *Scope) Touch(addr common.Address) { s.c.witness.Touch(addr) }

// Witness exposes the scope's in-progress witness, e.g. for Persist.
func (s *Scope) Witness() *Witness { return s.c.witness }

// Release ends the scope, making the collector available for the next
// block. Safe to call from a defer on every exit path.
func (s *Scope) Release() {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	s.c.active = false
}

// Persist writes the scope's witness against blockHash. Tracing/persistence
// failures are swallowed per spec.md §7 — they never fail the block.
func (s *Scope) Persist(blockHash common.Hash) {
	if s.c.persist == nil {
		return
	}
	_ = s.c.persist(blockHash, s.c.witness)
}
