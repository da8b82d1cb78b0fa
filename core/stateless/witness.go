// Package stateless implements the witness collector (spec.md §9): the set
// of state keys touched while processing a block, preserved for later
// proofs. It is grounded on go-ethereum's core/stateless package (see
// core/stateless_test.go's ExecuteStateless/stateless.Witness), trimmed to
// address-level tracking since the full verkle/binary-trie proof encoding
// that package carries is out of this module's scope (SPEC_FULL.md §11).
package stateless

import (
	"sort"
	"sync"

	"github.com/chainproc/chainproc/common"
)

// Witness is the set of account addresses touched while processing one
// block.
type Witness struct {
	mu      sync.Mutex
	touched map[common.Address]struct{}
}

// New returns an empty witness.
func New() *Witness {
	return &Witness{touched: make(map[common.Address]struct{})}
}

// Touch records addr as having been read or written.
func (w *Witness) Touch(addr common.Address) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touched[addr] = struct{}{}
}

// Reset clears the witness for reuse on the next block (spec.md §4.1 step
// "Reset the witness collector").
func (w *Witness) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touched = make(map[common.Address]struct{})
}

// Addresses returns the touched addresses in a stable, sorted order.
func (w *Witness) Addresses() []common.Address {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]common.Address, 0, len(w.touched))
	for addr := range w.touched {
		out = append(out, addr)
	}
	sort.Slice(out, func(i, j int) bool {
		for k := 0; k < common.AddressLength; k++ {
			if out[i][k] != out[j][k] {
				return out[i][k] < out[j][k]
			}
		}
		return false
	})
	return out
}

// Len reports how many distinct addresses have been touched.
func (w *Witness) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.touched)
}
