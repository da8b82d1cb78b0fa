// Package state defines the world-state façade the processor drives
// (spec.md §4.1 "World-state façade") and a reference in-memory
// implementation used by tests and the CLI demo. The persistent
// Merkle-Patricia trie and its caches are explicitly out of scope
// (spec.md §1): production callers are expected to supply their own
// WorldState backed by a real trie store; this package only fixes the
// narrow mutation contract the branch driver and per-block pipeline
// consume.
package state

import (
	"github.com/holiman/uint256"

	"github.com/chainproc/chainproc/common"
	"github.com/chainproc/chainproc/params"
)

// Root is a state-root fingerprint: a checkpoint sufficient to restore
// world state (spec.md §3, "Checkpoint").
type Root = common.Hash

// StateTracer observes balance mutations committed under Commit, used by
// the reward applier when the caller's tracer opts into state tracing
// (spec.md §4.3).
type StateTracer interface {
	OnBalanceChange(addr common.Address, previous, current *uint256.Int)
}

// WorldState is the narrow mutation interface the branch driver and
// per-block pipeline consume (spec.md §6). Implementations are exclusively
// driven by one goroutine for the duration of Process — no concurrent
// external mutator is permitted (spec.md §3 "Ownership").
type WorldState interface {
	// StateRoot returns the current state-root fingerprint.
	StateRoot() Root

	// SetStateRoot restores world state to a previously observed root,
	// per the invariant that doing so is behaviorally equivalent to
	// before any subsequent mutation (spec.md §3 invariant b). Returns an
	// error satisfying errs.StateFailureError if root was never observed.
	SetStateRoot(root Root) error

	// Reset discards any uncommitted mutations made since the last
	// Commit, without changing which root is "current".
	Reset()

	// Commit finalizes pending account mutations under spec's rules.
	// Commits are idempotent within a block (spec.md §3 invariant c).
	Commit(spec *params.Spec) error

	// CommitWithTracer is Commit, additionally notifying tracer of every
	// balance change it finalizes (spec.md §4.3's reward-tracing path).
	CommitWithTracer(spec *params.Spec, tracer StateTracer) error

	// CommitTree persists the current trie at blockNumber. For the
	// in-memory reference implementation this is a bookkeeping no-op;
	// real implementations flush to their backing store here
	// (spec.md §4.1 step "Pre-commit").
	CommitTree(blockNumber uint64) error

	// RecalculateStateRoot recomputes and returns the root fingerprint
	// for the current committed account set, recording it as a
	// restorable checkpoint.
	RecalculateStateRoot() (Root, error)

	AccountExists(addr common.Address) bool
	CreateAccount(addr common.Address, value *uint256.Int)
	AddToBalance(addr common.Address, value *uint256.Int, spec *params.Spec) error
	SubtractFromBalance(addr common.Address, value *uint256.Int, spec *params.Spec) error
	GetBalance(addr common.Address) *uint256.Int
}
