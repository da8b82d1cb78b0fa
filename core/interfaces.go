package core

import (
	"github.com/holiman/uint256"

	"github.com/chainproc/chainproc/common"
	"github.com/chainproc/chainproc/core/stateless"
	"github.com/chainproc/chainproc/core/types"
	"github.com/chainproc/chainproc/event"
	"github.com/chainproc/chainproc/params"
)

// SpecProvider resolves the active rule set for a header and exposes the
// chain-wide constants the core needs outside of any one block (spec.md
// §6 "Spec provider").
type SpecProvider interface {
	GetSpec(header *types.Header) *params.Spec
	DAOActivationHeight() (height uint64, ok bool)
	GenesisStateUnavailable() bool
}

// Executor runs a block's transactions against world state and returns
// their receipts in transaction order (spec.md §6 "Transactions
// executor"). It is an external collaborator; its internals (gas
// accounting, EVM dispatch, signature recovery) are out of this module's
// scope (spec.md §1). It forwards one TransactionProcessedEvent to events
// per transaction as it executes, in transaction order (spec.md §6
// "transaction-processed(...)", §8.4).
type Executor interface {
	ProcessTransactions(block *types.Block, options ProcessingOptions, tracer ReceiptsTracer, spec *params.Spec, events *event.Feed[TransactionProcessedEvent]) (types.Receipts, error)
}

// Validator checks a processed block against its suggested counterpart
// (spec.md §6 "Block validator", §4.4).
type Validator interface {
	ValidateProcessedBlock(processed *types.Block, receipts types.Receipts, suggested *types.Block) bool
}

// Reward is one recipient credit the reward calculator produces: an
// address, a human-readable kind ("block", "uncle", ...), and a value.
type Reward struct {
	Address common.Address
	Kind    string
	Value   *uint256.Int
}

// RewardCalculator computes the per-recipient block rewards for a block
// (spec.md §6 "Reward calculator").
type RewardCalculator interface {
	CalculateRewards(block *types.Block) ([]Reward, error)
}

// ReceiptsRootCalculator computes a block's receipts root from its
// receipts, optionally deferring to a suggested value when legally
// derivable (spec.md §4.2 step 8, §6).
type ReceiptsRootCalculator interface {
	ReceiptsRoot(receipts types.Receipts, suggested *types.Block, spec *params.Spec) common.Hash
}

// ReceiptStorage is the write-only persistence sink for receipts (spec.md
// §6 "Receipt storage").
type ReceiptStorage interface {
	Insert(block *types.Block, receipts types.Receipts, isCanonical bool) error
}

// ReceiptsTracer is the single long-lived tracing sink the per-block
// pipeline binds a caller's sub-tracer into (spec.md §4.1 component 3).
// The caller-supplied Tracer is bound into it per block; TracesRewards/
// TracesState report whether that tracer opted into those event classes
// (spec.md §4.3), and StateTracer returns its balance-change sub-tracer.
type ReceiptsTracer interface {
	StartBlock(header *types.Header)
	EndBlock()
	TracesRewards() bool
	TracesState() bool
	StateTracer() StateTracerNotifiee
	StartReward(r Reward)
	EndReward()
}

// StateTracerNotifiee is the subset of state.StateTracer the reward
// applier forwards to when ReceiptsTracer.TracesState reports true.
type StateTracerNotifiee interface {
	OnBalanceChange(addr common.Address, previous, current *uint256.Int)
}

// BranchEventObserver is implemented by callers who want branch/block
// lifecycle notifications without subscribing through the typed Feeds
// directly (a convenience composite used by Processor.Observe; Processor
// also exposes the Feeds themselves for ad hoc subscription).
type BranchEventObserver interface {
	OnBranchStarting(blocks []*types.Block) error
	OnBlockProcessed(processed *types.Block, receipts types.Receipts) error
}

// witnessTarget names the one method the per-block pipeline calls on the
// *stateless.Scope it is handed (Touch); the assertion below checks that
// stateless.Scope provides it.
type witnessTarget interface {
	Touch(addr common.Address)
}

var _ witnessTarget = (*stateless.Scope)(nil)
