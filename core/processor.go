package core

import (
	"github.com/chainproc/chainproc/core/state"
	"github.com/chainproc/chainproc/core/stateless"
	"github.com/chainproc/chainproc/errs"
	"github.com/chainproc/chainproc/log"
	"github.com/chainproc/chainproc/metrics"
)

// Processor is the branch processor of spec.md §1: given a contiguous
// branch of suggested blocks and the state root at which the branch
// begins, it deterministically re-executes every block, producing
// receipts and consensus roots, validating each result, and committing
// state in a way that's safe to roll back on failure.
//
// Processor is NOT safe for concurrent Process calls: the world state it
// drives is a shared mutable resource exclusively owned by the processor
// for the duration of one Process call (spec.md §3 "Ownership").
type Processor struct {
	State state.WorldState

	Spec       SpecProvider
	Executor   Executor
	Validator  Validator
	Rewards    RewardCalculator
	ReceiptsRC ReceiptsRootCalculator
	Receipts   ReceiptStorage

	Beacon     *DefaultBeaconRootHandler
	Withdrawal *DefaultWithdrawalApplier
	DAO        *DAOApplier // nil if the chain never forked away from the DAO

	Witness     *stateless.Collector
	Precomputer *HashPrecomputer

	Log     log.Logger
	Metrics *metrics.Registry

	events *branchEvents
	sink   *receiptsSink
}

// NewProcessor wires together a Processor from its required collaborators.
// Every field named here must be non-nil; a nil collaborator is an
// InputDomainError, matching spec.md §7's InputDomain error kind.
func NewProcessor(
	ws state.WorldState,
	spec SpecProvider,
	executor Executor,
	validator Validator,
	rewards RewardCalculator,
	receiptsRC ReceiptsRootCalculator,
	receipts ReceiptStorage,
) (*Processor, error) {
	switch {
	case ws == nil:
		return nil, &errs.InputDomainError{Field: "State"}
	case spec == nil:
		return nil, &errs.InputDomainError{Field: "Spec"}
	case executor == nil:
		return nil, &errs.InputDomainError{Field: "Executor"}
	case validator == nil:
		return nil, &errs.InputDomainError{Field: "Validator"}
	case rewards == nil:
		return nil, &errs.InputDomainError{Field: "Rewards"}
	case receiptsRC == nil:
		return nil, &errs.InputDomainError{Field: "ReceiptsRC"}
	case receipts == nil:
		return nil, &errs.InputDomainError{Field: "Receipts"}
	}
	p := &Processor{
		State:       ws,
		Spec:        spec,
		Executor:    executor,
		Validator:   validator,
		Rewards:     rewards,
		ReceiptsRC:  receiptsRC,
		Receipts:    receipts,
		Beacon:      &DefaultBeaconRootHandler{State: ws},
		Withdrawal:  &DefaultWithdrawalApplier{State: ws},
		Witness:     stateless.NewCollector(nil),
		Precomputer: NewHashPrecomputer(4),
		Log:         log.Root(),
		Metrics:     metrics.NewRegistry(),
		events:      newBranchEvents(),
		sink:        newReceiptsSink(),
	}
	return p, nil
}

// BranchStarting returns the Feed notified with the full suggested block
// list before a branch begins processing (spec.md §6 events,
// "branch-starting(blocks)").
func (p *Processor) BranchStarting() *branchStartingFeed { return &p.events.branchStarting }

// BlockProcessed returns the Feed notified after each block that
// completes the pipeline, unless ReadOnlyChain is set (spec.md §6 events,
// "block-processed(block, receipts)").
func (p *Processor) BlockProcessed() *blockProcessedFeed { return &p.events.blockProcessed }

// TransactionProcessed returns the Feed forwarded from the executor for
// each transaction (spec.md §6 events, "transaction-processed(...)").
func (p *Processor) TransactionProcessed() *transactionProcessedFeed {
	return &p.events.transactionProcessed
}

// Observe subscribes o to both the branch-starting and block-processed
// Feeds, for callers who'd rather implement one composite interface than
// subscribe to each Feed individually. It returns a single func that
// unsubscribes from both.
func (p *Processor) Observe(o BranchEventObserver) (unsubscribe func()) {
	s1 := p.events.branchStarting.Subscribe(func(e BranchStartingEvent) error {
		return o.OnBranchStarting(e.Blocks)
	})
	s2 := p.events.blockProcessed.Subscribe(func(e BlockProcessedEvent) error {
		return o.OnBlockProcessed(e.Processed, e.Receipts)
	})
	return func() {
		s1.Unsubscribe()
		s2.Unsubscribe()
	}
}
