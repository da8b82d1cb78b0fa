package core

import (
	"github.com/chainproc/chainproc/core/types"
	"github.com/chainproc/chainproc/event"
)

// BranchStartingEvent carries the full suggested block list, raised once
// per Process call before any block is touched (spec.md §4.1 step 3).
type BranchStartingEvent struct {
	Blocks []*types.Block
}

// BlockProcessedEvent is raised after each successfully processed block,
// unless ReadOnlyChain is set (spec.md §4.1 step 6d).
type BlockProcessedEvent struct {
	Processed *types.Block
	Receipts  types.Receipts
}

// TransactionProcessedEvent is forwarded from the executor for each
// transaction (spec.md §6).
type TransactionProcessedEvent struct {
	Block   *types.Block
	TxIndex int
	Receipt *types.Receipt
}

type branchStartingFeed = event.Feed[BranchStartingEvent]
type blockProcessedFeed = event.Feed[BlockProcessedEvent]
type transactionProcessedFeed = event.Feed[TransactionProcessedEvent]

// branchEvents groups the three Feeds spec.md §6 names under "Events",
// each delivered synchronously and in order on the driver's own goroutine
// (spec.md §5 "Ordering guarantees").
type branchEvents struct {
	branchStarting       branchStartingFeed
	blockProcessed       blockProcessedFeed
	transactionProcessed transactionProcessedFeed
}

func newBranchEvents() *branchEvents { return &branchEvents{} }
