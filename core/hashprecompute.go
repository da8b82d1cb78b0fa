package core

import (
	"github.com/JekaMas/workerpool"

	"github.com/chainproc/chainproc/core/types"
	"github.com/chainproc/chainproc/log"
)

// HashPrecomputer dispatches transaction-hash calculation to a shared
// worker pool concurrently with branch processing (spec.md §4.5). It
// shares no mutable state with the pipeline beyond each transaction's
// cached hash field, and it is never awaited: a caller who needs a
// transaction's hash before the worker gets to it computes it on demand
// via Transaction.Hash's own idempotent fallback (spec.md §4.5, §5).
type HashPrecomputer struct {
	pool *workerpool.WorkerPool
	log  log.Logger
}

// NewHashPrecomputer builds a precomputer backed by a pool of maxWorkers
// goroutines.
func NewHashPrecomputer(maxWorkers int) *HashPrecomputer {
	return &HashPrecomputer{pool: workerpool.New(maxWorkers), log: log.Root().With("component", "hash-precomputer")}
}

// Dispatch submits a fire-and-forget task that walks blocks and their
// transactions contiguously, computing and publishing each hash. Dispatch
// itself never blocks and its task's failure (a panic mid-walk) is
// swallowed — it is purely an optimization (spec.md §7 "Background worker
// failures are swallowed").
func (hp *HashPrecomputer) Dispatch(blocks []*types.Block) {
	hp.pool.Submit(func() {
		defer func() {
			if r := recover(); r != nil {
				hp.log.Warn("hash precomputation panicked, continuing without it", "panic", r)
			}
		}()
		for _, block := range blocks {
			for _, tx := range block.Transactions {
				tx.Hash()
			}
		}
	})
}

// Stop waits for any in-flight precomputation to finish and releases the
// pool's goroutines. Callers that construct their own Processor and intend
// to discard it should call Stop to avoid leaking workers; Process itself
// never calls Stop, since the pool is reused across calls.
func (hp *HashPrecomputer) Stop() {
	hp.pool.StopWait()
}
