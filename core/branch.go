package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chainproc/chainproc/core/state"
	"github.com/chainproc/chainproc/core/types"
	"github.com/chainproc/chainproc/errs"
)

// periodicCommitInterval is the block-count interval at which a long
// branch takes a fresh mid-branch checkpoint, bounding the amount of work
// redone on a later failure (spec.md §4.1 step 6e, §8.2 "S2").
const periodicCommitInterval = 64

// Process re-executes suggestedBlocks against world state starting from
// newBranchStateRoot, producing the processed blocks (spec.md §4.1).
//
// Either every returned block is fully processed and world state reflects
// the last one (unless DoNotUpdateHead is set), or world state is restored
// to exactly what it was before the call and the error is non-nil
// (spec.md §8.1 "Atomicity").
//
// newBranchStateRoot must be the branch's actual starting root; passing
// the world state's own current root is the documented no-init mode
// (SPEC_FULL.md §13 decision 1) — there is no separate "unset" sentinel.
func (p *Processor) Process(newBranchStateRoot state.Root, suggestedBlocks []*types.Block, options ProcessingOptions, tracer Tracer) ([]*types.Block, error) {
	if len(suggestedBlocks) == 0 {
		return nil, nil
	}
	runID := uuid.New().String()
	log := p.Log.With("run", runID, "blocks", len(suggestedBlocks))

	// Step 2: fire-and-forget background hash precomputation.
	p.Precomputer.Dispatch(suggestedBlocks)

	// Step 3: branch-starting event.
	if _, err := p.events.branchStarting.Send(BranchStartingEvent{Blocks: suggestedBlocks}); err != nil {
		return nil, fmt.Errorf("branch-starting observer: %w", err)
	}

	// Step 4: entry checkpoint.
	entryCheckpoint := p.State.StateRoot()
	log.Debug("branch processing starting", "entryCheckpoint", entryCheckpoint)

	// Step 5: init branch.
	if err := p.initBranch(newBranchStateRoot, true); err != nil {
		p.restore(entryCheckpoint, log)
		return nil, err
	}

	processed := make([]*types.Block, 0, len(suggestedBlocks))
	witnessCollector := p.Witness

	for i, block := range suggestedBlocks {
		scope, err := witnessCollector.TrackOnThisThread()
		if err != nil {
			p.restore(entryCheckpoint, log)
			return nil, &errs.StateFailureError{Op: "witness scope", Err: err}
		}

		start := time.Now()
		processedBlock, receipts, err := p.processOne(block, options, tracer, scope)
		p.Metrics.BlockProcessingTime.UpdateSince(start)
		if err != nil {
			scope.Release()
			p.restore(entryCheckpoint, log)
			return nil, err
		}

		// Pre-commit: persist the trie at this block's height.
		if err := p.State.CommitTree(block.Number()); err != nil {
			scope.Release()
			p.restore(entryCheckpoint, log)
			return nil, &errs.StateFailureError{Op: "commit tree", Err: err}
		}

		if !options.Has(ReadOnlyChain) {
			scope.Persist(processedBlock.Hash())
			if _, err := p.events.blockProcessed.Send(BlockProcessedEvent{Processed: processedBlock, Receipts: receipts}); err != nil {
				scope.Release()
				p.restore(entryCheckpoint, log)
				return nil, fmt.Errorf("block-processed observer: %w", err)
			}
		}
		scope.Release()

		p.Metrics.BlocksProcessed.Inc(1)
		processed = append(processed, processedBlock)

		// Periodic branch commit for long branches (spec.md §4.1 step 6e):
		// re-init WITHOUT incrementing the reorganization counter.
		if i > 0 && i < len(suggestedBlocks)-1 && i%periodicCommitInterval == 0 {
			if err := p.initBranch(block.Header.StateRoot, false); err != nil {
				p.restore(entryCheckpoint, log)
				return nil, err
			}
			log.Debug("periodic branch commit", "atBlock", i)
		}
	}

	if options.Has(DoNotUpdateHead) {
		p.restore(entryCheckpoint, log)
	}

	log.Debug("branch processing complete", "blocksProcessed", len(processed))
	return processed, nil
}

// initBranch resets world state and sets its root to target if target
// differs from the current root (spec.md §4.1 step 5). countsAsReorg
// controls whether a change increments the Reorganizations counter — the
// periodic mid-branch re-init is explicitly exempt (spec.md §8.6).
func (p *Processor) initBranch(target state.Root, countsAsReorg bool) error {
	if target == p.State.StateRoot() {
		return nil
	}
	p.State.Reset()
	if err := p.State.SetStateRoot(target); err != nil {
		return &errs.StateFailureError{Op: "init branch", Err: err}
	}
	if countsAsReorg {
		p.Metrics.Reorganizations.Inc(1)
	}
	return nil
}

// restore always runs on any failure path, and additionally when
// DoNotUpdateHead is set after a successful run (spec.md §4.1 step 7-8,
// §8.1, §8.2). A failure restoring the checkpoint itself is logged but not
// returned — the caller already has the error that triggered the restore,
// and world state would otherwise be left in an undocumented state with
// no better recovery available.
func (p *Processor) restore(entryCheckpoint state.Root, log interface {
	Warn(msg string, args ...any)
}) {
	p.State.Reset()
	if err := p.State.SetStateRoot(entryCheckpoint); err != nil {
		log.Warn("failed to restore entry checkpoint", "checkpoint", entryCheckpoint, "err", err)
	}
}
