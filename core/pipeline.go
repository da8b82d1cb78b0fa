package core

import (
	"errors"

	"github.com/chainproc/chainproc/common"
	"github.com/chainproc/chainproc/core/stateless"
	"github.com/chainproc/chainproc/core/types"
	"github.com/chainproc/chainproc/errs"
)

// processOne runs the per-block pipeline of spec.md §4.2: DAO transition,
// header preparation, spec resolution, pre-execution beacon-root touch,
// transaction execution, reward/withdrawal application, root/hash
// computation, and validation.
func (p *Processor) processOne(suggested *types.Block, options ProcessingOptions, tracer Tracer, witness *stateless.Scope) (*types.Block, types.Receipts, error) {
	// Step 1: DAO transition — idempotent by height (spec.md §4.2 step 1,
	// §8.7).
	if height, ok := p.Spec.DAOActivationHeight(); ok && p.DAO != nil && suggested.Number() == height {
		daoSpec := p.Spec.GetSpec(suggested.Header)
		if err := p.DAO.apply(p.State, daoSpec); err != nil {
			return nil, nil, err
		}
	}

	// Step 2: prepare a header copy carrying only pre-execution fields.
	// The state root is kept only when genesis state is unavailable —
	// there is nothing local to recompute it from (spec.md §4.2 step 2).
	keepStateRoot := p.Spec.GenesisStateUnavailable() && suggested.Number() == 0
	header := suggested.Header.PrepareForProcessing(keepStateRoot)

	// Step 3: resolve the spec from the new header.
	spec := p.Spec.GetSpec(header)

	// Step 4: bind the caller's tracer and start a new block trace.
	p.sink.bind(header, tracer)
	p.sink.StartBlock(header)
	defer p.sink.EndBlock()

	// Step 5: pre-execution beacon-root touch, then commit.
	if err := p.Beacon.handle(suggested, spec); err != nil {
		return nil, nil, err
	}

	// Step 6: execute transactions.
	processedBlock := &types.Block{Header: header, Transactions: suggested.Transactions, Withdrawals: suggested.Withdrawals, Uncles: suggested.Uncles}
	receipts, err := p.Executor.ProcessTransactions(processedBlock, options, p.sink, spec, &p.events.transactionProcessed)
	if err != nil {
		return nil, nil, &errs.ExecutionFailureError{Block: suggested, Stage: "transaction execution", Err: err}
	}
	if len(receipts) != len(suggested.Transactions) {
		return nil, nil, &errs.ExecutionFailureError{Block: suggested, Stage: "transaction execution", Err: errReceiptCountMismatch}
	}

	// Step 7: blob gas usage, if active.
	if spec.IsCancunActive {
		header.BlobGasUsed = sumBlobGasUsed(receipts)
	}

	// Step 8: receipts root.
	header.ReceiptsRoot = p.ReceiptsRC.ReceiptsRoot(receipts, suggested, spec)
	header.Bloom = receipts.Bloom()
	if len(receipts) > 0 {
		header.GasUsed = receipts[len(receipts)-1].CumulativeGasUsed
	}

	// Step 9: apply miner rewards.
	if err := applyRewards(p.State, suggested, p.Rewards, spec, p.sink); err != nil {
		return nil, nil, err
	}

	// Step 10: apply withdrawals.
	if spec.IsShanghaiActive {
		if err := p.Withdrawal.applyWithdrawals(suggested, spec); err != nil {
			return nil, nil, err
		}
	}

	// Step 11: commit world state under the spec.
	if err := p.State.Commit(spec); err != nil {
		return nil, nil, &errs.StateFailureError{Op: "post-rewards commit", Err: err}
	}

	// Step 12: recompute the state root, unless it was kept verbatim.
	if !keepStateRoot {
		root, err := p.State.RecalculateStateRoot()
		if err != nil {
			return nil, nil, &errs.StateFailureError{Op: "state root recalculation", Err: err}
		}
		header.StateRoot = root
	}

	// Step 13: recompute the header hash from its final fields.
	_ = header.Hash() // materializes the identity the validator compares

	// Step 14: validate.
	if !options.Has(NoValidation) {
		if !p.Validator.ValidateProcessedBlock(processedBlock, receipts, suggested) {
			return nil, nil, &errs.InvalidBlockError{Suggested: suggested, Reason: "validator rejected processed block"}
		}
	}

	// Step 15: optionally persist receipts.
	if options.Has(StoreReceipts) {
		if err := p.Receipts.Insert(processedBlock, receipts, false); err != nil {
			// Receipt storage failures are surfaced, but per SPEC_FULL.md
			// §13 (2) a branch that later fails does NOT roll back
			// receipts already written for earlier blocks — the source's
			// incremental-write behavior (spec.md §9).
			return nil, nil, &errs.StateFailureError{Op: "receipt storage", Err: err}
		}
	}

	if witness != nil {
		for _, addr := range touchedAddressesHint(suggested) {
			witness.Touch(addr)
		}
	}

	return processedBlock, receipts, nil
}

// sumBlobGasUsed reports the block's total blob gas usage. This reference
// pipeline has no blob transaction type of its own (spec.md §1 excludes
// blob-sidecar encoding), so it always reports zero rather than guessing
// at a number the receipts don't carry; a real executor's receipts would
// carry per-transaction blob gas to sum here.
func sumBlobGasUsed(receipts types.Receipts) *uint64 {
	var total uint64
	return &total
}

// touchedAddressesHint returns the addresses the witness should record as
// touched for suggested, absent a real trie-backed executor to report them
// precisely: the block's own author and every transaction recipient.
func touchedAddressesHint(suggested *types.Block) []common.Address {
	out := make([]common.Address, 0, len(suggested.Transactions)+1)
	out = append(out, suggested.Header.Author)
	for _, tx := range suggested.Transactions {
		if tx.To != nil {
			out = append(out, *tx.To)
		}
	}
	return out
}

var errReceiptCountMismatch = errors.New("executor returned a different number of receipts than transactions")
