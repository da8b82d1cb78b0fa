package core

import "github.com/chainproc/chainproc/core/types"

// DefaultValidator is a reference Validator (spec.md §6) that accepts a
// processed block exactly when its computed state root, receipts root,
// and identity hash match what the suggested block claims for itself.
// Production callers typically supply a richer validator (gas-limit
// bounds, difficulty checks, extra-data rules); this one exists so the
// round-trip property of spec.md §8.8 is exercisable without one.
type DefaultValidator struct{}

func (DefaultValidator) ValidateProcessedBlock(processed *types.Block, receipts types.Receipts, suggested *types.Block) bool {
	if processed.Header.StateRoot != suggested.Header.StateRoot {
		return false
	}
	if processed.Header.ReceiptsRoot != suggested.Header.ReceiptsRoot {
		return false
	}
	if len(receipts) != len(suggested.Transactions) {
		return false
	}
	return processed.Hash() == suggested.Hash()
}
