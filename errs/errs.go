// Package errs defines the typed failure surface of the processor
// (spec.md §7): InvalidBlock, ExecutionFailure, StateFailure, and
// InputDomain. Callers are expected to dispatch on these with errors.As
// rather than string matching, mirroring go-ethereum's sentinel-error
// idiom in core/error.go.
package errs

import (
	"fmt"

	"github.com/chainproc/chainproc/core/types"
)

// InvalidBlockError reports that the block validator rejected a processed
// block (spec.md §4.4). It is a fatal consensus failure for the branch.
type InvalidBlockError struct {
	Suggested *types.Block
	Reason    string
}

func (e *InvalidBlockError) Error() string {
	return fmt.Sprintf("invalid block %s (number %d): %s", e.Suggested.Hash(), e.Suggested.Number(), e.Reason)
}

// ExecutionFailureError wraps a failure from the transaction executor, the
// reward/withdrawal applier, or the beacon-root handler.
type ExecutionFailureError struct {
	Block *types.Block
	Stage string
	Err   error
}

func (e *ExecutionFailureError) Error() string {
	return fmt.Sprintf("execution failure in %s for block %d: %v", e.Stage, e.Block.Number(), e.Err)
}

func (e *ExecutionFailureError) Unwrap() error { return e.Err }

// StateFailureError wraps a failure surfaced by a world-state operation,
// e.g. a missing trie node or an unreachable checkpoint root.
type StateFailureError struct {
	Op  string
	Err error
}

func (e *StateFailureError) Error() string {
	return fmt.Sprintf("state failure during %s: %v", e.Op, e.Err)
}

func (e *StateFailureError) Unwrap() error { return e.Err }

// InputDomainError reports a nil required collaborator at construction
// time (spec.md §7).
type InputDomainError struct {
	Field string
}

func (e *InputDomainError) Error() string {
	return fmt.Sprintf("required collaborator %q is nil", e.Field)
}
