package core

import (
	"github.com/chainproc/chainproc/common"
	"github.com/chainproc/chainproc/core/state"
	"github.com/chainproc/chainproc/core/types"
	"github.com/chainproc/chainproc/errs"
	"github.com/chainproc/chainproc/params"
)

// BeaconRootStateWriter is the narrow collaborator the beacon-root handler
// needs from the executor to make the EIP-4788 system call (spec.md §4.2
// step 5). The call itself — invoking the beacon-roots contract with the
// parent beacon block root as calldata — is the executor's concern
// (spec.md §1 excludes EVM dispatch from this module); this handler only
// decides *whether and when* to make it.
type BeaconRootStateWriter interface {
	WriteBeaconRoot(root common.Hash, spec *params.Spec) error
}

// DefaultBeaconRootHandler applies the pre-execution beacon-root system
// call when Cancun is active, then commits the resulting state change
// under the resolved spec (spec.md §4.2 step 5: "beacon-root handler
// applies state changes mandated by EIP-4788 when active, then world
// state is committed under the resolved spec").
type DefaultBeaconRootHandler struct {
	State  state.WorldState
	Writer BeaconRootStateWriter
}

func (h *DefaultBeaconRootHandler) handle(block *types.Block, spec *params.Spec) error {
	if !spec.IsCancunActive || block.Header.BeaconRoot == nil {
		return nil
	}
	if err := h.Writer.WriteBeaconRoot(*block.Header.BeaconRoot, spec); err != nil {
		return &errs.ExecutionFailureError{Block: block, Stage: "beacon root", Err: err}
	}
	if err := h.State.Commit(spec); err != nil {
		return &errs.ExecutionFailureError{Block: block, Stage: "beacon root commit", Err: err}
	}
	return nil
}
