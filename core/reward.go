package core

import (
	"github.com/holiman/uint256"

	"github.com/chainproc/chainproc/common"
	"github.com/chainproc/chainproc/core/state"
	"github.com/chainproc/chainproc/core/types"
	"github.com/chainproc/chainproc/errs"
	"github.com/chainproc/chainproc/params"
)

// applyRewards credits every reward the calculator produced, in the order
// produced (spec.md §4.3's tie-break rule), then commits state under the
// tracer's sub-tracer if it opted into state tracing.
//
// Account creation uses the reward's value as the opening balance (not a
// transfer) — spec.md §4.3: "Account creation uses 'value' as the initial
// balance (not a transfer)".
func applyRewards(ws state.WorldState, block *types.Block, calc RewardCalculator, spec *params.Spec, tracer ReceiptsTracer) error {
	rewards, err := calc.CalculateRewards(block)
	if err != nil {
		return &errs.ExecutionFailureError{Block: block, Stage: "reward calculation", Err: err}
	}

	traceRewards := tracer != nil && tracer.TracesRewards()
	for _, r := range rewards {
		if traceRewards {
			tracer.StartReward(r)
		}
		err := creditReward(ws, r, spec)
		if traceRewards {
			tracer.EndReward()
		}
		if err != nil {
			return &errs.ExecutionFailureError{Block: block, Stage: "reward application", Err: err}
		}
	}

	if tracer != nil && tracer.TracesState() {
		if err := ws.CommitWithTracer(spec, stateTracerAdapter{tracer.StateTracer()}); err != nil {
			return &errs.ExecutionFailureError{Block: block, Stage: "reward state commit", Err: err}
		}
	}
	return nil
}

func creditReward(ws state.WorldState, r Reward, spec *params.Spec) error {
	if !ws.AccountExists(r.Address) {
		ws.CreateAccount(r.Address, r.Value)
		return nil
	}
	return ws.AddToBalance(r.Address, r.Value, spec)
}

// stateTracerAdapter bridges ReceiptsTracer.StateTracer() (a
// StateTracerNotifiee) to state.StateTracer, which the world state
// façade's CommitWithTracer expects. The two interfaces are identical in
// shape; the adapter exists so package core doesn't need package state to
// know about ReceiptsTracer, keeping the dependency direction one-way.
type stateTracerAdapter struct {
	inner StateTracerNotifiee
}

func (a stateTracerAdapter) OnBalanceChange(addr common.Address, previous, current *uint256.Int) {
	a.inner.OnBalanceChange(addr, previous, current)
}
