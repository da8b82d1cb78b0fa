package core

import (
	"github.com/holiman/uint256"

	"github.com/chainproc/chainproc/core/state"
	"github.com/chainproc/chainproc/core/types"
	"github.com/chainproc/chainproc/errs"
	"github.com/chainproc/chainproc/params"
)

// DefaultWithdrawalApplier credits each withdrawal's amount directly to
// its address, with no intermediate account (spec.md §4.1 component 5).
// Withdrawal amounts are denominated in Gwei on the consensus layer;
// GweiToWei converts to the world state's native unit.
type DefaultWithdrawalApplier struct {
	State state.WorldState
}

func (a *DefaultWithdrawalApplier) applyWithdrawals(block *types.Block, spec *params.Spec) error {
	for _, w := range block.Withdrawals {
		value := GweiToWei(w.Amount)
		if value.IsZero() {
			continue
		}
		if err := a.State.AddToBalance(w.Address, value, spec); err != nil {
			return &errs.ExecutionFailureError{Block: block, Stage: "withdrawal application", Err: err}
		}
	}
	return nil
}

// GweiToWei converts a Gwei-denominated amount (as carried by
// types.Withdrawal) into the 10^18-denominated unit world state balances
// use, mirroring go-ethereum's core.ProcessWithdrawals use of
// params.GWei.
func GweiToWei(gwei uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(gwei), uint256.NewInt(1_000_000_000))
}
