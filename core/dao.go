package core

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/holiman/uint256"

	"github.com/chainproc/chainproc/common"
	"github.com/chainproc/chainproc/core/state"
	"github.com/chainproc/chainproc/errs"
	"github.com/chainproc/chainproc/params"
)

// DAOApplier performs the one-shot DAO balance migration at the
// configured fork height (spec.md §4.2 step 1). It is idempotent by
// height: DAOApplier.apply only ever fires when the current block number
// exactly equals the configured activation height (spec.md §8.7), so
// replaying a branch that starts above that height is a no-op, and a
// caller who restores state to before the DAO block and reprocesses it
// moves exactly one copy of each account's balance.
type DAOApplier struct {
	WithdrawAccount common.Address
	DrainAccounts   mapset.Set[common.Address]
}

// NewDAOApplier builds an applier that drains accounts into withdrawAccount.
func NewDAOApplier(withdrawAccount common.Address, accounts []common.Address) *DAOApplier {
	return &DAOApplier{
		WithdrawAccount: withdrawAccount,
		DrainAccounts:   mapset.NewSet(accounts...),
	}
}

// apply ensures the withdrawal account exists, then moves the entire
// balance of each DAO account into it, under the DAO rule set (spec.md
// §4.2 step 1).
func (a *DAOApplier) apply(ws state.WorldState, spec *params.Spec) error {
	if !ws.AccountExists(a.WithdrawAccount) {
		ws.CreateAccount(a.WithdrawAccount, new(uint256.Int))
	}

	var total uint256.Int
	for addr := range a.DrainAccounts.Iter() {
		bal := ws.GetBalance(addr)
		if bal.IsZero() {
			continue
		}
		if err := ws.SubtractFromBalance(addr, bal, spec); err != nil {
			return &errs.StateFailureError{Op: "DAO drain", Err: err}
		}
		total.Add(&total, bal)
	}
	if total.IsZero() {
		return nil
	}
	return ws.AddToBalance(a.WithdrawAccount, &total, spec)
}
