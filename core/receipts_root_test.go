package core

import (
	"testing"

	"github.com/chainproc/chainproc/common"
	"github.com/chainproc/chainproc/core/types"
	"github.com/chainproc/chainproc/params"
)

func TestReceiptsRootIsDeterministicAndOrderSensitive(t *testing.T) {
	r1 := &types.Receipt{TxHash: common.BytesToHash([]byte{1}), Status: types.ReceiptStatusSuccessful, CumulativeGasUsed: 100}
	r2 := &types.Receipt{TxHash: common.BytesToHash([]byte{2}), Status: types.ReceiptStatusFailed, CumulativeGasUsed: 200}

	calc := DefaultReceiptsRootCalculator{}
	spec := &params.Spec{}
	suggested := &types.Block{Header: &types.Header{}}

	a := calc.ReceiptsRoot(types.Receipts{r1, r2}, suggested, spec)
	b := calc.ReceiptsRoot(types.Receipts{r1, r2}, suggested, spec)
	if a != b {
		t.Fatalf("ReceiptsRoot must be deterministic for the same receipts")
	}

	c := calc.ReceiptsRoot(types.Receipts{r2, r1}, suggested, spec)
	if a == c {
		t.Fatalf("ReceiptsRoot must be sensitive to receipt order")
	}
}

func TestReceiptsRootDefersToSuggestedWhenGenesisUnavailable(t *testing.T) {
	calc := DefaultReceiptsRootCalculator{}
	claimed := common.BytesToHash([]byte{0xaa})
	suggested := &types.Block{Header: &types.Header{ReceiptsRoot: claimed}}
	spec := &params.Spec{GenesisStateUnavailable: true}

	got := calc.ReceiptsRoot(types.Receipts{{TxHash: common.BytesToHash([]byte{1})}}, suggested, spec)
	if got != claimed {
		t.Fatalf("ReceiptsRoot = %v, want suggested value %v", got, claimed)
	}
}
