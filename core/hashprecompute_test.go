package core

import (
	"math/big"
	"testing"
	"time"

	"github.com/chainproc/chainproc/common"
	"github.com/chainproc/chainproc/core/types"
)

func TestHashPrecomputerPublishesTransactionHashes(t *testing.T) {
	hp := NewHashPrecomputer(2)

	to := common.BytesToAddress([]byte{1})
	tx := &types.Transaction{To: &to, Value: big.NewInt(1), GasLimit: 21000}
	block := &types.Block{Header: &types.Header{Number: big.NewInt(1)}, Transactions: types.Transactions{tx}}

	want := tx.Hash() // computed on demand here, establishing the expected value
	tx2 := &types.Transaction{To: &to, Value: big.NewInt(1), GasLimit: 21000}
	block2 := &types.Block{Header: &types.Header{Number: big.NewInt(1)}, Transactions: types.Transactions{tx2}}

	hp.Dispatch([]*types.Block{block2})
	hp.Stop()

	if got := tx2.Hash(); got != want {
		t.Fatalf("background-precomputed hash = %v, want %v", got, want)
	}
	_ = block
}

func TestHashPrecomputerDispatchNeverBlocks(t *testing.T) {
	hp := NewHashPrecomputer(1)
	defer hp.Stop()

	done := make(chan struct{})
	go func() {
		hp.Dispatch(nil)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Dispatch must not block the caller")
	}
}
