package core

import (
	"testing"

	"github.com/holiman/uint256"

	"github.com/chainproc/chainproc/common"
	"github.com/chainproc/chainproc/core/state"
	"github.com/chainproc/chainproc/core/types"
	"github.com/chainproc/chainproc/params"
)

type fixedRewards struct {
	rewards []Reward
}

func (f fixedRewards) CalculateRewards(*types.Block) ([]Reward, error) { return f.rewards, nil }

func TestApplyRewardsCreditsNewAccountAtValue(t *testing.T) {
	ws := state.NewMemoryState()
	spec := &params.Spec{}
	addr := common.BytesToAddress([]byte{1})
	block := &types.Block{Header: &types.Header{Author: addr}}

	calc := fixedRewards{rewards: []Reward{{Address: addr, Kind: "block", Value: uint256.NewInt(5_000_000_000)}}}
	if err := applyRewards(ws, block, calc, spec, nil); err != nil {
		t.Fatalf("applyRewards: %v", err)
	}
	if err := ws.Commit(spec); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if got := ws.GetBalance(addr); !got.Eq(uint256.NewInt(5_000_000_000)) {
		t.Fatalf("balance = %v, want 5_000_000_000 (account creation uses value as opening balance)", got)
	}
}

func TestApplyRewardsOpensPerRewardTracingScopeWhenOptedIn(t *testing.T) {
	ws := state.NewMemoryState()
	spec := &params.Spec{}
	addr := common.BytesToAddress([]byte{3})
	block := &types.Block{Header: &types.Header{Author: addr}}

	calc := fixedRewards{rewards: []Reward{
		{Address: addr, Kind: "block", Value: uint256.NewInt(1)},
		{Address: addr, Kind: "uncle", Value: uint256.NewInt(2)},
	}}

	var scopes []Reward
	sink := newReceiptsSink()
	sink.bind(&types.Header{}, recordingTracer{tracesRewards: true, rewardScopes: &scopes})
	if err := applyRewards(ws, block, calc, spec, sink); err != nil {
		t.Fatalf("applyRewards: %v", err)
	}
	if len(scopes) != 2 {
		t.Fatalf("expected a tracing scope opened for each of 2 rewards, got %d", len(scopes))
	}
	if scopes[0].Kind != "block" || scopes[1].Kind != "uncle" {
		t.Fatalf("expected scopes opened in reward order, got %v", scopes)
	}
}

func TestApplyRewardsSkipsTracingScopeWhenNotOptedIn(t *testing.T) {
	ws := state.NewMemoryState()
	spec := &params.Spec{}
	addr := common.BytesToAddress([]byte{4})
	block := &types.Block{Header: &types.Header{Author: addr}}
	calc := fixedRewards{rewards: []Reward{{Address: addr, Kind: "block", Value: uint256.NewInt(1)}}}

	var scopes []Reward
	sink := newReceiptsSink()
	sink.bind(&types.Header{}, recordingTracer{tracesRewards: false, rewardScopes: &scopes})
	if err := applyRewards(ws, block, calc, spec, sink); err != nil {
		t.Fatalf("applyRewards: %v", err)
	}
	if len(scopes) != 0 {
		t.Fatalf("expected no tracing scope when the tracer did not opt into reward tracing, got %d", len(scopes))
	}
}

func TestApplyRewardsAddsToExistingAccountInOrder(t *testing.T) {
	ws := state.NewMemoryState()
	spec := &params.Spec{}
	addr := common.BytesToAddress([]byte{2})
	ws.CreateAccount(addr, uint256.NewInt(10))
	if err := ws.Commit(spec); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	block := &types.Block{Header: &types.Header{Author: addr}}
	calc := fixedRewards{rewards: []Reward{
		{Address: addr, Kind: "block", Value: uint256.NewInt(1)},
		{Address: addr, Kind: "uncle", Value: uint256.NewInt(2)},
	}}
	if err := applyRewards(ws, block, calc, spec, nil); err != nil {
		t.Fatalf("applyRewards: %v", err)
	}
	if err := ws.Commit(spec); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if got := ws.GetBalance(addr); !got.Eq(uint256.NewInt(13)) {
		t.Fatalf("balance = %v, want 13 (10 + 1 + 2, applied in order)", got)
	}
}
