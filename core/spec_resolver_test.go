package core

import (
	"math/big"
	"testing"

	"github.com/chainproc/chainproc/core/types"
	"github.com/chainproc/chainproc/params"
)

func TestCachedSpecProviderCachesByNumberAndTime(t *testing.T) {
	config := &params.ChainConfig{ByzantiumBlock: big.NewInt(10)}
	p := NewCachedSpecProvider(config, 4)

	h := &types.Header{Number: big.NewInt(10), Time: 100}
	spec1 := p.GetSpec(h)
	spec2 := p.GetSpec(&types.Header{Number: big.NewInt(10), Time: 100})

	if spec1 != spec2 {
		t.Fatalf("expected a cache hit for an identical (number, time) pair to return the same *Spec")
	}
	if !spec1.IsByzantiumActive {
		t.Fatalf("expected Byzantium to be active at block 10")
	}

	spec3 := p.GetSpec(&types.Header{Number: big.NewInt(9), Time: 100})
	if spec3 == spec1 {
		t.Fatalf("expected a different height to produce a distinct cached entry")
	}
	if spec3.IsByzantiumActive {
		t.Fatalf("expected Byzantium to be inactive at block 9")
	}
}

func TestCachedSpecProviderDAOActivationHeight(t *testing.T) {
	withDAO := NewCachedSpecProvider(&params.ChainConfig{DAOForkBlock: big.NewInt(5), DAOForkSupport: true}, 4)
	height, ok := withDAO.DAOActivationHeight()
	if !ok || height != 5 {
		t.Fatalf("DAOActivationHeight() = (%d, %v), want (5, true)", height, ok)
	}

	withoutDAO := NewCachedSpecProvider(&params.ChainConfig{}, 4)
	if _, ok := withoutDAO.DAOActivationHeight(); ok {
		t.Fatalf("expected no DAO activation height when the chain config doesn't support it")
	}
}
