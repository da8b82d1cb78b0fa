package types

import (
	"math/big"
	"testing"

	"github.com/chainproc/chainproc/common"
)

func sampleHeader() *Header {
	return &Header{
		ParentHash:   common.BytesToHash([]byte{1}),
		Number:       big.NewInt(5),
		GasLimit:     30_000_000,
		Time:         100,
		Extra:        []byte("extra"),
		Author:       common.BytesToAddress([]byte{2}),
		StateRoot:    common.BytesToHash([]byte{3}),
		ReceiptsRoot: common.BytesToHash([]byte{4}),
		GasUsed:      21000,
	}
}

func TestHeaderHashIsDeterministic(t *testing.T) {
	h1 := sampleHeader()
	h2 := sampleHeader()

	if h1.Hash() != h2.Hash() {
		t.Fatalf("identical headers must hash identically")
	}
}

func TestHeaderHashChangesWithStateRoot(t *testing.T) {
	h1 := sampleHeader()
	h2 := sampleHeader()
	h2.StateRoot = common.BytesToHash([]byte{0xff})

	if h1.Hash() == h2.Hash() {
		t.Fatalf("differing state roots must produce differing hashes")
	}
}

func TestPrepareForProcessingClearsPostExecutionFields(t *testing.T) {
	h := sampleHeader()
	cp := h.PrepareForProcessing(false)

	if !cp.StateRoot.IsZero() {
		t.Fatalf("expected StateRoot cleared, got %v", cp.StateRoot)
	}
	if !cp.ReceiptsRoot.IsZero() {
		t.Fatalf("expected ReceiptsRoot cleared, got %v", cp.ReceiptsRoot)
	}
	if cp.GasUsed != 0 {
		t.Fatalf("expected GasUsed cleared, got %d", cp.GasUsed)
	}
	if cp.ParentHash != h.ParentHash || cp.Author != h.Author || cp.Number.Cmp(h.Number) != 0 {
		t.Fatalf("expected pre-execution fields preserved")
	}
}

func TestPrepareForProcessingKeepStateRootPreservesIt(t *testing.T) {
	h := sampleHeader()
	cp := h.PrepareForProcessing(true)

	if cp.StateRoot != h.StateRoot {
		t.Fatalf("expected StateRoot preserved when keepStateRoot is true")
	}
}

func TestPrepareForProcessingDoesNotAliasOriginal(t *testing.T) {
	h := sampleHeader()
	cp := h.PrepareForProcessing(false)

	cp.Extra[0] = 'X'
	if h.Extra[0] == 'X' {
		t.Fatalf("PrepareForProcessing must not alias the original Extra slice")
	}
	cp.Number.SetInt64(999)
	if h.Number.Int64() == 999 {
		t.Fatalf("PrepareForProcessing must not alias the original Number")
	}
}
