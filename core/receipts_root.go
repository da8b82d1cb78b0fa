package core

import (
	"github.com/chainproc/chainproc/common"
	"github.com/chainproc/chainproc/core/types"
	"github.com/chainproc/chainproc/crypto"
	"github.com/chainproc/chainproc/params"
)

// DefaultReceiptsRootCalculator computes a receipts root by hashing the
// ordered concatenation of each receipt's identity fields — a stand-in for
// go-ethereum's types.DeriveSha(receipts, trie.NewStackTrie(nil)), which
// this module doesn't implement since the persistent trie is out of scope
// (spec.md §1). When the spec reports genesis state is unavailable, the
// suggested value is used verbatim, since there is no way to independently
// derive it (spec.md §4.2 step 8: "the computation may defer to a
// suggested value when legally derivable").
type DefaultReceiptsRootCalculator struct{}

func (DefaultReceiptsRootCalculator) ReceiptsRoot(receipts types.Receipts, suggested *types.Block, spec *params.Spec) common.Hash {
	if spec.GenesisStateUnavailable {
		return suggested.Header.ReceiptsRoot
	}
	buf := make([]byte, 0, len(receipts)*64)
	for _, r := range receipts {
		buf = append(buf, r.TxHash.Bytes()...)
		buf = append(buf, byte(r.Status))
		buf = appendGasUsed(buf, r.CumulativeGasUsed)
	}
	return crypto.Keccak256Hash(buf)
}

func appendGasUsed(buf []byte, v uint64) []byte {
	var b [8]byte
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	return append(buf, b[:]...)
}
