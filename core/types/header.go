// Package types defines the block, header, transaction and receipt shapes
// the processor operates on. It mirrors go-ethereum's core/types layout
// (one small file per concept) but is trimmed to what the branch driver
// and per-block pipeline actually touch; full RLP wire encoding,
// difficulty/PoW fields and uncle handling beyond pre-Paris compatibility
// are intentionally out of scope (spec.md §1 Non-goals).
package types

import (
	"math/big"

	"github.com/chainproc/chainproc/common"
	"github.com/chainproc/chainproc/crypto"
)

// Header carries a block's pre-execution fields (set by the block
// producer, authoritative input to processing) and post-execution fields
// (StateRoot, ReceiptsRoot, Bloom, GasUsed, BlobGasUsed — authoritative
// OUTPUT of the core, per spec.md §3).
type Header struct {
	ParentHash common.Hash
	Number     *big.Int
	GasLimit   uint64
	Time       uint64
	Extra      []byte

	// Identity fields preserved verbatim by PrepareForProcessing so the
	// suggested header's hash remains comparable after processing
	// (spec.md §4.2 step 2).
	Author  common.Address
	MixHash common.Hash
	Nonce   [8]byte

	// BeaconRoot is non-nil post-Cancun; consumed by the beacon-root
	// handler (§4.1 pre-execution touch) and left untouched thereafter.
	BeaconRoot *common.Hash

	// ExcessBlobGas is a pre-execution input (set by the producer);
	// BlobGasUsed is a post-execution output written in §4.2 step 7.
	ExcessBlobGas *uint64
	BlobGasUsed   *uint64

	// Post-execution outputs. Zero/empty until the pipeline fills them in.
	StateRoot    common.Hash
	ReceiptsRoot common.Hash
	Bloom        common.Bloom
	GasUsed      uint64
}

// PrepareForProcessing returns a fresh header carrying only h's
// pre-execution fields, with post-execution fields cleared to their
// neutral zero values. h itself is never mutated — the "Header copy for
// processing" invariant of spec.md §3: an implementer in any systems
// language should replicate this by value-copy, never by aliasing.
//
// keepStateRoot should be true only when the spec resolved for this
// header reports GenesisStateUnavailable (§4.2 step 2): in that case the
// suggested state root is carried through rather than recomputed, because
// no local genesis state exists to recompute it from.
func (h *Header) PrepareForProcessing(keepStateRoot bool) *Header {
	cp := &Header{
		ParentHash:    h.ParentHash,
		Number:        new(big.Int).Set(h.Number),
		GasLimit:      h.GasLimit,
		Time:          h.Time,
		Extra:         append([]byte(nil), h.Extra...),
		Author:        h.Author,
		MixHash:       h.MixHash,
		Nonce:         h.Nonce,
		BeaconRoot:    h.BeaconRoot,
		ExcessBlobGas: h.ExcessBlobGas,
	}
	if keepStateRoot {
		cp.StateRoot = h.StateRoot
	}
	return cp
}

// Hash recomputes the header's identity hash from its current field
// values. Called once per block after every post-execution field has been
// filled in (§4.2 step 13).
func (h *Header) Hash() common.Hash {
	buf := make([]byte, 0, 256)
	buf = append(buf, h.ParentHash.Bytes()...)
	buf = append(buf, h.Author.Bytes()...)
	buf = append(buf, h.StateRoot.Bytes()...)
	buf = append(buf, h.ReceiptsRoot.Bytes()...)
	buf = append(buf, h.Bloom[:]...)
	buf = append(buf, h.Number.Bytes()...)
	buf = appendUint64(buf, h.GasLimit)
	buf = appendUint64(buf, h.GasUsed)
	buf = appendUint64(buf, h.Time)
	buf = append(buf, h.Extra...)
	buf = append(buf, h.MixHash.Bytes()...)
	buf = append(buf, h.Nonce[:]...)
	if h.BeaconRoot != nil {
		buf = append(buf, h.BeaconRoot.Bytes()...)
	}
	if h.BlobGasUsed != nil {
		buf = appendUint64(buf, *h.BlobGasUsed)
	}
	return crypto.Keccak256Hash(buf)
}

func appendUint64(buf []byte, v uint64) []byte {
	var b [8]byte
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	return append(buf, b[:]...)
}
