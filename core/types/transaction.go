package types

import (
	"math/big"
	"sync/atomic"

	"github.com/chainproc/chainproc/common"
	"github.com/chainproc/chainproc/crypto"
)

// Transaction is the minimal shape the pipeline and background hash
// precomputer need. The executor (an external collaborator, spec.md §6)
// is responsible for everything about gas/signature/payload semantics;
// this type only needs to carry enough identity for receipts and hashing.
type Transaction struct {
	Nonce    uint64
	To       *common.Address
	Value    *big.Int
	GasLimit uint64
	Data     []byte
	Type     uint8

	// hash is written at most once, either by the background hash
	// precomputer (§4.5) or, if that hasn't caught up yet, by whichever
	// foreground caller asks for it first. atomic.Pointer gives
	// single-writer-wins publication without a mutex (spec.md §5).
	hash atomic.Pointer[common.Hash]
}

// Hash returns the transaction's cached hash, computing and publishing it
// on first access if the background precomputer has not already done so.
func (tx *Transaction) Hash() common.Hash {
	if h := tx.hash.Load(); h != nil {
		return *h
	}
	return tx.computeAndStoreHash()
}

// SetHash publishes a precomputed hash if none has been published yet.
// Hash publishes every value it computes through SetHash, whether called
// by the background precomputer or a foreground caller; the CompareAndSwap
// makes concurrent foreground/background writes of the same value benign.
func (tx *Transaction) SetHash(h common.Hash) {
	tx.hash.CompareAndSwap(nil, &h)
}

func (tx *Transaction) computeAndStoreHash() common.Hash {
	buf := make([]byte, 0, 64)
	buf = appendUint64(buf, tx.Nonce)
	if tx.To != nil {
		buf = append(buf, tx.To.Bytes()...)
	}
	if tx.Value != nil {
		buf = append(buf, tx.Value.Bytes()...)
	}
	buf = appendUint64(buf, tx.GasLimit)
	buf = append(buf, tx.Data...)
	buf = append(buf, tx.Type)
	h := crypto.Keccak256Hash(buf)
	tx.SetHash(h)
	return h
}

// Transactions is an ordered list of transactions, as carried by a Block.
type Transactions []*Transaction
