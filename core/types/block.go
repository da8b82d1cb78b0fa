package types

import "github.com/chainproc/chainproc/common"

// Withdrawal is a post-Shanghai (EIP-4895) validator withdrawal credit,
// applied by the withdrawal applier (spec.md §4.1 step 10).
type Withdrawal struct {
	Index     uint64
	Validator uint64
	Address   common.Address
	Amount    uint64 // in Gwei, as on the consensus layer
}

// Uncle is a pre-Paris ommer header, carried for reward calculation only;
// no post-Paris chain ever populates this.
type Uncle struct {
	Author common.Address
	Number uint64
}

// Block is a header paired with its body: transactions, and — depending on
// fork height — withdrawals (post-Shanghai) or uncles (pre-Paris).
//
// A SUGGESTED Block (the processor's input) carries a fully populated
// Header, post-execution fields included: those are the producer's claims,
// which processOne independently recomputes and the validator checks
// against (spec.md §4.4, §8.8). A PROCESSED Block (the processor's output)
// is a distinct Block value wrapping a fresh Header produced by
// Header.PrepareForProcessing — the suggested Block and its Header are
// never mutated by processing (spec.md §3).
type Block struct {
	Header       *Header
	Transactions Transactions
	Withdrawals  []*Withdrawal // nil pre-Shanghai
	Uncles       []*Uncle      // nil post-Paris
}

// Hash returns the block's header hash (suggested or processed alike).
func (b *Block) Hash() common.Hash { return b.Header.Hash() }

// Number returns the block's height.
func (b *Block) Number() uint64 { return b.Header.Number.Uint64() }

// ParentHash returns the hash of the block this one extends.
func (b *Block) ParentHash() common.Hash { return b.Header.ParentHash }
