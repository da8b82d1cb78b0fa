package core

// ProcessingOptions is the typed bit-set of processing flags spec.md §6
// enumerates. A bit-set is used instead of several booleans so new flags
// can be added without growing Process's signature (spec.md §9).
type ProcessingOptions uint32

const (
	// ReadOnlyChain skips witness persistence and block-processed event
	// emission.
	ReadOnlyChain ProcessingOptions = 1 << iota

	// DoNotUpdateHead restores world state to the entry checkpoint after
	// the last block, even on success.
	DoNotUpdateHead

	// StoreReceipts inserts each block's receipts into receipt storage.
	StoreReceipts

	// NoValidation skips post-processing block validation.
	NoValidation
)

// Has reports whether all bits in want are set in o.
func (o ProcessingOptions) Has(want ProcessingOptions) bool { return o&want == want }
