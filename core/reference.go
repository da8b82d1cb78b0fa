package core

import (
	"github.com/holiman/uint256"

	"github.com/chainproc/chainproc/common"
	"github.com/chainproc/chainproc/core/state"
	"github.com/chainproc/chainproc/core/types"
	"github.com/chainproc/chainproc/event"
	"github.com/chainproc/chainproc/params"
)

// SimpleExecutor is a reference Executor for tests and the CLI demo: it
// applies each transaction as a plain value transfer from the block's
// author to the transaction's recipient, mirroring the shape of
// abaderin-bsc's applyTransaction (new receipt per tx, status derived from
// whether ApplyMessage-equivalent succeeded) without any EVM or gas
// metering, both of which are out of this module's scope (spec.md §1).
type SimpleExecutor struct {
	State state.WorldState
}

func (e *SimpleExecutor) ProcessTransactions(block *types.Block, options ProcessingOptions, tracer ReceiptsTracer, spec *params.Spec, events *event.Feed[TransactionProcessedEvent]) (types.Receipts, error) {
	receipts := make(types.Receipts, 0, len(block.Transactions))
	var cumulativeGas uint64
	for i, tx := range block.Transactions {
		status := types.ReceiptStatusSuccessful
		if tx.To != nil && tx.Value != nil && tx.Value.Sign() > 0 {
			value := uint256.MustFromBig(tx.Value)
			if err := e.State.SubtractFromBalance(block.Header.Author, value, spec); err != nil {
				status = types.ReceiptStatusFailed
			} else if !e.State.AccountExists(*tx.To) {
				e.State.CreateAccount(*tx.To, value)
			} else if err := e.State.AddToBalance(*tx.To, value, spec); err != nil {
				status = types.ReceiptStatusFailed
			}
		}
		cumulativeGas += tx.GasLimit
		receipt := types.NewReceipt(tx.Hash(), status, cumulativeGas, tx.GasLimit, nil)
		receipts = append(receipts, receipt)
		if events != nil {
			if _, err := events.Send(TransactionProcessedEvent{Block: block, TxIndex: i, Receipt: receipt}); err != nil {
				return nil, err
			}
		}
	}
	return receipts, nil
}

// FixedRewardCalculator pays a single fixed reward to the block's author,
// mirroring the pre-EIP-4345 single-recipient block reward.
type FixedRewardCalculator struct {
	BlockReward *uint256.Int
}

func (c *FixedRewardCalculator) CalculateRewards(block *types.Block) ([]Reward, error) {
	if c.BlockReward == nil || c.BlockReward.IsZero() {
		return nil, nil
	}
	return []Reward{{Address: block.Header.Author, Kind: "block", Value: new(uint256.Int).Set(c.BlockReward)}}, nil
}

// NoopBeaconRootWriter is a BeaconRootStateWriter reference that records
// nothing and never fails — suitable for chains/tests that never activate
// Cancun, or as a starting point for a real EIP-4788 system-call writer.
type NoopBeaconRootWriter struct{}

func (NoopBeaconRootWriter) WriteBeaconRoot(root common.Hash, spec *params.Spec) error { return nil }

// InMemoryReceiptStorage is a reference ReceiptStorage that keeps every
// inserted block's receipts in memory, keyed by block hash.
type InMemoryReceiptStorage struct {
	byHash map[[32]byte]types.Receipts
}

func NewInMemoryReceiptStorage() *InMemoryReceiptStorage {
	return &InMemoryReceiptStorage{byHash: make(map[[32]byte]types.Receipts)}
}

func (s *InMemoryReceiptStorage) Insert(block *types.Block, receipts types.Receipts, isCanonical bool) error {
	s.byHash[block.Hash()] = receipts
	return nil
}

func (s *InMemoryReceiptStorage) Get(hash [32]byte) (types.Receipts, bool) {
	r, ok := s.byHash[hash]
	return r, ok
}
