package types

import "github.com/chainproc/chainproc/common"

// ReceiptStatus mirrors go-ethereum's post-Byzantium receipt status byte.
type ReceiptStatus uint64

const (
	ReceiptStatusFailed     ReceiptStatus = 0
	ReceiptStatusSuccessful ReceiptStatus = 1
)

// Log is a single EVM log entry, enough of it to feed the receipts bloom.
type Log struct {
	Address common.Address
	Topics  []common.Hash
	Data    []byte
}

// bloomKeys returns the byte strings the logs bloom filter is built from:
// the log's address and each of its topics, matching go-ethereum's
// core/types.Receipt.Bloom construction (bloom9).
func (l *Log) bloomKeys() [][]byte {
	keys := make([][]byte, 0, 1+len(l.Topics))
	keys = append(keys, l.Address.Bytes())
	for _, t := range l.Topics {
		keys = append(keys, t.Bytes())
	}
	return keys
}

// Receipt is the per-transaction record of execution effects. Receipts are
// produced in transaction order and ordered identically to the block's
// transaction vector (spec.md §3 invariant).
type Receipt struct {
	TxHash            common.Hash
	Status            ReceiptStatus
	CumulativeGasUsed uint64
	GasUsed           uint64
	Logs              []*Log
	Bloom             common.Bloom
}

// NewReceipt builds a receipt and derives its bloom filter from its logs,
// mirroring go-ethereum's core/types.NewReceipt + CreateBloom.
func NewReceipt(txHash common.Hash, status ReceiptStatus, cumulativeGasUsed, gasUsed uint64, logs []*Log) *Receipt {
	r := &Receipt{
		TxHash:            txHash,
		Status:            status,
		CumulativeGasUsed: cumulativeGasUsed,
		GasUsed:           gasUsed,
		Logs:              logs,
	}
	for _, l := range logs {
		for _, k := range l.bloomKeys() {
			r.Bloom.Add(k)
		}
	}
	return r
}

// Receipts is an ordered list of receipts, one per transaction.
type Receipts []*Receipt

// Bloom ORs every receipt's bloom filter into the block-wide logs bloom,
// which the per-block pipeline stores on the processed header alongside
// the receipts root.
func (rs Receipts) Bloom() common.Bloom {
	var b common.Bloom
	for _, r := range rs {
		for i := range b {
			b[i] |= r.Bloom[i]
		}
	}
	return b
}
