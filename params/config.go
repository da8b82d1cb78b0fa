// Package params holds the chain configuration that the spec resolver
// (core.CachedSpecProvider) turns into a per-block params.Spec. It is grounded on
// go-ethereum's params.ChainConfig: a flat struct of fork-activation
// heights/timestamps that higher layers query with IsXxx helpers, rather
// than a single "current version" enum.
package params

import "math/big"

// ChainConfig is the immutable, chain-wide fork schedule. A ChainConfig is
// shared by every block in a chain; params.Resolve derives the per-header
// Spec from it.
type ChainConfig struct {
	ChainID *big.Int

	HomesteadBlock *big.Int
	ByzantiumBlock *big.Int
	EIP150Block    *big.Int
	EIP155Block    *big.Int
	EIP158Block    *big.Int

	DAOForkBlock   *big.Int // height of the one-shot DAO balance migration
	DAOForkSupport bool

	ShanghaiTime *uint64 // withdrawals (EIP-4895) activation
	CancunTime   *uint64 // beacon-root (EIP-4788) and blob-gas activation

	// GenesisStateUnavailable marks chains imported from a snapshot where
	// the genesis block's world state was never materialized locally; the
	// per-block pipeline must not attempt to recompute its state root.
	GenesisStateUnavailable bool
}

func isActive(threshold *big.Int, number *big.Int) bool {
	return threshold != nil && number != nil && threshold.Cmp(number) <= 0
}

func isActiveTime(threshold *uint64, time uint64) bool {
	return threshold != nil && *threshold <= time
}

// IsHomestead reports whether number is at or past the Homestead fork.
func (c *ChainConfig) IsHomestead(number *big.Int) bool { return isActive(c.HomesteadBlock, number) }

// IsByzantium reports whether number is at or past the Byzantium fork.
func (c *ChainConfig) IsByzantium(number *big.Int) bool { return isActive(c.ByzantiumBlock, number) }

// IsEIP158 reports whether number is at or past EIP-158 (state clearing).
func (c *ChainConfig) IsEIP158(number *big.Int) bool { return isActive(c.EIP158Block, number) }

// IsDAOFork reports whether number is exactly the configured DAO fork
// height. The DAO migration is a one-shot operation (§4.2 step 1).
func (c *ChainConfig) IsDAOFork(number *big.Int) bool {
	return c.DAOForkSupport && c.DAOForkBlock != nil && number != nil && c.DAOForkBlock.Cmp(number) == 0
}

// IsShanghai reports whether time is at or past the Shanghai fork
// (post-Shanghai withdrawals, §4.1 step 6/10).
func (c *ChainConfig) IsShanghai(time uint64) bool { return isActiveTime(c.ShanghaiTime, time) }

// IsCancun reports whether time is at or past the Cancun fork (beacon-root
// handling and blob gas, §4.2 step 5/7).
func (c *ChainConfig) IsCancun(time uint64) bool { return isActiveTime(c.CancunTime, time) }

// Spec is the immutable bundle of rule flags resolved for one specific
// block header. Resolve, which builds it, is a pure function of header
// content (§3).
type Spec struct {
	Number *big.Int
	Time   uint64

	IsByzantiumActive bool
	IsEIP158Active    bool
	IsShanghaiActive  bool // withdrawals
	IsCancunActive    bool // beacon root + blob gas

	GenesisStateUnavailable bool
}

// Resolve derives the Spec active for header (number, time) under config.
// Grounded on go-ethereum's params.ChainConfig.Rules(num, isMerge, time).
func Resolve(config *ChainConfig, number *big.Int, time uint64) *Spec {
	return &Spec{
		Number:                  new(big.Int).Set(number),
		Time:                    time,
		IsByzantiumActive:       config.IsByzantium(number),
		IsEIP158Active:          config.IsEIP158(number),
		IsShanghaiActive:        config.IsShanghai(time),
		IsCancunActive:          config.IsCancun(time),
		GenesisStateUnavailable: config.GenesisStateUnavailable && number.Sign() == 0,
	}
}
