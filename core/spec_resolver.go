package core

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/chainproc/chainproc/core/types"
	"github.com/chainproc/chainproc/params"
)

// CachedSpecProvider wraps a *params.ChainConfig with an LRU cache keyed by
// block number+time, since specs are pure functions of header content
// (spec.md §3's Spec invariant) and the branch driver resolves one per
// block, often across long branches that revisit nearby heights during
// restart/reorg handling.
type CachedSpecProvider struct {
	config               *params.ChainConfig
	cache                *lru.Cache
	daoHeight            uint64
	daoHeightSet         bool
	genesisUnavailableOK bool
}

// NewCachedSpecProvider builds a spec provider over config with a cache
// sized for cacheSize distinct (number, time) pairs.
func NewCachedSpecProvider(config *params.ChainConfig, cacheSize int) *CachedSpecProvider {
	cache, _ := lru.New(cacheSize)
	p := &CachedSpecProvider{config: config, cache: cache, genesisUnavailableOK: config.GenesisStateUnavailable}
	if config.DAOForkBlock != nil && config.DAOForkSupport {
		p.daoHeight = config.DAOForkBlock.Uint64()
		p.daoHeightSet = true
	}
	return p
}

type specCacheKey struct {
	number int64
	time   uint64
}

func (p *CachedSpecProvider) GetSpec(header *types.Header) *params.Spec {
	key := specCacheKey{number: header.Number.Int64(), time: header.Time}
	if v, ok := p.cache.Get(key); ok {
		return v.(*params.Spec)
	}
	spec := params.Resolve(p.config, header.Number, header.Time)
	p.cache.Add(key, spec)
	return spec
}

func (p *CachedSpecProvider) DAOActivationHeight() (uint64, bool) { return p.daoHeight, p.daoHeightSet }

func (p *CachedSpecProvider) GenesisStateUnavailable() bool { return p.genesisUnavailableOK }
