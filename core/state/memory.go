package state

import (
	"fmt"
	"sort"
	"sync"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/holiman/uint256"

	"github.com/chainproc/chainproc/common"
	"github.com/chainproc/chainproc/crypto"
	"github.com/chainproc/chainproc/errs"
	"github.com/chainproc/chainproc/params"
)

// account is the committed balance/existence record for one address.
type account struct {
	exists  bool
	balance *uint256.Int
}

// MemoryState is a reference WorldState backed by an in-memory committed
// account set plus a bounded read-through cache. The cache is the same
// shape a trie-backed implementation would use (a hot-account LRU in front
// of slower storage); here it fronts the in-process map, mirroring
// go-ethereum's StateDB.originStorage pattern of caching values read
// during a block so repeated lookups don't re-walk the backing store.
type MemoryState struct {
	mu sync.Mutex

	current map[common.Address]*account // committed state as of the active root
	pending map[common.Address]*account // mutations since the last Commit

	root     Root
	history  map[Root]map[common.Address]*account // committed snapshots, for SetStateRoot
	readHot  *fastcache.Cache                      // bounded cache of recently read or written balances
}

// NewMemoryState returns an empty world state at the zero root.
func NewMemoryState() *MemoryState {
	ms := &MemoryState{
		current: make(map[common.Address]*account),
		pending: make(map[common.Address]*account),
		history: make(map[Root]map[common.Address]*account),
		readHot: fastcache.New(4 * 1024 * 1024),
	}
	ms.history[Root{}] = cloneAccounts(ms.current)
	return ms
}

func cloneAccounts(in map[common.Address]*account) map[common.Address]*account {
	out := make(map[common.Address]*account, len(in))
	for addr, a := range in {
		out[addr] = &account{exists: a.exists, balance: new(uint256.Int).Set(a.balance)}
	}
	return out
}

func (ms *MemoryState) StateRoot() Root {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.root
}

func (ms *MemoryState) SetStateRoot(root Root) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	snapshot, ok := ms.history[root]
	if !ok {
		return &errs.StateFailureError{Op: "SetStateRoot", Err: rootNotFoundErr(root)}
	}
	ms.current = cloneAccounts(snapshot)
	ms.pending = make(map[common.Address]*account)
	ms.root = root
	ms.readHot.Reset()
	return nil
}

func (ms *MemoryState) Reset() {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.pending = make(map[common.Address]*account)
	ms.readHot.Reset()
}

func (ms *MemoryState) Commit(spec *params.Spec) error {
	return ms.CommitWithTracer(spec, nil)
}

func (ms *MemoryState) CommitWithTracer(spec *params.Spec, tracer StateTracer) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	for addr, next := range ms.pending {
		prev, existed := ms.current[addr]
		ms.current[addr] = next
		if tracer != nil {
			var prevBalance *uint256.Int
			if existed {
				prevBalance = prev.balance
			} else {
				prevBalance = new(uint256.Int)
			}
			tracer.OnBalanceChange(addr, prevBalance, next.balance)
		}
	}
	ms.pending = make(map[common.Address]*account)
	return nil
}

func (ms *MemoryState) CommitTree(blockNumber uint64) error {
	// No backing trie in the reference implementation; real
	// implementations flush dirty trie nodes to their store here.
	return nil
}

func (ms *MemoryState) RecalculateStateRoot() (Root, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	addrs := make([]common.Address, 0, len(ms.current))
	for addr := range ms.current {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool {
		for k := 0; k < common.AddressLength; k++ {
			if addrs[i][k] != addrs[j][k] {
				return addrs[i][k] < addrs[j][k]
			}
		}
		return false
	})

	buf := make([]byte, 0, len(addrs)*(common.AddressLength+8))
	for _, addr := range addrs {
		a := ms.current[addr]
		buf = append(buf, addr.Bytes()...)
		bal := a.balance.Bytes32()
		buf = append(buf, bal[:]...)
	}
	root := crypto.Keccak256Hash(buf)
	ms.history[root] = cloneAccounts(ms.current)
	ms.root = root
	return root, nil
}

func (ms *MemoryState) AccountExists(addr common.Address) bool {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if a, ok := ms.pending[addr]; ok {
		return a.exists
	}
	a, ok := ms.current[addr]
	return ok && a.exists
}

func (ms *MemoryState) CreateAccount(addr common.Address, value *uint256.Int) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.pending[addr] = &account{exists: true, balance: new(uint256.Int).Set(value)}
}

func (ms *MemoryState) AddToBalance(addr common.Address, value *uint256.Int, spec *params.Spec) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	a := ms.lockedAccountForWrite(addr)
	a.balance.Add(a.balance, value)
	ms.pending[addr] = a
	ms.cacheBalance(addr, a.balance)
	return nil
}

func (ms *MemoryState) SubtractFromBalance(addr common.Address, value *uint256.Int, spec *params.Spec) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	a := ms.lockedAccountForWrite(addr)
	if a.balance.Lt(value) {
		return &errs.StateFailureError{Op: "SubtractFromBalance", Err: insufficientBalanceErr(addr)}
	}
	a.balance.Sub(a.balance, value)
	ms.pending[addr] = a
	ms.cacheBalance(addr, a.balance)
	return nil
}

func (ms *MemoryState) GetBalance(addr common.Address) *uint256.Int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if a, ok := ms.pending[addr]; ok {
		return new(uint256.Int).Set(a.balance)
	}
	if b, ok := ms.readCachedBalance(addr); ok {
		return b
	}
	if a, ok := ms.current[addr]; ok {
		ms.cacheBalance(addr, a.balance)
		return new(uint256.Int).Set(a.balance)
	}
	return new(uint256.Int)
}

// lockedAccountForWrite returns the account ms.pending should hold for
// addr, seeding it from ms.current (or a fresh zero account) if this is
// the write's first touch this block. Caller must hold ms.mu.
func (ms *MemoryState) lockedAccountForWrite(addr common.Address) *account {
	if a, ok := ms.pending[addr]; ok {
		return a
	}
	if a, ok := ms.current[addr]; ok {
		return &account{exists: a.exists, balance: new(uint256.Int).Set(a.balance)}
	}
	return &account{exists: true, balance: new(uint256.Int)}
}

func (ms *MemoryState) cacheBalance(addr common.Address, balance *uint256.Int) {
	b := balance.Bytes32()
	ms.readHot.Set(addr.Bytes(), b[:])
}

func (ms *MemoryState) readCachedBalance(addr common.Address) (*uint256.Int, bool) {
	raw, ok := ms.readHot.HasGet(nil, addr.Bytes())
	if !ok || len(raw) != 32 {
		return nil, false
	}
	var arr [32]byte
	copy(arr[:], raw)
	return new(uint256.Int).SetBytes32(arr[:]), true
}

func rootNotFoundErr(root Root) error {
	return fmt.Errorf("state root %s was never observed", root)
}

func insufficientBalanceErr(addr common.Address) error {
	return fmt.Errorf("account %s has insufficient balance", addr)
}
