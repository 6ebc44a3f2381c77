package cpamm

import "github.com/ethereum/go-ethereum/common"

// Orientation reports how a requested asset pair maps onto a stored pool.
type Orientation int

const (
	// PairNotFound means no pool exists for the pair under either order.
	PairNotFound Orientation = 0
	// PairForward means the pool stores the pair in the requested order.
	PairForward Orientation = 1
	// PairReversed means the pool stores the pair in the opposite order.
	PairReversed Orientation = 2
)

type poolKey struct {
	owner      common.Address
	tagA, tagB Tag
}

// Registry indexes pools by owner and asset pair. Pair lookups are
// orientation-aware: a pool created as (A, B) answers for (B, A) too, and
// only one pool may exist per owner and unordered pair.
//
// The registry performs no locking. Callers must serialize operations that
// touch the same pool; operations on distinct pools are independent.
type Registry struct {
	pools   map[poolKey]*Pool
	byShare map[Tag]*Pool
}

// NewRegistry returns an empty pool registry.
func NewRegistry() *Registry {
	return &Registry{
		pools:   make(map[poolKey]*Pool),
		byShare: make(map[Tag]*Pool),
	}
}

// CreatePool registers a pool for the pair (tagA, tagB) under owner, seeded
// with the given initial balances (which may be zero) and zero share supply.
// The argument order becomes the pool's canonical orientation. Fails with
// ErrPairAlreadyExists when a pool exists under either orientation.
func (r *Registry) CreatePool(owner common.Address, tagA, tagB Tag, initialA, initialB uint64) (*Pool, error) {
	if tagA == tagB {
		return nil, ErrAssetTypeMismatch
	}
	if r.FindPair(owner, tagA, tagB) != PairNotFound {
		return nil, ErrPairAlreadyExists
	}

	shareTag := ShareTag(owner, tagA, tagB)
	pool := &Pool{
		owner:    owner,
		tagA:     tagA,
		tagB:     tagB,
		shareTag: shareTag,
		reserveA: initialA,
		reserveB: initialB,
		burnt:    NewAsset(shareTag, 0),
	}
	r.pools[poolKey{owner: owner, tagA: tagA, tagB: tagB}] = pool
	r.byShare[shareTag] = pool
	return pool, nil
}

// FindPair probes both orientations of (tagA, tagB) under owner. All other
// operations resolve pair order through this single probe.
func (r *Registry) FindPair(owner common.Address, tagA, tagB Tag) Orientation {
	if _, ok := r.pools[poolKey{owner: owner, tagA: tagA, tagB: tagB}]; ok {
		return PairForward
	}
	if _, ok := r.pools[poolKey{owner: owner, tagA: tagB, tagB: tagA}]; ok {
		return PairReversed
	}
	return PairNotFound
}

// Lookup resolves the pool for (tagA, tagB) under owner together with the
// orientation the pair matched. Fails with ErrPairDoesNotExist.
func (r *Registry) Lookup(owner common.Address, tagA, tagB Tag) (*Pool, Orientation, error) {
	switch o := r.FindPair(owner, tagA, tagB); o {
	case PairForward:
		return r.pools[poolKey{owner: owner, tagA: tagA, tagB: tagB}], o, nil
	case PairReversed:
		return r.pools[poolKey{owner: owner, tagA: tagB, tagB: tagA}], o, nil
	default:
		return nil, PairNotFound, ErrPairDoesNotExist
	}
}

// lookupByShare resolves the pool that issued the given share tag.
func (r *Registry) lookupByShare(tag Tag) (*Pool, error) {
	pool, ok := r.byShare[tag]
	if !ok {
		return nil, ErrPairDoesNotExist
	}
	return pool, nil
}
