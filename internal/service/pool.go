package service

import (
	"sync"

	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/nulln0ne/amm-engine/pkg/cpamm"
)

// PoolService runs the pool engine for the API. The core itself is
// lock-free, so the service supplies the serialization the engine expects
// from its host: a read lock over the registry structure plus one mutex per
// pool, letting operations on distinct pools proceed concurrently.
type PoolService struct {
	BaseService

	// mu guards the registry's pool set and the locks map. Pool creation
	// takes it exclusively; every other operation only reads the structure.
	mu       sync.RWMutex
	registry *cpamm.Registry
	locks    map[cpamm.Tag]*sync.Mutex
}

// NewPoolService constructs a PoolService with an empty registry.
func NewPoolService(logger *slog.Logger) *PoolService {
	return &PoolService{
		BaseService: BaseService{logger: logger},
		registry:    cpamm.NewRegistry(),
		locks:       make(map[cpamm.Tag]*sync.Mutex),
	}
}

// PoolState is a point-in-time snapshot of one pool.
type PoolState struct {
	Owner       common.Address `json:"owner"`
	TagA        cpamm.Tag      `json:"tag_a"`
	TagB        cpamm.Tag      `json:"tag_b"`
	ReserveA    uint64         `json:"reserve_a"`
	ReserveB    uint64         `json:"reserve_b"`
	TotalSupply uint64         `json:"total_supply"`
	BurntSupply uint64         `json:"burnt_supply"`
	ShareTag    cpamm.Tag      `json:"share_tag"`
}

// MintResult reports the shares issued by AddLiquidity.
type MintResult struct {
	Shares   uint64    `json:"shares"`
	ShareTag cpamm.Tag `json:"share_tag"`
	Pool     PoolState `json:"pool"`
}

// BurnResult reports the assets paid out by RemoveLiquidity.
type BurnResult struct {
	TagA    cpamm.Tag `json:"tag_a"`
	AmountA uint64    `json:"amount_a"`
	TagB    cpamm.Tag `json:"tag_b"`
	AmountB uint64    `json:"amount_b"`
	Pool    PoolState `json:"pool"`
}

// SwapResult reports an executed trade.
type SwapResult struct {
	TagIn     cpamm.Tag `json:"tag_in"`
	AmountIn  uint64    `json:"amount_in"`
	TagOut    cpamm.Tag `json:"tag_out"`
	AmountOut uint64    `json:"amount_out"`
	Pool      PoolState `json:"pool"`
}

func snapshot(p *cpamm.Pool) PoolState {
	a, b := p.Reserves()
	tagA, tagB := p.Tags()
	return PoolState{
		Owner:       p.Owner(),
		TagA:        tagA,
		TagB:        tagB,
		ReserveA:    a,
		ReserveB:    b,
		TotalSupply: p.TotalSupply(),
		BurntSupply: p.BurntSupply(),
		ShareTag:    p.ShareTag(),
	}
}

// CreatePool registers a pool for (tagA, tagB) under owner with the given
// initial balances.
func (s *PoolService) CreatePool(owner common.Address, tagA, tagB cpamm.Tag, initialA, initialB uint64) (*PoolState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool, err := s.registry.CreatePool(owner, tagA, tagB, initialA, initialB)
	if err != nil {
		return nil, err
	}
	s.locks[pool.ShareTag()] = &sync.Mutex{}
	s.logger.Info("pool created", "owner", owner.Hex(), "tagA", tagA, "tagB", tagB)

	state := snapshot(pool)
	return &state, nil
}

// PoolInfo returns the pool for (tagA, tagB) under owner in either
// orientation, together with the stored orientation.
func (s *PoolService) PoolInfo(owner common.Address, tagA, tagB cpamm.Tag) (*PoolState, cpamm.Orientation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pool, orientation, err := s.registry.Lookup(owner, tagA, tagB)
	if err != nil {
		return nil, cpamm.PairNotFound, err
	}
	l := s.locks[pool.ShareTag()]
	l.Lock()
	defer l.Unlock()
	state := snapshot(pool)
	return &state, orientation, nil
}

// FindPair probes both orientations without failing on a miss.
func (s *PoolService) FindPair(owner common.Address, tagA, tagB cpamm.Tag) cpamm.Orientation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry.FindPair(owner, tagA, tagB)
}

// lockPool resolves the pool for the pair and acquires its mutex. The
// caller must hold mu.RLock and must unlock the returned mutex.
func (s *PoolService) lockPool(owner common.Address, tagA, tagB cpamm.Tag) (*cpamm.Pool, *sync.Mutex, error) {
	pool, _, err := s.registry.Lookup(owner, tagA, tagB)
	if err != nil {
		return nil, nil, err
	}
	l := s.locks[pool.ShareTag()]
	l.Lock()
	return pool, l, nil
}

// AddLiquidity deposits both amounts and returns the minted shares.
func (s *PoolService) AddLiquidity(owner common.Address, tagA cpamm.Tag, amountA uint64, tagB cpamm.Tag, amountB uint64) (*MintResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pool, l, err := s.lockPool(owner, tagA, tagB)
	if err != nil {
		return nil, err
	}
	defer l.Unlock()

	minted, err := s.registry.Mint(owner, cpamm.NewAsset(tagA, amountA), cpamm.NewAsset(tagB, amountB))
	if err != nil {
		return nil, err
	}
	s.logger.Debug("liquidity added", "owner", owner.Hex(), "shares", minted.Value())
	return &MintResult{Shares: minted.Value(), ShareTag: minted.Tag(), Pool: snapshot(pool)}, nil
}

// RemoveLiquidity retires shares of the given pool and pays out both legs.
func (s *PoolService) RemoveLiquidity(owner common.Address, shareTag cpamm.Tag, shares uint64) (*BurnResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.locks[shareTag]
	if !ok {
		return nil, cpamm.ErrPairDoesNotExist
	}
	l.Lock()
	defer l.Unlock()

	outA, outB, err := s.registry.Burn(owner, cpamm.NewAsset(shareTag, shares))
	if err != nil {
		return nil, err
	}
	pool, _, err := s.registry.Lookup(owner, outA.Tag(), outB.Tag())
	if err != nil {
		return nil, err
	}
	s.logger.Debug("liquidity removed", "owner", owner.Hex(), "shares", shares,
		"outA", outA.Value(), "outB", outB.Value())
	return &BurnResult{
		TagA:    outA.Tag(),
		AmountA: outA.Value(),
		TagB:    outB.Tag(),
		AmountB: outB.Value(),
		Pool:    snapshot(pool),
	}, nil
}

// Swap trades an exact input amount of tagIn for tagOut, enforcing the
// caller's minimum output.
func (s *PoolService) Swap(owner common.Address, tagIn cpamm.Tag, amountIn uint64, tagOut cpamm.Tag, minAmountOut uint64) (*SwapResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pool, l, err := s.lockPool(owner, tagIn, tagOut)
	if err != nil {
		return nil, err
	}
	defer l.Unlock()

	out, err := s.registry.Swap(owner, cpamm.NewAsset(tagIn, amountIn), tagOut, minAmountOut)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("swap executed", "owner", owner.Hex(),
		"in", amountIn, "tagIn", tagIn, "out", out.Value(), "tagOut", tagOut)
	return &SwapResult{
		TagIn:     tagIn,
		AmountIn:  amountIn,
		TagOut:    tagOut,
		AmountOut: out.Value(),
		Pool:      snapshot(pool),
	}, nil
}

// SwapTo trades for an exact output amount, spending no more than
// maxAmountIn of tagIn. The reported AmountIn is what the trade consumed.
func (s *PoolService) SwapTo(owner common.Address, tagIn cpamm.Tag, maxAmountIn uint64, tagOut cpamm.Tag, amountOut uint64) (*SwapResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pool, l, err := s.lockPool(owner, tagIn, tagOut)
	if err != nil {
		return nil, err
	}
	defer l.Unlock()

	budget := cpamm.NewAsset(tagIn, maxAmountIn)
	out, err := s.registry.SwapTo(owner, &budget, tagOut, amountOut)
	if err != nil {
		return nil, err
	}
	spent := maxAmountIn - budget.Value()
	s.logger.Debug("exact-output swap executed", "owner", owner.Hex(),
		"spent", spent, "tagIn", tagIn, "out", out.Value(), "tagOut", tagOut)
	return &SwapResult{
		TagIn:     tagIn,
		AmountIn:  spent,
		TagOut:    tagOut,
		AmountOut: out.Value(),
		Pool:      snapshot(pool),
	}, nil
}

// QuoteOut prices an exact-input trade without touching the pool.
func (s *PoolService) QuoteOut(owner common.Address, tagIn, tagOut cpamm.Tag, amountIn uint64) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, l, err := s.lockPool(owner, tagIn, tagOut)
	if err != nil {
		return 0, err
	}
	defer l.Unlock()
	return s.registry.QuoteOut(owner, tagIn, tagOut, amountIn)
}

// QuoteIn prices an exact-output trade without touching the pool.
func (s *PoolService) QuoteIn(owner common.Address, tagIn, tagOut cpamm.Tag, amountOut uint64) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, l, err := s.lockPool(owner, tagIn, tagOut)
	if err != nil {
		return 0, err
	}
	defer l.Unlock()
	return s.registry.QuoteIn(owner, tagIn, tagOut, amountOut)
}
