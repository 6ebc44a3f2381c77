package cpamm

import "github.com/ethereum/go-ethereum/common"

// MinimumLiquidity is the share floor locked on a pool's first deposit.
// It is counted in totalSupply but never attributed to any holder, keeping
// the per-share price finite under tiny initial liquidity and the first
// burn away from a zero divisor.
const MinimumLiquidity uint64 = 1000

// FeeMul and FeeDen encode the 0.3% swap fee: 997/1000 of the input
// participates in pricing, the remainder accrues to the reserves.
const (
	FeeMul uint64 = 997
	FeeDen uint64 = 1000
)

// Pool holds the reserves and share accounting for one asset pair under one
// owner. tagA/tagB keep the orientation the pool was created with; lookups
// through the registry report which orientation a caller's pair matched.
type Pool struct {
	owner      common.Address
	tagA, tagB Tag
	shareTag   Tag

	reserveA    uint64
	reserveB    uint64
	totalSupply uint64

	// lockedSupply is the MinimumLiquidity quantity counted in totalSupply
	// without a backing share asset. burnt holds real share assets retired
	// through Burn. The two sinks are distinct and both irreversible.
	lockedSupply uint64
	burnt        Asset
}

// Owner returns the identity the pool was created under.
func (p *Pool) Owner() common.Address { return p.owner }

// Tags returns the asset pair in creation orientation.
func (p *Pool) Tags() (Tag, Tag) { return p.tagA, p.tagB }

// ShareTag returns the tag of this pool's liquidity shares.
func (p *Pool) ShareTag() Tag { return p.shareTag }

// Reserves returns the held balances in creation orientation.
func (p *Pool) Reserves() (uint64, uint64) { return p.reserveA, p.reserveB }

// TotalSupply returns the outstanding share units, including the locked
// minimum and excluding shares already retired through Burn.
func (p *Pool) TotalSupply() uint64 { return p.totalSupply }

// LockedSupply returns the unattributed minimum-liquidity quantity.
func (p *Pool) LockedSupply() uint64 { return p.lockedSupply }

// BurntSupply returns the value of shares permanently retired through Burn.
func (p *Pool) BurntSupply() uint64 { return p.burnt.Value() }

// reserves maps the pool's balances to the caller's (in, out) order.
func (p *Pool) reserves(o Orientation) (reserveIn, reserveOut uint64) {
	if o == PairReversed {
		return p.reserveB, p.reserveA
	}
	return p.reserveA, p.reserveB
}
