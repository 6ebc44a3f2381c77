package cpamm

import "github.com/ethereum/go-ethereum/common"

// Mint deposits both assets into the owner's pool for the deposits' pair
// and returns newly issued shares. The pool is resolved from the deposits'
// tags under either orientation (ErrPairDoesNotExist when absent).
//
// On the first deposit the minted amount is sqrt(amountA*amountB) minus the
// MinimumLiquidity floor, which is added to the supply without ever being
// issued; the deposit fails with ErrInsufficientLiquidityMinted when the
// root does not exceed the floor. Subsequent deposits mint pro rata against
// the more constraining reserve, failing with the same error when the
// floored proportion is zero. The pool is only written once every check and
// every multiplication has passed.
func (r *Registry) Mint(owner common.Address, depositA, depositB Asset) (Asset, error) {
	pool, orientation, err := r.Lookup(owner, depositA.Tag(), depositB.Tag())
	if err != nil {
		return Asset{}, err
	}
	if orientation == PairReversed {
		depositA, depositB = depositB, depositA
	}
	amountA, amountB := depositA.Value(), depositB.Value()

	var minted, locked uint64
	if pool.totalSupply == 0 {
		product, err := mul64(amountA, amountB)
		if err != nil {
			return Asset{}, err
		}
		root := Sqrt(product)
		if root <= MinimumLiquidity {
			return Asset{}, ErrInsufficientLiquidityMinted
		}
		minted = root - MinimumLiquidity
		locked = MinimumLiquidity
	} else {
		if pool.reserveA == 0 || pool.reserveB == 0 {
			return Asset{}, ErrInsufficientLiquidity
		}
		byA, err := mul64(amountA, pool.totalSupply)
		if err != nil {
			return Asset{}, err
		}
		byB, err := mul64(amountB, pool.totalSupply)
		if err != nil {
			return Asset{}, err
		}
		minted = Min(byA/pool.reserveA, byB/pool.reserveB)
		if minted == 0 {
			return Asset{}, ErrInsufficientLiquidityMinted
		}
	}

	newReserveA, err := add64(pool.reserveA, amountA)
	if err != nil {
		return Asset{}, err
	}
	newReserveB, err := add64(pool.reserveB, amountB)
	if err != nil {
		return Asset{}, err
	}
	newSupply, err := add64(pool.totalSupply, minted)
	if err != nil {
		return Asset{}, err
	}
	newSupply, err = add64(newSupply, locked)
	if err != nil {
		return Asset{}, err
	}

	pool.reserveA = newReserveA
	pool.reserveB = newReserveB
	pool.totalSupply = newSupply
	pool.lockedSupply += locked
	return NewAsset(pool.shareTag, minted), nil
}

// Burn retires the given shares and withdraws the pro-rata portion of both
// reserves, valued at the current balances so accrued swap fees pay out to
// every holder. The pool is resolved from the shares' tag and must belong
// to owner (ErrPairDoesNotExist for a foreign share tag or a wrong owner).
// Fails with
// ErrInsufficientLiquidityBurned when either floored portion is zero.
// Retired shares are joined into the pool's burnt accumulator and never
// reissued.
func (r *Registry) Burn(owner common.Address, shares Asset) (Asset, Asset, error) {
	pool, err := r.lookupByShare(shares.Tag())
	if err != nil {
		return Asset{}, Asset{}, err
	}
	if pool.owner != owner {
		return Asset{}, Asset{}, ErrPairDoesNotExist
	}
	if pool.totalSupply == 0 {
		return Asset{}, Asset{}, ErrInsufficientLiquidityBurned
	}
	value := shares.Value()

	byA, err := mul64(value, pool.reserveA)
	if err != nil {
		return Asset{}, Asset{}, err
	}
	byB, err := mul64(value, pool.reserveB)
	if err != nil {
		return Asset{}, Asset{}, err
	}
	amountA := byA / pool.totalSupply
	amountB := byB / pool.totalSupply
	if amountA == 0 || amountB == 0 {
		return Asset{}, Asset{}, ErrInsufficientLiquidityBurned
	}
	newSupply, err := sub64(pool.totalSupply, value)
	if err != nil {
		return Asset{}, Asset{}, err
	}

	if err := pool.burnt.Join(shares); err != nil {
		return Asset{}, Asset{}, err
	}
	pool.totalSupply = newSupply
	pool.reserveA -= amountA
	pool.reserveB -= amountB
	return NewAsset(pool.tagA, amountA), NewAsset(pool.tagB, amountB), nil
}
