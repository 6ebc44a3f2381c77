package cpamm

import "github.com/ethereum/go-ethereum/common"

// QuoteAmountOut prices an exact-input trade against the given reserves
// without touching any pool. With the 0.3% fee retained on the input:
//
//	out = floor(amountIn*997 * reserveOut / (reserveIn*1000 + amountIn*997))
//
// Fails with ErrInsufficientInputAmount on a zero input,
// ErrInsufficientLiquidity on a zero reserve, and ErrArithmeticFault when a
// multiplication leaves uint64 range.
func QuoteAmountOut(reserveIn, reserveOut, amountIn uint64) (uint64, error) {
	if amountIn == 0 {
		return 0, ErrInsufficientInputAmount
	}
	if reserveIn == 0 || reserveOut == 0 {
		return 0, ErrInsufficientLiquidity
	}
	amountInWithFee, err := mul64(amountIn, FeeMul)
	if err != nil {
		return 0, err
	}
	numerator, err := mul64(amountInWithFee, reserveOut)
	if err != nil {
		return 0, err
	}
	scaledReserve, err := mul64(reserveIn, FeeDen)
	if err != nil {
		return 0, err
	}
	denominator, err := add64(scaledReserve, amountInWithFee)
	if err != nil {
		return 0, err
	}
	return numerator / denominator, nil
}

// QuoteAmountIn prices an exact-output trade, rounding the required input
// up so the pool is never shortchanged:
//
//	in = floor(reserveIn*amountOut*1000 / (reserveOut - amountOut*997)) + 1
//
// Fails with ErrInsufficientOutputAmount on a zero output and
// ErrInsufficientLiquidity on a zero reserve. Any amountOut with
// amountOut*997 >= reserveOut surfaces ErrArithmeticFault: the denominator
// would underflow, and the formula has no defined result there.
func QuoteAmountIn(reserveIn, reserveOut, amountOut uint64) (uint64, error) {
	if amountOut == 0 {
		return 0, ErrInsufficientOutputAmount
	}
	if reserveIn == 0 || reserveOut == 0 {
		return 0, ErrInsufficientLiquidity
	}
	scaledOut, err := mul64(amountOut, FeeMul)
	if err != nil {
		return 0, err
	}
	if scaledOut >= reserveOut {
		return 0, ErrArithmeticFault
	}
	denominator := reserveOut - scaledOut
	numerator, err := mul64(reserveIn, amountOut)
	if err != nil {
		return 0, err
	}
	numerator, err = mul64(numerator, FeeDen)
	if err != nil {
		return 0, err
	}
	return add64(numerator/denominator, 1)
}

// QuoteOut resolves the owner's pool for (tagIn, tagOut) and prices an
// exact-input trade against its current reserves. No state changes.
func (r *Registry) QuoteOut(owner common.Address, tagIn, tagOut Tag, amountIn uint64) (uint64, error) {
	pool, orientation, err := r.Lookup(owner, tagIn, tagOut)
	if err != nil {
		return 0, err
	}
	reserveIn, reserveOut := pool.reserves(orientation)
	return QuoteAmountOut(reserveIn, reserveOut, amountIn)
}

// QuoteIn resolves the owner's pool for (tagIn, tagOut) and prices an
// exact-output trade against its current reserves. No state changes.
func (r *Registry) QuoteIn(owner common.Address, tagIn, tagOut Tag, amountOut uint64) (uint64, error) {
	pool, orientation, err := r.Lookup(owner, tagIn, tagOut)
	if err != nil {
		return 0, err
	}
	reserveIn, reserveOut := pool.reserves(orientation)
	return QuoteAmountIn(reserveIn, reserveOut, amountOut)
}

// Swap trades assetIn against the owner's pool for (assetIn's tag, tagOut)
// and returns the priced output asset. Fails with
// ErrInsufficientOutputAmount when the output is zero or below
// minAmountOut, and with ErrInsufficientLiquidity when the output would
// consume the entire opposing reserve. Reserves are only written once every
// check has passed.
func (r *Registry) Swap(owner common.Address, assetIn Asset, tagOut Tag, minAmountOut uint64) (Asset, error) {
	pool, orientation, err := r.Lookup(owner, assetIn.Tag(), tagOut)
	if err != nil {
		return Asset{}, err
	}
	amountIn := assetIn.Value()
	reserveIn, reserveOut := pool.reserves(orientation)

	amountOut, err := QuoteAmountOut(reserveIn, reserveOut, amountIn)
	if err != nil {
		return Asset{}, err
	}
	if amountOut == 0 || amountOut < minAmountOut {
		return Asset{}, ErrInsufficientOutputAmount
	}
	if amountOut >= reserveOut {
		return Asset{}, ErrInsufficientLiquidity
	}
	newReserveIn, err := add64(reserveIn, amountIn)
	if err != nil {
		return Asset{}, err
	}

	if orientation == PairReversed {
		pool.reserveB = newReserveIn
		pool.reserveA = reserveOut - amountOut
	} else {
		pool.reserveA = newReserveIn
		pool.reserveB = reserveOut - amountOut
	}
	return NewAsset(tagOut, amountOut), nil
}

// SwapTo performs an exact-output trade: it quotes the required input,
// withdraws exactly that much from assetIn in place, and swaps it with
// amountOut as the floor. assetIn keeps any surplus; on failure it is
// untouched (ErrInsufficientBalance when it cannot cover the quote).
func (r *Registry) SwapTo(owner common.Address, assetIn *Asset, tagOut Tag, amountOut uint64) (Asset, error) {
	amountIn, err := r.QuoteIn(owner, assetIn.Tag(), tagOut, amountOut)
	if err != nil {
		return Asset{}, err
	}
	payment, err := assetIn.Split(amountIn)
	if err != nil {
		return Asset{}, err
	}
	out, err := r.Swap(owner, payment, tagOut, amountOut)
	if err != nil {
		// Swap rejected the payment without taking it; hand it back.
		if joinErr := assetIn.Join(payment); joinErr != nil {
			return Asset{}, joinErr
		}
		return Asset{}, err
	}
	return out, nil
}
