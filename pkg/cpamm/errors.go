package cpamm

import "errors"

var (
	// ErrPairAlreadyExists is returned by CreatePool when a pool for the
	// owner and asset pair exists under either orientation.
	ErrPairAlreadyExists = errors.New("pair already exists")

	// ErrPairDoesNotExist is returned when no pool matches the owner and
	// asset pair under either orientation.
	ErrPairDoesNotExist = errors.New("pair does not exist")

	ErrInsufficientLiquidityMinted = errors.New("insufficient liquidity minted")
	ErrInsufficientLiquidityBurned = errors.New("insufficient liquidity burned")
	ErrInsufficientInputAmount     = errors.New("insufficient input amount")
	ErrInsufficientOutputAmount    = errors.New("insufficient output amount")
	ErrInsufficientLiquidity       = errors.New("insufficient liquidity")

	// ErrArithmeticFault signals uint64 overflow or underflow in pool
	// arithmetic. Operations fail before any state is written.
	ErrArithmeticFault = errors.New("arithmetic overflow or underflow")

	// ErrAssetTypeMismatch is returned when assets of different tags are
	// joined, or a pool is created over a single asset class.
	ErrAssetTypeMismatch = errors.New("asset type mismatch")

	// ErrInsufficientBalance is returned by Asset.Split when the requested
	// amount exceeds the asset's value.
	ErrInsufficientBalance = errors.New("insufficient asset balance")

	// ErrNonZeroAsset is returned by Asset.DestroyZero on a non-empty asset.
	ErrNonZeroAsset = errors.New("asset balance is not zero")
)
