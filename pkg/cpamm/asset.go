package cpamm

import "github.com/ethereum/go-ethereum/common"

// Tag identifies one fungible asset class. Tags are nominal: two assets mix
// only when their tags compare equal.
type Tag string

// ShareTag derives the tag of a pool's liquidity shares from the owner and
// the asset pair in creation order. Pools over the same pair under different
// owners therefore issue non-fungible shares.
func ShareTag(owner common.Address, tagA, tagB Tag) Tag {
	return Tag("lp/" + owner.Hex() + "/" + string(tagA) + "/" + string(tagB))
}

// Asset is a quantity of one asset class. Assets are move-oriented values:
// they are produced by NewAsset, Split or a pool operation, combined with
// Join, and otherwise only inspected. Callers must not duplicate an Asset
// and spend it twice; value conservation is the caller's contract.
type Asset struct {
	tag   Tag
	value uint64
}

// NewAsset creates an asset of the given class and value. In a deployment
// this is the ledger's issuance point; the pool core itself only creates
// assets out of reserves it holds or shares it mints.
func NewAsset(tag Tag, value uint64) Asset {
	return Asset{tag: tag, value: value}
}

// Tag returns the asset's class identifier.
func (a *Asset) Tag() Tag { return a.tag }

// Value returns the asset's balance.
func (a *Asset) Value() uint64 { return a.value }

// Split removes amount from a and returns it as a new asset of the same
// class. Fails with ErrInsufficientBalance when amount exceeds the balance,
// leaving a unchanged.
func (a *Asset) Split(amount uint64) (Asset, error) {
	if amount > a.value {
		return Asset{}, ErrInsufficientBalance
	}
	a.value -= amount
	return Asset{tag: a.tag, value: amount}, nil
}

// Join merges other into a. Fails with ErrAssetTypeMismatch when the tags
// differ, leaving both assets unchanged.
func (a *Asset) Join(other Asset) error {
	if other.tag != a.tag {
		return ErrAssetTypeMismatch
	}
	sum, err := add64(a.value, other.value)
	if err != nil {
		return err
	}
	a.value = sum
	return nil
}

// DestroyZero discards an empty asset. Fails with ErrNonZeroAsset when the
// balance is not zero, so value cannot be silently dropped.
func (a Asset) DestroyZero() error {
	if a.value != 0 {
		return ErrNonZeroAsset
	}
	return nil
}
