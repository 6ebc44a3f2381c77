// Package cpamm implements a constant-product automated market maker core:
// two-asset liquidity pools addressed by owner and asset pair, fungible pool
// shares, and fee-adjusted swap pricing over uint64 amounts.
package cpamm

import "math/bits"

// Sqrt returns the integer (floor) square root of y via Babylonian
// iteration: the unique z with z*z <= y < (z+1)*(z+1).
func Sqrt(y uint64) uint64 {
	if y < 4 {
		if y == 0 {
			return 0
		}
		return 1
	}
	z := y
	x := y/2 + 1
	for x < z {
		z = x
		x = (y/x + x) / 2
	}
	return z
}

// Min returns the smaller of x and y.
func Min(x, y uint64) uint64 {
	if x < y {
		return x
	}
	return y
}

func mul64(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, ErrArithmeticFault
	}
	return lo, nil
}

func add64(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrArithmeticFault
	}
	return sum, nil
}

func sub64(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrArithmeticFault
	}
	return a - b, nil
}
