package cpamm

import "testing"

func TestSqrt(t *testing.T) {
	cases := []struct {
		in   uint64
		want uint64
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 1},
		{4, 2},
		{8, 2},
		{9, 3},
		{15, 3},
		{16, 4},
		{1000, 31},
		{1_000_000, 1000},
		{100_000_000, 10_000},
		{(1 << 32) - 1, 65535},
		{1 << 32, 65536},
		{^uint64(0), (1 << 32) - 1},
	}
	for _, tc := range cases {
		if got := Sqrt(tc.in); got != tc.want {
			t.Fatalf("Sqrt(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestSqrt_FloorBounds(t *testing.T) {
	// z = Sqrt(y) must satisfy z*z <= y < (z+1)*(z+1)
	for _, y := range []uint64{5, 17, 99, 1234, 99999, 123456789, 1 << 40, (1 << 53) + 7} {
		z := Sqrt(y)
		if z*z > y {
			t.Fatalf("Sqrt(%d) = %d: square exceeds input", y, z)
		}
		if (z+1)*(z+1) <= y {
			t.Fatalf("Sqrt(%d) = %d: not the floor root", y, z)
		}
	}
}

func TestMin(t *testing.T) {
	if got := Min(3, 5); got != 3 {
		t.Fatalf("Min(3,5) = %d", got)
	}
	if got := Min(5, 3); got != 3 {
		t.Fatalf("Min(5,3) = %d", got)
	}
	if got := Min(7, 7); got != 7 {
		t.Fatalf("Min(7,7) = %d", got)
	}
}

func TestCheckedMath(t *testing.T) {
	if _, err := mul64(1<<32, 1<<32); err != ErrArithmeticFault {
		t.Fatalf("expected overflow fault, got %v", err)
	}
	if got, err := mul64(1<<32, (1<<32)-1); err != nil || got != (1<<64)-(1<<32) {
		t.Fatalf("mul64 near boundary: got %d err %v", got, err)
	}
	if _, err := add64(^uint64(0), 1); err != ErrArithmeticFault {
		t.Fatalf("expected add overflow fault, got %v", err)
	}
	if _, err := sub64(1, 2); err != ErrArithmeticFault {
		t.Fatalf("expected sub underflow fault, got %v", err)
	}
}
