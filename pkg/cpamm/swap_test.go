package cpamm

import "testing"

func TestQuoteAmountOut(t *testing.T) {
	// reserves 1000:1000, amountIn 100:
	// 100*997 * 1000 / (1000*1000 + 100*997) = 99700000/1099700 = 90
	out, err := QuoteAmountOut(1_000, 1_000, 100)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if out != 90 {
		t.Fatalf("amountOut = %d, want 90", out)
	}
}

func TestQuoteAmountOutErrors(t *testing.T) {
	if _, err := QuoteAmountOut(1_000, 1_000, 0); err != ErrInsufficientInputAmount {
		t.Fatalf("zero input: %v", err)
	}
	if _, err := QuoteAmountOut(0, 1_000, 100); err != ErrInsufficientLiquidity {
		t.Fatalf("zero reserveIn: %v", err)
	}
	if _, err := QuoteAmountOut(1_000, 0, 100); err != ErrInsufficientLiquidity {
		t.Fatalf("zero reserveOut: %v", err)
	}
	if _, err := QuoteAmountOut(1_000, 1_000, ^uint64(0)/900); err != ErrArithmeticFault {
		t.Fatalf("overflowing input: %v", err)
	}
}

func TestQuoteAmountOutMonotonic(t *testing.T) {
	prev := uint64(0)
	for amountIn := uint64(1); amountIn < 5_000; amountIn += 7 {
		out, err := QuoteAmountOut(1_000_000, 1_000_000, amountIn)
		if err != nil {
			t.Fatalf("quote(%d): %v", amountIn, err)
		}
		if out < prev {
			t.Fatalf("amountOut decreased: in=%d out=%d prev=%d", amountIn, out, prev)
		}
		prev = out
	}
}

func TestQuoteAmountIn(t *testing.T) {
	// reserves 1e6:1e6, amountOut 500:
	// 1e6*500*1000 / (1e6 - 500*997) + 1 = 500000000000/501500 + 1 = 997009
	in, err := QuoteAmountIn(1_000_000, 1_000_000, 500)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if in != 997_009 {
		t.Fatalf("amountIn = %d, want 997009", in)
	}
}

func TestQuoteAmountInErrors(t *testing.T) {
	if _, err := QuoteAmountIn(1_000, 1_000, 0); err != ErrInsufficientOutputAmount {
		t.Fatalf("zero output: %v", err)
	}
	if _, err := QuoteAmountIn(0, 1_000, 10); err != ErrInsufficientLiquidity {
		t.Fatalf("zero reserveIn: %v", err)
	}
	if _, err := QuoteAmountIn(1_000, 0, 10); err != ErrInsufficientLiquidity {
		t.Fatalf("zero reserveOut: %v", err)
	}
}

func TestQuoteAmountInUnderflowBoundary(t *testing.T) {
	// any amountOut with amountOut*997 >= reserveOut must fault, not wrap
	cases := []struct {
		reserveOut uint64
		amountOut  uint64
	}{
		{997, 1},       // equality
		{1_000, 2},     // past it
		{100_000, 101}, // 101*997 = 100697 > 100000
	}
	for _, tc := range cases {
		if _, err := QuoteAmountIn(1_000_000, tc.reserveOut, tc.amountOut); err != ErrArithmeticFault {
			t.Fatalf("reserveOut=%d amountOut=%d: expected ErrArithmeticFault, got %v",
				tc.reserveOut, tc.amountOut, err)
		}
	}
}

func TestSwap(t *testing.T) {
	r := newPool(t)
	fundPool(t, r, 10_000, 10_000)

	out, err := r.Swap(testOwner, NewAsset("usd", 1_000), "eur", 0)
	if err != nil {
		t.Fatalf("swap: %v", err)
	}
	// 1000*997*10000 / (10000*1000 + 1000*997) = 9970000000/10997000 = 906
	if out.Value() != 906 || out.Tag() != "eur" {
		t.Fatalf("swap returned %d %s, want 906 eur", out.Value(), out.Tag())
	}

	pool, _, _ := r.Lookup(testOwner, "usd", "eur")
	if a, b := pool.Reserves(); a != 11_000 || b != 9_094 {
		t.Fatalf("reserves = %d/%d, want 11000/9094", a, b)
	}
}

func TestSwapGrowsProduct(t *testing.T) {
	r := newPool(t)
	fundPool(t, r, 10_000, 10_000)

	before := uint64(10_000) * 10_000
	if _, err := r.Swap(testOwner, NewAsset("usd", 1_000), "eur", 0); err != nil {
		t.Fatalf("swap: %v", err)
	}
	pool, _, _ := r.Lookup(testOwner, "usd", "eur")
	a, b := pool.Reserves()
	if a*b < before {
		t.Fatalf("fee must not shrink the product: %d < %d", a*b, before)
	}
}

func TestSwapOrientationSymmetry(t *testing.T) {
	forward := newPool(t)
	fundPool(t, forward, 10_000, 20_000)

	// the same economic pool stored under the opposite orientation
	reversed := NewRegistry()
	if _, err := reversed.CreatePool(testOwner, "eur", "usd", 0, 0); err != nil {
		t.Fatalf("create reversed pool: %v", err)
	}
	if _, err := reversed.Mint(testOwner, NewAsset("eur", 20_000), NewAsset("usd", 10_000)); err != nil {
		t.Fatalf("fund reversed pool: %v", err)
	}

	outF, err := forward.Swap(testOwner, NewAsset("usd", 500), "eur", 0)
	if err != nil {
		t.Fatalf("forward swap: %v", err)
	}
	outR, err := reversed.Swap(testOwner, NewAsset("usd", 500), "eur", 0)
	if err != nil {
		t.Fatalf("swap via reversed request: %v", err)
	}
	if outF.Value() != outR.Value() {
		t.Fatalf("orientation changed pricing: %d vs %d", outF.Value(), outR.Value())
	}
}

func TestSwapBelowMinimumOut(t *testing.T) {
	r := newPool(t)
	fundPool(t, r, 10_000, 10_000)

	_, err := r.Swap(testOwner, NewAsset("usd", 1_000), "eur", 10_000)
	if err != ErrInsufficientOutputAmount {
		t.Fatalf("expected ErrInsufficientOutputAmount, got %v", err)
	}
	pool, _, _ := r.Lookup(testOwner, "usd", "eur")
	if a, b := pool.Reserves(); a != 10_000 || b != 10_000 {
		t.Fatalf("failed swap must not move reserves: %d/%d", a, b)
	}
}

func TestSwapZeroOutput(t *testing.T) {
	r := newPool(t)
	fundPool(t, r, 2_000_000, 2_000_000)

	// one unit in prices to zero out at this depth
	_, err := r.Swap(testOwner, NewAsset("usd", 1), "eur", 0)
	if err != ErrInsufficientOutputAmount {
		t.Fatalf("expected ErrInsufficientOutputAmount, got %v", err)
	}
}

func TestSwapMissingPool(t *testing.T) {
	r := newPool(t)
	fundPool(t, r, 10_000, 10_000)

	_, err := r.Swap(testOwner, NewAsset("jpy", 100), "eur", 0)
	if err != ErrPairDoesNotExist {
		t.Fatalf("expected ErrPairDoesNotExist, got %v", err)
	}
}

func TestSwapTo(t *testing.T) {
	r := newPool(t)
	fundPool(t, r, 1_000_000, 1_000_000)

	wallet := NewAsset("usd", 2_000_000)
	out, err := r.SwapTo(testOwner, &wallet, "eur", 500)
	if err != nil {
		t.Fatalf("swapTo: %v", err)
	}
	if out.Value() < 500 {
		t.Fatalf("exact-output trade paid %d, want at least 500", out.Value())
	}
	// the quoted input (997009 here) came out of the wallet, nothing more
	if wallet.Value() != 2_000_000-997_009 {
		t.Fatalf("wallet = %d, want %d", wallet.Value(), 2_000_000-997_009)
	}
}

func TestSwapToInsufficientWallet(t *testing.T) {
	r := newPool(t)
	fundPool(t, r, 1_000_000, 1_000_000)

	wallet := NewAsset("usd", 100)
	_, err := r.SwapTo(testOwner, &wallet, "eur", 500)
	if err != ErrInsufficientBalance {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if wallet.Value() != 100 {
		t.Fatalf("failed swapTo must not touch the wallet, got %d", wallet.Value())
	}
}

func TestSwapToUnderflowFault(t *testing.T) {
	r := newPool(t)
	fundPool(t, r, 1_000_000, 1_000_000)

	wallet := NewAsset("usd", 1_000_000)
	// 1004*997 = 1000988 >= reserveOut, past the quote's underflow boundary
	_, err := r.SwapTo(testOwner, &wallet, "eur", 1_004)
	if err != ErrArithmeticFault {
		t.Fatalf("expected ErrArithmeticFault, got %v", err)
	}
}
