package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nulln0ne/amm-engine/internal/service"
)

func TestSwapHandler(t *testing.T) {
	app, _ := newTestApp(t)
	postJSON(t, app, "/pools", map[string]string{
		"owner": testOwnerHex, "tag_a": "usd", "tag_b": "eur",
	})
	postJSON(t, app, "/liquidity", map[string]string{
		"owner": testOwnerHex,
		"tag_a": "usd", "amount_a": "10000",
		"tag_b": "eur", "amount_b": "10000",
	})

	resp := postJSON(t, app, "/swap", map[string]string{
		"owner":  testOwnerHex,
		"tag_in": "usd", "amount_in": "1000",
		"tag_out": "eur",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("swap: %d", resp.StatusCode)
	}
	var res service.SwapResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.AmountOut != 906 {
		t.Fatalf("amountOut = %d, want 906", res.AmountOut)
	}

	// floor above the achievable output
	resp = postJSON(t, app, "/swap", map[string]string{
		"owner":  testOwnerHex,
		"tag_in": "usd", "amount_in": "1000",
		"tag_out": "eur", "min_amount_out": "10000",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 below minimum out, got %d", resp.StatusCode)
	}
}

func TestSwapHandlerUnknownPair(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/swap", map[string]string{
		"owner":  testOwnerHex,
		"tag_in": "usd", "amount_in": "1000",
		"tag_out": "eur",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestSwapToHandler(t *testing.T) {
	app, _ := newTestApp(t)
	postJSON(t, app, "/pools", map[string]string{
		"owner": testOwnerHex, "tag_a": "usd", "tag_b": "eur",
	})
	postJSON(t, app, "/liquidity", map[string]string{
		"owner": testOwnerHex,
		"tag_a": "usd", "amount_a": "1000000",
		"tag_b": "eur", "amount_b": "1000000",
	})

	resp := postJSON(t, app, "/swap/to", map[string]string{
		"owner":  testOwnerHex,
		"tag_in": "usd", "max_amount_in": "2000000",
		"tag_out": "eur", "amount_out": "500",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("swapTo: %d", resp.StatusCode)
	}
	var res service.SwapResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.AmountIn != 997009 {
		t.Fatalf("amountIn = %d, want 997009", res.AmountIn)
	}

	// a budget below the quoted input is rejected without effect
	resp = postJSON(t, app, "/swap/to", map[string]string{
		"owner":  testOwnerHex,
		"tag_in": "usd", "max_amount_in": "100",
		"tag_out": "eur", "amount_out": "500",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 over budget, got %d", resp.StatusCode)
	}
}

func TestQuoteHandlers(t *testing.T) {
	app, _ := newTestApp(t)
	postJSON(t, app, "/pools", map[string]string{
		"owner": testOwnerHex, "tag_a": "usd", "tag_b": "eur",
	})
	postJSON(t, app, "/liquidity", map[string]string{
		"owner": testOwnerHex,
		"tag_a": "usd", "amount_a": "1000000",
		"tag_b": "eur", "amount_b": "1000000",
	})

	req := httptest.NewRequest(http.MethodGet,
		"/quote/in?owner="+testOwnerHex+"&tag_in=usd&tag_out=eur&amount=500", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("quote in: %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "997009" {
		t.Fatalf("quoted in = %s, want 997009", body)
	}

	req = httptest.NewRequest(http.MethodGet,
		"/quote/out?owner="+testOwnerHex+"&tag_in=usd&tag_out=eur&amount=100000", nil)
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("quote out: %d", resp.StatusCode)
	}

	// the exact-output quote faults past its underflow boundary
	req = httptest.NewRequest(http.MethodGet,
		"/quote/in?owner="+testOwnerHex+"&tag_in=usd&tag_out=eur&amount=1004", nil)
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 at underflow boundary, got %d", resp.StatusCode)
	}
}
