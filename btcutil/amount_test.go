// Copyright (c) 2013, 2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcutil

import (
	"math"
	"testing"
)

func TestNewAmount(t *testing.T) {
	cases := []struct {
		f        float64
		decimals uint32
		want     Amount
	}{
		{0, 8, 0},
		{1, 8, 1e8},
		{0.00000001, 8, 1},
		{1, 0, 1},
		{1.5, 0, 2}, // round-half-away-from-zero
		{-1.5, 0, -2},
	}
	for _, c := range cases {
		got, err := NewAmount(c.f, c.decimals)
		if err != nil {
			t.Fatalf("f=%v decimals=%d: %s", c.f, c.decimals, err.String())
		}
		if got != c.want {
			t.Fatalf("f=%v decimals=%d: got %d want %d", c.f, c.decimals, got, c.want)
		}
	}
}

func TestNewAmountRejectsNonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := NewAmount(f, 8); err == nil {
			t.Fatalf("f=%v: expected an error", f)
		}
	}
}

func TestToCoin(t *testing.T) {
	if got := Amount(100000000).ToCoin(8); got != 1 {
		t.Fatalf("got %v, want 1", got)
	}
	if got := Amount(1).ToCoin(8); got != 0.00000001 {
		t.Fatalf("got %v, want 0.00000001", got)
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(100000000, 8); got != "1.00000000" {
		t.Fatalf("got %q, want %q", got, "1.00000000")
	}
	if got := FormatAmount(0, 8); got != "0.00000000" {
		t.Fatalf("got %q, want %q", got, "0.00000000")
	}
}

func TestMulF64(t *testing.T) {
	if got := Amount(200).MulF64(0.5); got != 100 {
		t.Fatalf("got %d, want 100", got)
	}
}
