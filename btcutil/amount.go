// Copyright (c) 2013, 2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcutil

import (
	"math"
	"strconv"

	"github.com/pkt-cash/txcore/internal/er"
)

// Amount represents a monetary amount counted in a coin's smallest atomic
// unit (colloquially a `Satoshi' on Bitcoin). A single Amount is worth
// 10^-decimals of one coin, where decimals is supplied by the caller since,
// unlike upstream btcutil, this package is not pinned to Bitcoin's own
// 8-decimal convention.
type Amount int64

// round converts a floating point number, which may or may not be
// representable as an integer, to the Amount integer type by rounding to
// the nearest integer.
func round(f float64) Amount {
	if f < 0 {
		return Amount(f - 0.5)
	}
	return Amount(f + 0.5)
}

// NewAmount creates an Amount from a floating point value representing some
// quantity of whole coins, at the given number of decimals. NewAmount errors
// if f is NaN or +-Infinity, but does not check that the amount is within
// the coin's total producible supply.
func NewAmount(f float64, decimals uint32) (Amount, er.R) {
	// The amount is only considered invalid if it cannot be represented
	// as an integer type.  This may happen if f is NaN or +-Infinity.
	switch {
	case math.IsNaN(f):
		fallthrough
	case math.IsInf(f, 1):
		fallthrough
	case math.IsInf(f, -1):
		return 0, er.New("invalid monetary amount")
	}
	return round(f * math.Pow10(int(decimals))), nil
}

// ToCoin converts an atomic amount to a floating point quantity of whole
// coins, at the given number of decimals.
func (a Amount) ToCoin(decimals uint32) float64 {
	return float64(a) / math.Pow10(int(decimals))
}

// FormatAmount renders amount (in atomic units) as a fixed-point decimal
// string of a whole-coin quantity, the same rendering authorize_coinjoin's
// confirmation prompts use for "amount to mix" and "maximum total fees".
func FormatAmount(amount uint64, decimals uint32) string {
	coins := Amount(amount).ToCoin(decimals)
	return strconv.FormatFloat(coins, 'f', int(decimals), 64)
}

// MulF64 multiplies an Amount by a floating point value.
func (a Amount) MulF64(f float64) Amount {
	return round(float64(a) * f)
}
