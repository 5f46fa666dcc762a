// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcutil

import "crypto/sha256"

// DoubleSha256 computes sha256(sha256(b)), Bitcoin's base58check digest
// and the default CoinInfo.B58HashFunc for coins that don't override it.
func DoubleSha256(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:]
}
