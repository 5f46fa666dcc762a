// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcutil

import (
	"bytes"
	"crypto/sha256"
	"testing"
)

func TestDoubleSha256(t *testing.T) {
	data := []byte("test payload")
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])

	if got := DoubleSha256(data); !bytes.Equal(got, second[:]) {
		t.Fatalf("got % x want % x", got, second)
	}
}
