// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcutil

import (
	"bytes"
	"crypto/sha256"
	"testing"

	"golang.org/x/crypto/ripemd160"
)

func TestHash160Length(t *testing.T) {
	got := Hash160([]byte("hello"))
	if len(got) != Hash160Size {
		t.Fatalf("len(Hash160(...)) = %d, want %d", len(got), Hash160Size)
	}
}

func TestHash160ComposesSha256ThenRipemd160(t *testing.T) {
	data := []byte("the quick brown fox")
	sum := sha256.Sum256(data)
	r := ripemd160.New()
	r.Write(sum[:])
	want := r.Sum(nil)

	if got := Hash160(data); !bytes.Equal(got, want) {
		t.Fatalf("got % x want % x", got, want)
	}
}

func TestRipemd160Length(t *testing.T) {
	got := Ripemd160([]byte("anything"))
	if len(got) != ripemd160.Size {
		t.Fatalf("len = %d, want %d", len(got), ripemd160.Size)
	}
}
