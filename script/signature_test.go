package script

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeDERSignatureRoundTrip(t *testing.T) {
	cases := []Signature{
		{}, // all-zero r and s
	}
	var maxHighBit Signature
	for i := range maxHighBit {
		maxHighBit[i] = 0xFF
	}
	cases = append(cases, maxHighBit)

	var mixed Signature
	for i := 0; i < 32; i++ {
		mixed[i] = byte(i)
	}
	for i := 32; i < 64; i++ {
		mixed[i] = byte(0x80 + i)
	}
	cases = append(cases, mixed)

	for i, sig := range cases {
		der := EncodeDERSignature(sig)
		if len(der) < 2 || der[0] != 0x30 {
			t.Fatalf("case %d: not a DER SEQUENCE: % x", i, der)
		}
		got, err := DecodeDERSignature(der)
		if err != nil {
			t.Fatalf("case %d: decode failed: %s", i, err.String())
		}
		if got != sig {
			t.Fatalf("case %d: round trip mismatch: got %x want %x", i, got, sig)
		}
	}
}

func TestEncodeDERSignatureMinimalAndSignSafe(t *testing.T) {
	var sig Signature
	// r = 0x00...0080 (high bit set in last byte): derInt must prepend a
	// zero byte so the INTEGER doesn't read as negative.
	sig[31] = 0x80
	// s = 0x00...0001 with 31 leading zero bytes stripped down to one byte.
	sig[63] = 0x01

	der := EncodeDERSignature(sig)
	// SEQUENCE, len, INTEGER tag, len(=2), 0x00, 0x80, INTEGER tag, len(=1), 0x01
	want := []byte{0x30, 0x08, 0x02, 0x02, 0x00, 0x80, 0x02, 0x01, 0x01}
	if !bytes.Equal(der, want) {
		t.Fatalf("got % x want % x", der, want)
	}
}

// A high-bit-set 32-byte value is DER-encoded as a 33-byte INTEGER with
// a leading sign-padding zero; the decoder must strip it rather than
// reject the signature.
func TestDecodeDERSignatureStripsSignPadding(t *testing.T) {
	var sig Signature
	sig[0] = 0x80  // r high bit set
	sig[63] = 0x01 // s = 1

	der := EncodeDERSignature(sig)
	// INTEGER r must be 33 bytes: 0x00 then the 32 value bytes.
	if der[3] != 33 || der[4] != 0x00 {
		t.Fatalf("expected a sign-padded 33-byte r INTEGER, got % x", der)
	}
	got, err := DecodeDERSignature(der)
	if err != nil {
		t.Fatalf("decode failed: %s", err.String())
	}
	if got != sig {
		t.Fatalf("round trip mismatch: got %x want %x", got, sig)
	}
}

func TestDecodeDERSignatureRejectsMalformed(t *testing.T) {
	cases := map[string][]byte{
		"empty":                         {},
		"wrong tag":                     {0x31, 0x06, 0x02, 0x01, 0x01, 0x02, 0x01, 0x01},
		"length mismatch":               {0x30, 0x09, 0x02, 0x01, 0x01, 0x02, 0x01, 0x01},
		"missing second integer":        {0x30, 0x03, 0x02, 0x01, 0x01},
		"integer too long":              append([]byte{0x30, 39, 0x02, 34}, append(make([]byte, 34), 0x02, 0x01, 0x01)...),
		"33 bytes without sign padding": append([]byte{0x30, 38, 0x02, 33, 0x01}, append(make([]byte, 32), 0x02, 0x01, 0x01)...),
		"trailing garbage":              {0x30, 0x06, 0x02, 0x01, 0x01, 0x02, 0x01, 0x01, 0xFF},
		"second tag wrong":              {0x30, 0x06, 0x02, 0x01, 0x01, 0x03, 0x01, 0x01},
	}
	for name, der := range cases {
		if _, err := DecodeDERSignature(der); err == nil {
			t.Fatalf("%s: expected rejection", name)
		}
	}
}
