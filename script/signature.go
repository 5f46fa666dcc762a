package script

import (
	"github.com/pkt-cash/txcore/coininfo"
	"github.com/pkt-cash/txcore/script/scripterr"

	"github.com/pkt-cash/txcore/internal/er"
)

// Signature is a compact, in-memory ECDSA signature: 64 bytes, r (32
// bytes) concatenated with s (32 bytes), each left-zero-padded. This is
// the form every builder/parser in this package works with; DER is only
// ever used on the wire.
type Signature [64]byte

// derInt DER-encodes one of a signature's two 32-byte halves as a
// minimal-length, sign-safe INTEGER: leading zero bytes are stripped,
// except that a single zero byte is kept if doing so would otherwise
// leave the high bit of the first remaining byte set (which DER/ASN.1
// would read as a negative number).
func derInt(b []byte) []byte {
	i := 0
	for i < len(b)-1 && b[i] == 0 {
		i++
	}
	v := b[i:]
	if v[0]&0x80 != 0 {
		padded := make([]byte, len(v)+1)
		copy(padded[1:], v)
		return padded
	}
	return v
}

// EncodeDERSignature DER-encodes a 64-byte r||s signature as
// SEQUENCE { INTEGER r, INTEGER s }.
func EncodeDERSignature(sig Signature) []byte {
	r := derInt(sig[:32])
	s := derInt(sig[32:])

	seqLen := 2 + len(r) + 2 + len(s)
	out := make([]byte, 0, 2+seqLen)
	out = append(out, 0x30, byte(seqLen))
	out = append(out, 0x02, byte(len(r)))
	out = append(out, r...)
	out = append(out, 0x02, byte(len(s)))
	out = append(out, s...)
	return out
}

// DecodeDERSignature parses a DER-encoded SEQUENCE of exactly two
// INTEGERs, each carrying at most 32 value bytes (33 on the wire when a
// sign-padding zero precedes a high-bit-set value), zero-extending each
// into its half of a fresh 64-byte buffer. Any other shape is rejected
// with InvalidSignature.
func DecodeDERSignature(der []byte) (Signature, er.R) {
	var sig Signature

	fail := func(msg string) (Signature, er.R) {
		return Signature{}, scripterr.New(scripterr.ErrSignatureDecode, msg)
	}

	if len(der) < 2 || der[0] != 0x30 {
		return fail("not a DER SEQUENCE")
	}
	seqLen := int(der[1])
	if seqLen != len(der)-2 {
		return fail("SEQUENCE length mismatch")
	}
	off := 2

	readInt := func() ([]byte, bool) {
		if off+2 > len(der) || der[off] != 0x02 {
			return nil, false
		}
		n := int(der[off+1])
		off += 2
		if off+n > len(der) {
			return nil, false
		}
		v := der[off : off+n]
		off += n
		// A 256-bit value with its high bit set is encoded as 33 bytes
		// with a leading sign-padding zero; strip it before the size
		// check, since only the value bytes go into the 64-byte buffer.
		if len(v) == 33 && v[0] == 0x00 {
			v = v[1:]
		}
		if len(v) > 32 {
			return nil, false
		}
		return v, true
	}

	r, ok := readInt()
	if !ok {
		return fail("invalid r INTEGER")
	}
	s, ok := readInt()
	if !ok {
		return fail("invalid s INTEGER")
	}
	if off != len(der) {
		return fail("trailing bytes after SEQUENCE")
	}

	copy(sig[32-len(r):32], r)
	copy(sig[64-len(s):64], s)
	return sig, nil
}

// VerifySignature decodes a DER signature and verifies it over digest
// using the given curve and public key. This is pure plumbing over
// DecodeDERSignature and the Curve boundary (common.py's ecdsa_verify).
func VerifySignature(curve coininfo.Curve, pubkey, der, digest32 []byte) (bool, er.R) {
	sig, err := DecodeDERSignature(der)
	if err != nil {
		return false, err
	}
	return curve.Verify(pubkey, sig[:], digest32), nil
}
