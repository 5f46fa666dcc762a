package script

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcutil/bech32"

	"github.com/pkt-cash/txcore/btcutil"
	"github.com/pkt-cash/txcore/coininfo"
)

// Bech32 round trip, both witness program lengths.
func TestBech32AddressRoundTrip(t *testing.T) {
	for _, n := range []int{20, 32} {
		program := make([]byte, n)
		for i := range program {
			program[i] = byte(i + 1)
		}
		addr, err := EncodeBech32Address("bc", program)
		if err != nil {
			t.Fatalf("n=%d: encode: %s", n, err.String())
		}
		got, derr := DecodeBech32Address("bc", addr)
		if derr != nil {
			t.Fatalf("n=%d: decode: %s", n, derr.String())
		}
		if !bytes.Equal(got, program) {
			t.Fatalf("n=%d: got % x want % x", n, got, program)
		}
	}
}

func TestDecodeBech32AddressRejectsWrongPrefix(t *testing.T) {
	addr, err := EncodeBech32Address("bc", make([]byte, 20))
	if err != nil {
		t.Fatal(err.String())
	}
	if _, derr := DecodeBech32Address("tb", addr); derr == nil {
		t.Fatal("expected prefix mismatch to be rejected")
	}
}

// Only witness version 0 is accepted on decode.
func TestDecodeBech32AddressRejectsNonZeroWitver(t *testing.T) {
	converted, err := bech32.ConvertBits(make([]byte, 20), 8, 5, true)
	if err != nil {
		t.Fatal(err)
	}
	addr, err := bech32.Encode("bc", append([]byte{1}, converted...))
	if err != nil {
		t.Fatal(err)
	}
	if _, derr := DecodeBech32Address("bc", addr); derr == nil {
		t.Fatal("expected witness version 1 to be rejected")
	}
}

func TestBase58CheckRoundTrip(t *testing.T) {
	payload := append([]byte{0x00}, bytes.Repeat([]byte{0x07}, 20)...)
	addr := base58CheckEncode(payload, btcutil.DoubleSha256)
	got, err := base58CheckDecode(addr, btcutil.DoubleSha256)
	if err != nil {
		t.Fatal(err.String())
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("got % x want % x", got, payload)
	}
}

func TestBase58CheckDecodeRejectsBadChecksum(t *testing.T) {
	payload := append([]byte{0x00}, bytes.Repeat([]byte{0x07}, 20)...)
	addr := base58CheckEncode(payload, btcutil.DoubleSha256)
	tampered := addr[:len(addr)-1] + "z"
	if _, err := base58CheckDecode(tampered, btcutil.DoubleSha256); err == nil {
		t.Fatal("expected checksum mismatch to be rejected")
	}
}

func bitcoinCoin() *coininfo.CoinInfo {
	return &coininfo.CoinInfo{
		Name:            "bitcoin",
		Bech32Prefix:    "bc",
		AddressType:     0x00,
		AddressTypeP2SH: 0x05,
		B58HashFunc:     btcutil.DoubleSha256,
		ScriptHash:      btcutil.Hash160,
	}
}

func TestDecodeAddressP2PKH(t *testing.T) {
	hash := bytes.Repeat([]byte{0x11}, 20)
	coin := bitcoinCoin()
	addr := base58CheckEncode(append([]byte{byte(coin.AddressType)}, hash...), coin.B58HashFunc)

	got, raw, err := DecodeAddress(addr, coin)
	if err != nil {
		t.Fatal(err.String())
	}
	if got != PayToAddress {
		t.Fatalf("got type %v, want PayToAddress", got)
	}
	if !bytes.Equal(raw, hash) {
		t.Fatalf("got % x want % x", raw, hash)
	}
}

func TestDecodeAddressP2SH(t *testing.T) {
	hash := bytes.Repeat([]byte{0x22}, 20)
	coin := bitcoinCoin()
	addr := base58CheckEncode(append([]byte{byte(coin.AddressTypeP2SH)}, hash...), coin.B58HashFunc)

	got, raw, err := DecodeAddress(addr, coin)
	if err != nil {
		t.Fatal(err.String())
	}
	if got != PayToP2SHWitness {
		t.Fatalf("got type %v, want PayToP2SHWitness", got)
	}
	if !bytes.Equal(raw, hash) {
		t.Fatalf("got % x want % x", raw, hash)
	}
}

func TestDecodeAddressBech32(t *testing.T) {
	program := bytes.Repeat([]byte{0x33}, 20)
	coin := bitcoinCoin()
	addr, err := EncodeBech32Address(coin.Bech32Prefix, program)
	if err != nil {
		t.Fatal(err.String())
	}

	got, raw, derr := DecodeAddress(addr, coin)
	if derr != nil {
		t.Fatal(derr.String())
	}
	if got != PayToWitness {
		t.Fatalf("got type %v, want PayToWitness", got)
	}
	if !bytes.Equal(raw, program) {
		t.Fatalf("got % x want % x", raw, program)
	}
}

func TestDecodeAddressRejectsUnknownType(t *testing.T) {
	coin := bitcoinCoin()
	hash := bytes.Repeat([]byte{0x44}, 20)
	addr := base58CheckEncode(append([]byte{0x42}, hash...), coin.B58HashFunc)
	if _, _, err := DecodeAddress(addr, coin); err == nil {
		t.Fatal("expected unrecognized version byte to be rejected")
	}
}

func TestCheckAddressTypeMultiByte(t *testing.T) {
	// A two-byte version prefix (AddressPrefixLen==2) must be compared as
	// a big-endian integer over exactly those two leading bytes.
	raw := []byte{0x01, 0x02, 0xAA, 0xBB}
	if !checkAddressType(0x0102, raw) {
		t.Fatal("expected two-byte prefix to match")
	}
	if checkAddressType(0x0103, raw) {
		t.Fatal("expected mismatched two-byte prefix to be rejected")
	}
	stripped := stripAddressType(0x0102, raw)
	if !bytes.Equal(stripped, []byte{0xAA, 0xBB}) {
		t.Fatalf("got % x want AA BB", stripped)
	}
}
