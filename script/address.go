package script

import (
	"bytes"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"github.com/btcsuite/btcutil/bech32"

	"github.com/pkt-cash/txcore/coininfo"
	"github.com/pkt-cash/txcore/script/scripterr"

	"github.com/pkt-cash/txcore/internal/er"
)

// bech32Witver is the only witness version this core will encode or
// accept; every SegWit address it deals with is v0 (P2WPKH/P2WSH).
const bech32Witver = 0

// EncodeBech32Address bech32-encodes a v0 witness program (20 or 32
// bytes) under the given human-readable prefix.
func EncodeBech32Address(prefix string, program []byte) (string, er.R) {
	converted, err := bech32.ConvertBits(program, 8, 5, true)
	if err != nil {
		return "", scripterr.New(scripterr.ErrBech32Rejected, err.Error())
	}
	data := append([]byte{bech32Witver}, converted...)
	addr, err := bech32.Encode(prefix, data)
	if err != nil {
		return "", scripterr.New(scripterr.ErrBech32Rejected, err.Error())
	}
	return addr, nil
}

// DecodeBech32Address decodes a bech32 SegWit address, returning the raw
// witness program. Only witness version 0 is accepted; anything else, or
// a failed checksum/prefix match, is rejected.
func DecodeBech32Address(prefix, address string) ([]byte, er.R) {
	hrp, data, err := bech32.Decode(address)
	if err != nil {
		return nil, scripterr.New(scripterr.ErrBech32Rejected, err.Error())
	}
	if !strings.EqualFold(hrp, prefix) {
		return nil, scripterr.New(scripterr.ErrInvalidAddress, "bech32 prefix mismatch")
	}
	if len(data) == 0 {
		return nil, scripterr.New(scripterr.ErrInvalidAddress, "empty bech32 payload")
	}
	witver := data[0]
	if witver != bech32Witver {
		return nil, scripterr.New(scripterr.ErrBech32Rejected, "unsupported witness version")
	}
	program, err := bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return nil, scripterr.New(scripterr.ErrInvalidAddress, err.Error())
	}
	return program, nil
}

// base58CheckDecode decodes a base58check string into its raw versioned
// payload, verifying the checksum with the coin's own digest function
// (not assuming Bitcoin's double-SHA256 — some forks differ).
func base58CheckDecode(address string, hashFunc func([]byte) []byte) ([]byte, er.R) {
	decoded := base58.Decode(address)
	if len(decoded) < 5 {
		return nil, scripterr.New(scripterr.ErrInvalidAddress, "base58 payload too short")
	}
	payload := decoded[:len(decoded)-4]
	checksum := decoded[len(decoded)-4:]
	want := hashFunc(payload)
	if len(want) < 4 || !bytes.Equal(want[:4], checksum) {
		return nil, scripterr.New(scripterr.ErrInvalidAddress, "base58check checksum mismatch")
	}
	return payload, nil
}

// base58CheckEncode is the inverse of base58CheckDecode.
func base58CheckEncode(payload []byte, hashFunc func([]byte) []byte) string {
	checksum := hashFunc(payload)
	full := make([]byte, 0, len(payload)+4)
	full = append(full, payload...)
	full = append(full, checksum[:4]...)
	return base58.Encode(full)
}

// checkAddressType reports whether raw begins with addressType's prefix,
// and stripAddressType strips that prefix off. Some forks use a two- or
// three-byte version prefix (see coininfo.AddressPrefixLen); both are
// handled by comparing the big-endian integer of that many leading bytes.
func checkAddressType(addressType uint32, raw []byte) bool {
	n := coininfo.AddressPrefixLen(addressType)
	if len(raw) < n {
		return false
	}
	var v uint32
	for i := 0; i < n; i++ {
		v = v<<8 | uint32(raw[i])
	}
	return v == addressType
}

func stripAddressType(addressType uint32, raw []byte) []byte {
	return raw[coininfo.AddressPrefixLen(addressType):]
}

// DecodeAddress decodes address for coin, recognizing (in order) a bech32
// SegWit address, a CashAddr address (only on coins that support it), and
// otherwise a base58check P2PKH/P2SH address. It returns the recognized
// output script type and the raw bytes the output script should commit
// to: a 20-byte hash for base58check and CashAddr, or the 20- or 32-byte
// witness program for bech32.
func DecodeAddress(address string, coin *coininfo.CoinInfo) (OutputScriptType, []byte, er.R) {
	if coin.Bech32Prefix != "" && strings.HasPrefix(address, coin.Bech32Prefix+"1") {
		witprog, err := DecodeBech32Address(coin.Bech32Prefix, address)
		if err != nil {
			return 0, nil, err
		}
		return PayToWitness, witprog, nil
	}

	if coin.CashAddrPrefix != "" && coin.CashAddrDecode != nil &&
		strings.HasPrefix(address, coin.CashAddrPrefix+":") {
		version, data, err := coin.CashAddrDecode(coin.CashAddrPrefix, address[len(coin.CashAddrPrefix)+1:])
		if err != nil {
			return 0, nil, err
		}
		switch version {
		case coininfo.CashAddrP2KH:
			return PayToAddress, data, nil
		case coininfo.CashAddrP2SH:
			return PayToP2SHWitness, data, nil
		default:
			return 0, nil, scripterr.New(scripterr.ErrInvalidAddressType, "unknown cashaddr address type")
		}
	}

	raw, err := base58CheckDecode(address, coin.B58HashFunc)
	if err != nil {
		return 0, nil, err
	}
	if checkAddressType(coin.AddressType, raw) {
		return PayToAddress, stripAddressType(coin.AddressType, raw), nil
	}
	if checkAddressType(coin.AddressTypeP2SH, raw) {
		return PayToP2SHWitness, stripAddressType(coin.AddressTypeP2SH, raw), nil
	}
	return 0, nil, scripterr.New(scripterr.ErrInvalidAddressType, "invalid address type")
}
