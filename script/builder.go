package script

import (
	"github.com/pkt-cash/txcore/coininfo"
	"github.com/pkt-cash/txcore/script/params"
	"github.com/pkt-cash/txcore/script/scripterr"

	"github.com/pkt-cash/txcore/internal/er"
)

// Opcodes this package's builders and parsers need directly; the rest of
// Bitcoin's opcode table belongs to a script-execution engine, which is
// out of scope for a pure construction/parsing core.
const (
	opFalse         = 0x00
	op1Negate       = 0x4F
	op1             = 0x51
	op16            = 0x60
	opReturn        = 0x6A
	opDup           = 0x76
	opEqual         = 0x87
	opEqualVerify   = 0x88
	opHash160       = 0xA9
	opCheckSig      = 0xAC
	opCheckMultisig = 0xAE
)

// smallInt encodes 1..16 as OP_1..OP_16.
func smallInt(n int) byte { return byte(op1 + n - 1) }

// smallIntValue is the inverse of smallInt; ok is false if b isn't a
// small-int opcode in [OP_1, OP_16].
func smallIntValue(b byte) (int, bool) {
	if b < op1 || b > op16 {
		return 0, false
	}
	return int(b-op1) + 1, true
}

// HashPubkey hashes pubkey into the form a scriptPubKey commits to,
// using the coin's script-hash function (HASH160 on Bitcoin). The pubkey
// must be the 33-byte compressed form, the 65-byte uncompressed form
// (leading 0x04), or the 1-byte point-at-infinity sentinel (0x00).
func HashPubkey(pubkey []byte, coin *coininfo.CoinInfo) ([]byte, er.R) {
	if len(pubkey) == 0 {
		return nil, scripterr.New(scripterr.ErrInvalidPubkey, "empty public key")
	}
	switch pubkey[0] {
	case 0x04:
		if len(pubkey) != 65 {
			return nil, scripterr.New(scripterr.ErrInvalidPubkey, "uncompressed public key must be 65 bytes")
		}
	case 0x00:
		if len(pubkey) != 1 {
			return nil, scripterr.New(scripterr.ErrInvalidPubkey, "point-at-infinity public key must be 1 byte")
		}
	default:
		if len(pubkey) != params.CompressedPubKeyLen {
			return nil, scripterr.New(scripterr.ErrInvalidPubkey, "compressed public key must be 33 bytes")
		}
	}
	return coin.ScriptHash(pubkey), nil
}

// InputScriptParams bundles everything BuildInputScript needs for one
// input. Multisig is nil for single-signature script types.
type InputScriptParams struct {
	ScriptType InputScriptType
	Pubkey     []byte
	Signature  []byte // sig||hash_type, already DER+hashtype framed
	Multisig   *MultisigRedeemScript
	Coin       *coininfo.CoinInfo
}

// BuildInputScript produces the scriptSig bytes for one input, per the
// per-script-type dispatch. Pure witness inputs (SpendWitness) have no
// scriptSig at all and this returns an empty slice for them.
func BuildInputScript(p InputScriptParams) ([]byte, er.R) {
	switch p.ScriptType {
	case SpendAddress:
		return inputScriptP2PKH(p.Signature, p.Pubkey), nil

	case SpendP2SHWitness:
		if p.Multisig != nil {
			pubkeys, err := Pubkeys(p.Multisig)
			if err != nil {
				return nil, err
			}
			// Stream the witness script through a hashing writer; the
			// script itself is never materialized, only its digest.
			h := NewHashWriter()
			if err := writeOutputScriptMultisig(h, pubkeys, p.Multisig.M); err != nil {
				return nil, err
			}
			sum := h.Digest()
			w := NewBuffer(1 + 1 + 1 + 32)
			w.AppendByte(0x22)
			w.AppendByte(opFalse)
			w.AppendByte(0x20)
			w.AppendBytes(sum[:])
			return w.Bytes(), nil
		}
		pubkeyHash, err := HashPubkey(p.Pubkey, p.Coin)
		if err != nil {
			return nil, err
		}
		w := NewBuffer(1 + 1 + 1 + len(pubkeyHash))
		w.AppendByte(0x16)
		w.AppendByte(opFalse)
		w.AppendByte(0x14)
		w.AppendBytes(pubkeyHash)
		return w.Bytes(), nil

	case SpendWitness:
		return []byte{}, nil

	case SpendMultisig:
		return inputScriptMultisig(p.Multisig, p.Signature, p.Pubkey, p.Coin)

	default:
		return nil, scripterr.New(scripterr.ErrUnknownScriptType, "cannot build a scriptSig for this input type")
	}
}

// inputScriptP2PKH builds <push(sig)> <push(pubkey)>.
func inputScriptP2PKH(sig, pubkey []byte) []byte {
	w := NewBuffer(opPushPrefixSize(len(sig)) + len(sig) + opPushPrefixSize(len(pubkey)) + len(pubkey))
	WriteOpPush(w, len(sig))
	w.AppendBytes(sig)
	WriteOpPush(w, len(pubkey))
	w.AppendBytes(pubkey)
	return w.Bytes()
}

// opPushPrefixSize sizes an OP_PUSH prefix (never more than 5 bytes,
// since scriptSig pushes are always far under the 0xFFFF boundary).
func opPushPrefixSize(n int) int {
	switch {
	case n < 0x4C:
		return 1
	case n <= 0xFF:
		return 2
	case n <= 0xFFFF:
		return 3
	default:
		return 5
	}
}

// inputScriptMultisig builds the legacy bare-multisig scriptSig: the
// OP_CHECKMULTISIG off-by-one placeholder (skipped for Decred-like
// coins), one push per filled signature slot, then the redeem script
// pushed inline. Exactly our own slot (identified by pubkey's index)
// must still be empty; this call fills it.
func inputScriptMultisig(ms *MultisigRedeemScript, sig, pubkey []byte, coin *coininfo.CoinInfo) ([]byte, er.R) {
	idx, err := PubkeyIndex(ms, pubkey)
	if err != nil {
		return nil, err
	}
	padded := paddedSignatures(ms)
	if padded[idx] != nil {
		return nil, scripterr.New(scripterr.ErrInvalidMultisigParams, "signature slot already filled")
	}
	padded[idx] = sig

	pubkeys, err := Pubkeys(ms)
	if err != nil {
		return nil, err
	}
	redeem, err := outputScriptMultisig(pubkeys, ms.M)
	if err != nil {
		return nil, err
	}

	size := 0
	if !coin.Decred {
		size++
	}
	for _, s := range padded {
		if s != nil {
			size += opPushPrefixSize(len(s)) + len(s)
		}
	}
	size += opPushPrefixSize(len(redeem)) + len(redeem)

	w := NewBuffer(size)
	if !coin.Decred {
		w.AppendByte(opFalse)
	}
	for _, s := range padded {
		if s == nil {
			continue
		}
		WriteOpPush(w, len(s))
		w.AppendBytes(s)
	}
	WriteOpPush(w, len(redeem))
	w.AppendBytes(redeem)
	return w.Bytes(), nil
}

// BuildWitness produces the witness stack bytes for an input, or nil for
// script types that carry no witness.
func BuildWitness(p InputScriptParams) ([]byte, er.R) {
	switch p.ScriptType {
	case SpendWitness, SpendP2SHWitness:
		if p.Multisig != nil {
			return witnessMultisig(p.Multisig, p.Signature, p.Pubkey)
		}
		return witnessP2WPKH(p.Signature, p.Pubkey), nil
	default:
		return nil, nil
	}
}

// witnessP2WPKH builds varint(2), varint(len(sig)), sig,
// varint(len(pubkey)), pubkey.
func witnessP2WPKH(sig, pubkey []byte) []byte {
	w := NewBuffer(1 + opPushPrefixSize(len(sig)) + len(sig) + opPushPrefixSize(len(pubkey)) + len(pubkey))
	WriteBitcoinVarInt(w, 2)
	WriteBitcoinVarInt(w, uint64(len(sig)))
	w.AppendBytes(sig)
	WriteBitcoinVarInt(w, uint64(len(pubkey)))
	w.AppendBytes(pubkey)
	return w.Bytes()
}

// witnessMultisig builds the P2WSH multisig witness stack: OP_FALSE,
// then every filled signature (this call fills our own slot first), then
// the redeem script, each varint-length-prefixed as a witness item.
func witnessMultisig(ms *MultisigRedeemScript, sig, pubkey []byte) ([]byte, er.R) {
	idx, err := PubkeyIndex(ms, pubkey)
	if err != nil {
		return nil, err
	}
	padded := paddedSignatures(ms)
	if padded[idx] != nil {
		return nil, scripterr.New(scripterr.ErrInvalidMultisigParams, "signature slot already filled")
	}
	padded[idx] = sig

	pubkeys, err := Pubkeys(ms)
	if err != nil {
		return nil, err
	}
	redeem, err := outputScriptMultisig(pubkeys, ms.M)
	if err != nil {
		return nil, err
	}

	numSigs := 0
	for _, s := range padded {
		if s != nil {
			numSigs++
		}
	}
	numItems := 1 + numSigs + 1

	size := VarIntSerializeSize(uint64(numItems)) + VarIntSerializeSize(0)
	for _, s := range padded {
		if s != nil {
			size += VarIntSerializeSize(uint64(len(s))) + len(s)
		}
	}
	size += VarIntSerializeSize(uint64(len(redeem))) + len(redeem)

	w := NewBuffer(size)
	WriteBitcoinVarInt(w, uint64(numItems))
	WriteBitcoinVarInt(w, 0)
	for _, s := range padded {
		if s == nil {
			continue
		}
		WriteBitcoinVarInt(w, uint64(len(s)))
		w.AppendBytes(s)
	}
	WriteBitcoinVarInt(w, uint64(len(redeem)))
	w.AppendBytes(redeem)
	return w.Bytes(), nil
}

// OutputScriptP2PKH builds the 25-byte legacy P2PKH scriptPubKey.
func OutputScriptP2PKH(pubkeyHash []byte) ([]byte, er.R) {
	if len(pubkeyHash) != 20 {
		return nil, scripterr.New(scripterr.ErrWrongScriptHashLength, "pubkey hash must be 20 bytes")
	}
	w := NewBuffer(25)
	w.AppendByte(opDup)
	w.AppendByte(opHash160)
	w.AppendByte(20)
	w.AppendBytes(pubkeyHash)
	w.AppendByte(opEqualVerify)
	w.AppendByte(opCheckSig)
	return w.Bytes(), nil
}

// OutputScriptP2SH builds the 23-byte P2SH scriptPubKey.
func OutputScriptP2SH(scriptHash []byte) ([]byte, er.R) {
	if len(scriptHash) != 20 {
		return nil, scripterr.New(scripterr.ErrWrongScriptHashLength, "script hash must be 20 bytes")
	}
	w := NewBuffer(23)
	w.AppendByte(opHash160)
	w.AppendByte(20)
	w.AppendBytes(scriptHash)
	w.AppendByte(opEqual)
	return w.Bytes(), nil
}

// OutputScriptWitness builds a native SegWit v0 scriptPubKey:
// OP_0, <len>, <program>, where program is 20 bytes (P2WPKH) or 32 bytes
// (P2WSH).
func OutputScriptWitness(program []byte) ([]byte, er.R) {
	if len(program) != params.PayToWitnessPubKeyHashDataSize && len(program) != params.PayToWitnessScriptHashDataSize {
		return nil, scripterr.New(scripterr.ErrWrongScriptHashLength, "witness program must be 20 or 32 bytes")
	}
	w := NewBuffer(2 + len(program))
	w.AppendByte(opFalse)
	w.AppendByte(byte(len(program)))
	w.AppendBytes(program)
	return w.Bytes(), nil
}

// OutputScriptOpReturn builds OP_RETURN <push(data)> <data>. Length
// policy (how large an OP_RETURN payload is acceptable) is an upstream
// concern; this only encodes.
func OutputScriptOpReturn(data []byte) []byte {
	w := NewBuffer(1 + opPushPrefixSize(len(data)) + len(data))
	w.AppendByte(opReturn)
	WriteOpPush(w, len(data))
	w.AppendBytes(data)
	return w.Bytes()
}

// OutputScriptMultisigLength returns the exact byte length
// OutputScriptMultisig would produce for this pubkey set and threshold,
// so callers streaming a transaction can size buffers before building.
func OutputScriptMultisigLength(pubkeys [][]byte, m int) int {
	return 1 + len(pubkeys)*(1+params.CompressedPubKeyLen) + 1 + 1
}

// writeOutputScriptMultisig streams the bare multisig redeem/output
// script into w: OP_m, push(pub) for each pubkey in order, OP_n,
// OP_CHECKMULTISIG. Writing through the Writer interface lets a caller
// pass a HashWriter and obtain the script's digest without ever
// materializing the script.
func writeOutputScriptMultisig(w Writer, pubkeys [][]byte, m int) er.R {
	n := len(pubkeys)
	if n < 1 || n > params.MaxPubKeysPerMultiSig || m < 1 || m > n {
		return scripterr.New(scripterr.ErrInvalidMultisigParams, "m/n out of range")
	}
	w.AppendByte(smallInt(m))
	for _, pub := range pubkeys {
		if len(pub) != params.CompressedPubKeyLen {
			return scripterr.New(scripterr.ErrInvalidMultisigParams, "multisig pubkey is not 33 bytes")
		}
		WriteOpPush(w, len(pub))
		w.AppendBytes(pub)
	}
	w.AppendByte(smallInt(n))
	w.AppendByte(opCheckMultisig)
	return nil
}

// outputScriptMultisig builds the bare multisig redeem/output script as
// a byte slice.
func outputScriptMultisig(pubkeys [][]byte, m int) ([]byte, er.R) {
	w := NewBuffer(OutputScriptMultisigLength(pubkeys, m))
	if err := writeOutputScriptMultisig(w, pubkeys, m); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// OutputScriptMultisig is the exported form of outputScriptMultisig, for
// callers (e.g. change-output construction) that need a bare multisig
// scriptPubKey directly rather than through BuildOutputScript.
func OutputScriptMultisig(pubkeys [][]byte, m int) ([]byte, er.R) {
	return outputScriptMultisig(pubkeys, m)
}

// OutputScriptParams bundles everything BuildOutputScript needs.
type OutputScriptParams struct {
	Address string
	Coin    *coininfo.CoinInfo
}

// BuildOutputScript resolves address against coin and builds its
// scriptPubKey: bech32 addresses become a native witness program,
// CashAddr or base58check addresses become P2PKH or P2SH depending on
// which address type matched.
func BuildOutputScript(p OutputScriptParams) ([]byte, er.R) {
	scriptType, hash, err := DecodeAddress(p.Address, p.Coin)
	if err != nil {
		return nil, err
	}
	switch scriptType {
	case PayToWitness:
		return OutputScriptWitness(hash)
	case PayToP2SHWitness:
		return OutputScriptP2SH(hash)
	case PayToAddress:
		return OutputScriptP2PKH(hash)
	default:
		return nil, scripterr.New(scripterr.ErrUnknownScriptType, "address did not resolve to a known output type")
	}
}

// DeriveScriptCode computes the BIP-143 scriptCode for one input: the
// bare multisig output script if multisig holds more than one pubkey,
// else (including a 1-of-1 multisig) the P2PKH output script
// of the pubkey's hash for every script type this device actually signs
// plus externally-signed inputs it must still hash over.
func DeriveScriptCode(scriptType InputScriptType, pubkey []byte, multisig *MultisigRedeemScript, coin *coininfo.CoinInfo) ([]byte, er.R) {
	if multisig != nil && PubkeyCount(multisig) > 1 {
		pubkeys, err := Pubkeys(multisig)
		if err != nil {
			return nil, err
		}
		return outputScriptMultisig(pubkeys, multisig.M)
	}

	switch scriptType {
	case SpendWitness, SpendP2SHWitness, SpendAddress, External:
		hash, err := HashPubkey(pubkey, coin)
		if err != nil {
			return nil, err
		}
		return OutputScriptP2PKH(hash)
	default:
		return nil, scripterr.New(scripterr.ErrUnknownScriptType, "no scriptCode derivation for this input type")
	}
}
