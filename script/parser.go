package script

import (
	"github.com/pkt-cash/txcore/script/params"
	"github.com/pkt-cash/txcore/script/scripterr"

	"github.com/pkt-cash/txcore/internal/er"
)

// SigPair is one recovered (signature, sighash type)-like item: the raw
// push bytes exactly as they appeared on the wire, sig||hash_type still
// joined. Splitting off the trailing hash-type byte is left to the
// caller, which already knows whether this coin's signatures carry one.
type SigPair struct {
	SigAndHashType []byte
}

// ParsedScriptSig is what every parser in this file recovers: the
// pubkeys a scriptSig/witness commits to, and the signatures it carries,
// in wire order.
type ParsedScriptSig struct {
	Pubkeys    [][]byte
	Signatures []SigPair
}

// finished reports whether a parse exactly consumed data; every parser
// below must check this, since any leftover byte is a DataError.
func finished(data []byte, offset int) er.R {
	if offset != len(data) {
		return scripterr.New(scripterr.ErrInvalidScriptSig, "trailing bytes after script")
	}
	return nil
}

// ReadInputScriptP2PKH parses a P2PKH scriptSig: one signature push,
// one pubkey push, nothing else.
func ReadInputScriptP2PKH(script []byte) (ParsedScriptSig, er.R) {
	n, off, err := ReadOpPush(script, 0)
	if err != nil {
		return ParsedScriptSig{}, err
	}
	if off+n > len(script) {
		return ParsedScriptSig{}, scripterr.New(scripterr.ErrInvalidScriptSig, "truncated signature push")
	}
	sig := script[off : off+n]
	off += n

	n, off, err = ReadOpPush(script, off)
	if err != nil {
		return ParsedScriptSig{}, err
	}
	if off+n > len(script) {
		return ParsedScriptSig{}, scripterr.New(scripterr.ErrInvalidScriptSig, "truncated pubkey push")
	}
	pub := script[off : off+n]
	off += n

	if err := finished(script, off); err != nil {
		return ParsedScriptSig{}, err
	}
	return ParsedScriptSig{
		Pubkeys:    [][]byte{pub},
		Signatures: []SigPair{{SigAndHashType: sig}},
	}, nil
}

// ReadWitnessP2WPKH parses a P2WPKH witness stack: varint item count
// (must be 2), then the signature and pubkey items, each prefixed by its
// VarInt length (not by the OP_PUSH framing a P2PKH scriptSig uses).
func ReadWitnessP2WPKH(witness []byte) (ParsedScriptSig, er.R) {
	count, off, err := ReadBitcoinVarInt(witness, 0)
	if err != nil {
		return ParsedScriptSig{}, err
	}
	if count != 2 {
		return ParsedScriptSig{}, scripterr.New(scripterr.ErrInvalidWitness, "expected 2 witness items")
	}

	sigLen, off2, err := ReadBitcoinVarInt(witness, off)
	if err != nil {
		return ParsedScriptSig{}, err
	}
	if off2+int(sigLen) > len(witness) {
		return ParsedScriptSig{}, scripterr.New(scripterr.ErrInvalidWitness, "truncated signature item")
	}
	sig := witness[off2 : off2+int(sigLen)]
	off = off2 + int(sigLen)

	pubLen, off2, err := ReadBitcoinVarInt(witness, off)
	if err != nil {
		return ParsedScriptSig{}, err
	}
	if off2+int(pubLen) > len(witness) {
		return ParsedScriptSig{}, scripterr.New(scripterr.ErrInvalidWitness, "truncated pubkey item")
	}
	pub := witness[off2 : off2+int(pubLen)]
	off = off2 + int(pubLen)

	if err := finished(witness, off); err != nil {
		return ParsedScriptSig{}, err
	}
	return ParsedScriptSig{
		Pubkeys:    [][]byte{pub},
		Signatures: []SigPair{{SigAndHashType: sig}},
	}, nil
}

// ParsedWitnessMultisig is what ReadWitnessP2WSH recovers: the redeem
// script (still undecoded — callers pass it to ReadOutputScriptMultisig
// for the pubkey list) plus the signatures carried alongside it.
type ParsedWitnessMultisig struct {
	RedeemScript []byte
	Signatures   []SigPair
}

// ReadWitnessP2WSH parses a P2WSH multisig witness stack: varint item
// count N, then a single OP_FALSE placeholder byte, then N-2 signature
// items, then one redeem-script item consuming the remainder.
func ReadWitnessP2WSH(witness []byte) (ParsedWitnessMultisig, er.R) {
	count, off, err := ReadBitcoinVarInt(witness, 0)
	if err != nil {
		return ParsedWitnessMultisig{}, err
	}
	if count < 2 {
		return ParsedWitnessMultisig{}, scripterr.New(scripterr.ErrInvalidWitness, "too few witness items")
	}
	if off >= len(witness) || witness[off] != opFalse {
		return ParsedWitnessMultisig{}, scripterr.New(scripterr.ErrInvalidWitness, "missing OP_FALSE placeholder")
	}
	off++

	numSigs := int(count) - 2
	sigs := make([]SigPair, 0, numSigs)
	for i := 0; i < numSigs; i++ {
		sigLen, off2, err := ReadBitcoinVarInt(witness, off)
		if err != nil {
			return ParsedWitnessMultisig{}, err
		}
		if off2+int(sigLen) > len(witness) {
			return ParsedWitnessMultisig{}, scripterr.New(scripterr.ErrInvalidWitness, "truncated signature item")
		}
		sigs = append(sigs, SigPair{SigAndHashType: witness[off2 : off2+int(sigLen)]})
		off = off2 + int(sigLen)
	}

	redeemLen, off2, err := ReadBitcoinVarInt(witness, off)
	if err != nil {
		return ParsedWitnessMultisig{}, err
	}
	if off2+int(redeemLen) != len(witness) {
		return ParsedWitnessMultisig{}, scripterr.New(scripterr.ErrInvalidWitness, "redeem script does not consume the rest of the witness")
	}
	redeem := witness[off2 : off2+int(redeemLen)]

	return ParsedWitnessMultisig{RedeemScript: redeem, Signatures: sigs}, nil
}

// ReadInputScriptMultisig parses a legacy bare-multisig scriptSig: the
// OP_CHECKMULTISIG off-by-one placeholder, zero or more signature
// pushes, then one redeem-script push consuming the remainder.
//
// A naive parser could carry a stale running length across this kind
// of trailing-push loop; here the redeem-script push is re-read
// explicitly with its own ReadOpPush call after the loop exits, so its
// declared length is always checked against what is actually left in
// the buffer rather than assumed.
func ReadInputScriptMultisig(script []byte) (ParsedWitnessMultisig, er.R) {
	if len(script) < 1 || script[0] != opFalse {
		return ParsedWitnessMultisig{}, scripterr.New(scripterr.ErrInvalidScriptSig, "missing OP_FALSE placeholder")
	}
	off := 1

	var sigs []SigPair
	for {
		if off >= len(script) {
			return ParsedWitnessMultisig{}, scripterr.New(scripterr.ErrInvalidScriptSig, "missing redeem script push")
		}
		// Peek: if this is the final push, it is the redeem script, not
		// a signature. We can't know that ahead of reading its length,
		// so try each remaining push as a signature until only one push
		// remains in the buffer.
		n, next, err := ReadOpPush(script, off)
		if err != nil {
			return ParsedWitnessMultisig{}, err
		}
		if next+n > len(script) {
			return ParsedWitnessMultisig{}, scripterr.New(scripterr.ErrInvalidScriptSig, "truncated push")
		}
		if next+n == len(script) {
			// This push consumes exactly the rest of the script: it is
			// the redeem script push, re-read explicitly so its length
			// is checked against what remains right now rather than
			// carried over from a previous iteration.
			redeemLen, redeemOff, err := ReadOpPush(script, off)
			if err != nil {
				return ParsedWitnessMultisig{}, err
			}
			if redeemOff+redeemLen != len(script) {
				return ParsedWitnessMultisig{}, scripterr.New(scripterr.ErrInvalidScriptSig, "redeem script does not consume the rest of the script")
			}
			redeem := script[redeemOff : redeemOff+redeemLen]
			return ParsedWitnessMultisig{RedeemScript: redeem, Signatures: sigs}, nil
		}
		sigs = append(sigs, SigPair{SigAndHashType: script[next : next+n]})
		off = next + n
	}
}

// ReadOutputScriptMultisig recovers the pubkeys and threshold from a bare
// multisig redeem/output script: OP_m, n fixed-33-byte pushes, OP_n,
// OP_CHECKMULTISIG.
func ReadOutputScriptMultisig(redeemScript []byte) ([][]byte, int, er.R) {
	fail := func(msg string) ([][]byte, int, er.R) {
		return nil, 0, scripterr.New(scripterr.ErrInvalidMultisigScript, msg)
	}

	if len(redeemScript) < 3 || redeemScript[len(redeemScript)-1] != opCheckMultisig {
		return fail("missing OP_CHECKMULTISIG")
	}
	m, ok := smallIntValue(redeemScript[0])
	if !ok {
		return fail("invalid m")
	}
	n, ok := smallIntValue(redeemScript[len(redeemScript)-2])
	if !ok {
		return fail("invalid n")
	}
	if m < 1 || n < 1 || n > params.MaxPubKeysPerMultiSig || m > n {
		return fail("m/n out of range")
	}

	off := 1
	pubkeys := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		pushLen, next, err := ReadOpPush(redeemScript, off)
		if err != nil {
			return nil, 0, err
		}
		if pushLen != params.CompressedPubKeyLen {
			return fail("multisig pubkey is not 33 bytes")
		}
		if next+pushLen > len(redeemScript) {
			return fail("truncated pubkey push")
		}
		pubkeys = append(pubkeys, redeemScript[next:next+pushLen])
		off = next + pushLen
	}

	if off != len(redeemScript)-2 {
		return fail("trailing bytes before OP_n OP_CHECKMULTISIG")
	}
	return pubkeys, m, nil
}
