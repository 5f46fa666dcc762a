package script

import (
	"bytes"

	"github.com/pkt-cash/txcore/script/params"
	"github.com/pkt-cash/txcore/script/scripterr"

	"github.com/pkt-cash/txcore/internal/er"
)

// MultisigRedeemScript is the ordered public-key set and per-signer
// signature slots behind a bare/P2SH/P2WSH multisig script. Upstream
// resolves each signer's extended public key down to its 33-byte
// compressed form at the shared derivation suffix before building one of
// these; this package never derives a key itself.
//
// Signatures is parallel to Pubkeys: a nil entry is an empty slot, a
// non-nil entry holds that signer's signature||hash_type bytes as
// already produced by the signature codec. Pubkeys are kept in the
// order the caller supplied them; this package never reorders them,
// since the order is a protocol contract with the coordinating wallet.
type MultisigRedeemScript struct {
	Pubkeys    [][]byte
	M          int
	Signatures [][]byte
}

// PubkeyCount returns n, the total number of signers in ms.
func PubkeyCount(ms *MultisigRedeemScript) int {
	return len(ms.Pubkeys)
}

// validate checks the invariants every other operation in this file
// relies on: 1 <= m <= n <= MaxPubKeysPerMultiSig, every pubkey is the
// compressed 33-byte form, and Signatures, once padded, has exactly n
// slots.
func validate(ms *MultisigRedeemScript) er.R {
	n := len(ms.Pubkeys)
	if n < 1 || n > params.MaxPubKeysPerMultiSig || ms.M < 1 || ms.M > n {
		return scripterr.New(scripterr.ErrInvalidMultisigParams, "m/n out of range")
	}
	for _, pub := range ms.Pubkeys {
		if len(pub) != params.CompressedPubKeyLen {
			return scripterr.New(scripterr.ErrInvalidMultisigParams, "multisig pubkey is not 33 bytes")
		}
	}
	if len(ms.Signatures) > n {
		return scripterr.New(scripterr.ErrInvalidMultisigParams, "too many signature slots")
	}
	return nil
}

// Pubkeys returns ms's public keys in caller-supplied order, after
// checking the multisig invariants.
func Pubkeys(ms *MultisigRedeemScript) ([][]byte, er.R) {
	if err := validate(ms); err != nil {
		return nil, err
	}
	return ms.Pubkeys, nil
}

// PubkeyIndex returns the position of pub within ms.Pubkeys, the index a
// signer uses both to find its own (necessarily still-empty) signature
// slot and as the derivation suffix shared by every signer.
func PubkeyIndex(ms *MultisigRedeemScript, pub []byte) (int, er.R) {
	if err := validate(ms); err != nil {
		return 0, err
	}
	for i, p := range ms.Pubkeys {
		if bytes.Equal(p, pub) {
			return i, nil
		}
	}
	return 0, scripterr.New(scripterr.ErrInvalidMultisigParams, "pubkey is not a member of this multisig")
}

// paddedSignatures returns ms.Signatures zero-extended (with nil entries)
// out to PubkeyCount(ms) slots, the form every builder below consumes.
func paddedSignatures(ms *MultisigRedeemScript) [][]byte {
	n := PubkeyCount(ms)
	out := make([][]byte, n)
	copy(out, ms.Signatures)
	return out
}
