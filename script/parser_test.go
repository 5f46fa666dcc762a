package script

import (
	"bytes"
	"testing"

	"github.com/pkt-cash/txcore/coininfo"
)

// Round-trip bare multisig scriptSig: build with one slot pre-filled and
// one filled by the call, then parse back the signatures and redeem
// script.
func TestRoundTripInputScriptMultisig(t *testing.T) {
	pubs := [][]byte{
		append([]byte{0x02}, repeat(0x01, 32)...),
		append([]byte{0x03}, repeat(0x02, 32)...),
		append([]byte{0x02}, repeat(0x03, 32)...),
	}
	sig2 := append(repeat(0x55, 71), 0x01)
	ms := &MultisigRedeemScript{
		Pubkeys:    pubs,
		M:          2,
		Signatures: [][]byte{nil, nil, sig2},
	}
	sig0 := append(repeat(0x77, 70), 0x01)

	scriptSig, err := inputScriptMultisig(ms, sig0, pubs[0], &coininfo.CoinInfo{})
	if err != nil {
		t.Fatal(err.String())
	}

	parsed, perr := ReadInputScriptMultisig(scriptSig)
	if perr != nil {
		t.Fatal(perr.String())
	}
	if len(parsed.Signatures) != 2 {
		t.Fatalf("expected 2 signatures, got %d", len(parsed.Signatures))
	}
	if !bytes.Equal(parsed.Signatures[0].SigAndHashType, sig0) {
		t.Fatalf("first signature mismatch")
	}
	if !bytes.Equal(parsed.Signatures[1].SigAndHashType, sig2) {
		t.Fatalf("second signature mismatch")
	}
	redeem, rerr := OutputScriptMultisig(pubs, 2)
	if rerr != nil {
		t.Fatal(rerr.String())
	}
	if !bytes.Equal(parsed.RedeemScript, redeem) {
		t.Fatalf("redeem script mismatch")
	}
}

// A scriptSig with no signature pushes at all (just the placeholder and
// the redeem script) is still well formed.
func TestReadInputScriptMultisigNoSignatures(t *testing.T) {
	pubs := [][]byte{append([]byte{0x02}, repeat(0x09, 32)...)}
	redeem, err := OutputScriptMultisig(pubs, 1)
	if err != nil {
		t.Fatal(err.String())
	}
	w := NewBuffer(1 + opPushPrefixSize(len(redeem)) + len(redeem))
	w.AppendByte(opFalse)
	WriteOpPush(w, len(redeem))
	w.AppendBytes(redeem)

	parsed, perr := ReadInputScriptMultisig(w.Bytes())
	if perr != nil {
		t.Fatal(perr.String())
	}
	if len(parsed.Signatures) != 0 {
		t.Fatalf("expected no signatures, got %d", len(parsed.Signatures))
	}
	if !bytes.Equal(parsed.RedeemScript, redeem) {
		t.Fatalf("redeem script mismatch")
	}
}

func TestReadInputScriptMultisigRejectsMalformed(t *testing.T) {
	cases := map[string][]byte{
		"empty":               {},
		"missing placeholder": {0x01, 0xAA},
		"placeholder only":    {0x00},
		"truncated push":      {0x00, 0x05, 0xAA, 0xAA},
		"bad final opcode":    {0x00, 0x02, 0xAA, 0xAA, 0x7F},
	}
	for name, script := range cases {
		if _, err := ReadInputScriptMultisig(script); err == nil {
			t.Fatalf("%s: expected rejection", name)
		}
	}
}

func TestReadInputScriptP2PKHRejectsTrailingBytes(t *testing.T) {
	pub := append([]byte{0x03}, repeat(0x07, 32)...)
	sig := append(repeat(0x09, 70), 0x01)
	built := inputScriptP2PKH(sig, pub)
	if _, err := ReadInputScriptP2PKH(append(built, 0x00)); err == nil {
		t.Fatal("expected a trailing byte to be rejected")
	}
}

func TestReadInputScriptP2PKHRejectsTruncated(t *testing.T) {
	pub := append([]byte{0x03}, repeat(0x07, 32)...)
	sig := append(repeat(0x09, 70), 0x01)
	built := inputScriptP2PKH(sig, pub)
	if _, err := ReadInputScriptP2PKH(built[:len(built)-1]); err == nil {
		t.Fatal("expected a truncated pubkey push to be rejected")
	}
	if _, err := ReadInputScriptP2PKH(built[:3]); err == nil {
		t.Fatal("expected a truncated signature push to be rejected")
	}
}

func TestReadWitnessP2WPKHRejectsWrongItemCount(t *testing.T) {
	pub := append([]byte{0x02}, repeat(0x11, 32)...)
	sig := append(repeat(0x22, 70), 0x01)
	built := witnessP2WPKH(sig, pub)

	bad := append([]byte{}, built...)
	bad[0] = 3
	if _, err := ReadWitnessP2WPKH(bad); err == nil {
		t.Fatal("expected an item count other than 2 to be rejected")
	}
}

func TestReadWitnessP2WPKHRejectsTrailingBytes(t *testing.T) {
	pub := append([]byte{0x02}, repeat(0x11, 32)...)
	sig := append(repeat(0x22, 70), 0x01)
	built := witnessP2WPKH(sig, pub)
	if _, err := ReadWitnessP2WPKH(append(built, 0xFF)); err == nil {
		t.Fatal("expected a trailing byte to be rejected")
	}
}

func TestReadWitnessP2WSHRejectsMalformed(t *testing.T) {
	pubs := [][]byte{append([]byte{0x02}, repeat(0x01, 32)...)}
	ms := &MultisigRedeemScript{Pubkeys: pubs, M: 1}
	sig := append(repeat(0x01, 70), 0x01)
	wit, err := witnessMultisig(ms, sig, pubs[0])
	if err != nil {
		t.Fatal(err.String())
	}

	missingOpFalse := append([]byte{}, wit...)
	missingOpFalse[1] = 0x01
	if _, perr := ReadWitnessP2WSH(missingOpFalse); perr == nil {
		t.Fatal("expected a missing OP_FALSE placeholder to be rejected")
	}

	if _, perr := ReadWitnessP2WSH([]byte{0x01}); perr == nil {
		t.Fatal("expected a one-item stack to be rejected")
	}

	if _, perr := ReadWitnessP2WSH(append(wit, 0x00)); perr == nil {
		t.Fatal("expected trailing bytes after the redeem script to be rejected")
	}
}

func TestReadOutputScriptMultisigRejectsMalformed(t *testing.T) {
	pubs := [][]byte{
		append([]byte{0x02}, repeat(0x01, 32)...),
		append([]byte{0x03}, repeat(0x02, 32)...),
	}
	good, err := OutputScriptMultisig(pubs, 2)
	if err != nil {
		t.Fatal(err.String())
	}

	noChecksig := append([]byte{}, good...)
	noChecksig[len(noChecksig)-1] = opCheckSig
	badM := append([]byte{}, good...)
	badM[0] = 0x00
	mOverN := append([]byte{}, good...)
	mOverN[0] = smallInt(3)
	extra := append(append([]byte{}, good[:len(good)-2]...), 0x00, good[len(good)-2], good[len(good)-1])

	cases := map[string][]byte{
		"empty":                    {},
		"too short":                {0x51, 0xAE},
		"missing OP_CHECKMULTISIG": noChecksig,
		"m not a small int":        badM,
		"m greater than n":         mOverN,
		"extra byte before OP_n":   extra,
	}
	for name, script := range cases {
		if _, _, perr := ReadOutputScriptMultisig(script); perr == nil {
			t.Fatalf("%s: expected rejection", name)
		}
	}
}

func TestReadOutputScriptMultisigRejectsWrongPubkeyLength(t *testing.T) {
	// 1-of-1 with a 32-byte (uncompressed-length-mangled) pubkey push.
	w := NewBuffer(1 + 1 + 32 + 2)
	w.AppendByte(smallInt(1))
	WriteOpPush(w, 32)
	w.AppendBytes(repeat(0xAA, 32))
	w.AppendByte(smallInt(1))
	w.AppendByte(opCheckMultisig)
	if _, _, err := ReadOutputScriptMultisig(w.Bytes()); err == nil {
		t.Fatal("expected a non-33-byte pubkey push to be rejected")
	}
}
