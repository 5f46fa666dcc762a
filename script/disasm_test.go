package script

import (
	"encoding/hex"
	"strings"
	"testing"
)

func TestDisasmStringP2PKH(t *testing.T) {
	hash := seqBytes(20)
	out, err := OutputScriptP2PKH(hash)
	if err != nil {
		t.Fatal(err.String())
	}
	want := "OP_DUP OP_HASH160 " + hex.EncodeToString(hash) + " OP_EQUALVERIFY OP_CHECKSIG"
	if got := DisasmString(out); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestDisasmStringMultisig(t *testing.T) {
	pub := append([]byte{0x02}, repeat(0xAA, 32)...)
	out, err := OutputScriptMultisig([][]byte{pub}, 1)
	if err != nil {
		t.Fatal(err.String())
	}
	want := "OP_1 " + hex.EncodeToString(pub) + " OP_1 OP_CHECKMULTISIG"
	if got := DisasmString(out); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestDisasmStringTruncatedPush(t *testing.T) {
	if got := DisasmString([]byte{0x05, 0xAA}); !strings.Contains(got, "[error]") {
		t.Fatalf("expected an [error] marker, got %q", got)
	}
}

func TestDisasmStringEmpty(t *testing.T) {
	if got := DisasmString(nil); got != "" {
		t.Fatalf("expected empty disassembly, got %q", got)
	}
}
