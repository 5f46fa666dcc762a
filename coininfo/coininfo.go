// Package coininfo defines the boundary this module's transaction
// construction core is consumed through: per-coin policy, the signing
// curve, the HD node abstraction and the UI/path-validator callbacks a
// hardware-signing device provides. None of these are implemented here —
// deriving keys, doing curve arithmetic, talking to a display, and keeping
// a policy table of every supported coin are all out of scope for this
// core; only the narrow contracts it calls through are defined.
package coininfo

import "github.com/pkt-cash/txcore/internal/er"

// CoinInfo carries the per-coin policy a script-construction call needs.
// A single process may hold many CoinInfo values (one per supported coin);
// this core never mutates one.
type CoinInfo struct {
	Name string

	// Decimals is used only to format CoinJoin confirmation amounts; it
	// plays no role in script encoding.
	Decimals uint32

	// Bech32Prefix is the coin's native SegWit human-readable part (e.g.
	// "bc" for Bitcoin mainnet). Empty if the coin has no bech32 addresses.
	Bech32Prefix string

	// CashAddrPrefix is the coin's CashAddr human-readable prefix. Empty
	// if the coin does not support CashAddr.
	CashAddrPrefix string

	// AddressType and AddressTypeP2SH are the base58check version
	// prefixes identifying, respectively, a P2PKH and a P2SH payload for
	// this coin. Most coins use a single version byte (values 0-255);
	// coins with a two- or three-byte prefix (e.g. some altcoin P2SH
	// prefixes) are represented by the same big-endian integer over the
	// wider prefix, per AddressPrefixLen.
	AddressType     uint32
	AddressTypeP2SH uint32

	// Decred is true for coins whose multisig scriptSig omits the
	// OP_FALSE placeholder that works around Bitcoin's own
	// OP_CHECKMULTISIG off-by-one bug.
	Decred bool

	// CurveName identifies the signing curve this coin uses (passed
	// through to the path validator; this core never interprets it).
	CurveName string

	// B58HashFunc is the coin-specific digest used to compute a
	// base58check checksum (double SHA-256 on Bitcoin; a different
	// function on some forks). The address codec decodes the base58
	// alphabet itself and calls this only to verify/strip the trailing
	// 4-byte checksum.
	B58HashFunc func(payload []byte) []byte

	// ScriptHash turns a public key into the hash used inside a
	// scriptPubKey (HASH160 on Bitcoin; a different function on some
	// forks), the upstream collaborator the original ecdsa_hash_pubkey
	// call resolves to.
	ScriptHash func(pubkey []byte) []byte

	// CashAddrDecode, when non-nil, decodes a "prefix:payload" CashAddr
	// string into (version, data). version should be 0 for P2KH, 1 for
	// P2SH per the CashAddr spec; any other value is rejected by the
	// caller. Coins that do not support CashAddr leave this nil.
	CashAddrDecode func(prefix, address string) (version int, data []byte, err er.R)
}

// CashAddr version tags, matching the values common.py's cashaddr module
// assigns (ADDRESS_TYPE_P2KH / ADDRESS_TYPE_P2SH).
const (
	CashAddrP2KH = 0
	CashAddrP2SH = 1
)

// AddressPrefixLen returns the number of leading bytes of a base58check
// payload that addressType occupies: 1 for values up to 0xFF, 2 up to
// 0xFFFF, 3 otherwise. This lets a single integer field represent both
// Bitcoin's one-byte version and the two/three-byte prefixes some forks
// use.
func AddressPrefixLen(addressType uint32) int {
	switch {
	case addressType <= 0xFF:
		return 1
	case addressType <= 0xFFFF:
		return 2
	default:
		return 3
	}
}

// Curve is the signing curve boundary (secp256k1 in practice). Curve
// arithmetic itself is out of scope for this core; only its sign/verify
// contract is needed by script construction and signature verification.
type Curve interface {
	// Sign signs digest with priv, returning a 65-byte recovery-byte||r||s
	// buffer.
	Sign(priv, digest32 []byte) ([65]byte, er.R)
	// Verify reports whether sig64 (r||s, 64 bytes) is a valid signature
	// over digest32 by pub.
	Verify(pub, sig64, digest32 []byte) bool
}

// HDNode is the minimal BIP-32 node contract this core needs: access to
// the raw private key bytes for signing. Derivation itself happens
// upstream of this core.
type HDNode interface {
	PrivateKey() [32]byte
}

// PathValidatorFunc validates a full BIP-32 path (already prefixed by any
// wallet-internal levels the caller adds) against a coin's path policy for
// a given curve and, optionally, script type. It returns an InvalidPathError
// (via the caller's error type) on rejection.
type PathValidatorFunc func(fullPath []uint32, curveName string, coin *CoinInfo, scriptType int) er.R

// UI is the narrow confirmation surface this core calls into; it never
// renders anything itself. Both calls may fail with UserCancelled.
type UI interface {
	Confirm(text string) er.R
	HoldToConfirm(text string) er.R
}
