// Copyright (c) 2015-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package params holds the handful of wire-level size and sighash
// constants the script builder/parser need: a pure script-construction
// core (as opposed to a full script-execution VM) only touches this
// narrow slice of what a consensus engine would otherwise define.
package params

// SigHashType represents hash type bits at the end of a signature.
type SigHashType uint32

// Hash type bits from the end of a signature.
const (
	SigHashOld          SigHashType = 0x0
	SigHashAll          SigHashType = 0x1
	SigHashNone         SigHashType = 0x2
	SigHashSingle       SigHashType = 0x3
	SigHashAnyOneCanPay SigHashType = 0x80

	// SigHashMask defines the number of bits of the hash type which is
	// used to identify which outputs are signed.
	SigHashMask = 0x1f
)

const (
	// PayToWitnessPubKeyHashDataSize is the size of the witness
	// program's data push for a pay-to-witness-pub-key-hash output.
	PayToWitnessPubKeyHashDataSize = 20

	// PayToWitnessScriptHashDataSize is the size of the witness
	// program's data push for a pay-to-witness-script-hash output.
	PayToWitnessScriptHashDataSize = 32

	// MaxPubKeysPerMultiSig is the maximum number of public keys this
	// core will build or parse a bare/witness multisig redeem script
	// for. This is narrower than a consensus engine's own script-VM
	// limit (20), and one below the OP_16 ceiling of the OP_1..OP_16
	// small-int encoding this core relies on. The threshold m may be
	// anywhere from 1 up to and including n.
	MaxPubKeysPerMultiSig = 15

	// CompressedPubKeyLen is the length in bytes of a compressed
	// secp256k1 public key, the only form multisig contexts accept.
	CompressedPubKeyLen = 33
)
