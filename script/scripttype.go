// Package script implements the transaction-construction core: input
// scriptSig/witness/scriptCode builders, output scriptPubKey builders,
// their inverse parsers, the DER signature codec, the bech32/base58check
// address codec, and the multisig redeem-script model. It is pure and
// synchronous throughout — no function in this package suspends.
package script

// InputScriptType is the closed set of scriptSig/witness shapes this core
// can build or parse for a transaction input.
type InputScriptType int

const (
	// SpendAddress is legacy P2PKH.
	SpendAddress InputScriptType = iota
	// SpendMultisig is legacy bare-P2SH multisig.
	SpendMultisig
	// SpendP2SHWitness is P2WPKH-in-P2SH or P2WSH-in-P2SH.
	SpendP2SHWitness
	// SpendWitness is native P2WPKH or P2WSH.
	SpendWitness
	// External marks an input this device does not sign; it is only a
	// consumer of scriptCode (for computing other inputs' sighashes in a
	// mixed transaction).
	External
)

// OutputScriptType is the closed set of scriptPubKey shapes this core can
// build or recognize for a transaction output.
type OutputScriptType int

const (
	PayToAddress OutputScriptType = iota
	PayToMultisig
	PayToP2SHWitness
	PayToWitness
	PayToOpReturn
)

// changeOutputToInputScriptType is the canonical mapping from an output
// script type to the input script type that would later spend it, used to
// recognize that an output pays back to one of our own change addresses
// (common.py's CHANGE_OUTPUT_TO_INPUT_SCRIPT_TYPES).
var changeOutputToInputScriptType = map[OutputScriptType]InputScriptType{
	PayToAddress:     SpendAddress,
	PayToMultisig:    SpendMultisig,
	PayToP2SHWitness: SpendP2SHWitness,
	PayToWitness:     SpendWitness,
}

// ChangeOutputToInputScriptType returns the input script type an output of
// the given type would be spent with, and whether that output type is
// eligible to be a change output at all (PayToOpReturn is not).
func ChangeOutputToInputScriptType(t OutputScriptType) (InputScriptType, bool) {
	ist, ok := changeOutputToInputScriptType[t]
	return ist, ok
}

// IsChangeOutputScriptType reports whether t can be a change output.
func IsChangeOutputScriptType(t OutputScriptType) bool {
	_, ok := changeOutputToInputScriptType[t]
	return ok
}

// IsInternalInputScriptType reports whether t is one this device would
// use for its own (change) outputs.
func IsInternalInputScriptType(t InputScriptType) bool {
	switch t {
	case SpendAddress, SpendMultisig, SpendP2SHWitness, SpendWitness:
		return true
	default:
		return false
	}
}

// IsMultisigInputScriptType reports whether inputs of this type may carry
// a MultisigRedeemScript.
func IsMultisigInputScriptType(t InputScriptType) bool {
	switch t {
	case SpendMultisig, SpendP2SHWitness, SpendWitness:
		return true
	default:
		return false
	}
}

// IsMultisigOutputScriptType reports whether outputs of this type may
// describe a multisig redemption.
func IsMultisigOutputScriptType(t OutputScriptType) bool {
	switch t {
	case PayToMultisig, PayToP2SHWitness, PayToWitness:
		return true
	default:
		return false
	}
}

// IsSegwitInputScriptType reports whether t places its spending material
// in the witness rather than (or in addition to) the scriptSig.
func IsSegwitInputScriptType(t InputScriptType) bool {
	switch t {
	case SpendP2SHWitness, SpendWitness:
		return true
	default:
		return false
	}
}

// IsNonSegwitInputScriptType reports whether t is a purely legacy,
// pre-BIP-141 input type.
func IsNonSegwitInputScriptType(t InputScriptType) bool {
	switch t {
	case SpendAddress, SpendMultisig:
		return true
	default:
		return false
	}
}
