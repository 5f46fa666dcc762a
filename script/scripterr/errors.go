// Package scripterr defines the error kinds this module's script,
// address and CoinJoin-authorization code can return. Each kind is its
// own er.ErrorType so that callers (in particular the sign-tx driver
// this core feeds) can branch on DataError vs. ProcessError vs.
// InvalidSignature differently rather than parsing a message string.
package scripterr

import "github.com/pkt-cash/txcore/internal/er"

// DataErr is raised for malformed inputs: invalid coordinator strings,
// bad addresses, wrong push/varint encodings, invalid multisig
// parameters, invalid witnesses, trailing script bytes, or a
// wrong-length script hash.
var DataErr = er.NewErrorType("scripterr.DataError")

// ProcessErr is raised for well-formed input that is semantically
// impossible to satisfy: a bech32 library rejection, or reaching an
// unknown script type in a dispatch that is supposed to be exhaustive.
var ProcessErr = er.NewErrorType("scripterr.ProcessError")

// SignatureErr is raised only for DER signature decode failures.
var SignatureErr = er.NewErrorType("scripterr.InvalidSignature")

// PathErr is raised by the external path validator.
var PathErr = er.NewErrorType("scripterr.InvalidPathError")

// CancelErr is raised when the user declines a UI confirmation.
var CancelErr = er.NewErrorType("scripterr.UserCancelled")

var (
	ErrInvalidVarInt           = DataErr.Code("ErrInvalidVarInt")
	ErrInvalidOpPush           = DataErr.Code("ErrInvalidOpPush")
	ErrInvalidScriptSig        = DataErr.Code("ErrInvalidScriptSig")
	ErrInvalidWitness          = DataErr.Code("ErrInvalidWitness")
	ErrInvalidMultisigParams   = DataErr.Code("ErrInvalidMultisigParameters")
	ErrInvalidMultisigScript   = DataErr.Code("ErrInvalidMultisigScript")
	ErrInvalidAddress          = DataErr.Code("ErrInvalidAddress")
	ErrInvalidAddressType      = DataErr.Code("ErrInvalidAddressType")
	ErrInvalidCoordinator      = DataErr.Code("ErrInvalidCoordinator")
	ErrInvalidPubkey           = DataErr.Code("ErrInvalidPubkey")
	ErrWrongScriptHashLength   = DataErr.Code("ErrWrongScriptHashLength")

	ErrUnknownScriptType = ProcessErr.Code("ErrUnknownScriptType")
	ErrBech32Rejected    = ProcessErr.Code("ErrBech32Rejected")

	ErrSignatureDecode = SignatureErr.Code("ErrSignatureDecode")

	ErrUserCancelled = CancelErr.Code("ErrUserCancelled")
)

// New builds an R for the given code with a descriptive suffix.
func New(c *er.ErrorCode, desc string) er.R {
	return c.New(desc, nil)
}
