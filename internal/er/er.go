// Package er provides a tagged-error-code type used throughout txcore in
// place of bare errors. Every exported operation that can fail returns an
// er.R rather than a stdlib error, so callers can switch on *which* code
// kind fired without parsing message strings.
package er

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"runtime/debug"
	"strings"
)

// GenericErrorType is for packages with only one or two error codes
// which don't make sense having their own error type.
var GenericErrorType = NewErrorType("er.GenericErrorType")

var ErrUnexpectedEOF = GenericErrorType.CodeWithDefault("ErrUnexpectedEOF", io.ErrUnexpectedEOF)
var EOF = GenericErrorType.CodeWithDefault("EOF", io.EOF)

// ErrorCode identifies a particular kind of fault within an ErrorType.
type ErrorCode struct {
	Detail         string
	Number         int
	Type           *ErrorType
	defaultWrapped error
}

type typedErr struct {
	messages []string
	errType  *ErrorType
	code     *ErrorCode
	err      R
}

// ErrorType is a family of related error codes, identified by name.
type ErrorType struct {
	Name       string
	codeLookup map[int]*ErrorCode
	Codes      []*ErrorCode
}

// NewErrorType creates a new error type, identified by name.
// For example: var MyError = er.NewErrorType("mypackage.MyError")
func NewErrorType(ident string) ErrorType {
	return ErrorType{
		Name:       ident,
		codeLookup: make(map[int]*ErrorCode),
	}
}

func (c *ErrorCode) Is(err R) bool {
	if err == nil {
		return c == nil
	}
	if te, ok := err.(typedErr); ok {
		return te.code == c
	}
	return false
}

func (c *ErrorCode) new(info string, err R, bstack []byte) R {
	var messages []string
	if info == "" {
		messages = []string{c.Detail}
	} else {
		messages = []string{c.Detail, info}
	}
	if err == nil {
		if bstack == nil {
			bstack = captureStack()
		}
		err = newErr("", bstack)
	} else if te, ok := err.(typedErr); ok {
		if te.code == c {
			if info != "" {
				te.messages = append(messages, te.messages...)
			}
			return te
		}
	}
	return typedErr{
		messages: messages,
		errType:  c.Type,
		code:     c,
		err:      err,
	}
}

// New creates an R of this code, optionally wrapping a cause.
func (c *ErrorCode) New(info string, err R) R {
	if err == nil {
		return c.new(info, nil, captureStack())
	}
	return c.new(info, err, nil)
}

func (e *ErrorType) Is(err R) bool {
	if err == nil {
		return false
	}
	if te, ok := err.(typedErr); ok {
		return te.errType == e
	}
	return false
}

func (e *ErrorType) Decode(err R) *ErrorCode {
	if err == nil {
		return nil
	}
	if te, ok := err.(typedErr); ok {
		return te.code
	}
	return nil
}

func (e *ErrorType) newErrorCode(number int, hasNumber bool, info string, detail string) *ErrorCode {
	header := info
	if hasNumber {
		header = fmt.Sprintf("%s(%d)", info, number)
	}
	if detail != "" {
		header = header + ": " + detail
	}
	result := &ErrorCode{
		Detail: header,
		Type:   e,
		Number: number,
	}
	if hasNumber {
		e.codeLookup[number] = result
	}
	e.Codes = append(e.Codes, result)
	return result
}

// Default returns an R of this code with no extra info, wrapping this
// code's default cause (if CodeWithDefault was used) or nothing.
func (c *ErrorCode) Default() R {
	if c.defaultWrapped != nil {
		return c.new("", ee(c.defaultWrapped), nil)
	}
	return c.new("", nil, captureStack())
}

func (e *ErrorType) Code(info string) *ErrorCode {
	return e.newErrorCode(0, false, info, "")
}

func (e *ErrorType) CodeWithDefault(info string, defaultError error) *ErrorCode {
	ec := e.newErrorCode(0, false, info, "")
	ec.defaultWrapped = defaultError
	return ec
}

func (e *ErrorType) CodeWithDetail(info string, detail string) *ErrorCode {
	return e.newErrorCode(0, false, info, detail)
}

func (te typedErr) AddMessage(m string) {
	te.messages = append([]string{m}, te.messages...)
}

func (te typedErr) Message() string {
	tem := te.err.Message()
	if tem == "" {
		return strings.Join(te.messages, ": ")
	}
	return fmt.Sprintf("%s: %s", strings.Join(te.messages, ": "), te.err.Message())
}

func (te typedErr) HasStack() bool { return te.err.HasStack() }
func (te typedErr) Stack() []string { return te.err.Stack() }

func (te typedErr) String() string {
	s := ""
	if te.err.HasStack() {
		s = "\n\n" + strings.Join(te.err.Stack(), "\n") + "\n"
	}
	return te.Message() + s
}

func (te typedErr) Error() string { return te.String() }
func (te typedErr) Wrapped0() error { return te.err.Wrapped0() }

type typedErrAsNative struct{ e typedErr }

func (ten typedErrAsNative) Error() string { return ten.e.String() }
func (te typedErr) Native() error          { return typedErrAsNative{e: te} }

// R is the error-return type used throughout txcore in place of `error`.
type R interface {
	Message() string
	Stack() []string
	HasStack() bool
	String() string
	Wrapped0() error
	Native() error
	AddMessage(m string)
}

type errImpl struct {
	messages []string
	e        error
	bstack   []byte
	stack    []string
}

type errAsNative struct{ e errImpl }

func (e errAsNative) Error() string  { return e.e.String() }
func (e errImpl) HasStack() bool     { return e.bstack != nil }

func (e errImpl) Stack() []string {
	if e.stack == nil {
		s := strings.Split(string(e.bstack), "\n")
		if len(s) > 5 {
			s = s[5:]
		}
		var stack []string
		for i := range s {
			stack = append(stack, strings.TrimSpace(s[i]))
		}
		e.stack = stack
	}
	return e.stack
}

func (e errImpl) AddMessage(m string) {
	if e.messages == nil {
		e.messages = []string{m, e.e.Error()}
	} else {
		e.messages = append([]string{m}, e.messages...)
	}
}

func (e errImpl) Message() string {
	if e.messages == nil {
		return e.e.Error()
	}
	return strings.Join(e.messages, ", ")
}

func (e errImpl) String() string {
	s := ""
	if e.bstack != nil {
		s = "\n\n" + strings.Join(e.Stack(), "\n") + "\n"
	}
	return e.Message() + s
}

func (e errImpl) Error() string    { return e.String() }
func (e errImpl) Wrapped0() error  { return e.e }
func (e errImpl) Native() error    { return errAsNative{e: e} }

func captureStack() []byte { return debug.Stack() }

// Wrapped returns the underlying stdlib error, if any.
func Wrapped(err R) error {
	if err == nil {
		return nil
	}
	return err.Wrapped0()
}

// Native adapts an R to the stdlib error interface.
func Native(err R) error {
	if err == nil {
		return nil
	}
	return err.Native()
}

func newErr(s string, bstack []byte) R {
	return errImpl{e: errors.New(s), bstack: bstack}
}

// New creates an untyped R from a message.
func New(s string) R {
	return newErr(s, captureStack())
}

// Errorf creates an untyped R via fmt.Errorf-style formatting.
func Errorf(format string, a ...interface{}) R {
	return errImpl{e: fmt.Errorf(format, a...), bstack: captureStack()}
}

func ee(e error) R {
	return errImpl{e: e, bstack: captureStack()}
}

// E wraps a stdlib error as an R, unwrapping it back out if it was
// produced by Native() in the first place.
func E(e error) R {
	if e == nil {
		return nil
	}
	if en, ok := e.(errAsNative); ok {
		return en.e
	}
	if en, ok := e.(typedErrAsNative); ok {
		return en.e
	}
	switch e {
	case io.ErrUnexpectedEOF:
		return ErrUnexpectedEOF.Default()
	case io.EOF:
		return EOF.Default()
	default:
		return ee(e)
	}
}

func equals(e, r R, fuzzy bool) bool {
	if e == nil || r == nil {
		return e == nil && r == nil
	}
	if te, ok := e.(typedErr); ok {
		if tr, ok := r.(typedErr); ok {
			return te.code == tr.code
		}
		return false
	}
	if ee, ok := e.(errImpl); ok {
		if rr, ok := r.(errImpl); ok {
			if ee.e != nil && rr.e != nil {
				if ee.e == rr.e {
					return true
				}
				if fuzzy {
					return reflect.TypeOf(ee.e) == reflect.TypeOf(rr.e)
				}
			}
			return false
		}
		return false
	}
	panic("er: unknown R implementation " + reflect.TypeOf(e).Name())
}

// Equals reports whether two R values are the same error code / cause.
func Equals(e, r R) bool { return equals(e, r, false) }

// FuzzyEquals is like Equals but also matches wrapped errors of the same
// underlying Go type.
func FuzzyEquals(e, r R) bool { return equals(e, r, true) }

// Cis reports whether e is of the given code (nil-safe).
func Cis(code *ErrorCode, e R) bool {
	if code == nil {
		return e == nil
	}
	return code.Is(e)
}
