package script

import (
	"crypto/sha256"
	"hash"

	"github.com/pkt-cash/txcore/script/scripterr"

	"github.com/pkt-cash/txcore/internal/er"
)

// Writer is the narrow append-only sink every script/witness builder in
// this package writes through. Two concrete implementations exist: Buffer,
// a growable byte slice sized up front to its known final length, and
// HashWriter, which streams writes straight into a running SHA-256 state
// so a witness-script hash can be computed without ever materializing the
// witness script itself. Builders never suspend and never allocate beyond
// their precomputed size.
type Writer interface {
	AppendByte(b byte)
	AppendBytes(p []byte)
}

// Buffer is a growable-byte-slice Writer, pre-sized to the caller's exact
// computed output length (mirroring empty_bytearray(n) in the original).
type Buffer struct {
	b []byte
}

// NewBuffer returns a Buffer with capacity n and length 0.
func NewBuffer(n int) *Buffer {
	return &Buffer{b: make([]byte, 0, n)}
}

func (w *Buffer) AppendByte(b byte)    { w.b = append(w.b, b) }
func (w *Buffer) AppendBytes(p []byte) { w.b = append(w.b, p...) }

// Bytes returns the accumulated buffer.
func (w *Buffer) Bytes() []byte { return w.b }

// HashWriter streams appended bytes into a SHA-256 digest without ever
// holding the full script in memory, for computing a witness-script hash.
type HashWriter struct {
	s hash.Hash
}

// NewHashWriter returns a HashWriter over a fresh SHA-256 state.
func NewHashWriter() *HashWriter {
	return &HashWriter{s: sha256.New()}
}

func (w *HashWriter) AppendByte(b byte)    { w.s.Write([]byte{b}) }
func (w *HashWriter) AppendBytes(p []byte) { w.s.Write(p) }

// Digest returns the SHA-256 digest of everything written so far.
func (w *HashWriter) Digest() [32]byte {
	var out [32]byte
	copy(out[:], w.s.Sum(nil))
	return out
}

// WriteBitcoinVarInt appends n in Bitcoin's compact-size VarInt encoding:
// 1, 3, 5, or 9 bytes depending on magnitude.
func WriteBitcoinVarInt(w Writer, n uint64) {
	switch {
	case n < 253:
		w.AppendByte(byte(n))
	case n <= 0xFFFF:
		w.AppendByte(0xFD)
		w.AppendByte(byte(n))
		w.AppendByte(byte(n >> 8))
	case n <= 0xFFFFFFFF:
		w.AppendByte(0xFE)
		w.AppendByte(byte(n))
		w.AppendByte(byte(n >> 8))
		w.AppendByte(byte(n >> 16))
		w.AppendByte(byte(n >> 24))
	default:
		w.AppendByte(0xFF)
		for i := 0; i < 8; i++ {
			w.AppendByte(byte(n >> (8 * i)))
		}
	}
}

// VarIntSerializeSize returns the number of bytes WriteBitcoinVarInt would
// emit for n: 1, 3, 5, or 9.
func VarIntSerializeSize(n uint64) int {
	switch {
	case n < 253:
		return 1
	case n <= 0xFFFF:
		return 3
	case n <= 0xFFFFFFFF:
		return 5
	default:
		return 9
	}
}

// ReadBitcoinVarInt is the inverse of WriteBitcoinVarInt. It rejects the
// 0xFF (8-byte) prefix, which the original explicitly does not support
// inside scripts/witnesses (no script or witness item ever needs a count
// that large).
func ReadBitcoinVarInt(data []byte, offset int) (uint64, int, er.R) {
	if offset >= len(data) {
		return 0, 0, scripterr.New(scripterr.ErrInvalidVarInt, "truncated VarInt")
	}
	prefix := data[offset]
	offset++
	switch {
	case prefix < 253:
		return uint64(prefix), offset, nil
	case prefix == 253:
		if offset+2 > len(data) {
			return 0, 0, scripterr.New(scripterr.ErrInvalidVarInt, "truncated VarInt")
		}
		n := uint64(data[offset]) | uint64(data[offset+1])<<8
		return n, offset + 2, nil
	case prefix == 254:
		if offset+4 > len(data) {
			return 0, 0, scripterr.New(scripterr.ErrInvalidVarInt, "truncated VarInt")
		}
		n := uint64(data[offset]) | uint64(data[offset+1])<<8 |
			uint64(data[offset+2])<<16 | uint64(data[offset+3])<<24
		return n, offset + 4, nil
	default:
		return 0, 0, scripterr.New(scripterr.ErrInvalidVarInt, "0xFF VarInt prefix is not supported in scripts")
	}
}

// WriteOpPush appends the script-internal push-opcode framing for a
// following data push of n bytes: a single byte for n<0x4C, else
// OP_PUSHDATA1/2/4 plus a little-endian length.
func WriteOpPush(w Writer, n int) {
	switch {
	case n < 0x4C:
		w.AppendByte(byte(n))
	case n <= 0xFF:
		w.AppendByte(0x4C)
		w.AppendByte(byte(n))
	case n <= 0xFFFF:
		w.AppendByte(0x4D)
		w.AppendByte(byte(n))
		w.AppendByte(byte(n >> 8))
	default:
		w.AppendByte(0x4E)
		w.AppendByte(byte(n))
		w.AppendByte(byte(n >> 8))
		w.AppendByte(byte(n >> 16))
		w.AppendByte(byte(n >> 24))
	}
}

// ReadOpPush is the inverse of WriteOpPush.
func ReadOpPush(data []byte, offset int) (int, int, er.R) {
	if offset >= len(data) {
		return 0, 0, scripterr.New(scripterr.ErrInvalidOpPush, "truncated push")
	}
	prefix := data[offset]
	offset++
	switch {
	case prefix < 0x4C:
		return int(prefix), offset, nil
	case prefix == 0x4C:
		if offset+1 > len(data) {
			return 0, 0, scripterr.New(scripterr.ErrInvalidOpPush, "truncated OP_PUSHDATA1")
		}
		return int(data[offset]), offset + 1, nil
	case prefix == 0x4D:
		if offset+2 > len(data) {
			return 0, 0, scripterr.New(scripterr.ErrInvalidOpPush, "truncated OP_PUSHDATA2")
		}
		n := int(data[offset]) | int(data[offset+1])<<8
		return n, offset + 2, nil
	case prefix == 0x4E:
		if offset+4 > len(data) {
			return 0, 0, scripterr.New(scripterr.ErrInvalidOpPush, "truncated OP_PUSHDATA4")
		}
		n := int(data[offset]) | int(data[offset+1])<<8 |
			int(data[offset+2])<<16 | int(data[offset+3])<<24
		return n, offset + 4, nil
	default:
		return 0, 0, scripterr.New(scripterr.ErrInvalidOpPush, "invalid push opcode")
	}
}
