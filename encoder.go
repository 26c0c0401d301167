package delim

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// Encoder appends the encoding of one value to an in-memory sink. The
// sink is append-only and never fails; the only encode-time errors are
// values the format itself cannot represent.
//
// An Encoder is not safe for concurrent use, but independent Encoders
// may run on any number of goroutines: there is no shared state.
type Encoder struct {
	buf []byte
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder { return &Encoder{} }

// NewEncoderSize returns an Encoder with capacity for n bytes, for
// callers that know the rough size of the encoding up front.
func NewEncoderSize(n int) *Encoder { return &Encoder{buf: make([]byte, 0, n)} }

// Bytes returns the encoded output. The slice aliases the Encoder's
// sink and is invalidated by further encoding or Reset.
func (e *Encoder) Bytes() []byte { return e.buf }

// Len returns the number of bytes encoded so far.
func (e *Encoder) Len() int { return len(e.buf) }

// Reset discards the output, retaining the sink's capacity for reuse.
func (e *Encoder) Reset() { e.buf = e.buf[:0] }

func (e *Encoder) writeByte(b byte) { e.buf = append(e.buf, b) }

// --- Primitive encodes: fixed width, little-endian, no framing ---

// EncodeBool writes one byte: 1 for true, 0 for false.
func (e *Encoder) EncodeBool(v bool) {
	if v {
		e.writeByte(1)
	} else {
		e.writeByte(0)
	}
}

func (e *Encoder) EncodeUint8(v uint8) { e.writeByte(v) }

func (e *Encoder) EncodeUint16(v uint16) {
	var b [2]byte
	putLE(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *Encoder) EncodeUint32(v uint32) {
	var b [4]byte
	putLE(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *Encoder) EncodeUint64(v uint64) {
	var b [8]byte
	putLE(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *Encoder) EncodeInt8(v int8) { e.writeByte(byte(v)) }

func (e *Encoder) EncodeInt16(v int16) { e.EncodeUint16(uint16(v)) }

func (e *Encoder) EncodeInt32(v int32) { e.EncodeUint32(uint32(v)) }

func (e *Encoder) EncodeInt64(v int64) { e.EncodeUint64(uint64(v)) }

// EncodeFloat32 writes the IEEE-754 bits of v, little-endian.
func (e *Encoder) EncodeFloat32(v float32) { e.EncodeUint32(math.Float32bits(v)) }

// EncodeFloat64 writes the IEEE-754 bits of v, little-endian.
func (e *Encoder) EncodeFloat64(v float64) { e.EncodeUint64(math.Float64bits(v)) }

// EncodeRune writes a code point as its u32 scalar value. Surrogates
// and out-of-range values are rejected so that a decoder can never see
// an invalid scalar produced by this package.
func (e *Encoder) EncodeRune(r rune) error {
	if !utf8.ValidRune(r) {
		return fmt.Errorf("%w: %#U", ErrInvalidCodePoint, r)
	}
	e.EncodeUint32(uint32(r))
	return nil
}

// --- Framed encodes: delimiter-terminated, length implicit ---

// EncodeString writes StringDelimiter, the UTF-8 bytes of s verbatim,
// and StringDelimiter.
//
// The payload is not escaped: s must not contain the StringDelimiter
// byte (0x01), or decoding desynchronizes. This is a contract of the
// format, not a checked condition.
func (e *Encoder) EncodeString(s string) {
	e.writeByte(StringDelimiter)
	e.buf = append(e.buf, s...)
	e.writeByte(StringDelimiter)
}

// EncodeBytes writes ByteDelimiter, p verbatim, and ByteDelimiter.
//
// Like strings, the payload is unescaped: p must not contain the
// ByteDelimiter byte (0x02).
func (e *Encoder) EncodeBytes(p []byte) {
	e.writeByte(ByteDelimiter)
	e.buf = append(e.buf, p...)
	e.writeByte(ByteDelimiter)
}

// EncodeUnit writes the single UnitMarker byte.
func (e *Encoder) EncodeUnit() { e.writeByte(UnitMarker) }

// EncodeNone writes the absent form of an option, which is the unit
// marker. A present option has no wrapper at all: encode the inner
// value directly. Note the ambiguity this grammar inherits: if the
// inner type's first legal byte can equal UnitMarker, a present value
// can be misread as absent. See Decoder.DecodeOption.
func (e *Encoder) EncodeNone() { e.writeByte(UnitMarker) }
