package delim

import (
	"bytes"
	"fmt"
	"math"
	"unicode/utf8"
)

// DefaultMaxDepth bounds composite nesting during decoding. Decoding
// recurses once per nesting level, so without a limit a crafted input
// against a recursive target type could exhaust the stack.
const DefaultMaxDepth = 1024

// Decoder is a cursor over one input buffer. It consumes the encoding
// of exactly one value, top-down; bytes after a complete value are left
// unconsumed (see Remaining).
//
// Decoding is all-or-nothing: every error is fatal for the current
// value and the cursor position is unspecified afterwards.
type Decoder struct {
	data     []byte
	pos      int
	depth    int
	maxDepth int
}

// NewDecoder returns a Decoder reading from data. The Decoder borrows
// data for the duration of the decode; the caller must not mutate it.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data, maxDepth: DefaultMaxDepth}
}

// WithMaxDepth overrides DefaultMaxDepth and returns d for chaining.
func (d *Decoder) WithMaxDepth(n int) *Decoder {
	d.maxDepth = n
	return d
}

// Offset returns the number of bytes consumed so far.
func (d *Decoder) Offset() int { return d.pos }

// Remaining returns the number of unconsumed bytes.
func (d *Decoder) Remaining() int { return len(d.data) - d.pos }

// --- Cursor primitives ---

func (d *Decoder) peek() (byte, error) {
	if d.pos >= len(d.data) {
		return 0, ErrEndOfInput
	}
	return d.data[d.pos], nil
}

func (d *Decoder) takeByte() (byte, error) {
	if d.pos >= len(d.data) {
		return 0, ErrEndOfInput
	}
	b := d.data[d.pos]
	d.pos++
	return b, nil
}

func (d *Decoder) takeN(n int) ([]byte, error) {
	if len(d.data)-d.pos < n {
		return nil, ErrEndOfInput
	}
	p := d.data[d.pos : d.pos+n]
	d.pos += n
	return p, nil
}

// expect consumes one byte and requires it to equal want, failing with
// the given grammar error otherwise.
func (d *Decoder) expect(want byte, mismatch error) error {
	b, err := d.takeByte()
	if err != nil {
		return err
	}
	if b != want {
		return fmt.Errorf("%w: found 0x%02x at offset %d", mismatch, b, d.pos-1)
	}
	return nil
}

func (d *Decoder) enter() error {
	if d.depth >= d.maxDepth {
		return fmt.Errorf("%w: %d levels", ErrDepthLimit, d.maxDepth)
	}
	d.depth++
	return nil
}

func (d *Decoder) leave() {
	if d.depth > 0 {
		d.depth--
	}
}

// --- Primitive decodes ---

// DecodeBool reads one byte; any nonzero value is true.
func (d *Decoder) DecodeBool() (bool, error) {
	b, err := d.takeByte()
	return b != 0, err
}

func (d *Decoder) DecodeUint8() (uint8, error) { return d.takeByte() }

func (d *Decoder) DecodeUint16() (uint16, error) {
	p, err := d.takeN(2)
	if err != nil {
		return 0, err
	}
	return getLE[uint16](p), nil
}

func (d *Decoder) DecodeUint32() (uint32, error) {
	p, err := d.takeN(4)
	if err != nil {
		return 0, err
	}
	return getLE[uint32](p), nil
}

func (d *Decoder) DecodeUint64() (uint64, error) {
	p, err := d.takeN(8)
	if err != nil {
		return 0, err
	}
	return getLE[uint64](p), nil
}

func (d *Decoder) DecodeInt8() (int8, error) {
	b, err := d.takeByte()
	return int8(b), err
}

func (d *Decoder) DecodeInt16() (int16, error) {
	v, err := d.DecodeUint16()
	return int16(v), err
}

func (d *Decoder) DecodeInt32() (int32, error) {
	v, err := d.DecodeUint32()
	return int32(v), err
}

func (d *Decoder) DecodeInt64() (int64, error) {
	v, err := d.DecodeUint64()
	return int64(v), err
}

func (d *Decoder) DecodeFloat32() (float32, error) {
	v, err := d.DecodeUint32()
	return math.Float32frombits(v), err
}

func (d *Decoder) DecodeFloat64() (float64, error) {
	v, err := d.DecodeUint64()
	return math.Float64frombits(v), err
}

// DecodeRune reads a u32 and requires it to be a valid Unicode scalar
// value, failing with ErrInvalidCodePoint otherwise.
func (d *Decoder) DecodeRune() (rune, error) {
	v, err := d.DecodeUint32()
	if err != nil {
		return 0, err
	}
	r := rune(v)
	if v > utf8.MaxRune || !utf8.ValidRune(r) {
		return 0, fmt.Errorf("%w: 0x%x", ErrInvalidCodePoint, v)
	}
	return r, nil
}

// --- Framed decodes ---

// scan consumes a leading delim byte, then everything up to (but not
// including) the next occurrence of delim, then the terminator itself.
// The returned payload aliases the input.
func (d *Decoder) scan(delim byte, mismatch error) ([]byte, error) {
	if err := d.expect(delim, mismatch); err != nil {
		return nil, err
	}
	i := bytes.IndexByte(d.data[d.pos:], delim)
	if i < 0 {
		return nil, ErrEndOfInput
	}
	p := d.data[d.pos : d.pos+i]
	d.pos += i + 1
	return p, nil
}

// DecodeString reads a StringDelimiter-framed payload and validates it
// as UTF-8.
func (d *Decoder) DecodeString() (string, error) {
	p, err := d.scan(StringDelimiter, ErrExpectedString)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(p) {
		return "", ErrInvalidUTF8
	}
	return string(p), nil
}

// DecodeBytes reads a ByteDelimiter-framed payload. The result is a
// copy and does not alias the input buffer.
func (d *Decoder) DecodeBytes() ([]byte, error) {
	p, err := d.scan(ByteDelimiter, ErrExpectedBytes)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(p), nil
}

// DecodeUnit consumes the single UnitMarker byte.
func (d *Decoder) DecodeUnit() error {
	return d.expect(UnitMarker, ErrExpectedUnit)
}

// DecodeOption reports whether an option value is present. Absent
// consumes the one-byte unit marker; present consumes nothing, and the
// caller decodes the inner value directly.
//
// The grammar writes no marker for the present case, so an inner type
// whose first encoded byte can legitimately equal UnitMarker (notably
// bare primitives) is ambiguous on the wire. Wrap such types in a
// framed or composite shape if the distinction matters.
func (d *Decoder) DecodeOption() (bool, error) {
	b, err := d.peek()
	if err != nil {
		return false, err
	}
	if b == UnitMarker {
		d.pos++
		return false, nil
	}
	return true, nil
}
