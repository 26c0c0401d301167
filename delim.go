// Package delim implements a compact, delimiter-framed binary format for
// structured values: primitives, strings, byte buffers, optionals,
// sequences, ordered maps, and indexed enum variants.
//
// The format is schema-driven, not self-describing: delimiters mark the
// boundaries of variable-length constructs, but both sides must already
// agree on the shape of the value being transported. A decoder cannot
// discover an unknown schema from the bytes alone.
//
// Wire grammar:
//
//   - bool: one byte, 0 = false, nonzero = true
//   - i8/i16/i32/i64, u8/u16/u32/u64: fixed width, little-endian
//   - f32/f64: IEEE-754 bits, little-endian
//   - char: the Unicode scalar value as a u32
//   - string: StringDelimiter + UTF-8 bytes + StringDelimiter
//   - bytes: ByteDelimiter + raw bytes + ByteDelimiter
//   - unit: the single UnitMarker byte
//   - option: absent -> unit, present -> the bare inner encoding
//   - seq: SeqDelimiter + v1 + SeqValueDelimiter + v2 + ... + SeqDelimiter
//   - map: MapDelimiter
//     + MapKeyDelimiter k1 MapKeyDelimiter MapValueDelimiter v1 MapValueDelimiter
//     + MapValueSeparator + (next entry) + ... + MapDelimiter
//   - enum: EnumDelimiter + the variant index as a little-endian u32, then
//     nothing (unit variant), the bare inner value (newtype variant),
//     a seq (tuple variant), or a map keyed by field name (struct variant)
//
// String and byte payloads are written verbatim, without escaping or a
// length prefix. A payload byte equal to the framing delimiter corrupts
// the frame; keeping such bytes out of payloads is a contract on the
// caller. See EncodeString and EncodeBytes.
package delim

// The ten framing bytes. Every value is distinct from every other, and
// the set is fixed for the lifetime of the format: changing any of them
// breaks compatibility with previously encoded data.
const (
	StringDelimiter   byte = 0x01
	ByteDelimiter     byte = 0x02
	UnitMarker        byte = 0x03
	SeqDelimiter      byte = 0x04
	SeqValueDelimiter byte = 0x05
	MapDelimiter      byte = 0x06
	MapKeyDelimiter   byte = 0x07
	MapValueDelimiter byte = 0x08
	MapValueSeparator byte = 0x09
	EnumDelimiter     byte = 0x0A
)

// Char marks a value as a Unicode code point. A plain rune is
// indistinguishable from int32 under reflection, so fields that should
// take the code-point encoding (u32 scalar value, validity-checked)
// must be declared as Char.
type Char rune
