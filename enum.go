package delim

// Enum values are framed as EnumDelimiter followed by the zero-based
// variant index as a little-endian u32, then a payload whose shape
// depends on the variant kind:
//
//   - unit variant: no payload
//   - newtype variant: the bare inner value
//   - tuple variant: a sequence of the tuple fields
//   - struct variant: a map keyed by field-name strings
//
// There is no trailing delimiter; the payload's own grammar terminates
// the value. The codec does not know which kind a given index is; the
// Marshaler/Unmarshaler for the enum type carries that knowledge.

// EncodeVariant writes the enum frame for the variant with the given
// index. The caller then encodes the payload, if any.
func (e *Encoder) EncodeVariant(index uint32) {
	e.writeByte(EnumDelimiter)
	e.EncodeUint32(index)
}

// DecodeVariant consumes the enum frame and returns the variant index
// so the caller can dispatch to the matching payload shape.
func (d *Decoder) DecodeVariant() (uint32, error) {
	if err := d.expect(EnumDelimiter, ErrExpectedEnum); err != nil {
		return 0, err
	}
	return d.DecodeUint32()
}
