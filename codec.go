package delim

// Marshaler is the producer side of the bridge between native types and
// the wire grammar. A type walks its own structure and pushes primitive
// and composite events onto the Encoder; the codec never learns the
// concrete shape. Enum-like types are the canonical implementors: they
// report a variant index with Encoder.EncodeVariant and then encode the
// variant's payload.
type Marshaler interface {
	// MarshalDelim encodes the value onto e. The Encoder's own writes
	// cannot fail; an error reports a value the format cannot represent
	// (such as an invalid code point).
	MarshalDelim(e *Encoder) error
}

// Unmarshaler is the consumer side of the bridge. The implementation
// pulls decode events (primitives, sequence and map iteration, variant
// dispatch) from the Decoder and assembles them into the native
// representation.
type Unmarshaler interface {
	// UnmarshalDelim decodes the value in place from d. It must consume
	// exactly the bytes of one value of the implementing type.
	UnmarshalDelim(d *Decoder) error
}

// Codec aggregates both directions. A type implementing Codec round
// trips through the format under its own control.
type Codec interface {
	Marshaler
	Unmarshaler
}
