package delim

import "errors"

var (
	// ErrEndOfInput indicates a read requested more bytes than remain in
	// the input buffer.
	ErrEndOfInput = errors.New("delim: unexpected end of input")

	// ErrInvalidUTF8 indicates a decoded string payload is not
	// well-formed UTF-8.
	ErrInvalidUTF8 = errors.New("delim: string payload is not valid UTF-8")

	// ErrInvalidCodePoint indicates a char value is not a valid Unicode
	// scalar value (a surrogate, or above U+10FFFF).
	ErrInvalidCodePoint = errors.New("delim: not a valid Unicode scalar value")

	// ErrConversion indicates a decoded value cannot be stored in the
	// target type (for example, a fixed-size array of the wrong length).
	ErrConversion = errors.New("delim: cannot convert value to target type")

	// ErrUnsupported indicates an operation that would require a
	// self-describing format, such as decoding into an untyped target or
	// skipping a value of unknown shape. The format depends on the
	// caller already knowing the expected shape, so these are rejected.
	ErrUnsupported = errors.New("delim: operation requires a self-describing format")

	// ErrTrailingData is returned by Unmarshal when bytes remain after a
	// complete value has been decoded.
	ErrTrailingData = errors.New("delim: trailing bytes after value")

	// ErrDepthLimit indicates composite nesting deeper than the
	// decoder's configured limit. See Decoder.WithMaxDepth.
	ErrDepthLimit = errors.New("delim: composite nesting exceeds depth limit")
)

// One error per delimiter kind. A mismatch is fatal and non-retryable:
// the input is not a valid encoding of the expected shape.
var (
	ErrExpectedString       = errors.New("delim: expected string delimiter")
	ErrExpectedBytes        = errors.New("delim: expected byte delimiter")
	ErrExpectedUnit         = errors.New("delim: expected unit marker")
	ErrExpectedSeq          = errors.New("delim: expected seq delimiter")
	ErrExpectedSeqValue     = errors.New("delim: expected seq value delimiter")
	ErrExpectedMap          = errors.New("delim: expected map delimiter")
	ErrExpectedMapKey       = errors.New("delim: expected map key delimiter")
	ErrExpectedMapValue     = errors.New("delim: expected map value delimiter")
	ErrExpectedMapSeparator = errors.New("delim: expected map value separator")
	ErrExpectedEnum         = errors.New("delim: expected enum delimiter")
)
