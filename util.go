package delim

import "golang.org/x/exp/constraints"

// Ptr is a helper to build optional values in place: Ptr(3) is a
// present option holding 3.
func Ptr[T any](v T) *T { return &v }

// putLE writes v into dst in little-endian order. The declared width of
// T is len(dst); the format never discovers widths from the bytes.
func putLE[T constraints.Unsigned](dst []byte, v T) {
	for i := range dst {
		dst[i] = byte(v)
		v = T(uint64(v) >> 8)
	}
}

// getLE reassembles a little-endian value of T from all of src.
func getLE[T constraints.Unsigned](src []byte) T {
	var v T
	for i := len(src) - 1; i >= 0; i-- {
		v = T(uint64(v)<<8 | uint64(src[i]))
	}
	return v
}
