package delim

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/puzpuzpuz/xsync/v4"
)

// Marshal encodes v by walking its type with reflection:
//
//   - bool, fixed-width integers, floats: as themselves; int and uint
//     take the 64-bit encoding
//   - Char: the code-point encoding
//   - string, []byte: the framed encodings
//   - pointer: an option (nil is absent)
//   - slice, array: a sequence
//   - map: a map; entries are written in sorted key order for string
//     and integer keys so the encoding is deterministic
//   - struct: a map keyed by field name, fields in declaration order;
//     a `delim:"name"` tag renames a field and `delim:"-"` skips it;
//     a struct with no encodable fields is a unit
//
// A type implementing Marshaler encodes itself instead; this is how
// enum-shaped types participate.
func Marshal(v any) ([]byte, error) {
	e := NewEncoder()
	if err := encodeValue(e, reflect.ValueOf(v)); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// Unmarshal decodes data into the value pointed to by v, using the
// inverse of Marshal's mapping. Unlike the bare Decoder, Unmarshal
// requires the whole buffer to be consumed and fails with
// ErrTrailingData otherwise.
//
// Targets whose shape the format cannot know (interfaces, or struct
// fields absent from the target type) are rejected with
// ErrUnsupported: this format cannot skip a value without its schema.
func Unmarshal(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: Unmarshal target must be a non-nil pointer, got %T", ErrConversion, v)
	}
	d := NewDecoder(data)
	if err := decodeValue(d, rv.Elem()); err != nil {
		return err
	}
	if n := d.Remaining(); n > 0 {
		return fmt.Errorf("%w: %d bytes after %s", ErrTrailingData, n, rv.Elem().Type())
	}
	return nil
}

var (
	charType      = reflect.TypeOf(Char(0))
	byteSliceType = reflect.TypeOf([]byte(nil))
	marshalerType = reflect.TypeOf((*Marshaler)(nil)).Elem()
)

func encodeValue(e *Encoder, rv reflect.Value) error {
	if !rv.IsValid() {
		return fmt.Errorf("%w: cannot encode untyped nil", ErrUnsupported)
	}

	// Pointers are options; checked before the Marshaler hook so a
	// *T whose T implements Marshaler still gets the option frame.
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			e.EncodeNone()
			return nil
		}
		return encodeValue(e, rv.Elem())
	}
	if rv.Type() == charType {
		return e.EncodeRune(rune(rv.Int()))
	}
	if rv.Type().Implements(marshalerType) {
		return rv.Interface().(Marshaler).MarshalDelim(e)
	}
	if rv.CanAddr() && reflect.PointerTo(rv.Type()).Implements(marshalerType) {
		return rv.Addr().Interface().(Marshaler).MarshalDelim(e)
	}

	switch rv.Kind() {
	case reflect.Bool:
		e.EncodeBool(rv.Bool())
	case reflect.Int8:
		e.EncodeInt8(int8(rv.Int()))
	case reflect.Int16:
		e.EncodeInt16(int16(rv.Int()))
	case reflect.Int32:
		e.EncodeInt32(int32(rv.Int()))
	case reflect.Int64, reflect.Int:
		e.EncodeInt64(rv.Int())
	case reflect.Uint8:
		e.EncodeUint8(uint8(rv.Uint()))
	case reflect.Uint16:
		e.EncodeUint16(uint16(rv.Uint()))
	case reflect.Uint32:
		e.EncodeUint32(uint32(rv.Uint()))
	case reflect.Uint64, reflect.Uint:
		e.EncodeUint64(rv.Uint())
	case reflect.Float32:
		e.EncodeFloat32(float32(rv.Float()))
	case reflect.Float64:
		e.EncodeFloat64(rv.Float())
	case reflect.String:
		e.EncodeString(rv.String())
	case reflect.Slice:
		if rv.Type().Elem() == byteSliceType.Elem() {
			e.EncodeBytes(rv.Bytes())
			return nil
		}
		return encodeSeq(e, rv)
	case reflect.Array:
		return encodeSeq(e, rv)
	case reflect.Map:
		return encodeMap(e, rv)
	case reflect.Struct:
		return encodeStruct(e, rv)
	case reflect.Interface:
		if rv.IsNil() {
			return fmt.Errorf("%w: cannot encode nil interface", ErrUnsupported)
		}
		return encodeValue(e, rv.Elem())
	default:
		return fmt.Errorf("%w: cannot encode %s", ErrUnsupported, rv.Type())
	}
	return nil
}

func encodeSeq(e *Encoder, rv reflect.Value) error {
	seq := e.BeginSeq()
	for i := 0; i < rv.Len(); i++ {
		if err := encodeValue(seq.Next(), rv.Index(i)); err != nil {
			return err
		}
	}
	seq.End()
	return nil
}

func encodeMap(e *Encoder, rv reflect.Value) error {
	keys := rv.MapKeys()
	sortKeys(keys)
	me := e.BeginMap()
	for _, k := range keys {
		if err := encodeValue(me.BeginKey(), k); err != nil {
			return err
		}
		me.EndKey()
		if err := encodeValue(me.BeginValue(), rv.MapIndex(k)); err != nil {
			return err
		}
		me.EndValue()
	}
	me.End()
	return nil
}

func encodeStruct(e *Encoder, rv reflect.Value) error {
	plan := planFor(rv.Type())
	if len(plan.fields) == 0 {
		// Field-less structs are the unit value.
		e.EncodeUnit()
		return nil
	}
	me := e.BeginMap()
	for _, f := range plan.fields {
		me.BeginKey()
		e.EncodeString(f.name)
		me.EndKey()
		if err := encodeValue(me.BeginValue(), rv.Field(f.index)); err != nil {
			return err
		}
		me.EndValue()
	}
	me.End()
	return nil
}

// sortKeys orders map keys for deterministic output. Only string and
// integer keys have a defined order; anything else encodes in map
// iteration order.
func sortKeys(keys []reflect.Value) {
	if len(keys) < 2 {
		return
	}
	switch keys[0].Kind() {
	case reflect.String:
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return strings.Compare(a.String(), b.String())
		})
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return cmp.Compare(a.Int(), b.Int())
		})
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return cmp.Compare(a.Uint(), b.Uint())
		})
	}
}

func decodeValue(d *Decoder, rv reflect.Value) error {
	// Pointers are options; checked before the Unmarshaler hook for
	// symmetry with encodeValue.
	if rv.Kind() == reflect.Pointer {
		present, err := d.DecodeOption()
		if err != nil {
			return err
		}
		if !present {
			rv.SetZero()
			return nil
		}
		inner := reflect.New(rv.Type().Elem())
		if err := decodeValue(d, inner.Elem()); err != nil {
			return err
		}
		rv.Set(inner)
		return nil
	}
	if rv.Type() == charType {
		r, err := d.DecodeRune()
		if err != nil {
			return err
		}
		rv.SetInt(int64(r))
		return nil
	}
	if rv.CanAddr() {
		if u, ok := rv.Addr().Interface().(Unmarshaler); ok {
			return u.UnmarshalDelim(d)
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		v, err := d.DecodeBool()
		if err != nil {
			return err
		}
		rv.SetBool(v)
	case reflect.Int8:
		v, err := d.DecodeInt8()
		if err != nil {
			return err
		}
		rv.SetInt(int64(v))
	case reflect.Int16:
		v, err := d.DecodeInt16()
		if err != nil {
			return err
		}
		rv.SetInt(int64(v))
	case reflect.Int32:
		v, err := d.DecodeInt32()
		if err != nil {
			return err
		}
		rv.SetInt(int64(v))
	case reflect.Int64, reflect.Int:
		v, err := d.DecodeInt64()
		if err != nil {
			return err
		}
		rv.SetInt(v)
	case reflect.Uint8:
		v, err := d.DecodeUint8()
		if err != nil {
			return err
		}
		rv.SetUint(uint64(v))
	case reflect.Uint16:
		v, err := d.DecodeUint16()
		if err != nil {
			return err
		}
		rv.SetUint(uint64(v))
	case reflect.Uint32:
		v, err := d.DecodeUint32()
		if err != nil {
			return err
		}
		rv.SetUint(uint64(v))
	case reflect.Uint64, reflect.Uint:
		v, err := d.DecodeUint64()
		if err != nil {
			return err
		}
		rv.SetUint(v)
	case reflect.Float32:
		v, err := d.DecodeFloat32()
		if err != nil {
			return err
		}
		rv.SetFloat(float64(v))
	case reflect.Float64:
		v, err := d.DecodeFloat64()
		if err != nil {
			return err
		}
		rv.SetFloat(v)
	case reflect.String:
		v, err := d.DecodeString()
		if err != nil {
			return err
		}
		rv.SetString(v)
	case reflect.Slice:
		if rv.Type().Elem() == byteSliceType.Elem() {
			p, err := d.DecodeBytes()
			if err != nil {
				return err
			}
			rv.SetBytes(p)
			return nil
		}
		return decodeSlice(d, rv)
	case reflect.Array:
		return decodeArray(d, rv)
	case reflect.Map:
		return decodeMap(d, rv)
	case reflect.Struct:
		return decodeStruct(d, rv)
	case reflect.Interface:
		return fmt.Errorf("%w: cannot decode into interface %s", ErrUnsupported, rv.Type())
	default:
		return fmt.Errorf("%w: cannot decode into %s", ErrUnsupported, rv.Type())
	}
	return nil
}

func decodeSlice(d *Decoder, rv reflect.Value) error {
	sd, err := d.BeginSeq()
	if err != nil {
		return err
	}
	out := reflect.MakeSlice(rv.Type(), 0, 0)
	for {
		ok, err := sd.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		elem := reflect.New(rv.Type().Elem()).Elem()
		if err := decodeValue(d, elem); err != nil {
			return err
		}
		out = reflect.Append(out, elem)
	}
	if err := sd.End(); err != nil {
		return err
	}
	rv.Set(out)
	return nil
}

func decodeArray(d *Decoder, rv reflect.Value) error {
	sd, err := d.BeginSeq()
	if err != nil {
		return err
	}
	n := 0
	for {
		ok, err := sd.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if n >= rv.Len() {
			return fmt.Errorf("%w: more than %d elements for %s", ErrConversion, rv.Len(), rv.Type())
		}
		if err := decodeValue(d, rv.Index(n)); err != nil {
			return err
		}
		n++
	}
	if err := sd.End(); err != nil {
		return err
	}
	if n != rv.Len() {
		return fmt.Errorf("%w: %d elements for %s", ErrConversion, n, rv.Type())
	}
	return nil
}

func decodeMap(d *Decoder, rv reflect.Value) error {
	md, err := d.BeginMap()
	if err != nil {
		return err
	}
	out := reflect.MakeMap(rv.Type())
	for {
		ok, err := md.NextKey()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		key := reflect.New(rv.Type().Key()).Elem()
		if err := decodeValue(d, key); err != nil {
			return err
		}
		if err := md.EndKey(); err != nil {
			return err
		}
		if err := md.BeginValue(); err != nil {
			return err
		}
		val := reflect.New(rv.Type().Elem()).Elem()
		if err := decodeValue(d, val); err != nil {
			return err
		}
		if err := md.EndValue(); err != nil {
			return err
		}
		out.SetMapIndex(key, val)
	}
	if err := md.End(); err != nil {
		return err
	}
	rv.Set(out)
	return nil
}

func decodeStruct(d *Decoder, rv reflect.Value) error {
	plan := planFor(rv.Type())
	if len(plan.fields) == 0 {
		return d.DecodeUnit()
	}
	md, err := d.BeginMap()
	if err != nil {
		return err
	}
	for {
		ok, err := md.NextKey()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		name, err := d.DecodeString()
		if err != nil {
			return err
		}
		if err := md.EndKey(); err != nil {
			return err
		}
		idx, ok := plan.byName[name]
		if !ok {
			return fmt.Errorf("%w: cannot skip unknown field %q of %s", ErrUnsupported, name, rv.Type())
		}
		if err := md.BeginValue(); err != nil {
			return err
		}
		if err := decodeValue(d, rv.Field(idx)); err != nil {
			return err
		}
		if err := md.EndValue(); err != nil {
			return err
		}
	}
	return md.End()
}

// structPlan is the per-type field table shared by encode and decode.
type structPlan struct {
	fields []structField  // wire order (declaration order)
	byName map[string]int // wire name -> struct field index
}

type structField struct {
	name  string
	index int
}

// planCache avoids re-walking struct tags on every call. A concurrent
// map keyed by reflect.Type keeps Marshal and Unmarshal lock-free
// across goroutines.
var planCache = xsync.NewMap[reflect.Type, *structPlan]()

func planFor(t reflect.Type) *structPlan {
	if p, ok := planCache.Load(t); ok {
		return p
	}
	p := &structPlan{byName: make(map[string]int)}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("delim"); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		p.fields = append(p.fields, structField{name: name, index: i})
		p.byName[name] = i
	}
	planCache.Store(t, p)
	return p
}
