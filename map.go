package delim

// MapEncoder emits one ordered map. Each entry is
//
//	MapKeyDelimiter key MapKeyDelimiter MapValueDelimiter value MapValueDelimiter
//
// with MapValueSeparator between entries and MapDelimiter wrapping the
// whole run. Keys are written in the order given; the wire format does
// not deduplicate.
type MapEncoder struct {
	e     *Encoder
	first bool
}

// BeginMap opens a map. Per entry, call BeginKey / EndKey then
// BeginValue / EndValue, encoding the key and value between each pair;
// finish with End.
func (e *Encoder) BeginMap() *MapEncoder {
	e.writeByte(MapDelimiter)
	return &MapEncoder{e: e, first: true}
}

// BeginKey opens the next entry's key slot, writing the entry separator
// for every entry after the first.
func (m *MapEncoder) BeginKey() *Encoder {
	if !m.first {
		m.e.writeByte(MapValueSeparator)
	}
	m.first = false
	m.e.writeByte(MapKeyDelimiter)
	return m.e
}

// EndKey closes the key slot.
func (m *MapEncoder) EndKey() { m.e.writeByte(MapKeyDelimiter) }

// BeginValue opens the entry's value slot.
func (m *MapEncoder) BeginValue() *Encoder {
	m.e.writeByte(MapValueDelimiter)
	return m.e
}

// EndValue closes the value slot.
func (m *MapEncoder) EndValue() { m.e.writeByte(MapValueDelimiter) }

// End closes the map.
func (m *MapEncoder) End() { m.e.writeByte(MapDelimiter) }

// MapDecoder iterates one encoded map:
//
//	md, err := d.BeginMap()
//	for {
//		ok, err := md.NextKey(); if !ok { break }
//		/* decode key */;   err = md.EndKey()
//		err = md.BeginValue()
//		/* decode value */; err = md.EndValue()
//	}
//	err = md.End()
type MapDecoder struct {
	d     *Decoder
	first bool
}

// BeginMap consumes the opening MapDelimiter.
func (d *Decoder) BeginMap() (*MapDecoder, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	if err := d.expect(MapDelimiter, ErrExpectedMap); err != nil {
		return nil, err
	}
	return &MapDecoder{d: d, first: true}, nil
}

// NextKey reports whether another entry follows, peeking for the
// closing MapDelimiter without consuming it. For entries after the
// first it consumes the entry separator, then the opening key
// delimiter. When it returns true the caller must decode the key and
// call EndKey.
func (m *MapDecoder) NextKey() (bool, error) {
	b, err := m.d.peek()
	if err != nil {
		return false, err
	}
	if b == MapDelimiter {
		return false, nil
	}
	if !m.first {
		if err := m.d.expect(MapValueSeparator, ErrExpectedMapSeparator); err != nil {
			return false, err
		}
	}
	m.first = false
	if err := m.d.expect(MapKeyDelimiter, ErrExpectedMapKey); err != nil {
		return false, err
	}
	return true, nil
}

// EndKey consumes the key's closing delimiter.
func (m *MapDecoder) EndKey() error {
	return m.d.expect(MapKeyDelimiter, ErrExpectedMapKey)
}

// BeginValue consumes the value's opening delimiter. The caller must
// then decode the value and call EndValue.
func (m *MapDecoder) BeginValue() error {
	return m.d.expect(MapValueDelimiter, ErrExpectedMapValue)
}

// EndValue consumes the value's closing delimiter.
func (m *MapDecoder) EndValue() error {
	return m.d.expect(MapValueDelimiter, ErrExpectedMapValue)
}

// End consumes the closing MapDelimiter.
func (m *MapDecoder) End() error {
	m.d.leave()
	return m.d.expect(MapDelimiter, ErrExpectedMap)
}
