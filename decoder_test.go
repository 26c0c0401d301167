package delim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type DecoderTestSuite struct {
	suite.Suite
}

func (s *DecoderTestSuite) TestPrimitives() {
	d := NewDecoder([]byte{
		1,
		0xCC, 0xBB,
		0x00, 0xFF, 0xEE, 0xDD,
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
		0xFE, 0xFF,
		0x00, 0x00, 0xC0, 0x3F,
	})

	b, err := d.DecodeBool()
	s.Require().NoError(err)
	s.Assert().True(b)

	v16, err := d.DecodeUint16()
	s.Require().NoError(err)
	s.Assert().Equal(uint16(0xBBCC), v16)

	v32, err := d.DecodeUint32()
	s.Require().NoError(err)
	s.Assert().Equal(uint32(0xDDEEFF00), v32)

	v64, err := d.DecodeUint64()
	s.Require().NoError(err)
	s.Assert().Equal(uint64(0x0102030405060708), v64)

	i16, err := d.DecodeInt16()
	s.Require().NoError(err)
	s.Assert().Equal(int16(-2), i16)

	f32, err := d.DecodeFloat32()
	s.Require().NoError(err)
	s.Assert().Equal(float32(1.5), f32)

	s.Assert().Zero(d.Remaining())
}

func (s *DecoderTestSuite) TestBoolAnyNonzeroIsTrue() {
	for _, raw := range []byte{1, 2, 0x7F, 0xFF} {
		v, err := NewDecoder([]byte{raw}).DecodeBool()
		s.Require().NoError(err)
		s.Assert().True(v, "byte 0x%02x", raw)
	}
	v, err := NewDecoder([]byte{0}).DecodeBool()
	s.Require().NoError(err)
	s.Assert().False(v)
}

func (s *DecoderTestSuite) TestRune() {
	s.T().Run("Valid", func(t *testing.T) {
		e := NewEncoder()
		require.NoError(t, e.EncodeRune('世'))
		r, err := NewDecoder(e.Bytes()).DecodeRune()
		require.NoError(t, err)
		assert.Equal(t, '世', r)
	})

	s.T().Run("Surrogate", func(t *testing.T) {
		e := NewEncoder()
		e.EncodeUint32(0xD800)
		_, err := NewDecoder(e.Bytes()).DecodeRune()
		assert.ErrorIs(t, err, ErrInvalidCodePoint)
	})

	s.T().Run("AboveMaxRune", func(t *testing.T) {
		e := NewEncoder()
		e.EncodeUint32(0x110000)
		_, err := NewDecoder(e.Bytes()).DecodeRune()
		assert.ErrorIs(t, err, ErrInvalidCodePoint)
	})
}

func (s *DecoderTestSuite) TestString() {
	s.T().Run("RoundTrip", func(t *testing.T) {
		e := NewEncoder()
		e.EncodeString("héllo")
		v, err := NewDecoder(e.Bytes()).DecodeString()
		require.NoError(t, err)
		assert.Equal(t, "héllo", v)
	})

	s.T().Run("Empty", func(t *testing.T) {
		v, err := NewDecoder([]byte{StringDelimiter, StringDelimiter}).DecodeString()
		require.NoError(t, err)
		assert.Empty(t, v)
	})

	s.T().Run("WrongLeadingDelimiter", func(t *testing.T) {
		_, err := NewDecoder([]byte{ByteDelimiter, 'x', ByteDelimiter}).DecodeString()
		assert.ErrorIs(t, err, ErrExpectedString)
	})

	s.T().Run("MissingTerminator", func(t *testing.T) {
		_, err := NewDecoder([]byte{StringDelimiter, 'x'}).DecodeString()
		assert.ErrorIs(t, err, ErrEndOfInput)
	})

	s.T().Run("InvalidUTF8", func(t *testing.T) {
		_, err := NewDecoder([]byte{StringDelimiter, 0xFF, StringDelimiter}).DecodeString()
		assert.ErrorIs(t, err, ErrInvalidUTF8)
	})
}

func (s *DecoderTestSuite) TestBytesScanForOwnTerminator() {
	// The string delimiter byte inside a byte payload must not
	// terminate the scan: byte buffers end at ByteDelimiter.
	d := NewDecoder([]byte{ByteDelimiter, StringDelimiter, 0x22, ByteDelimiter})
	p, err := d.DecodeBytes()
	s.Require().NoError(err)
	s.Assert().Equal([]byte{StringDelimiter, 0x22}, p)
	s.Assert().Zero(d.Remaining())
}

func (s *DecoderTestSuite) TestUnit() {
	s.Require().NoError(NewDecoder([]byte{UnitMarker}).DecodeUnit())
	s.Assert().ErrorIs(NewDecoder([]byte{0xFF}).DecodeUnit(), ErrExpectedUnit)
	s.Assert().ErrorIs(NewDecoder(nil).DecodeUnit(), ErrEndOfInput)
}

func (s *DecoderTestSuite) TestOption() {
	s.T().Run("Absent", func(t *testing.T) {
		d := NewDecoder([]byte{UnitMarker})
		present, err := d.DecodeOption()
		require.NoError(t, err)
		assert.False(t, present)
		assert.Zero(t, d.Remaining(), "the unit marker must be consumed")
	})

	s.T().Run("Present", func(t *testing.T) {
		d := NewDecoder([]byte{0x2A})
		present, err := d.DecodeOption()
		require.NoError(t, err)
		assert.True(t, present)
		v, err := d.DecodeUint8()
		require.NoError(t, err)
		assert.Equal(t, uint8(0x2A), v, "present consumes no marker byte")
	})
}

func (s *DecoderTestSuite) TestTrailingBytesAreLeftUnconsumed() {
	d := NewDecoder([]byte{0x10, 0x20, 0x30})
	v, err := d.DecodeUint8()
	s.Require().NoError(err)
	s.Assert().Equal(uint8(0x10), v)
	s.Assert().Equal(1, d.Offset())
	s.Assert().Equal(2, d.Remaining())
}

func (s *DecoderTestSuite) TestEndOfInputOnFixedWidths() {
	_, err := NewDecoder([]byte{1, 2, 3}).DecodeUint32()
	s.Assert().ErrorIs(err, ErrEndOfInput)

	_, err = NewDecoder(nil).DecodeBool()
	s.Assert().ErrorIs(err, ErrEndOfInput)

	_, err = NewDecoder([]byte{1, 2, 3, 4, 5, 6, 7}).DecodeFloat64()
	s.Assert().ErrorIs(err, ErrEndOfInput)
}

func (s *DecoderTestSuite) TestSeqIteration() {
	e := NewEncoder()
	seq := e.BeginSeq()
	seq.Next().EncodeUint16(0x1122)
	seq.Next().EncodeUint16(0x3344)
	seq.End()

	d := NewDecoder(e.Bytes())
	sd, err := d.BeginSeq()
	s.Require().NoError(err)
	var got []uint16
	for {
		ok, err := sd.Next()
		s.Require().NoError(err)
		if !ok {
			break
		}
		v, err := d.DecodeUint16()
		s.Require().NoError(err)
		got = append(got, v)
	}
	s.Require().NoError(sd.End())
	s.Assert().Equal([]uint16{0x1122, 0x3344}, got)
	s.Assert().Zero(d.Remaining())
}

func (s *DecoderTestSuite) TestDepthLimit() {
	data := make([]byte, 16)
	for i := range data {
		data[i] = SeqDelimiter
	}
	d := NewDecoder(data).WithMaxDepth(4)

	var err error
	for range data {
		if _, err = d.BeginSeq(); err != nil {
			break
		}
	}
	s.Assert().ErrorIs(err, ErrDepthLimit)
}

func TestDecoder(t *testing.T) {
	suite.Run(t, new(DecoderTestSuite))
}
