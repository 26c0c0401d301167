package delim

// SeqEncoder emits one sequence. Elements are separated by
// SeqValueDelimiter and the whole run is wrapped in SeqDelimiter on
// both ends; an empty sequence is exactly the two wrapper bytes.
type SeqEncoder struct {
	e     *Encoder
	first bool
}

// BeginSeq opens a sequence. Call Next before each element, then End.
func (e *Encoder) BeginSeq() *SeqEncoder {
	e.writeByte(SeqDelimiter)
	return &SeqEncoder{e: e, first: true}
}

// Next prepares the next element slot, writing the element separator
// for every element after the first, and returns the Encoder to encode
// the element onto.
func (s *SeqEncoder) Next() *Encoder {
	if !s.first {
		s.e.writeByte(SeqValueDelimiter)
	}
	s.first = false
	return s.e
}

// End closes the sequence.
func (s *SeqEncoder) End() { s.e.writeByte(SeqDelimiter) }

// SeqDecoder iterates one encoded sequence:
//
//	sd, err := d.BeginSeq()
//	for { ok, err := sd.Next(); if !ok { break }; /* decode element */ }
//	err = sd.End()
type SeqDecoder struct {
	d     *Decoder
	first bool
}

// BeginSeq consumes the opening SeqDelimiter.
func (d *Decoder) BeginSeq() (*SeqDecoder, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	if err := d.expect(SeqDelimiter, ErrExpectedSeq); err != nil {
		return nil, err
	}
	return &SeqDecoder{d: d, first: true}, nil
}

// Next reports whether another element follows. It peeks for the
// closing SeqDelimiter without consuming it, and consumes the element
// separator before every element after the first. When it returns true
// the caller must decode exactly one element.
//
// The end-of-sequence peek inspects the first element's leading byte,
// so a first element that itself begins with SeqDelimiter (a directly
// nested sequence) reads as an empty outer sequence. This is the same
// ambiguity class as options; wrap such elements in a framed or keyed
// shape if the distinction matters.
func (s *SeqDecoder) Next() (bool, error) {
	b, err := s.d.peek()
	if err != nil {
		return false, err
	}
	if b == SeqDelimiter {
		return false, nil
	}
	if !s.first {
		if err := s.d.expect(SeqValueDelimiter, ErrExpectedSeqValue); err != nil {
			return false, err
		}
	}
	s.first = false
	return true, nil
}

// End consumes the closing SeqDelimiter.
func (s *SeqDecoder) End() error {
	s.d.leave()
	return s.d.expect(SeqDelimiter, ErrExpectedSeq)
}
