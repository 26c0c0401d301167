package delim

import "testing"

type benchRecord struct {
	ID     uint64
	Label  string
	Active bool
	Ratio  float64
	Tags   []string
}

var benchValue = benchRecord{
	ID:     42,
	Label:  "record",
	Active: true,
	Ratio:  0.75,
	Tags:   []string{"x", "y", "z"},
}

func BenchmarkMarshal(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := Marshal(benchValue); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUnmarshal(b *testing.B) {
	data, err := Marshal(benchValue)
	if err != nil {
		b.Fatal(err)
	}
	var out benchRecord
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := Unmarshal(data, &out); err != nil {
			b.Fatal(err)
		}
	}
}

// Baseline using the Encoder directly, to see the overhead of the
// reflection walk.
func BenchmarkEncoderDirect(b *testing.B) {
	e := NewEncoderSize(64)
	for i := 0; i < b.N; i++ {
		e.Reset()
		e.EncodeUint64(benchValue.ID)
		e.EncodeString(benchValue.Label)
		e.EncodeBool(benchValue.Active)
		e.EncodeFloat64(benchValue.Ratio)
		seq := e.BeginSeq()
		for _, t := range benchValue.Tags {
			seq.Next().EncodeString(t)
		}
		seq.End()
	}
}
