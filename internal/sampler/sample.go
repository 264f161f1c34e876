package sampler

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Sample is one generated data set. All slices have the same length.
type Sample struct {
	True      []float64
	Observed  []float64
	Auxiliary []float64
	Outcome   []float64
	Corrupted []bool
}

func newSample(n int) *Sample {
	return &Sample{
		True:      make([]float64, n),
		Observed:  make([]float64, n),
		Auxiliary: make([]float64, n),
		Outcome:   make([]float64, n),
		Corrupted: make([]bool, n),
	}
}

// Len returns the number of observations.
func (s *Sample) Len() int {
	if s == nil {
		return 0
	}
	return len(s.True)
}

// Errors returns the measurement error X - X* for every observation.
func (s *Sample) Errors() []float64 {
	out := make([]float64, s.Len())
	for i := range out {
		out[i] = s.Observed[i] - s.True[i]
	}
	return out
}

// CorruptedCount returns how many observations carry measurement error.
func (s *Sample) CorruptedCount() int {
	n := 0
	for _, d := range s.Corrupted {
		if d {
			n++
		}
	}
	return n
}

// Fingerprint hashes the IEEE-754 bits of every sequence. Two samples
// with equal fingerprints are bit-identical with overwhelming probability.
func (s *Sample) Fingerprint() uint64 {
	h := xxhash.New()
	buf := make([]byte, 0, 8*4+1)
	for i := 0; i < s.Len(); i++ {
		buf = buf[:0]
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(s.True[i]))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(s.Observed[i]))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(s.Auxiliary[i]))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(s.Outcome[i]))
		if s.Corrupted[i] {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}
