package color

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mrand "math/rand/v2"
	"sync"
)

// Source yields floats uniformly distributed in [0, 1).
// *math/rand/v2.Rand satisfies it.
type Source interface {
	Float64() float64
}

type mathSource struct{}

func (mathSource) Float64() float64 { return mrand.Float64() }

// MathSource returns the process-wide math/rand/v2 generator. Safe for
// concurrent use.
func MathSource() Source {
	return mathSource{}
}

type cryptoSource struct{}

func (cryptoSource) Float64() float64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand does not fail on supported platforms
		return mrand.Float64()
	}
	return float64(binary.BigEndian.Uint64(b[:])>>11) / (1 << 53)
}

// CryptoSource returns a Source backed by crypto/rand.
func CryptoSource() Source {
	return cryptoSource{}
}

// SourceByName resolves "math" or "crypto".
func SourceByName(name string) (Source, error) {
	switch name {
	case "", "math":
		return MathSource(), nil
	case "crypto":
		return CryptoSource(), nil
	}
	return nil, fmt.Errorf("unknown random source %q", name)
}

// Sequence replays a fixed list of draws, cycling when exhausted.
type Sequence struct {
	mu    sync.Mutex
	vals  []float64
	next  int
	draws int
}

// NewSequence builds a Sequence. With no values it always yields 0.
func NewSequence(vals ...float64) *Sequence {
	return &Sequence{vals: vals}
}

func (s *Sequence) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draws++
	if len(s.vals) == 0 {
		return 0
	}
	f := s.vals[s.next%len(s.vals)]
	s.next++
	return f
}

// Draws reports how many values have been taken.
func (s *Sequence) Draws() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draws
}

// Exact returns the draw that maps to v, for tests and replays.
func Exact(v Value) float64 {
	return float64(v) / Range
}
