package random

// Seeded is a deterministic mulberry32 generator. The same seed produces the
// same sequence on every platform, which replays depend on.
type Seeded struct {
	state uint32
}

// NewSeeded creates a generator from a 32-bit seed
func NewSeeded(seed uint32) *Seeded {
	return &Seeded{state: seed}
}

var _ Random = (*Seeded)(nil)

// Uint32 advances the generator and returns the next value
func (s *Seeded) Uint32() uint32 {
	s.state += 0x6D2B79F5
	t := s.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Intn returns an int in [0, n), computed as floor(next/2^32 * n) without
// floating point
func (s *Seeded) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int((uint64(s.Uint32()) * uint64(n)) >> 32)
}

// String generates a deterministic string of the given length from the alphabet
func (s *Seeded) String(length int, alphabet string) string {
	return randomString(s, length, alphabet)
}
