package core

// Generator produces base colors for fill and refill. Implementations must be
// deterministic for a given starting state so boards can be replayed.
type Generator interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
	// Clone returns an independent generator with identical state.
	Clone() Generator
}

// SimpleRNG is a xorshift64 generator.
type SimpleRNG struct {
	state uint64
}

const defaultRNGState = 88172645463325252

// NewRNG creates a generator from seed. A zero seed selects a fixed default
// state, so callers wanting nondeterminism must supply a time-based seed.
func NewRNG(seed int64) *SimpleRNG {
	s := uint64(seed)
	if s == 0 {
		s = defaultRNGState
	}
	return &SimpleRNG{state: s}
}

// Next returns the next raw 64-bit value.
func (r *SimpleRNG) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Intn returns a value in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Clone copies the generator state.
func (r *SimpleRNG) Clone() Generator {
	c := *r
	return &c
}

// SequenceGenerator replays a fixed list of colors in a loop. Useful for
// scripted boards where refill must be predictable.
type SequenceGenerator struct {
	seq []Color
	pos int
}

// NewSequenceGenerator creates a generator cycling through seq.
func NewSequenceGenerator(seq ...Color) *SequenceGenerator {
	if len(seq) == 0 {
		seq = []Color{0}
	}
	return &SequenceGenerator{seq: append([]Color(nil), seq...)}
}

// Intn returns the next scripted color modulo n.
func (g *SequenceGenerator) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	c := g.seq[g.pos%len(g.seq)]
	g.pos++
	return int(c) % n
}

// Clone copies the replay position.
func (g *SequenceGenerator) Clone() Generator {
	c := *g
	return &c
}
