package entropy

// Fixed always returns the same values. F = 0 makes every Chance fire,
// F close to 1 makes every Chance fail. IntN returns min(I, n-1).
type Fixed struct {
	F float64
	I int
}

func (f Fixed) Float64() float64 {
	return f.F
}

func (f Fixed) IntN(n int) int {
	if f.I >= n {
		return n - 1
	}
	if f.I < 0 {
		return 0
	}
	return f.I
}

// Sequence replays scripted draws in order and falls back to Fallback once a
// queue runs dry. Used for deterministic replays of a single tick.
type Sequence struct {
	Floats   []float64
	Ints     []int
	Fallback Fixed
}

func (s *Sequence) Float64() float64 {
	if len(s.Floats) == 0 {
		return s.Fallback.Float64()
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}

func (s *Sequence) IntN(n int) int {
	if len(s.Ints) == 0 {
		return s.Fallback.IntN(n)
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	if v >= n {
		v = n - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}
