package biquad

// Section is a single Direct Form I biquad with normalized coefficients and
// its four history taps. It is the scalar reference every Engine lane agrees
// with.
type Section[T Float] struct {
	c Normalized[T]

	x1, x2 T // previous inputs
	y1, y2 T // previous outputs
}

// NewSection returns a Section with normalized c and zero history.
func NewSection[T Float](c Coefficients[T]) *Section[T] {
	return &Section[T]{c: c.Normalize()}
}

// SetCoeffs normalizes and stores c. History is untouched.
func (s *Section[T]) SetCoeffs(c Coefficients[T]) {
	s.c = c.Normalize()
}

// Coeffs returns the stored normalized coefficients.
func (s *Section[T]) Coeffs() Normalized[T] {
	return s.c
}

// ProcessSample filters one input sample and returns the output.
func (s *Section[T]) ProcessSample(x T) T {
	y := s.c.A0*x + s.c.A1*s.x1 + s.c.A2*s.x2 - s.c.B1*s.y1 - s.c.B2*s.y2
	s.x2 = s.x1
	s.x1 = x
	s.y2 = s.y1
	s.y1 = y

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
func (s *Section[T]) ProcessBlock(buf []T) {
	a0, a1, a2 := s.c.A0, s.c.A1, s.c.A2
	b1, b2 := s.c.B1, s.c.B2
	x1, x2, y1, y2 := s.x1, s.x2, s.y1, s.y2

	for i, x := range buf {
		y := a0*x + a1*x1 + a2*x2 - b1*y1 - b2*y2
		x2, x1 = x1, x
		y2, y1 = y1, y
		buf[i] = y
	}

	s.x1, s.x2, s.y1, s.y2 = x1, x2, y1, y2
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
// Zero-alloc.
func (s *Section[T]) ProcessBlockTo(dst, src []T) {
	if len(dst) != len(src) {
		panic("biquad: ProcessBlockTo length mismatch")
	}

	for i, x := range src {
		dst[i] = s.ProcessSample(x)
	}
}

// Reset clears the history taps. Coefficients are kept.
func (s *Section[T]) Reset() {
	s.x1, s.x2 = 0, 0
	s.y1, s.y2 = 0, 0
}

// State returns the history taps as [x1, x2, y1, y2].
func (s *Section[T]) State() [4]T {
	return [4]T{s.x1, s.x2, s.y1, s.y2}
}

// SetState restores history taps saved with State.
func (s *Section[T]) SetState(state [4]T) {
	s.x1, s.x2, s.y1, s.y2 = state[0], state[1], state[2], state[3]
}
