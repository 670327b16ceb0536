package biquad

// Float is the set of sample types sections and engines run on.
type Float interface {
	float32 | float64
}

// Coefficients is a raw biquad gain set:
//
//	H(z) = (A0 + A1*z^-1 + A2*z^-2) / (B0 + B1*z^-1 + B2*z^-2)
//
// A0..A2 are feed-forward gains, B1 and B2 feedback gains. B0 must be
// non-zero; it is divided out by Normalize and never stored.
type Coefficients[T Float] struct {
	A0, A1, A2 T // feed-forward (numerator)
	B0, B1, B2 T // feedback (denominator)
}

// Normalized is a gain set divided by B0. It drives the recurrence
//
//	y = A0*x + A1*x1 + A2*x2 - B1*y1 - B2*y2
type Normalized[T Float] struct {
	A0, A1, A2 T
	B1, B2     T
}

// Identity returns the pass-through gain set.
func Identity[T Float]() Coefficients[T] {
	return Coefficients[T]{A0: 1, B0: 1}
}

// Normalize divides every gain by B0. B0 == 0 is not checked; the result
// then holds ±Inf or NaN and so will every sample filtered with it.
func (c Coefficients[T]) Normalize() Normalized[T] {
	return Normalized[T]{
		A0: c.A0 / c.B0,
		A1: c.A1 / c.B0,
		A2: c.A2 / c.B0,
		B1: c.B1 / c.B0,
		B2: c.B2 / c.B0,
	}
}

// Coefficients returns n as a raw gain set with B0 = 1.
func (n Normalized[T]) Coefficients() Coefficients[T] {
	return Coefficients[T]{A0: n.A0, A1: n.A1, A2: n.A2, B0: 1, B1: n.B1, B2: n.B2}
}
