package biquad

import (
	"math/cmplx"
)

// PoleZeroPair stores the two poles and two zeros of one biquad section.
// For first-order sections, the second pole/zero is 0.
type PoleZeroPair struct {
	Poles [2]complex128
	Zeros [2]complex128
}

// Poles returns the z-plane poles of the denominator:
//
//	1 + B1*z^-1 + B2*z^-2 = 0
func (n Normalized[T]) Poles() [2]complex128 {
	return quadraticRoots(1, float64(n.B1), float64(n.B2))
}

// Zeros returns the z-plane zeros of the numerator:
//
//	A0 + A1*z^-1 + A2*z^-2 = 0
func (n Normalized[T]) Zeros() [2]complex128 {
	return quadraticRoots(float64(n.A0), float64(n.A1), float64(n.A2))
}

// PoleZeroPair returns both poles and zeros.
func (n Normalized[T]) PoleZeroPair() PoleZeroPair {
	return PoleZeroPair{
		Poles: n.Poles(),
		Zeros: n.Zeros(),
	}
}

// IsStable reports whether both poles lie strictly inside the unit circle.
func (n Normalized[T]) IsStable() bool {
	for _, p := range n.Poles() {
		if cmplx.IsNaN(p) || cmplx.Abs(p) >= 1 {
			return false
		}
	}
	return true
}

// PoleZeroPairs returns one pole/zero pair per lane of the engine.
func (e *Engine[T]) PoleZeroPairs() []PoleZeroPair {
	out := make([]PoleZeroPair, e.Lanes())
	for i := range out {
		out[i] = e.laneCoeffs(i).PoleZeroPair()
	}
	return out
}

func quadraticRoots(a, b, c float64) [2]complex128 {
	if a == 0 {
		if b == 0 {
			return [2]complex128{}
		}
		return [2]complex128{complex(-c/b, 0), 0}
	}

	discriminant := complex(b*b-4*a*c, 0)
	sqrtDiscriminant := cmplx.Sqrt(discriminant)
	den := complex(2*a, 0)
	return [2]complex128{
		(-complex(b, 0) + sqrtDiscriminant) / den,
		(-complex(b, 0) - sqrtDiscriminant) / den,
	}
}
