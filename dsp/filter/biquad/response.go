package biquad

import (
	"math"
	"math/cmplx"
)

// Response computes the complex frequency response H(e^jw) at the given
// frequency (Hz) and sample rate (Hz). Evaluation is done in float64 for
// both sample types.
func (n Normalized[T]) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	ejw := cmplx.Exp(complex(0, -w))
	ej2w := cmplx.Exp(complex(0, -2*w))

	num := complex(float64(n.A0), 0) + complex(float64(n.A1), 0)*ejw + complex(float64(n.A2), 0)*ej2w
	den := complex(1, 0) + complex(float64(n.B1), 0)*ejw + complex(float64(n.B2), 0)*ej2w
	return num / den
}

// MagnitudeSquared returns |H(f)|^2 in closed form, without complex
// exponentials.
func (n Normalized[T]) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	cw := 2 * math.Cos(2*math.Pi*freqHz/sampleRate)
	a0, a1, a2 := float64(n.A0), float64(n.A1), float64(n.A2)
	b1, b2 := float64(n.B1), float64(n.B2)

	num := (a0-a2)*(a0-a2) + a1*a1 + (a1*(a0+a2)+a0*a2*cw)*cw
	den := (1-b2)*(1-b2) + b1*b1 + (b1*(b2+1)+cw*b2)*cw
	return num / den
}

// MagnitudeDB returns 10*log10(|H(f)|^2).
func (n Normalized[T]) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 10 * math.Log10(n.MagnitudeSquared(freqHz, sampleRate))
}

// Phase returns the phase response in radians, in [-pi, pi].
func (n Normalized[T]) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(n.Response(freqHz, sampleRate))
}

// ImpulseResponse computes n samples of the impulse response h[n] by feeding
// an impulse through the section. The section state is saved and restored,
// so this method does not disturb ongoing processing.
func (s *Section[T]) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	saved := s.State()
	s.Reset()

	ir := make([]float64, n)
	ir[0] = float64(s.ProcessSample(1))
	for i := 1; i < n; i++ {
		ir[i] = float64(s.ProcessSample(0))
	}

	s.SetState(saved)
	return ir
}

// ImpulseResponses computes n samples of every lane's impulse response,
// indexed [lane][sample]. Lane history is saved and restored.
func (e *Engine[T]) ImpulseResponses(n int) [][]float64 {
	if n <= 0 {
		return nil
	}

	l := e.lanes
	saved := make([]T, 4*l.Len())
	copy(saved[0*l.Len():], l.X1)
	copy(saved[1*l.Len():], l.X2)
	copy(saved[2*l.Len():], l.Y1)
	copy(saved[3*l.Len():], l.Y2)
	e.Reset()

	irs := make([][]float64, l.Len())
	for lane := range irs {
		irs[lane] = make([]float64, n)
	}

	frame := make([]T, l.Len())
	for i := range n {
		for lane := range frame {
			frame[lane] = 0
			if i == 0 {
				frame[lane] = 1
			}
		}
		e.Process(frame)
		for lane, y := range frame {
			irs[lane][i] = float64(y)
		}
	}

	copy(l.X1, saved[0*l.Len():])
	copy(l.X2, saved[1*l.Len():])
	copy(l.Y1, saved[2*l.Len():])
	copy(l.Y2, saved[3*l.Len():])
	return irs
}
