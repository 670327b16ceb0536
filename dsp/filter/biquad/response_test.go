package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestMagnitudeSquared_MatchesResponse(t *testing.T) {
	// Verify closed-form MagnitudeSquared matches |Response|^2 across frequencies.
	c := tracedSection[float64]().Normalize()
	sr := 48000.0

	for _, freq := range []float64{100, 500, 1000, 5000, 10000, 20000} {
		h := c.Response(freq, sr)
		fromResponse := real(h)*real(h) + imag(h)*imag(h)
		fromClosed := c.MagnitudeSquared(freq, sr)
		if !almostEqual(fromClosed, fromResponse, 1e-10) {
			t.Errorf("freq=%v: MagnitudeSquared=%.15f, |Response|²=%.15f", freq, fromClosed, fromResponse)
		}
	}
}

func TestMagnitudeDB_MatchesMagnitudeSquared(t *testing.T) {
	c := tracedSection[float64]().Normalize()
	sr := 48000.0

	for _, freq := range []float64{100, 1000, 10000} {
		db := c.MagnitudeDB(freq, sr)
		fromSq := 10 * math.Log10(c.MagnitudeSquared(freq, sr))
		if !almostEqual(db, fromSq, 1e-12) {
			t.Errorf("freq=%v: MagnitudeDB=%.15f, 10*log10(MagSq)=%.15f", freq, db, fromSq)
		}
	}
}

func TestPhase_MatchesResponse(t *testing.T) {
	c := tracedSection[float64]().Normalize()
	sr := 48000.0

	for _, freq := range []float64{100, 500, 1000, 5000, 10000} {
		fromResponse := cmplx.Phase(c.Response(freq, sr))
		if got := c.Phase(freq, sr); !almostEqual(got, fromResponse, 1e-10) {
			t.Errorf("freq=%v: Phase=%.15f, arg(Response)=%.15f", freq, got, fromResponse)
		}
	}
}

func TestResponse_Passthrough(t *testing.T) {
	c := Identity[float32]().Normalize()
	sr := 48000.0
	for _, freq := range []float64{0, 100, 1000, 10000, 24000} {
		h := c.Response(freq, sr)
		if !almostEqual(cmplx.Abs(h), 1, 1e-12) || !almostEqual(cmplx.Phase(h), 0, 1e-12) {
			t.Errorf("freq=%v: H=%v, want 1", freq, h)
		}
	}
}

func TestResponse_Allpass(t *testing.T) {
	// Second-order allpass: numerator is the reversed denominator.
	b1, b2 := -0.5, 0.3
	c := Coefficients[float64]{A0: b2, A1: b1, A2: 1, B0: 1, B1: b1, B2: b2}.Normalize()
	sr := 48000.0
	for _, freq := range []float64{100, 500, 1000, 5000, 10000, 20000} {
		if mag := cmplx.Abs(c.Response(freq, sr)); !almostEqual(mag, 1, 1e-10) {
			t.Errorf("freq=%v: |H|=%.15f, want 1", freq, mag)
		}
	}
}

func TestResponse_IndependentOfB0(t *testing.T) {
	raw := tracedSection[float64]()
	scaled := Coefficients[float64]{
		A0: 3 * raw.A0, A1: 3 * raw.A1, A2: 3 * raw.A2,
		B0: 3, B1: 3 * raw.B1, B2: 3 * raw.B2,
	}

	for _, freq := range []float64{50, 2000, 15000} {
		a := raw.Normalize().MagnitudeDB(freq, 44100)
		b := scaled.Normalize().MagnitudeDB(freq, 44100)
		if !almostEqual(a, b, 1e-9) {
			t.Errorf("freq=%v: %v dB vs %v dB", freq, a, b)
		}
	}
}

func TestResponse_MatchesMeasuredDCGain(t *testing.T) {
	// The steady-state output for a constant input is the DC gain H(1).
	c := lowpass[float64]()
	s := NewSection(c)

	var y float64
	for range 20000 {
		y = s.ProcessSample(1)
	}

	if want := real(c.Normalize().Response(0, 48000)); !almostEqual(y, want, 1e-6) {
		t.Fatalf("steady state %v, H(0) = %v", y, want)
	}
}
