package biquad

import (
	"fmt"
	"testing"
)

// tolerance for floating-point comparisons.
const eps = 1e-12

// Relative tolerances for engine lanes against the scalar Section.
const (
	relTol64 = 1e-6
	relTol32 = 1e-3
)

func relTol[T Float]() float64 {
	var zero T
	if _, ok := any(zero).(float32); ok {
		return relTol32
	}
	return relTol64
}

// lowpass is the illustrative normalized lowpass used across the tests.
func lowpass[T Float]() Coefficients[T] {
	return Coefficients[T]{A0: 0.0004, A1: 0.0008, A2: 0.0004, B0: 1, B1: -1.9556, B2: 0.9565}
}

// tracedSection has a short impulse response that is easy to trace by hand.
func tracedSection[T Float]() Coefficients[T] {
	return Coefficients[T]{A0: 0.25, A1: 0.5, A2: 0.25, B0: 1, B1: -0.2, B2: 0.04}
}

// variedCoeffs returns a stable, lane-specific gain set with B0 != 1.
func variedCoeffs[T Float](lane int) Coefficients[T] {
	f := T(lane%7) / 7
	return Coefficients[T]{
		A0: 0.2 + f,
		A1: 0.1 - f/2,
		A2: 0.05,
		B0: 1.5 + f,
		B1: -0.9 * (1.5 + f) * (0.5 + f/2),
		B2: 0.3 * (1.5 + f),
	}
}

// kernelNames lists the kernels the test machine can run for T.
func kernelNames[T Float](tb testing.TB) []string {
	tb.Helper()

	var zero T
	var names []string
	for _, k := range Kernels() {
		width := k.Width64
		if _, ok := any(zero).(float32); ok {
			width = k.Width32
		}
		if k.Supported && width > 0 {
			names = append(names, k.Name)
		}
	}
	if len(names) == 0 {
		tb.Fatal("no lane kernels available")
	}
	return names
}

func mustEngine[T Float](tb testing.TB, lanes int, opts ...EngineOption) *Engine[T] {
	tb.Helper()

	e, err := NewEngine[T](lanes, opts...)
	if err != nil {
		tb.Fatalf("NewEngine(%d): %v", lanes, err)
	}
	return e
}

// forEachKernel runs fn once per available kernel for T.
func forEachKernel[T Float](t *testing.T, fn func(t *testing.T, kernel string)) {
	t.Helper()

	var zero T
	for _, name := range kernelNames[T](t) {
		t.Run(fmt.Sprintf("%s/%T", name, zero), func(t *testing.T) {
			fn(t, name)
		})
	}
}

func relClose(got, want, tol float64) bool {
	d := got - want
	if d < 0 {
		d = -d
	}
	m := want
	if m < 0 {
		m = -m
	}
	if m < 1 {
		m = 1
	}
	return d <= tol*m
}

func almostEqual(a, b, tol float64) bool {
	d := a - b
	return d <= tol && -d <= tol
}
