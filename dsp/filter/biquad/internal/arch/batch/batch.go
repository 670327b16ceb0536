// Package batch holds the lane-parallel biquad bodies shared by the backend
// kernels.
//
// A width-W kernel walks lanes [0, N-N%W) W at a time: the five coefficient
// and history fields of a batch are loaded as [W]T values, the recurrence is
// evaluated over the whole batch, and the four updated history fields plus the
// output are stored back as [W]T values. The trailing N%W lanes run through
// Scalar, which is the reference recurrence applied lane by lane.
package batch

import "github.com/cwbudde/algo-simdbiquad/dsp/filter/biquad/internal/arch/registry"

// Scalar advances lanes [lo, N) one at a time.
func Scalar[T registry.Float](l *registry.Lanes[T], out []T, lo int) {
	n := l.Len()
	a0, a1, a2, b1, b2 := l.A0[:n], l.A1[:n], l.A2[:n], l.B1[:n], l.B2[:n]
	x1, x2, y1, y2 := l.X1[:n], l.X2[:n], l.Y1[:n], l.Y2[:n]
	work, out := l.Work[:n], out[:n]

	for i := lo; i < n; i++ {
		x := work[i]
		y := a0[i]*x + a1[i]*x1[i] + a2[i]*x2[i] - b1[i]*y1[i] - b2[i]*y2[i]
		x2[i] = x1[i]
		x1[i] = x
		y2[i] = y1[i]
		y1[i] = y
		out[i] = y
	}
}

// ResetScalar zeroes scratch and history for lanes [lo, N).
func ResetScalar[T registry.Float](l *registry.Lanes[T], lo int) {
	for i := lo; i < l.Len(); i++ {
		l.Work[i] = 0
		l.X1[i] = 0
		l.X2[i] = 0
		l.Y1[i] = 0
		l.Y2[i] = 0
	}
}

// ProcessScalar is the width-1 kernel: every lane takes the scalar path.
func ProcessScalar[T registry.Float](l *registry.Lanes[T], out []T) {
	Scalar(l, out, 0)
}

// ResetAll is the width-1 reset.
func ResetAll[T registry.Float](l *registry.Lanes[T]) {
	ResetScalar(l, 0)
}

// Process2 evaluates two lanes per batch.
func Process2[T registry.Float](l *registry.Lanes[T], out []T) {
	n := l.Len()
	vec := n - n%2

	for i := 0; i < vec; i += 2 {
		x0 := [2]T(l.Work[i : i+2])
		a0 := [2]T(l.A0[i : i+2])
		a1 := [2]T(l.A1[i : i+2])
		x1 := [2]T(l.X1[i : i+2])
		a2 := [2]T(l.A2[i : i+2])
		x2 := [2]T(l.X2[i : i+2])
		b1 := [2]T(l.B1[i : i+2])
		y1 := [2]T(l.Y1[i : i+2])
		b2 := [2]T(l.B2[i : i+2])
		y2 := [2]T(l.Y2[i : i+2])

		var y [2]T
		for k := range y {
			y[k] = a0[k]*x0[k] + a1[k]*x1[k] + a2[k]*x2[k] - b1[k]*y1[k] - b2[k]*y2[k]
		}

		*(*[2]T)(l.X2[i:]) = x1
		*(*[2]T)(l.X1[i:]) = x0
		*(*[2]T)(l.Y2[i:]) = y1
		*(*[2]T)(l.Y1[i:]) = y
		*(*[2]T)(out[i:]) = y
	}

	Scalar(l, out, vec)
}

// Reset2 zeroes state two lanes per batch.
func Reset2[T registry.Float](l *registry.Lanes[T]) {
	n := l.Len()
	vec := n - n%2

	for i := 0; i < vec; i += 2 {
		*(*[2]T)(l.Work[i:]) = [2]T{}
		*(*[2]T)(l.X1[i:]) = [2]T{}
		*(*[2]T)(l.X2[i:]) = [2]T{}
		*(*[2]T)(l.Y1[i:]) = [2]T{}
		*(*[2]T)(l.Y2[i:]) = [2]T{}
	}

	ResetScalar(l, vec)
}

// Process4 evaluates four lanes per batch.
func Process4[T registry.Float](l *registry.Lanes[T], out []T) {
	n := l.Len()
	vec := n - n%4

	for i := 0; i < vec; i += 4 {
		x0 := [4]T(l.Work[i : i+4])
		a0 := [4]T(l.A0[i : i+4])
		a1 := [4]T(l.A1[i : i+4])
		x1 := [4]T(l.X1[i : i+4])
		a2 := [4]T(l.A2[i : i+4])
		x2 := [4]T(l.X2[i : i+4])
		b1 := [4]T(l.B1[i : i+4])
		y1 := [4]T(l.Y1[i : i+4])
		b2 := [4]T(l.B2[i : i+4])
		y2 := [4]T(l.Y2[i : i+4])

		var y [4]T
		for k := range y {
			y[k] = a0[k]*x0[k] + a1[k]*x1[k] + a2[k]*x2[k] - b1[k]*y1[k] - b2[k]*y2[k]
		}

		*(*[4]T)(l.X2[i:]) = x1
		*(*[4]T)(l.X1[i:]) = x0
		*(*[4]T)(l.Y2[i:]) = y1
		*(*[4]T)(l.Y1[i:]) = y
		*(*[4]T)(out[i:]) = y
	}

	Scalar(l, out, vec)
}

// Reset4 zeroes state four lanes per batch.
func Reset4[T registry.Float](l *registry.Lanes[T]) {
	n := l.Len()
	vec := n - n%4

	for i := 0; i < vec; i += 4 {
		*(*[4]T)(l.Work[i:]) = [4]T{}
		*(*[4]T)(l.X1[i:]) = [4]T{}
		*(*[4]T)(l.X2[i:]) = [4]T{}
		*(*[4]T)(l.Y1[i:]) = [4]T{}
		*(*[4]T)(l.Y2[i:]) = [4]T{}
	}

	ResetScalar(l, vec)
}

// Process8 evaluates eight lanes per batch.
func Process8[T registry.Float](l *registry.Lanes[T], out []T) {
	n := l.Len()
	vec := n - n%8

	for i := 0; i < vec; i += 8 {
		x0 := [8]T(l.Work[i : i+8])
		a0 := [8]T(l.A0[i : i+8])
		a1 := [8]T(l.A1[i : i+8])
		x1 := [8]T(l.X1[i : i+8])
		a2 := [8]T(l.A2[i : i+8])
		x2 := [8]T(l.X2[i : i+8])
		b1 := [8]T(l.B1[i : i+8])
		y1 := [8]T(l.Y1[i : i+8])
		b2 := [8]T(l.B2[i : i+8])
		y2 := [8]T(l.Y2[i : i+8])

		var y [8]T
		for k := range y {
			y[k] = a0[k]*x0[k] + a1[k]*x1[k] + a2[k]*x2[k] - b1[k]*y1[k] - b2[k]*y2[k]
		}

		*(*[8]T)(l.X2[i:]) = x1
		*(*[8]T)(l.X1[i:]) = x0
		*(*[8]T)(l.Y2[i:]) = y1
		*(*[8]T)(l.Y1[i:]) = y
		*(*[8]T)(out[i:]) = y
	}

	Scalar(l, out, vec)
}

// Reset8 zeroes state eight lanes per batch.
func Reset8[T registry.Float](l *registry.Lanes[T]) {
	n := l.Len()
	vec := n - n%8

	for i := 0; i < vec; i += 8 {
		*(*[8]T)(l.Work[i:]) = [8]T{}
		*(*[8]T)(l.X1[i:]) = [8]T{}
		*(*[8]T)(l.X2[i:]) = [8]T{}
		*(*[8]T)(l.Y1[i:]) = [8]T{}
		*(*[8]T)(l.Y2[i:]) = [8]T{}
	}

	ResetScalar(l, vec)
}

// Kernel returns the batch kernel of the given width (1, 2, 4 or 8).
func Kernel[T registry.Float](width int) *registry.Kernel[T] {
	switch width {
	case 1:
		return &registry.Kernel[T]{Width: 1, Process: ProcessScalar[T], Reset: ResetAll[T]}
	case 2:
		return &registry.Kernel[T]{Width: 2, Process: Process2[T], Reset: Reset2[T]}
	case 4:
		return &registry.Kernel[T]{Width: 4, Process: Process4[T], Reset: Reset4[T]}
	case 8:
		return &registry.Kernel[T]{Width: 8, Process: Process8[T], Reset: Reset8[T]}
	default:
		panic("batch: unsupported kernel width")
	}
}
