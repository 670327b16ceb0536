//go:build amd64 && !purego

// Package blocks registers the algo-vecmath backend: the batched lanes are
// evaluated field by field as whole-array vector operations instead of batch
// by batch. Its per-call overhead only pays off for wide engines, so
// automatic selection requires MinLanes lanes.
package blocks

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-simdbiquad/dsp/filter/biquad/internal/arch/batch"
	"github.com/cwbudde/algo-simdbiquad/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-simdbiquad/internal/cpu"
)

const (
	width    = 4
	minLanes = 64
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "vecmath",
		SIMDLevel: cpu.SIMDAVX2,
		Priority:  30,
		MinLanes:  minLanes,
		Float64: &registry.Kernel[float64]{
			Width:   width,
			Process: process,
			Reset:   batch.Reset4[float64],
		},
	})
}

// process accumulates a0*x + a1*x1 + a2*x2 + (-b1*y1) + (-b2*y2) left to
// right, which rounds exactly like the scalar recurrence.
func process(l *registry.Lanes[float64], out []float64) {
	n := l.Len()
	vec := n - n%width

	if vec > 0 {
		acc, tmp := l.Acc[:vec], l.Tmp[:vec]

		vecmath.MulBlock(acc, l.A0[:vec], l.Work[:vec])

		vecmath.MulBlock(tmp, l.A1[:vec], l.X1[:vec])
		vecmath.AddBlockInPlace(acc, tmp)

		vecmath.MulBlock(tmp, l.A2[:vec], l.X2[:vec])
		vecmath.AddBlockInPlace(acc, tmp)

		vecmath.MulBlock(tmp, l.B1[:vec], l.Y1[:vec])
		vecmath.ScaleBlockInPlace(tmp, -1)
		vecmath.AddBlockInPlace(acc, tmp)

		vecmath.MulBlock(tmp, l.B2[:vec], l.Y2[:vec])
		vecmath.ScaleBlockInPlace(tmp, -1)
		vecmath.AddBlockInPlace(acc, tmp)

		copy(l.X2[:vec], l.X1[:vec])
		copy(l.X1[:vec], l.Work[:vec])
		copy(l.Y2[:vec], l.Y1[:vec])
		copy(l.Y1[:vec], acc)
		copy(out[:vec], acc)
	}

	batch.Scalar(l, out, vec)
}
