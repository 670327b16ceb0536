//go:build amd64 && !purego

package sse2

import (
	"github.com/cwbudde/algo-simdbiquad/dsp/filter/biquad/internal/arch/batch"
	"github.com/cwbudde/algo-simdbiquad/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-simdbiquad/internal/cpu"
)

// One 128-bit register holds two float64 or four float32 lanes.
func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "sse2",
		SIMDLevel: cpu.SIMDSSE2,
		Priority:  10,
		Float32:   batch.Kernel[float32](4),
		Float64:   batch.Kernel[float64](2),
	})
}
