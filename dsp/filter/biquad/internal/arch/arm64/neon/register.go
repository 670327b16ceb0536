//go:build arm64 && !purego

package neon

import (
	"github.com/cwbudde/algo-simdbiquad/dsp/filter/biquad/internal/arch/batch"
	"github.com/cwbudde/algo-simdbiquad/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-simdbiquad/internal/cpu"
)

// NEON registers are 128 bits wide: two float64 or four float32 lanes.
func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "neon",
		SIMDLevel: cpu.SIMDNEON,
		Priority:  15,
		Float32:   batch.Kernel[float32](4),
		Float64:   batch.Kernel[float64](2),
	})
}
