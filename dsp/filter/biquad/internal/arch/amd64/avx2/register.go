//go:build amd64 && !purego

package avx2

import (
	"github.com/cwbudde/algo-simdbiquad/dsp/filter/biquad/internal/arch/batch"
	"github.com/cwbudde/algo-simdbiquad/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-simdbiquad/internal/cpu"
)

// One 256-bit register holds four float64 or eight float32 lanes.
// TODO: replace the array-batched Go bodies with an explicit AVX2 asm kernel.
func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "avx2",
		SIMDLevel: cpu.SIMDAVX2,
		Priority:  20,
		Float32:   batch.Kernel[float32](8),
		Float64:   batch.Kernel[float64](4),
	})
}
