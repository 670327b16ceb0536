package generic

import (
	"github.com/cwbudde/algo-simdbiquad/dsp/filter/biquad/internal/arch/batch"
	"github.com/cwbudde/algo-simdbiquad/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-simdbiquad/internal/cpu"
)

// The generic backend runs every lane through the scalar recurrence. It is
// the portable fallback and the baseline the batched backends are checked
// against, so it must always be registered.
func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "generic",
		SIMDLevel: cpu.SIMDNone,
		Priority:  0,
		Float32:   batch.Kernel[float32](1),
		Float64:   batch.Kernel[float64](1),
	})
}
