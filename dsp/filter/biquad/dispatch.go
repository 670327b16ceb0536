package biquad

import (
	"fmt"

	"github.com/cwbudde/algo-simdbiquad/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-simdbiquad/internal/cpu"
)

// KernelInfo describes one registered lane kernel.
type KernelInfo struct {
	Name      string
	SIMDLevel cpu.SIMDLevel
	Priority  int

	// MinLanes is the smallest engine the kernel is selected for
	// automatically. WithKernel ignores it.
	MinLanes int

	// Width32 and Width64 are the batch widths for float32 and float64
	// lanes; 0 means the kernel has no implementation for that type.
	Width32, Width64 int

	// Supported reports whether the detected CPU can run the kernel.
	Supported bool
}

// Kernels lists the lane kernels compiled into this binary, highest
// priority first.
func Kernels() []KernelInfo {
	features := cpu.DetectFeatures()
	entries := registry.Global.ListEntries()

	out := make([]KernelInfo, 0, len(entries))
	for _, e := range entries {
		info := KernelInfo{
			Name:      e.Name,
			SIMDLevel: e.SIMDLevel,
			Priority:  e.Priority,
			MinLanes:  e.MinLanes,
			Supported: cpu.Supports(features, e.SIMDLevel),
		}
		if e.Float32 != nil {
			info.Width32 = e.Float32.Width
		}
		if e.Float64 != nil {
			info.Width64 = e.Float64.Width
		}
		out = append(out, info)
	}

	return out
}

func selectKernel[T Float](cfg engineConfig, lanes int) (string, *registry.Kernel[T], error) {
	if cfg.kernel != "" {
		entry, k := registry.Find[T](registry.Global, cfg.kernel, cfg.features)
		if entry == nil {
			var zero T
			return "", nil, fmt.Errorf("%w: %q for %T", ErrUnknownKernel, cfg.kernel, zero)
		}
		return entry.Name, k, nil
	}

	entry, k := registry.Lookup[T](registry.Global, cfg.features, lanes)
	if entry == nil {
		panic("biquad: no lane kernel registered (missing generic fallback?)")
	}

	return entry.Name, k, nil
}
