//go:build amd64 && !purego

package avx2

import (
	"testing"

	"github.com/cwbudde/algo-simdbiquad/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-simdbiquad/internal/cpu"
)

func TestRegisteredWidths(t *testing.T) {
	features := cpu.Features{HasSSE2: true, HasAVX2: true, Architecture: "amd64"}

	if _, k := registry.Find[float32](registry.Global, "avx2", features); k == nil || k.Width != 8 {
		t.Fatalf("float32 kernel = %+v, want width 8", k)
	}
	if _, k := registry.Find[float64](registry.Global, "avx2", features); k == nil || k.Width != 4 {
		t.Fatalf("float64 kernel = %+v, want width 4", k)
	}
	if e, _ := registry.Find[float64](registry.Global, "avx2", cpu.Features{HasSSE2: true}); e != nil {
		t.Fatal("avx2 backend selectable without AVX2")
	}
}
