//go:build arm64 && !purego

package biquad

import (
	"testing"

	"github.com/cwbudde/algo-simdbiquad/internal/cpu"
)

func TestKernelDispatch_ARM64Modes(t *testing.T) {
	tests := []struct {
		name      string
		features  cpu.Features
		wantImpl  string
		wantWidth int
	}{
		{"generic-forced", cpu.Features{HasNEON: true, ForceGeneric: true, Architecture: "arm64"}, "generic", 1},
		{"neon", cpu.Features{HasNEON: true, Architecture: "arm64"}, "neon", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := mustEngine[float32](t, 10, WithFeatures(tt.features))
			if e.Kernel() != tt.wantImpl || e.Width() != tt.wantWidth {
				t.Fatalf("got %s/W=%d, want %s/W=%d", e.Kernel(), e.Width(), tt.wantImpl, tt.wantWidth)
			}

			e.SetCoeffs(tracedSection[float32]())
			ref := NewSection(tracedSection[float32]())
			input := []float32{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8, -0.1}

			frame := make([]float32, 10)
			for step, x := range input {
				for i := range frame {
					frame[i] = x
				}
				e.Process(frame)
				want := ref.ProcessSample(x)
				for lane, y := range frame {
					if !relClose(float64(y), float64(want), relTol32) {
						t.Fatalf("step %d lane %d: got %v, want %v", step, lane, y, want)
					}
				}
			}
		})
	}
}
