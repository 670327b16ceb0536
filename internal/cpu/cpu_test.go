package cpu

import (
	"runtime"
	"testing"
)

func TestSupports(t *testing.T) {
	tests := []struct {
		name     string
		features Features
		level    SIMDLevel
		want     bool
	}{
		{"none-always", Features{}, SIMDNone, true},
		{"sse2-present", Features{HasSSE2: true}, SIMDSSE2, true},
		{"sse2-missing", Features{}, SIMDSSE2, false},
		{"avx2-present", Features{HasSSE2: true, HasAVX2: true}, SIMDAVX2, true},
		{"neon-present", Features{HasNEON: true}, SIMDNEON, true},
		{"force-generic-blocks-avx2", Features{HasAVX2: true, ForceGeneric: true}, SIMDAVX2, false},
		{"force-generic-keeps-none", Features{HasAVX2: true, ForceGeneric: true}, SIMDNone, true},
		{"unknown-level", Features{HasAVX2: true}, SIMDLevel(99), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Supports(tt.features, tt.level); got != tt.want {
				t.Fatalf("Supports(%+v, %v) = %v, want %v", tt.features, tt.level, got, tt.want)
			}
		})
	}
}

func TestBestLevel(t *testing.T) {
	if got := BestLevel(Features{HasSSE2: true, HasAVX2: true}); got != SIMDAVX2 {
		t.Fatalf("BestLevel(avx2) = %v, want AVX2", got)
	}
	if got := BestLevel(Features{HasNEON: true}); got != SIMDNEON {
		t.Fatalf("BestLevel(neon) = %v, want NEON", got)
	}
	if got := BestLevel(Features{HasAVX2: true, ForceGeneric: true}); got != SIMDNone {
		t.Fatalf("BestLevel(forced) = %v, want None", got)
	}
}

func TestVectorBytes(t *testing.T) {
	for level, want := range map[SIMDLevel]int{
		SIMDNone: 8,
		SIMDSSE2: 16,
		SIMDNEON: 16,
		SIMDAVX2: 32,
	} {
		if got := VectorBytes(level); got != want {
			t.Errorf("VectorBytes(%v) = %d, want %d", level, got, want)
		}
	}
}

func TestForcedFeaturesOverrideDetection(t *testing.T) {
	defer ResetDetection()

	SetForcedFeatures(Features{ForceGeneric: true, Architecture: "test"})
	f := DetectFeatures()
	if !f.ForceGeneric || f.Architecture != "test" {
		t.Fatalf("forced features not returned: %+v", f)
	}

	ResetDetection()
	f = DetectFeatures()
	if f.Architecture != runtime.GOARCH {
		t.Fatalf("Architecture = %q, want %q", f.Architecture, runtime.GOARCH)
	}
}

func TestNoSIMDEnv(t *testing.T) {
	defer ResetDetection()

	t.Setenv(NoSIMDEnv, "1")
	ResetDetection()
	if !DetectFeatures().ForceGeneric {
		t.Fatalf("%s=1 should force generic kernels", NoSIMDEnv)
	}

	t.Setenv(NoSIMDEnv, "false")
	ResetDetection()
	if DetectFeatures().ForceGeneric {
		t.Fatalf("%s=false should not force generic kernels", NoSIMDEnv)
	}
}

func TestSIMDLevelString(t *testing.T) {
	if SIMDAVX2.String() != "AVX2" || SIMDNone.String() != "None" || SIMDLevel(42).String() != "Unknown" {
		t.Fatal("unexpected SIMDLevel names")
	}
}
