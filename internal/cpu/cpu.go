// Package cpu provides CPU feature detection for lane-kernel selection.
//
// The parallel biquad engine batches its lanes in groups as wide as one SIMD
// register. This package reports which instruction set extensions (SSE2, AVX2,
// NEON) the processor offers and how many bytes one register holds at each
// level, so the kernel registry can pick a backend and derive its batch width.
//
// Detection is performed lazily on the first call to DetectFeatures and cached.
// Setting the BIQUAD_NO_SIMD environment variable to a true value makes the
// detected feature set request the pure scalar kernels.
package cpu

import (
	"os"
	"strconv"
	"sync"
)

// SIMDLevel represents a SIMD instruction set extension level.
// Levels are not comparable across architectures (e.g. AVX2 vs NEON).
type SIMDLevel int

const (
	// SIMDNone indicates no SIMD optimization (pure Go scalar lanes).
	SIMDNone SIMDLevel = iota

	// SIMDSSE2 indicates x86-64 SSE2 (baseline for amd64, 128-bit).
	SIMDSSE2

	// SIMDAVX indicates x86-64 AVX (256-bit floating point).
	SIMDAVX

	// SIMDAVX2 indicates x86-64 AVX2.
	SIMDAVX2

	// SIMDNEON indicates ARM NEON / Advanced SIMD (128-bit).
	SIMDNEON
)

// NoSIMDEnv is the environment variable that disables SIMD kernel selection.
const NoSIMDEnv = "BIQUAD_NO_SIMD"

// String returns a human-readable name for the SIMD level.
func (s SIMDLevel) String() string {
	switch s {
	case SIMDNone:
		return "None"
	case SIMDSSE2:
		return "SSE2"
	case SIMDAVX:
		return "AVX"
	case SIMDAVX2:
		return "AVX2"
	case SIMDNEON:
		return "NEON"
	default:
		return "Unknown"
	}
}

// VectorBytes returns the register width in bytes used at the given level.
// SIMDNone reports the width of a single float64.
func VectorBytes(level SIMDLevel) int {
	switch level {
	case SIMDSSE2, SIMDNEON:
		return 16
	case SIMDAVX, SIMDAVX2:
		return 32
	default:
		return 8
	}
}

// Features describes CPU capabilities relevant to kernel selection.
type Features struct {
	// x86/amd64
	HasSSE2 bool
	HasAVX  bool
	HasAVX2 bool

	// arm64
	HasNEON bool

	// ForceGeneric disables every SIMD backend.
	ForceGeneric bool

	// Architecture is runtime.GOARCH, e.g. "amd64".
	Architecture string
}

var (
	detectedFeatures Features
	detectOnce       sync.Once
	detectMutex      sync.Mutex

	// forcedFeatures overrides hardware detection in tests.
	forcedFeatures *Features
	forcedMutex    sync.RWMutex
)

// DetectFeatures returns the CPU features available on the current system.
//
// Detection runs once and is cached. It is safe for concurrent use.
func DetectFeatures() Features {
	forcedMutex.RLock()
	forced := forcedFeatures
	forcedMutex.RUnlock()

	if forced != nil {
		return *forced
	}

	detectMutex.Lock()
	detectOnce.Do(func() {
		detectedFeatures = detectFeaturesImpl()
		detectedFeatures.ForceGeneric = noSIMDFromEnv()
	})
	features := detectedFeatures
	detectMutex.Unlock()

	return features
}

// SetForcedFeatures overrides CPU feature detection. Intended for tests.
func SetForcedFeatures(f Features) {
	forcedMutex.Lock()
	defer forcedMutex.Unlock()
	forced := f
	forcedFeatures = &forced
}

// ResetDetection clears any forced features and the detection cache.
func ResetDetection() {
	forcedMutex.Lock()
	forcedFeatures = nil
	forcedMutex.Unlock()

	detectMutex.Lock()
	detectOnce = sync.Once{}
	detectedFeatures = Features{}
	detectMutex.Unlock()
}

// Supports reports whether features allow a kernel built for level.
func Supports(features Features, level SIMDLevel) bool {
	if features.ForceGeneric {
		return level == SIMDNone
	}

	switch level {
	case SIMDNone:
		return true
	case SIMDSSE2:
		return features.HasSSE2
	case SIMDAVX:
		return features.HasAVX
	case SIMDAVX2:
		return features.HasAVX2
	case SIMDNEON:
		return features.HasNEON
	default:
		return false
	}
}

// BestLevel returns the widest level the features support.
func BestLevel(features Features) SIMDLevel {
	for _, level := range []SIMDLevel{SIMDAVX2, SIMDAVX, SIMDNEON, SIMDSSE2} {
		if Supports(features, level) {
			return level
		}
	}

	return SIMDNone
}

func noSIMDFromEnv() bool {
	val := os.Getenv(NoSIMDEnv)
	if val == "" {
		return false
	}

	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}

	return true
}
