package biquad

import (
	"fmt"

	"github.com/cwbudde/algo-simdbiquad/internal/cpu"
)

// EngineOption mutates engine construction parameters.
type EngineOption func(*engineConfig) error

type engineConfig struct {
	kernel   string
	features cpu.Features
}

func defaultEngineConfig() engineConfig {
	return engineConfig{features: cpu.DetectFeatures()}
}

// WithKernel forces the lane kernel registered under name instead of the
// highest-priority one the CPU supports. See Kernels for the names.
func WithKernel(name string) EngineOption {
	return func(cfg *engineConfig) error {
		if name == "" {
			return fmt.Errorf("%w: empty kernel name", ErrUnknownKernel)
		}
		cfg.kernel = name
		return nil
	}
}

// WithFeatures selects the lane kernel as if running on a CPU with the given
// features. Features{ForceGeneric: true} selects the pure scalar kernel.
func WithFeatures(f cpu.Features) EngineOption {
	return func(cfg *engineConfig) error {
		cfg.features = f
		return nil
	}
}
