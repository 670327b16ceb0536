//go:build purego || (!amd64 && !arm64)

package biquad

import (
	_ "github.com/cwbudde/algo-simdbiquad/dsp/filter/biquad/internal/arch/generic"
)
