// Package response measures the magnitude response of biquad lanes from
// their impulse responses.
//
// An impulse response (for example one row of Engine.ImpulseResponses) is
// zero-padded to the FFT size, transformed, and reported as magnitude in dB
// for bins 0..FFTSize/2. Deviation compares such a measurement with the
// closed-form response of the lane's coefficients.
package response

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-simdbiquad/dsp/filter/biquad"
)

// Errors returned by response analysis functions.
var (
	ErrEmptyIR           = errors.New("response: impulse response is empty")
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive")
	ErrInvalidFFTSize    = errors.New("response: FFT size must be a power of two")
)

const (
	// DeviationFloorDB excludes bins whose analytic magnitude is below it
	// from Deviation, where rounding noise dominates the measurement.
	DeviationFloorDB = -120.0

	// minMagnitude keeps 20*log10 finite at exact spectral zeros.
	minMagnitude = 1e-15
)

// Spectrum is the measured magnitude response of one impulse response.
type Spectrum struct {
	SampleRate  float64
	FFTSize     int
	MagnitudeDB []float64 // bins 0..FFTSize/2
}

// BinFrequency returns the centre frequency of bin k in Hz.
func (s Spectrum) BinFrequency(k int) float64 {
	return float64(k) * s.SampleRate / float64(s.FFTSize)
}

// Peak returns the frequency and level of the loudest bin.
func (s Spectrum) Peak() (freqHz, levelDB float64) {
	if len(s.MagnitudeDB) == 0 {
		return 0, math.Inf(-1)
	}

	k := floats.MaxIdx(s.MagnitudeDB)
	return s.BinFrequency(k), s.MagnitudeDB[k]
}

// Analyzer transforms impulse responses with one reusable FFT plan.
type Analyzer struct {
	SampleRate float64
	FFTSize    int

	plan    *algofft.Plan[complex128]
	in, out []complex128
}

// NewAnalyzer creates an analyzer. fftSize must be a power of two >= 2.
func NewAnalyzer(sampleRate float64, fftSize int) (*Analyzer, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, ErrInvalidSampleRate
	}

	if fftSize < 2 || bits.OnesCount(uint(fftSize)) != 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFFTSize, fftSize)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("response: failed to create FFT plan: %w", err)
	}

	return &Analyzer{
		SampleRate: sampleRate,
		FFTSize:    fftSize,
		plan:       plan,
		in:         make([]complex128, fftSize),
		out:        make([]complex128, fftSize),
	}, nil
}

// Analyze measures the magnitude response of ir. ir must not be longer than
// the FFT size.
func (a *Analyzer) Analyze(ir []float64) (Spectrum, error) {
	if len(ir) == 0 {
		return Spectrum{}, ErrEmptyIR
	}

	if len(ir) > a.FFTSize {
		return Spectrum{}, fmt.Errorf("%w: %d is shorter than the %d-sample impulse response",
			ErrInvalidFFTSize, a.FFTSize, len(ir))
	}

	for i := range a.in {
		a.in[i] = 0
	}
	for i, v := range ir {
		a.in[i] = complex(v, 0)
	}

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return Spectrum{}, fmt.Errorf("response: forward FFT failed: %w", err)
	}

	mag := make([]float64, a.FFTSize/2+1)
	for k := range mag {
		mag[k] = 20 * math.Log10(math.Max(cmplx.Abs(a.out[k]), minMagnitude))
	}

	return Spectrum{SampleRate: a.SampleRate, FFTSize: a.FFTSize, MagnitudeDB: mag}, nil
}

// Analyze measures ir with a one-off analyzer. fftSize <= 0 picks the
// smallest power of two that holds ir.
func Analyze(ir []float64, sampleRate float64, fftSize int) (Spectrum, error) {
	if len(ir) == 0 {
		return Spectrum{}, ErrEmptyIR
	}

	if fftSize <= 0 {
		fftSize = nextPowerOf2(len(ir))
	}

	a, err := NewAnalyzer(sampleRate, fftSize)
	if err != nil {
		return Spectrum{}, err
	}

	return a.Analyze(ir)
}

// AnalyzeLanes measures every row of irs, indexed [lane][sample], sharing
// one FFT plan.
func AnalyzeLanes(irs [][]float64, sampleRate float64, fftSize int) ([]Spectrum, error) {
	if fftSize <= 0 {
		longest := 1
		for _, ir := range irs {
			longest = max(longest, len(ir))
		}
		fftSize = nextPowerOf2(longest)
	}

	a, err := NewAnalyzer(sampleRate, fftSize)
	if err != nil {
		return nil, err
	}

	out := make([]Spectrum, len(irs))
	for lane, ir := range irs {
		if out[lane], err = a.Analyze(ir); err != nil {
			return nil, fmt.Errorf("lane %d: %w", lane, err)
		}
	}

	return out, nil
}

// Deviation returns the largest absolute difference in dB between s and the
// closed-form response of c, over bins where the closed form is at least
// DeviationFloorDB.
func Deviation[T biquad.Float](s Spectrum, c biquad.Normalized[T]) float64 {
	worst := 0.0
	for k, measured := range s.MagnitudeDB {
		want := c.MagnitudeDB(s.BinFrequency(k), s.SampleRate)
		if math.IsNaN(want) || want < DeviationFloorDB {
			continue
		}
		worst = math.Max(worst, math.Abs(measured-want))
	}
	return worst
}

func nextPowerOf2(n int) int {
	if n <= 2 {
		return 2
	}
	return 1 << bits.Len(uint(n-1))
}
