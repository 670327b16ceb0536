package response

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-simdbiquad/dsp/filter/biquad"
	"github.com/cwbudde/algo-simdbiquad/internal/testutil"
)

const sampleRate = 48000.0

func lowpass() biquad.Coefficients[float64] {
	return biquad.Coefficients[float64]{A0: 0.0004, A1: 0.0008, A2: 0.0004, B0: 1, B1: -1.9556, B2: 0.9565}
}

func TestAnalyze_ImpulseIsFlat(t *testing.T) {
	s, err := Analyze(testutil.Impulse(64, 0), sampleRate, 0)
	if err != nil {
		t.Fatal(err)
	}
	if s.FFTSize != 64 || len(s.MagnitudeDB) != 33 {
		t.Fatalf("FFTSize=%d bins=%d, want 64/33", s.FFTSize, len(s.MagnitudeDB))
	}
	for k, db := range s.MagnitudeDB {
		if math.Abs(db) > 1e-9 {
			t.Fatalf("bin %d: %v dB, want 0", k, db)
		}
	}
}

func TestAnalyze_Errors(t *testing.T) {
	tests := []struct {
		name    string
		ir      []float64
		sr      float64
		fftSize int
		want    error
	}{
		{"empty", nil, sampleRate, 64, ErrEmptyIR},
		{"zero-rate", []float64{1}, 0, 64, ErrInvalidSampleRate},
		{"nan-rate", []float64{1}, math.NaN(), 64, ErrInvalidSampleRate},
		{"not-pow2", []float64{1}, sampleRate, 48, ErrInvalidFFTSize},
		{"too-short", make([]float64, 100), sampleRate, 64, ErrInvalidFFTSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Analyze(tt.ir, tt.sr, tt.fftSize); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDeviation_EngineLanesMatchClosedForm(t *testing.T) {
	e, err := biquad.NewEngine[float64](5)
	if err != nil {
		t.Fatal(err)
	}
	e.SetCoeffs(lowpass())
	peaking := biquad.Coefficients[float64]{A0: 1.05, A1: -1.8, A2: 0.8, B0: 1, B1: -1.8, B2: 0.85}
	if err := e.SetLaneCoeffs(3, peaking); err != nil {
		t.Fatal(err)
	}

	spectra, err := AnalyzeLanes(e.ImpulseResponses(4096), sampleRate, 0)
	if err != nil {
		t.Fatal(err)
	}

	for lane, s := range spectra {
		c, _ := e.LaneCoeffs(lane)
		if d := Deviation(s, c); d > 1e-4 {
			t.Fatalf("lane %d: deviation %v dB", lane, d)
		}
	}
}

func TestPeak(t *testing.T) {
	s, err := Analyze(biquad.NewSection(lowpass()).ImpulseResponse(8192), sampleRate, 0)
	if err != nil {
		t.Fatal(err)
	}

	freq, level := s.Peak()

	// Find the analytic peak on the same grid.
	c := lowpass().Normalize()
	wantLevel := math.Inf(-1)
	var wantFreq float64
	for k := range s.MagnitudeDB {
		f := s.BinFrequency(k)
		if db := c.MagnitudeDB(f, sampleRate); db > wantLevel {
			wantLevel, wantFreq = db, f
		}
	}

	if math.Abs(freq-wantFreq) > s.BinFrequency(1) || math.Abs(level-wantLevel) > 1e-4 {
		t.Fatalf("Peak = %v Hz / %v dB, want %v Hz / %v dB", freq, level, wantFreq, wantLevel)
	}

	if _, lvl := (Spectrum{}).Peak(); !math.IsInf(lvl, -1) {
		t.Fatalf("empty spectrum peak level %v, want -Inf", lvl)
	}
}

func TestBinFrequency(t *testing.T) {
	s := Spectrum{SampleRate: 48000, FFTSize: 1024}
	if got := s.BinFrequency(512); got != 24000 {
		t.Fatalf("Nyquist bin = %v Hz, want 24000", got)
	}
}

func TestNextPowerOf2(t *testing.T) {
	for n, want := range map[int]int{1: 2, 2: 2, 3: 4, 64: 64, 65: 128, 4097: 8192} {
		if got := nextPowerOf2(n); got != want {
			t.Errorf("nextPowerOf2(%d) = %d, want %d", n, got, want)
		}
	}
}

func BenchmarkAnalyze(b *testing.B) {
	a, err := NewAnalyzer(sampleRate, 4096)
	if err != nil {
		b.Fatal(err)
	}
	ir := biquad.NewSection(lowpass()).ImpulseResponse(4096)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := a.Analyze(ir); err != nil {
			b.Fatal(err)
		}
	}
}
