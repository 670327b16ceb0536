// Command lanesinfo prints how the parallel biquad engine lays out its lanes
// on this machine and checks every lane kernel against the scalar section.
//
// Usage:
//
//	lanesinfo [flags]
//
// Examples:
//
//	lanesinfo -lanes 13
//	lanesinfo -lanes 64 -precision 32
//	lanesinfo -kernel sse2 -lanes 7
//	lanesinfo -list
//	lanesinfo -verify -lanes 16
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-simdbiquad/dsp/filter/biquad"
	"github.com/cwbudde/algo-simdbiquad/internal/cpu"
	"github.com/cwbudde/algo-simdbiquad/measure/response"
)

// Illustrative normalized lowpass used by -verify.
var verifyCoeffs = [5]float64{0.0004, 0.0008, 0.0004, -1.9556, 0.9565}

const (
	verifySamples  = 100
	responseLength = 4096
)

type options struct {
	lanes      int
	precision  int
	kernel     string
	generic    bool
	list       bool
	verify     bool
	sampleRate float64
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lanesinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.IntVar(&opts.lanes, "lanes", 16, "number of engine lanes")
	fs.IntVar(&opts.precision, "precision", 64, "sample precision in bits (32 or 64)")
	fs.StringVar(&opts.kernel, "kernel", "", "force a lane kernel by name (see -list)")
	fs.BoolVar(&opts.generic, "generic", false, "select kernels as if the CPU had no SIMD")
	fs.BoolVar(&opts.list, "list", false, "list registered lane kernels")
	fs.BoolVar(&opts.verify, "verify", false, "check kernels against the scalar section")
	fs.Float64Var(&opts.sampleRate, "rate", 48000, "sample rate in Hz for the -verify response check")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: lanesinfo [flags]\n\n")
		fmt.Fprintf(stderr, "Prints the lane kernel, batch width and remainder for an engine.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  lanesinfo -lanes 13\n")
		fmt.Fprintf(stderr, "  lanesinfo -list\n")
		fmt.Fprintf(stderr, "  lanesinfo -verify -lanes 16\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.precision != 32 && opts.precision != 64 {
		fmt.Fprintf(stderr, "error: -precision must be 32 or 64, got %d\n", opts.precision)
		return 1
	}

	var err error
	switch {
	case opts.list:
		err = printKernels(stdout)
	case opts.verify && opts.precision == 32:
		err = printVerify[float32](stdout, opts)
	case opts.verify:
		err = printVerify[float64](stdout, opts)
	case opts.precision == 32:
		err = printLayout[float32](stdout, opts)
	default:
		err = printLayout[float64](stdout, opts)
	}

	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func engineOptions(opts options, kernel string) []biquad.EngineOption {
	var out []biquad.EngineOption
	if opts.generic {
		f := cpu.DetectFeatures()
		f.ForceGeneric = true
		out = append(out, biquad.WithFeatures(f))
	}
	if kernel != "" {
		out = append(out, biquad.WithKernel(kernel))
	}
	return out
}

func printKernels(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Kernel\tLevel\tPriority\tMin Lanes\tW f32\tW f64\tSupported\n")
	fmt.Fprintf(tw, "------\t-----\t--------\t---------\t-----\t-----\t---------\n")

	for _, k := range biquad.Kernels() {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\t%t\n",
			k.Name, k.SIMDLevel, k.Priority, k.MinLanes,
			widthLabel(k.Width32), widthLabel(k.Width64), k.Supported)
	}

	return tw.Flush()
}

func widthLabel(w int) string {
	if w == 0 {
		return "-"
	}
	return fmt.Sprint(w)
}

func printLayout[T biquad.Float](w io.Writer, opts options) error {
	e, err := biquad.NewEngine[T](opts.lanes, engineOptions(opts, opts.kernel)...)
	if err != nil {
		return err
	}

	f := cpu.DetectFeatures()
	best := cpu.BestLevel(f)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Architecture\t%s\n", f.Architecture)
	fmt.Fprintf(tw, "Best SIMD level\t%s (%d-byte registers)\n", best, cpu.VectorBytes(best))
	fmt.Fprintf(tw, "Precision\t%d-bit\n", opts.precision)
	fmt.Fprintf(tw, "Lanes\t%d\n", e.Lanes())
	fmt.Fprintf(tw, "Kernel\t%s\n", e.Kernel())
	fmt.Fprintf(tw, "Batch width\t%d\n", e.Width())
	fmt.Fprintf(tw, "Batched lanes\t[0, %d)\n", e.BatchedLanes())
	fmt.Fprintf(tw, "Scalar lanes\t[%d, %d)\n", e.BatchedLanes(), e.Lanes())
	return tw.Flush()
}

type verifyResult struct {
	kernel    string
	width     int
	relDev    float64
	spreadDev float64
	respDB    float64
}

func printVerify[T biquad.Float](w io.Writer, opts options) error {
	names := []string{opts.kernel}
	if opts.kernel == "" {
		names = names[:0]
		for _, k := range biquad.Kernels() {
			width := k.Width64
			if opts.precision == 32 {
				width = k.Width32
			}
			if k.Supported && width > 0 && (!opts.generic || k.Name == "generic") {
				names = append(names, k.Name)
			}
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Kernel\tWidth\tMax Rel Dev\tLane Spread\tResponse Dev [dB]\n")
	fmt.Fprintf(tw, "------\t-----\t-----------\t-----------\t-----------------\n")

	for _, name := range names {
		r, err := verifyKernel[T](opts, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%d\t%.3g\t%.3g\t%.3g\n", r.kernel, r.width, r.relDev, r.spreadDev, r.respDB)
	}

	return tw.Flush()
}

// verifyKernel drives every lane with the same impulse and reports the
// largest relative deviation from the scalar section, the largest deviation
// between lanes, and the worst measured-vs-analytic response error.
func verifyKernel[T biquad.Float](opts options, kernel string) (verifyResult, error) {
	c := biquad.Coefficients[T]{
		A0: T(verifyCoeffs[0]), A1: T(verifyCoeffs[1]), A2: T(verifyCoeffs[2]),
		B0: 1, B1: T(verifyCoeffs[3]), B2: T(verifyCoeffs[4]),
	}

	e, err := biquad.NewEngine[T](opts.lanes, engineOptions(opts, kernel)...)
	if err != nil {
		return verifyResult{}, err
	}
	e.SetCoeffs(c)

	want := biquad.NewSection(c).ImpulseResponse(verifySamples)
	irs := e.ImpulseResponses(verifySamples)

	r := verifyResult{kernel: e.Kernel(), width: e.Width()}
	for _, ir := range irs {
		for i, y := range ir {
			r.relDev = math.Max(r.relDev, math.Abs(y-want[i])/math.Max(1, math.Abs(want[i])))
			r.spreadDev = math.Max(r.spreadDev, math.Abs(y-irs[0][i]))
		}
	}

	spectra, err := response.AnalyzeLanes(e.ImpulseResponses(responseLength), opts.sampleRate, responseLength)
	if err != nil {
		return verifyResult{}, err
	}
	for _, s := range spectra {
		r.respDB = math.Max(r.respDB, response.Deviation(s, c.Normalize()))
	}

	return r, nil
}
