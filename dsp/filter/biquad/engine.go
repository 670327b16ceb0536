package biquad

import (
	"fmt"

	"github.com/cwbudde/algo-simdbiquad/dsp/filter/biquad/internal/arch/registry"
)

// Engine runs N independent biquad lanes in lock-step. Each Process call
// takes one sample per lane and advances every lane by one sample.
//
// Lane state is a structure of arrays: one slice per coefficient and history
// field, all of length N. The selected kernel walks the lanes in batches of
// Width lanes; the last N mod Width lanes run the scalar recurrence. Both
// paths compute the same expression as Section.ProcessSample.
//
// All buffers are allocated by NewEngine. Process, ProcessTo, ProcessFrames
// and Reset do not allocate. An Engine is not safe for concurrent use.
type Engine[T Float] struct {
	lanes   *registry.Lanes[T]
	kernel  *registry.Kernel[T]
	name    string
	uniform bool
}

// NewEngine returns an engine with the given number of lanes, zero
// coefficients and zero history.
func NewEngine[T Float](lanes int, opts ...EngineOption) (*Engine[T], error) {
	if lanes <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrNoLanes, lanes)
	}

	cfg := defaultEngineConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	name, k, err := selectKernel[T](cfg, lanes)
	if err != nil {
		return nil, err
	}

	return &Engine[T]{
		lanes:  registry.NewLanes[T](lanes),
		kernel: k,
		name:   name,
	}, nil
}

// Lanes returns N.
func (e *Engine[T]) Lanes() int { return e.lanes.Len() }

// Kernel returns the name of the selected lane kernel.
func (e *Engine[T]) Kernel() string { return e.name }

// Width returns the number of lanes processed per batch.
func (e *Engine[T]) Width() int { return e.kernel.Width }

// BatchedLanes returns the number of lanes covered by full batches. Lanes
// from BatchedLanes() up to Lanes() take the scalar path.
func (e *Engine[T]) BatchedLanes() int {
	n := e.lanes.Len()
	return n - n%e.kernel.Width
}

// UniformCoeffs reports whether the last coefficient update was SetCoeffs.
func (e *Engine[T]) UniformCoeffs() bool { return e.uniform }

// SetCoeffs normalizes c and stores it in every lane. History is untouched.
func (e *Engine[T]) SetCoeffs(c Coefficients[T]) {
	n := c.Normalize()
	l := e.lanes

	for i := range l.Len() {
		l.A0[i] = n.A0
		l.A1[i] = n.A1
		l.A2[i] = n.A2
		l.B1[i] = n.B1
		l.B2[i] = n.B2
	}

	e.uniform = true
}

// SetLaneCoeffs normalizes c and stores it in one lane. Other lanes and all
// history are untouched.
func (e *Engine[T]) SetLaneCoeffs(lane int, c Coefficients[T]) error {
	if err := e.checkLane(lane); err != nil {
		return err
	}

	n := c.Normalize()
	l := e.lanes
	l.A0[lane] = n.A0
	l.A1[lane] = n.A1
	l.A2[lane] = n.A2
	l.B1[lane] = n.B1
	l.B2[lane] = n.B2

	e.uniform = false
	return nil
}

// LaneCoeffs returns the normalized coefficients of one lane.
func (e *Engine[T]) LaneCoeffs(lane int) (Normalized[T], error) {
	if err := e.checkLane(lane); err != nil {
		return Normalized[T]{}, err
	}
	return e.laneCoeffs(lane), nil
}

func (e *Engine[T]) laneCoeffs(lane int) Normalized[T] {
	l := e.lanes
	return Normalized[T]{A0: l.A0[lane], A1: l.A1[lane], A2: l.A2[lane], B1: l.B1[lane], B2: l.B2[lane]}
}

// LaneState returns the history taps of one lane as [x1, x2, y1, y2].
func (e *Engine[T]) LaneState(lane int) ([4]T, error) {
	if err := e.checkLane(lane); err != nil {
		return [4]T{}, err
	}

	l := e.lanes
	return [4]T{l.X1[lane], l.X2[lane], l.Y1[lane], l.Y2[lane]}, nil
}

// SetLaneState restores the history taps of one lane.
func (e *Engine[T]) SetLaneState(lane int, state [4]T) error {
	if err := e.checkLane(lane); err != nil {
		return err
	}

	l := e.lanes
	l.X1[lane], l.X2[lane], l.Y1[lane], l.Y2[lane] = state[0], state[1], state[2], state[3]
	return nil
}

// Process filters one sample per lane in place: x[i] is replaced by lane i's
// output. len(x) must equal Lanes().
func (e *Engine[T]) Process(x []T) {
	if len(x) != e.lanes.Len() {
		panic(fmt.Sprintf("biquad: Process got %d samples for %d lanes", len(x), e.lanes.Len()))
	}

	copy(e.lanes.Work, x)
	e.kernel.Process(e.lanes, x)
}

// ProcessTo filters src into dst, one sample per lane. Both slices must have
// length Lanes(); they may alias.
func (e *Engine[T]) ProcessTo(dst, src []T) {
	n := e.lanes.Len()
	if len(src) != n || len(dst) != n {
		panic(fmt.Sprintf("biquad: ProcessTo got %d/%d samples for %d lanes", len(dst), len(src), n))
	}

	copy(e.lanes.Work, src)
	e.kernel.Process(e.lanes, dst)
}

// ProcessFrames filters an interleaved block in place. buf holds consecutive
// frames of Lanes() samples; each frame is one Process call.
func (e *Engine[T]) ProcessFrames(buf []T) {
	n := e.lanes.Len()
	if len(buf)%n != 0 {
		panic(fmt.Sprintf("biquad: ProcessFrames length %d is not a multiple of %d lanes", len(buf), n))
	}

	for off := 0; off < len(buf); off += n {
		frame := buf[off : off+n]
		copy(e.lanes.Work, frame)
		e.kernel.Process(e.lanes, frame)
	}
}

// Reset zeroes the history of every lane. Coefficients are kept.
func (e *Engine[T]) Reset() {
	e.kernel.Reset(e.lanes)
}

func (e *Engine[T]) checkLane(lane int) error {
	if lane < 0 || lane >= e.lanes.Len() {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrLaneIndex, lane, e.lanes.Len())
	}
	return nil
}
