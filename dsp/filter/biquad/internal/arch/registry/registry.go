package registry

import (
	"sync"

	"github.com/cwbudde/algo-simdbiquad/internal/cpu"
)

// Float is the set of sample types a lane kernel can run on.
type Float interface {
	float32 | float64
}

// Lanes is the structure-of-arrays state of N parallel biquad lanes.
// Every slice has length N and index i refers to lane i in all of them.
//
// A0..B2 are normalized coefficients, X1/X2/Y1/Y2 the history taps, Work the
// input scratch that decouples the read of x[n] from the in-place write of
// y[n]. Acc and Tmp are accumulators for block kernels.
type Lanes[T Float] struct {
	A0, A1, A2, B1, B2 []T
	X1, X2, Y1, Y2     []T
	Work, Acc, Tmp     []T
}

// NewLanes allocates zeroed state for n lanes.
func NewLanes[T Float](n int) *Lanes[T] {
	// One backing array keeps the twelve fields adjacent in memory.
	buf := make([]T, 12*n)
	field := func(i int) []T { return buf[i*n : (i+1)*n : (i+1)*n] }

	return &Lanes[T]{
		A0: field(0), A1: field(1), A2: field(2), B1: field(3), B2: field(4),
		X1: field(5), X2: field(6), Y1: field(7), Y2: field(8),
		Work: field(9), Acc: field(10), Tmp: field(11),
	}
}

// Len returns the number of lanes.
func (l *Lanes[T]) Len() int { return len(l.A0) }

// ProcessFn advances every lane by one sample. It reads x[n] from l.Work and
// writes y[n] into out, which has length l.Len().
type ProcessFn[T Float] func(l *Lanes[T], out []T)

// ResetFn zeroes l.Work and the four history arrays.
type ResetFn[T Float] func(l *Lanes[T])

// Kernel is one precision-specific lane implementation.
// Width is the number of lanes handled per batch; lanes past the last full
// batch go through the scalar remainder.
type Kernel[T Float] struct {
	Width   int
	Process ProcessFn[T]
	Reset   ResetFn[T]
}

// OpEntry is one registered backend. A nil Float32 or Float64 means the
// backend has no kernel for that precision. Automatic selection skips the
// entry for engines with fewer than MinLanes lanes; Find ignores MinLanes.
type OpEntry struct {
	Name      string
	SIMDLevel cpu.SIMDLevel
	Priority  int
	MinLanes  int
	Float32   *Kernel[float32]
	Float64   *Kernel[float64]
}

// OpRegistry stores available backends.
type OpRegistry struct {
	mu      sync.RWMutex
	entries []OpEntry
	sorted  bool
}

// Global is the default lane kernel registry.
var Global = &OpRegistry{}

// Register adds a backend entry.
func (r *OpRegistry) Register(entry OpEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	r.sorted = false
}

// KernelFor returns the entry's kernel for T, or nil.
func KernelFor[T Float](e *OpEntry) *Kernel[T] {
	var zero T
	switch any(zero).(type) {
	case float32:
		k, _ := any(e.Float32).(*Kernel[T])
		return k
	case float64:
		k, _ := any(e.Float64).(*Kernel[T])
		return k
	}

	return nil
}

// Lookup returns the highest-priority entry for an engine of the given lane
// count that features support and that has a kernel for T, together with
// that kernel.
func Lookup[T Float](r *OpRegistry, features cpu.Features, lanes int) (*OpEntry, *Kernel[T]) {
	r.ensureSorted()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		entry := &r.entries[i]
		if lanes < entry.MinLanes || !cpu.Supports(features, entry.SIMDLevel) {
			continue
		}

		if k := KernelFor[T](entry); k != nil {
			return entry, k
		}
	}

	return nil, nil
}

// Find returns the entry registered under name if features support it and
// it has a kernel for T.
func Find[T Float](r *OpRegistry, name string, features cpu.Features) (*OpEntry, *Kernel[T]) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		entry := &r.entries[i]
		if entry.Name != name || !cpu.Supports(features, entry.SIMDLevel) {
			continue
		}

		if k := KernelFor[T](entry); k != nil {
			return entry, k
		}
	}

	return nil, nil
}

func (r *OpRegistry) ensureSorted() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sorted {
		return
	}

	for i := 1; i < len(r.entries); i++ {
		key := r.entries[i]
		j := i - 1
		for j >= 0 && r.entries[j].Priority < key.Priority {
			r.entries[j+1] = r.entries[j]
			j--
		}
		r.entries[j+1] = key
	}

	r.sorted = true
}

// ListEntries returns a priority-ordered copy of the entries.
func (r *OpRegistry) ListEntries() []OpEntry {
	r.ensureSorted()

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]OpEntry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

// Reset clears all entries. Intended for tests.
func (r *OpRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
	r.sorted = false
}
