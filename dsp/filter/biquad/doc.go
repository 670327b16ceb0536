// Package biquad provides second-order IIR (biquad) filter runtime primitives.
//
// A [Section] evaluates one Direct Form I section defined by [Coefficients].
// An [Engine] evaluates N independent sections in lock-step: every call to
// [Engine.Process] takes one sample per lane and advances every lane by one
// sample period. Lane state is kept as a structure of arrays so that the
// lanes can be processed in batches as wide as one SIMD register; lanes past
// the last full batch run through the same scalar recurrence as [Section].
//
// Naming follows the filter's raw gain set {a0, a1, a2, b0, b1, b2}: the A
// gains are feed-forward, the B gains feedback, and B0 normalizes the rest.
// Engines and sections only store the normalized form ([Normalized]).
//
// This package provides the processing runtime only. Coefficient design and
// cascading of sections are left to the caller.
package biquad
