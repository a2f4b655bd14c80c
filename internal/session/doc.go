// Package session holds the discrete-time state of a generator run.
//
// A [Session] advances the coil angle by omega*dt per step, evaluates the
// linked flux through the active field model, and estimates the EMF with a
// backward difference over the two most recent flux samples. The commutated
// output is the absolute value of that estimate.
//
//   - [Session.Step]: one timestep, appends one sample
//   - [Session.RunFrames]: bounded frame batch for animation loops
//   - [Run]: full batch run with context cancellation and metrics
//
// The four recorded series (times, flux, raw EMF, rectified output) are
// append-only and stay index-aligned at all times. The stored angle
// accumulates without wrapping; display code may reduce it modulo 360
// degrees.
package session
