// Package viz renders the generator in the terminal.
//
// The live view is a Bubble Tea program: a braille [Canvas] shows the
// magnet poles, the rotating coil and the commutator, while asciigraph
// charts track the flux and rectified output history alongside.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset
//	S     - Single step while paused
//	←/→   - Manually turn the coil while paused
//	F     - Switch field model (cosine/dipole)
//	Tab   - Cycle tunable parameters
//	?     - Help overlay
package viz
