// Package viz presents spinframe frames in a terminal.
//
// The live view runs on Bubble Tea. Frames arrive from the engine as
// [FrameMsg] values and are drawn either as truecolor half-block cells, two
// pixels per cell, or as a braille silhouette for terminals without color.
//
// # Key Bindings
//
//	Space - Pause/Resume the oscillators
//	←/→   - Nudge yaw
//	↑/↓   - Nudge pitch
//	B     - Toggle braille mode
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//	Q     - Quit
//
// # Recording
//
// G starts recording every presented frame; pressing it again writes the
// animation to the configured GIF path.
package viz
