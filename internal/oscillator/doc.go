// Package oscillator drives a bounded integer back and forth on a fixed-rate
// timer.
//
// Each [Oscillator] owns one [AngleState] cell and is its only writer. Readers
// take lock-free snapshots with [AngleState.Load]. After every tick the
// oscillator fires its notify hook; pointing several oscillators at one
// [Signal] coalesces their redraw requests into a single pending wake-up.
//
// # Bounds
//
// Direction is decided before the step, from the value already stored, so the
// cursor may overshoot either bound by up to one step before turning:
//
//	min-step <= cursor <= max+step
package oscillator
