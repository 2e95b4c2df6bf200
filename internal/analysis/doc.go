// Package analysis inspects angle traces produced by the oscillators.
//
//   - [PowerSpectrum]: magnitude spectrum of a real series
//   - [DominantPeriod]: period, in samples, of the strongest non-DC component
//
// A triangle wave over [min, max] with step s has a period of roughly
// 2*(max-min)/s ticks, which DominantPeriod recovers from a trace:
//
//	period := analysis.DominantPeriod(yaw)
package analysis
