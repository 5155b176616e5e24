// Package analysis inspects recorded metric series.
//
//   - [PowerSpectrum]: frequency content of a series via the real FFT
//   - [Settling]: the frame after which a series stays inside a band
//   - [Summarize]: mean, spread and range of a series
//   - [Scatter]: ASCII scatter of one series against another
//
// # Oscillation
//
// A field released from a drag rings before it settles. The dominant
// frequency of the kinetic energy series shows how fast:
//
//	ps := analysis.PowerSpectrum(series.Column("kinetic"), fps)
//	f, _ := ps.Dominant()
package analysis
