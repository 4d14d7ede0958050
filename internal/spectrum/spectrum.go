// Package spectrum computes the magnitude, in decibels, of a target
// frequency within a fixed-length window of normalized samples. Two
// interchangeable analyzers are provided: an FFT-based one (one plan per
// window size, built on gonum's fourier transform) and a Goertzel-based
// one (no plan, constant memory). Both return identical semantics.
package spectrum

import "math"

// Analyzer computes spectral magnitude for a fixed window size.
type Analyzer interface {
	// GetMagnitude returns 20*log10(|X[k]|*2/N) for the bin nearest
	// targetFreq, where N is the window size (the actual slice length for
	// Goertzel, the analyzer's fixed plan size for FFT).
	GetMagnitude(samples []float32, targetFreq float64) float64
	// GetFrequencyBin returns k = floor(0.5 + N*f/sampleRate).
	GetFrequencyBin(targetFreq float64) int
}

// frequencyBin computes k = floor(0.5 + windowSize*freq/sampleRate).
func frequencyBin(sampleRate int, windowSize int, freq float64) int {
	normalized := freq / float64(sampleRate)
	scaled := float64(windowSize) * normalized
	return int(0.5 + scaled)
}

// magnitudeDB converts a linear one-sided amplitude to dB full-scale.
// log10(0) is allowed to yield -Inf; callers compare against finite
// thresholds so this is always treated as "no signal".
func magnitudeDB(amplitude float64) float64 {
	return 20 * math.Log10(amplitude)
}
