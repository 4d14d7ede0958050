package dsp

import "math"

// FilterChain applies high-pass, low-pass, and band-pass biquad filtering
// in place to a mutable window of normalized samples. Grounded on
// original_source/wavetrx/src/audio/filters.rs's FrequencyPass.
type FilterChain struct {
	samples    []float32
	sampleRate int
}

// NewFilterChain wraps samples for in-place filtering at the given
// sample rate.
func NewFilterChain(samples []float32, sampleRate int) *FilterChain {
	return &FilterChain{samples: samples, sampleRate: sampleRate}
}

// ApplyHighpass applies a high-pass biquad at cutoff freq and Q. If the
// coefficients cannot be constructed (degenerate parameters) the buffer
// is left untouched.
func (c *FilterChain) ApplyHighpass(freq, q float64) {
	c.apply(filterHighpass, freq, q)
}

// ApplyLowpass applies a low-pass biquad at cutoff freq and Q.
func (c *FilterChain) ApplyLowpass(freq, q float64) {
	c.apply(filterLowpass, freq, q)
}

// ApplyBandpass applies a band-pass biquad between lo and hi Hz. The
// center frequency is sqrt(lo*hi) and Q = sharpness * center / (hi - lo),
// per spec.md §4.2.
func (c *FilterChain) ApplyBandpass(lo, hi, sharpness float64) {
	center := math.Sqrt(lo * hi)
	q := sharpness * center / (hi - lo)
	c.apply(filterBandpass, center, q)
}

func (c *FilterChain) apply(kind filterKind, freq, q float64) {
	coeffs, ok := newBiquadCoefficients(kind, freq, float64(c.sampleRate), q)
	if !ok {
		return
	}

	filter := newBiquadState(coeffs)
	for i, s := range c.samples {
		c.samples[i] = float32(filter.run(float64(s)))
	}
}
