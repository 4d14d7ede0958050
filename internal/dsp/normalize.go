// Package dsp provides the sample normalizer and biquad filter chain
// used to condition a window of samples before spectral analysis.
package dsp

import "math"

// Normalizer rescales a mutable slice of samples to the unit interval,
// tracking positive and negative peaks independently so asymmetric
// waveforms survive. Grounded on
// original_source/wavetrx/src/audio/spectrum.rs's Normalizer.
type Normalizer struct {
	samples []float32
}

// NewNormalizer wraps samples for in-place normalization.
func NewNormalizer(samples []float32) *Normalizer {
	return &Normalizer{samples: samples}
}

// Normalize rescales so the largest positive sample maps to +ceiling and
// the most negative to -ceiling. NaN/Inf samples pass through unchanged;
// zero maps to zero on both signs.
func (n *Normalizer) Normalize(ceiling float32) {
	n.NormalizeWithFloor(ceiling, 0)
}

// NormalizeWithFloor is Normalize, but if the observed positive peak is
// below floor (or the negative above -floor), that side is treated as
// having no signal and all samples of that sign are set to zero.
//
// The positive and negative peaks are computed in one linear pass each,
// before any sample is mutated.
func (n *Normalizer) NormalizeWithFloor(ceiling, floor float32) {
	posPeak, negPeak := n.findPeaks()

	posScale := posPeak / ceiling
	negScale := -negPeak / ceiling
	posSilent := posPeak < floor
	negSilent := -negPeak < floor

	for i, s := range n.samples {
		if !isFinite(s) {
			continue
		}
		switch {
		case s > 0:
			n.samples[i] = normalizeSide(s, posScale, posSilent)
		case s < 0:
			n.samples[i] = normalizeSide(s, negScale, negSilent)
		}
	}
}

// normalizeSide applies the floor/scale rule for one sign: zero when
// that side's peak fell below the floor, otherwise s divided by scale
// (the side's peak magnitude over ceiling, always positive).
func normalizeSide(s, scale float32, silent bool) float32 {
	if silent {
		return 0
	}
	return s / scale
}

// findPeaks returns the largest positive sample and the most negative
// sample (0 if no samples of that sign are present).
func (n *Normalizer) findPeaks() (posPeak, negPeak float32) {
	for _, s := range n.samples {
		if !isFinite(s) {
			continue
		}
		if s > posPeak {
			posPeak = s
		}
		if s < negPeak {
			negPeak = s
		}
	}
	return posPeak, negPeak
}

func isFinite(f float32) bool {
	v := float64(f)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
