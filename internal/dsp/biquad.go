package dsp

import "math"

// biquadCoefficients are the Direct-Form-I transfer function coefficients
// for a second-order IIR section, normalized so a0 = 1.
//
// No third-party biquad-coefficient library appears anywhere in the
// retrieved example pack (the original Rust source delegates to the
// `biquad` crate, which spec.md §1 names as a library primitive outside
// this rewrite's scope). This is implemented directly against Robert
// Bristow-Johnson's widely used Audio EQ Cookbook formulas, the same
// derivation other_examples/tphakala-birdnet-go's octave-band filter
// documents using. See DESIGN.md for the standard-library justification.
type biquadCoefficients struct {
	b0, b1, b2 float64
	a1, a2     float64
}

type filterKind int

const (
	filterHighpass filterKind = iota
	filterLowpass
	filterBandpass
)

// newBiquadCoefficients derives cookbook coefficients for the given
// filter kind, center frequency, sample rate, and Q. It returns false
// (and zero coefficients) when the parameters are degenerate, e.g. a
// frequency at or above Nyquist or a non-positive Q.
func newBiquadCoefficients(kind filterKind, freq, sampleRate, q float64) (biquadCoefficients, bool) {
	if freq <= 0 || freq >= sampleRate/2 || q <= 0 {
		return biquadCoefficients{}, false
	}

	w0 := 2 * math.Pi * freq / sampleRate
	cosW0 := math.Cos(w0)
	sinW0 := math.Sin(w0)
	alpha := sinW0 / (2 * q)

	var b0, b1, b2, a0, a1, a2 float64

	switch kind {
	case filterHighpass:
		b0 = (1 + cosW0) / 2
		b1 = -(1 + cosW0)
		b2 = (1 + cosW0) / 2
		a0 = 1 + alpha
		a1 = -2 * cosW0
		a2 = 1 - alpha
	case filterLowpass:
		b0 = (1 - cosW0) / 2
		b1 = 1 - cosW0
		b2 = (1 - cosW0) / 2
		a0 = 1 + alpha
		a1 = -2 * cosW0
		a2 = 1 - alpha
	case filterBandpass:
		b0 = alpha
		b1 = 0
		b2 = -alpha
		a0 = 1 + alpha
		a1 = -2 * cosW0
		a2 = 1 - alpha
	default:
		return biquadCoefficients{}, false
	}

	if a0 == 0 {
		return biquadCoefficients{}, false
	}

	return biquadCoefficients{
		b0: b0 / a0, b1: b1 / a0, b2: b2 / a0,
		a1: a1 / a0, a2: a2 / a0,
	}, true
}

// biquadState is a Direct-Form-I biquad filter instance holding the last
// two input and output samples.
type biquadState struct {
	coeffs       biquadCoefficients
	x1, x2       float64
	y1, y2       float64
}

func newBiquadState(coeffs biquadCoefficients) *biquadState {
	return &biquadState{coeffs: coeffs}
}

// run filters a single sample through the Direct-Form-I section.
func (f *biquadState) run(x float64) float64 {
	c := f.coeffs
	y := c.b0*x + c.b1*f.x1 + c.b2*f.x2 - c.a1*f.y1 - c.a2*f.y2

	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}
