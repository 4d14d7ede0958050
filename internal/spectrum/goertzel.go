package spectrum

import "math"

// GoertzelAnalyzer is a Goertzel-based Analyzer. It holds no plan and
// uses constant memory; the window size passed to GetMagnitude may be
// shorter than the "nominal" tone size, in which case the normalization
// factor uses the actual slice length.
//
// Grounded on original_source/wavetrx/src/audio/spectrum.rs's
// GoertzelMagnitude. No third-party Goertzel implementation exists
// anywhere in the retrieved example pack, so this is written directly
// against the documented single-bin recurrence (see DESIGN.md).
type GoertzelAnalyzer struct {
	nominalWindowSize int
	sampleRate        int
}

// NewGoertzelAnalyzer builds an analyzer for windows nominally
// nominalWindowSize samples at the given sample rate. GetFrequencyBin
// uses the nominal size; GetMagnitude uses the actual slice length for
// normalization.
func NewGoertzelAnalyzer(nominalWindowSize, sampleRate int) *GoertzelAnalyzer {
	return &GoertzelAnalyzer{
		nominalWindowSize: nominalWindowSize,
		sampleRate:        sampleRate,
	}
}

// GetMagnitude implements Analyzer. The input slice is never mutated.
func (a *GoertzelAnalyzer) GetMagnitude(samples []float32, targetFreq float64) float64 {
	n := len(samples)
	k := a.GetFrequencyBin(targetFreq)

	w := 2 * math.Pi * float64(k) / float64(n)
	cosine := math.Cos(w)
	coeff := 2 * cosine

	var q1, q2 float64
	for _, s := range samples {
		q0 := coeff*q1 - q2 + float64(s)
		q2 = q1
		q1 = q0
	}

	amplitude := math.Sqrt(q1*q1 + q2*q2 - q1*q2*coeff)
	normFactor := 2.0 / float64(n)
	amplitude *= normFactor
	return magnitudeDB(amplitude)
}

// GetFrequencyBin implements Analyzer, using the nominal window size.
func (a *GoertzelAnalyzer) GetFrequencyBin(targetFreq float64) int {
	return frequencyBin(a.sampleRate, a.nominalWindowSize, targetFreq)
}
