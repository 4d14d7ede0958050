// Package tx implements the streaming FSK transmitter: tone generation,
// frame encoding, and a pull-iterator stage machine for incremental
// playback.
package tx

import "math"

// ToneGenerator accumulates normalized float32 samples. Grounded on
// original_source/wavetrx/src/protocol/tx/tone.rs's ToneGenerator;
// unlike the original, samples stay in normalized [-1, 1] float32
// throughout rather than being rescaled to an integer PCM range, matching
// the core's audio-spec invariant that the protocol operates exclusively
// on normalized samples.
type ToneGenerator struct {
	samples    []float32
	sampleRate int
}

// NewToneGenerator returns an empty generator for the given sample rate.
func NewToneGenerator(sampleRate int) *ToneGenerator {
	return &ToneGenerator{sampleRate: sampleRate}
}

// Samples returns the accumulated samples.
func (g *ToneGenerator) Samples() []float32 {
	return g.samples
}

// TakeSamples returns the accumulated samples and resets the internal
// buffer, for streaming consumers that emit one chunk per stage.
func (g *ToneGenerator) TakeSamples() []float32 {
	samples := g.samples
	g.samples = make([]float32, 0, len(samples))
	return samples
}

// AppendTone appends a pure sine tone at frequency for duration
// microseconds. A frequency of 0 appends silence of the same length.
func (g *ToneGenerator) AppendTone(frequency float64, durationMicros int64) {
	sampleSize := (g.sampleRate * int(durationMicros)) / 1_000_000
	period := float64(g.sampleRate) / frequency

	for idx := 0; idx < sampleSize; idx++ {
		g.samples = append(g.samples, sineNorm(idx, period))
	}
}

// AppendSineFadedTone appends a sine tone with a raised-cosine fade in
// and out, each spanning `fade` (a fraction of the tone's length) at
// both ends.
func (g *ToneGenerator) AppendSineFadedTone(frequency float64, durationMicros int64, fade float64) {
	sampleSize := (g.sampleRate * int(durationMicros)) / 1_000_000
	period := float64(g.sampleRate) / frequency
	fadeSize := int(float64(sampleSize) * fade)

	for idx := 0; idx < sampleSize; idx++ {
		s := sineNorm(idx, period)
		s *= sineFadeCoeff(idx, sampleSize, fadeSize)
		g.samples = append(g.samples, s)
	}
}

// AppendLinearFadedTone appends a sine tone with a linear fade in and
// out, each spanning `fade` (a fraction of the tone's length).
func (g *ToneGenerator) AppendLinearFadedTone(frequency float64, durationMicros int64, fade float64) {
	sampleSize := (g.sampleRate * int(durationMicros)) / 1_000_000
	period := float64(g.sampleRate) / frequency
	fadeSize := int(float64(sampleSize) * fade)

	for idx := 0; idx < sampleSize; idx++ {
		s := sineNorm(idx, period)
		s *= linearFadeCoeff(idx, sampleSize, fadeSize)
		g.samples = append(g.samples, s)
	}
}

func sineNorm(idx int, period float64) float32 {
	return float32(math.Sin(2 * math.Pi * float64(idx) / period))
}

func sineFadeCoeff(idx, sampleSize, fadeSize int) float32 {
	switch {
	case idx < fadeSize:
		return float32(0.5 * (1.0 - math.Cos(math.Pi*float64(idx)/float64(fadeSize))))
	case idx >= sampleSize-fadeSize:
		relative := idx - (sampleSize - fadeSize)
		return float32(0.5 * (1.0 + math.Cos(math.Pi*float64(relative)/float64(fadeSize))))
	default:
		return 1.0
	}
}

func linearFadeCoeff(idx, sampleSize, fadeSize int) float32 {
	switch {
	case idx < fadeSize:
		return float32(idx) / float32(fadeSize)
	case idx >= sampleSize-fadeSize:
		return float32(sampleSize-idx) / float32(fadeSize)
	default:
		return 1.0
	}
}
