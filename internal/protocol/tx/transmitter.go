package tx

import "github.com/syn-chromatic/wavetrx-go/internal/protocol"

// defaultFade is the fraction of each tone spent fading in/out, matching
// original_source/wavetrx/src/protocol/tx/transmitter.rs's Transmitter::create.
const defaultFade = 0.1

// Transmitter encodes a byte payload into a complete normalized FSK
// frame. Grounded on
// original_source/wavetrx/src/protocol/tx/transmitter.rs's Transmitter.
type Transmitter struct {
	profile protocol.Profile
	spec    protocol.AudioSpec
}

// NewTransmitter returns a Transmitter for the given profile and audio
// spec.
func NewTransmitter(profile protocol.Profile, spec protocol.AudioSpec) *Transmitter {
	return &Transmitter{profile: profile, spec: spec}
}

// Create encodes data into a full frame of normalized float32 samples:
// leading silence, start marker, next spacer, the payload's bits
// MSB-first with a next spacer after each, the end marker, a trailing
// next spacer, and trailing silence.
func (t *Transmitter) Create(data []byte) []float32 {
	tone := NewToneGenerator(t.spec.SampleRate)

	t.appendSilence(tone)
	t.appendStart(tone, defaultFade)
	t.appendNext(tone, defaultFade)

	for _, b := range data {
		t.appendByte(tone, b, defaultFade)
	}

	t.appendEnd(tone, defaultFade)
	t.appendNext(tone, defaultFade)
	t.appendSilence(tone)

	return tone.Samples()
}

func (t *Transmitter) appendByte(tone *ToneGenerator, b byte, fade float64) {
	for i := 7; i >= 0; i-- {
		bit := (b & (1 << uint(i))) != 0
		t.appendBit(tone, bit, fade)
		t.appendNext(tone, fade)
	}
}

func (t *Transmitter) appendStart(tone *ToneGenerator, fade float64) {
	t.appendMarker(tone, t.profile.Markers.Start, fade)
}

func (t *Transmitter) appendEnd(tone *ToneGenerator, fade float64) {
	t.appendMarker(tone, t.profile.Markers.End, fade)
}

func (t *Transmitter) appendNext(tone *ToneGenerator, fade float64) {
	t.appendMarker(tone, t.profile.Markers.Next, fade)
}

func (t *Transmitter) appendMarker(tone *ToneGenerator, freq protocol.Frequency, fade float64) {
	toneDuration := t.profile.Pulses.Tone.Micros()
	gapDuration := t.profile.Pulses.Gap.Micros()

	tone.AppendSineFadedTone(freq.Hz(), toneDuration, fade)
	tone.AppendTone(0.0, gapDuration)
}

func (t *Transmitter) appendSilence(tone *ToneGenerator) {
	gapDuration := t.profile.Pulses.Gap.Micros() * 4
	tone.AppendTone(0.0, gapDuration)
}

func (t *Transmitter) appendBit(tone *ToneGenerator, bit bool, fade float64) {
	freq := t.profile.Bits.FromBool(bit)
	toneDuration := t.profile.Pulses.Tone.Micros()
	gapDuration := t.profile.Pulses.Gap.Micros()

	tone.AppendSineFadedTone(freq.Hz(), toneDuration, fade)
	tone.AppendTone(0.0, gapDuration)
}
