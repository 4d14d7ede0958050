// Package e2e exercises the transmitter and receiver together, covering
// the end-to-end scenarios and quantified invariants of spec.md §8.
package e2e

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/syn-chromatic/wavetrx-go/internal/dsp"
	"github.com/syn-chromatic/wavetrx-go/internal/presets"
	"github.com/syn-chromatic/wavetrx-go/internal/protocol"
	"github.com/syn-chromatic/wavetrx-go/internal/protocol/rx"
	"github.com/syn-chromatic/wavetrx-go/internal/protocol/tx"
	"github.com/syn-chromatic/wavetrx-go/internal/spectrum"
)

const testSampleRate = 48000

func testSpec() protocol.AudioSpec {
	return protocol.NewAudioSpec(testSampleRate, 32, 1, protocol.EncodingFloat)
}

// decode feeds a complete frame's samples through a fresh Receiver in
// one shot and returns whatever payload it captured.
func decode(profile protocol.Profile, spec protocol.AudioSpec, samples []float32) []byte {
	var payload []byte
	receiver := rx.NewReceiver(profile, spec)
	receiver.OnFrame(func(p []byte) { payload = p })
	receiver.AddSamples(samples)
	return payload
}

// TestS1SingleByte is spec.md §8's scenario S1.
func TestS1SingleByte(t *testing.T) {
	profile := presets.DefaultProfile()
	spec := testSpec()

	samples := tx.NewTransmitter(profile, spec).Create([]byte{0x41})
	payload := decode(profile, spec, samples)

	assert.Equal(t, []byte{0x41}, payload)
}

// TestS2ShortString is spec.md §8's scenario S2.
func TestS2ShortString(t *testing.T) {
	profile := presets.DefaultProfile()
	spec := testSpec()

	samples := tx.NewTransmitter(profile, spec).Create([]byte("Hi"))
	payload := decode(profile, spec, samples)

	assert.Equal(t, []byte("Hi"), payload)
}

// TestS3EmptyPayload is spec.md §8's scenario S3.
func TestS3EmptyPayload(t *testing.T) {
	profile := presets.DefaultProfile()
	spec := testSpec()

	samples := tx.NewTransmitter(profile, spec).Create([]byte{})
	assert.Greater(t, len(samples), 0, "frame must still carry start/next/end/next markers")

	payload := decode(profile, spec, samples)
	assert.Equal(t, []byte{}, payload)
}

// TestS4LongRoundTrip is spec.md §8's scenario S4.
func TestS4LongRoundTrip(t *testing.T) {
	profile := presets.DefaultProfile()
	spec := testSpec()

	var data []byte
	for i := 0; i < 100; i++ {
		data = append(data, []byte("Test String")...)
	}

	samples := tx.NewTransmitter(profile, spec).Create(data)
	payload := decode(profile, spec, samples)

	assert.Equal(t, data, payload)
}

// TestS5NoisyShortString is spec.md §8's scenario S5.
func TestS5NoisyShortString(t *testing.T) {
	profile := presets.DefaultProfile()
	spec := testSpec()

	samples := tx.NewTransmitter(profile, spec).Create([]byte("Hi"))
	dsp.NewNormalizer(samples).Normalize(1.0)

	rng := rand.New(rand.NewSource(1))
	for i := range samples {
		samples[i] += float32(rng.NormFloat64() * 0.05)
	}

	payload := decode(profile, spec, samples)
	assert.Equal(t, []byte("Hi"), payload)
}

// TestS6AcquisitionThroughLeadingSilence is spec.md §8's scenario S6.
func TestS6AcquisitionThroughLeadingSilence(t *testing.T) {
	profile := presets.DefaultProfile()
	spec := testSpec()

	silenceSamples := int(0.2 * float64(spec.SampleRate))
	lead := make([]float32, silenceSamples)

	frame := tx.NewTransmitter(profile, spec).Create([]byte("Hi"))
	samples := append(lead, frame...)

	payload := decode(profile, spec, samples)
	assert.Equal(t, []byte("Hi"), payload)
}

// TestRoundTripIdentity is invariant 1.
func TestRoundTripIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 64).Draw(t, "n")
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(rapid.IntRange(0, 255).Draw(t, "byte"))
		}

		profile := presets.DefaultProfile()
		spec := testSpec()
		samples := tx.NewTransmitter(profile, spec).Create(data)
		payload := decode(profile, spec, samples)

		assert.Equal(t, data, payload)
	})
}

// TestPrefixSilenceInvariance is invariant 2.
func TestPrefixSilenceInvariance(t *testing.T) {
	profile := presets.DefaultProfile()
	spec := testSpec()

	frame := tx.NewTransmitter(profile, spec).Create([]byte("Hi"))

	lead := make([]float32, 500)
	trail := make([]float32, 500)
	padded := append(append(append([]float32{}, lead...), frame...), trail...)

	assert.Equal(t, []byte("Hi"), decode(profile, spec, padded))
}

// TestGainInvariance is invariant 3.
func TestGainInvariance(t *testing.T) {
	profile := presets.DefaultProfile()
	spec := testSpec()
	frame := tx.NewTransmitter(profile, spec).Create([]byte("Hi"))

	for _, gain := range []float32{0.2, 1.0, 2.5, 5.0} {
		scaled := make([]float32, len(frame))
		for i, s := range frame {
			scaled[i] = s * gain
		}
		assert.Equal(t, []byte("Hi"), decode(profile, spec, scaled))
	}
}

// TestSpectralAccuracy is invariant 6.
func TestSpectralAccuracy(t *testing.T) {
	profile := presets.DefaultProfile()
	spec := testSpec()
	toneSize := profile.Pulses.IntoSized(spec).ToneSize

	target := profile.Markers.Start.Hz()
	samples := make([]float32, toneSize)
	for i := range samples {
		samples[i] = float32(math.Sin(2 * math.Pi * target * float64(i) / float64(spec.SampleRate)))
	}

	analyzer := spectrum.NewFourierAnalyzer(toneSize, spec.SampleRate)
	magAtTarget := analyzer.GetMagnitude(samples, target)
	assert.InDelta(t, 0.0, magAtTarget, 0.5)

	magAtEnd := analyzer.GetMagnitude(samples, profile.Markers.End.Hz())
	assert.Less(t, magAtEnd, -20.0)
}
