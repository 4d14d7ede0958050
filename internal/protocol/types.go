// Package protocol holds the shared FSK wire-protocol data model: audio
// specs, frequencies, pulse durations, and the profile that binds them
// together. The transmitter (protocol/tx) and receiver (protocol/rx)
// packages both build on these types.
package protocol

import "time"

// Frequency is a tone frequency in Hz. Zero is a valid value: it denotes
// silence when passed to a tone generator.
type Frequency float64

// Hz returns the frequency in Hz.
func (f Frequency) Hz() float64 { return float64(f) }

// PulseDuration is the length of a pulse's tone or gap segment.
type PulseDuration time.Duration

// FromMicros builds a PulseDuration from a microsecond count.
func FromMicros(us int64) PulseDuration {
	return PulseDuration(time.Duration(us) * time.Microsecond)
}

// Micros returns the duration in whole microseconds.
func (d PulseDuration) Micros() int64 {
	return time.Duration(d).Microseconds()
}

// SampleSize projects the duration onto a sample rate, yielding the
// integer number of samples it spans: floor(sampleRate * micros / 1e6).
func (d PulseDuration) SampleSize(sampleRate int) int {
	return int(int64(sampleRate) * d.Micros() / 1_000_000)
}

// SampleEncoding tags how raw PCM samples are interpreted before they are
// normalized to the core's float32 domain.
type SampleEncoding int

const (
	EncodingInt SampleEncoding = iota
	EncodingFloat
)

// AudioSpec describes the format of a PCM audio stream: sample rate,
// bit depth, channel count, and whether samples are integer or float.
type AudioSpec struct {
	SampleRate    int
	BitsPerSample int
	Channels      int
	Encoding      SampleEncoding
}

// NewAudioSpec builds an AudioSpec.
func NewAudioSpec(sampleRate, bitsPerSample, channels int, encoding SampleEncoding) AudioSpec {
	return AudioSpec{
		SampleRate:    sampleRate,
		BitsPerSample: bitsPerSample,
		Channels:      channels,
		Encoding:      encoding,
	}
}

// IntPeakMagnitude returns the full-scale positive peak for the spec's
// bit depth, i.e. 2^(bps-1) - 1, used to normalize integer PCM to float32.
func (a AudioSpec) IntPeakMagnitude() float64 {
	if a.BitsPerSample <= 0 {
		return 1
	}
	return float64(int64(1)<<(a.BitsPerSample-1)) - 1
}
