// Package audioio reads and writes WAV containers holding the
// normalized float32 samples the FSK engine operates on.
package audioio

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/syn-chromatic/wavetrx-go/internal/protocol"
)

// Encode writes samples as a WAV file through w, using spec's sample
// rate, channel count, and bit depth. Normalized samples are clamped to
// [-1, 1] and rescaled to full-scale integer PCM, matching the IntBuffer
// round trip emer-auditory/sound/sound.go's Wave decoder exercises on the
// read side. The output is always integer PCM; spec.Encoding is not
// consulted, so float PCM is never written.
func Encode(w io.WriteSeeker, spec protocol.AudioSpec, samples []float32) error {
	encoder := wav.NewEncoder(w, spec.SampleRate, spec.BitsPerSample, spec.Channels, 1)

	peak := spec.IntPeakMagnitude()
	intBuf := &goaudio.IntBuffer{
		Data:           make([]int, len(samples)),
		SourceBitDepth: spec.BitsPerSample,
		Format: &goaudio.Format{
			NumChannels: spec.Channels,
			SampleRate:  spec.SampleRate,
		},
	}
	for i, s := range samples {
		v := float64(s)
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		intBuf.Data[i] = int(v * peak)
	}

	if err := encoder.Write(intBuf); err != nil {
		return fmt.Errorf("wavetrx: encode wav: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("wavetrx: close wav encoder: %w", err)
	}
	return nil
}

// Decode reads a WAV file from r and returns its content as normalized
// float32 samples in [-1, 1] alongside the spec it was encoded with.
// Grounded on emer-auditory/sound/sound.go's Wave.GetFloatAtIdx, which
// normalizes by bit-depth-specific full-scale divisors.
func Decode(r io.ReadSeeker) ([]float32, protocol.AudioSpec, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, protocol.AudioSpec{}, fmt.Errorf("wavetrx: not a valid wav file")
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, protocol.AudioSpec{}, fmt.Errorf("wavetrx: decode wav: %w", err)
	}

	spec := protocol.NewAudioSpec(
		int(decoder.SampleRate),
		int(decoder.BitDepth),
		int(decoder.NumChans),
		protocol.EncodingInt,
	)

	samples := make([]float32, len(buf.Data))
	divisor := intDivisor(buf.SourceBitDepth)
	for i, v := range buf.Data {
		samples[i] = float32(v) / divisor
	}

	return samples, spec, nil
}

func intDivisor(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 0x7F
	case 16:
		return 0x7FFF
	case 24:
		return 0x7FFFFF
	case 32:
		return 0x7FFFFFFF
	default:
		return 1
	}
}
