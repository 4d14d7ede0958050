package tx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/syn-chromatic/wavetrx-go/internal/protocol"
)

func testProfile(t *testing.T) protocol.Profile {
	t.Helper()
	markers := protocol.Markers{Start: 7000, End: 9000, Next: 3000}
	bits := protocol.Bits{High: 5000, Low: 1000}
	pulses := protocol.Pulses{
		Tone: protocol.FromMicros(1000),
		Gap:  protocol.FromMicros(2000),
	}
	return protocol.NewProfile(markers, bits, pulses)
}

func testSpec() protocol.AudioSpec {
	return protocol.NewAudioSpec(48000, 32, 1, protocol.EncodingFloat)
}

func TestToneGeneratorAppendToneLength(t *testing.T) {
	g := NewToneGenerator(48000)
	g.AppendTone(1000, 1000)
	assert.Equal(t, 48, len(g.Samples()))
}

func TestToneGeneratorSilenceIsZero(t *testing.T) {
	g := NewToneGenerator(48000)
	g.AppendTone(0, 1000)
	for _, s := range g.Samples() {
		assert.Equal(t, float32(0), s)
	}
}

func TestToneGeneratorFadedToneStartsAndEndsNearZero(t *testing.T) {
	g := NewToneGenerator(48000)
	g.AppendSineFadedTone(1000, 1000, 0.2)
	samples := g.Samples()
	assert.Less(t, float32(-0.3), samples[0])
	assert.Less(t, samples[0], float32(0.3))
	assert.Less(t, float32(-0.3), samples[len(samples)-1])
	assert.Less(t, samples[len(samples)-1], float32(0.3))
}

func TestTransmitterCreateNonEmpty(t *testing.T) {
	tx := NewTransmitter(testProfile(t), testSpec())
	samples := tx.Create([]byte("Hi"))
	assert.Greater(t, len(samples), 0)
}

func TestTransmitterCreateEmptyPayloadStillHasMarkers(t *testing.T) {
	profile := testProfile(t)
	spec := testSpec()
	tx := NewTransmitter(profile, spec)

	withData := tx.Create([]byte("A"))
	empty := tx.Create([]byte{})

	assert.Greater(t, len(withData), len(empty))
	assert.Greater(t, len(empty), 0)
}

func TestStreamTransmitterMatchesWholeFrame(t *testing.T) {
	profile := testProfile(t)
	spec := testSpec()
	data := []byte("Hi")

	whole := NewTransmitter(profile, spec).Create(data)

	stream := NewStreamTransmitter(profile, spec, data, 512)
	var assembled []float32
	for {
		chunk, ok := stream.Next()
		if !ok {
			break
		}
		assembled = append(assembled, chunk...)
	}

	assert.Equal(t, len(whole), len(assembled))
	for i := range whole {
		assert.InDelta(t, whole[i], assembled[i], 1e-6)
	}
}

func TestStreamTransmitterYieldsFixedSizeChunks(t *testing.T) {
	profile := testProfile(t)
	spec := testSpec()
	data := []byte("Test String")
	const chunkSize = 256

	stream := NewStreamTransmitter(profile, spec, data, chunkSize)
	var chunks [][]float32
	for {
		chunk, ok := stream.Next()
		if !ok {
			break
		}
		chunks = append(chunks, chunk)
	}

	if assert.Greater(t, len(chunks), 1) {
		for _, chunk := range chunks[:len(chunks)-1] {
			assert.Equal(t, chunkSize, len(chunk))
		}
		assert.LessOrEqual(t, len(chunks[len(chunks)-1]), chunkSize)
	}
}

func TestStreamTransmitterEventuallyStops(t *testing.T) {
	stream := NewStreamTransmitter(testProfile(t), testSpec(), []byte("Test String"), 512)
	steps := 0
	for {
		_, ok := stream.Next()
		if !ok {
			break
		}
		steps++
		if steps > 10000 {
			t.Fatal("stream transmitter never terminated")
		}
	}
	_, ok := stream.Next()
	assert.False(t, ok)
}
