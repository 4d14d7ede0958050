package rx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	testThreshold = 8.0
)

func belowThreshold() float64 { return -40.0 }
func atTone() float64         { return 0.0 }

func magnitudesFor(startHz, endHz, nextHz, highHz, lowHz float64) Magnitudes {
	return Magnitudes{
		Start:     startHz,
		End:       endHz,
		Next:      nextHz,
		High:      highHz,
		Low:       lowHz,
		Threshold: testThreshold,
	}
}

func silence() Magnitudes {
	b := belowThreshold()
	return magnitudesFor(b, b, b, b, b)
}

func startTone() Magnitudes {
	m := silence()
	m.Start = atTone()
	return m
}

func nextTone() Magnitudes {
	m := silence()
	m.Next = atTone()
	return m
}

func bitTone(high bool) Magnitudes {
	m := silence()
	if high {
		m.High = atTone()
	} else {
		m.Low = atTone()
	}
	return m
}

func endTone() Magnitudes {
	m := silence()
	m.End = atTone()
	return m
}

// TestResolverTerminality is spec.md §8's invariant 7: once the resolver
// emits End or Error it must return to a state where only a start marker
// can resume decoding, never silently accepting new bits.
func TestResolverTerminality(t *testing.T) {
	r := NewResolver()

	result := r.Resolve(startTone())
	assert.Equal(t, OutputUndefined, result.Output)

	result = r.Resolve(nextTone())
	assert.Equal(t, OutputUndefined, result.Output)

	// A bit is emitted on its own window, not the spacer after it.
	result = r.Resolve(bitTone(true))
	assert.Equal(t, OutputBit, result.Output)
	assert.Equal(t, uint8(1), result.Bit)

	result = r.Resolve(nextTone())
	assert.Equal(t, OutputUndefined, result.Output)

	// The end tone only arms end detection; it is confirmed on the
	// spacer that follows it.
	result = r.Resolve(endTone())
	assert.Equal(t, OutputUndefined, result.Output)

	result = r.Resolve(nextTone())
	assert.Equal(t, OutputEnd, result.Output)

	// After End, silence must never be mistaken for a bit or a marker.
	result = r.Resolve(silence())
	assert.Equal(t, OutputError, result.Output)

	r.Reset()
	result = r.Resolve(silence())
	assert.Equal(t, OutputError, result.Output)

	// Only a fresh start marker can resume decoding.
	result = r.Resolve(startTone())
	assert.Equal(t, OutputUndefined, result.Output)
}

func TestResolverDecodesSingleBit(t *testing.T) {
	r := NewResolver()

	assert.Equal(t, OutputUndefined, r.Resolve(startTone()).Output)
	assert.Equal(t, OutputUndefined, r.Resolve(nextTone()).Output)

	result := r.Resolve(bitTone(true))
	assert.Equal(t, OutputBit, result.Output)
	assert.Equal(t, uint8(1), result.Bit)
}

// TestResolverEndsEmptyPayload exercises the zero-bit frame of spec.md
// §8 scenario S3 directly against the resolver: start, its spacer, the
// end marker, and its spacer, with no bit windows at all.
func TestResolverEndsEmptyPayload(t *testing.T) {
	r := NewResolver()

	assert.Equal(t, OutputUndefined, r.Resolve(startTone()).Output)
	assert.Equal(t, OutputUndefined, r.Resolve(nextTone()).Output)
	assert.Equal(t, OutputUndefined, r.Resolve(endTone()).Output)
	assert.Equal(t, OutputEnd, r.Resolve(nextTone()).Output)
}

func TestResolverRejectsUnexpectedSilenceAfterBit(t *testing.T) {
	r := NewResolver()
	r.Resolve(startTone())
	r.Resolve(nextTone())
	r.Resolve(bitTone(false))

	result := r.Resolve(silence())
	assert.Equal(t, OutputError, result.Output)
}

func TestBitsToBytesDropsTrailingPartialGroup(t *testing.T) {
	bits := []uint8{0, 1, 0, 0, 1, 0, 0, 0, 1, 1}
	out := bitsToBytes(bits)
	assert.Equal(t, []byte{0x48}, out)
}

func TestBitsToBytesMSBFirst(t *testing.T) {
	bits := []uint8{1, 0, 0, 0, 0, 0, 0, 1}
	out := bitsToBytes(bits)
	assert.Equal(t, []byte{0x81}, out)
}
