package rx

import (
	"math"

	"github.com/syn-chromatic/wavetrx-go/internal/dsp"
	"github.com/syn-chromatic/wavetrx-go/internal/protocol"
	"github.com/syn-chromatic/wavetrx-go/internal/spectrum"
)

// DefaultThresholdDB is the dB half-width (Θ) used when none is supplied,
// matching original_source/wavetrx/src/consts.rs's DB_THRESHOLD.
const DefaultThresholdDB = 8.0

// acquisitionFloor is the fraction of full-scale below which a peak is
// treated as noise, both when AddSamples normalizes an incoming chunk and
// when a window is re-normalized before analysis (spec.md §4.4.1: "≈0.1
// of the observed peak").
const acquisitionFloor = 0.1

// maxConsecutiveFails bounds the start-marker local-peak search
// (spec.md §4.4.2).
const maxConsecutiveFails = 5

// Receiver recovers the bit sequence between a start and end marker from
// a rolling buffer of normalized samples. Grounded on
// original_source/wavetrx/src/protocol/rx/receiver.rs's Receiver.
type Receiver struct {
	profile   protocol.Profile
	pulses    protocol.SizedPulses
	spec      protocol.AudioSpec
	analyzer  spectrum.Analyzer
	threshold float64

	buffer   []float32
	startIdx *int
	bits     []uint8
	resolver *Resolver

	// onBit/onFrame/onError are invoked from analyzeBuffer so callers
	// (the live receiver loop or tests) can observe progress without
	// polling. All are optional.
	onBit   func(bit uint8)
	onFrame func(payload []byte)
	onError func()
}

// NewReceiver builds a Receiver using an FFT-based analyzer sized to the
// profile's tone window, matching spec.md §4.4.1's "pre-built spectral
// analyzer sized to tone_size".
func NewReceiver(profile protocol.Profile, spec protocol.AudioSpec) *Receiver {
	pulses := profile.Pulses.IntoSized(spec)
	analyzer := spectrum.NewFourierAnalyzer(pulses.ToneSize, spec.SampleRate)
	return newReceiver(profile, spec, pulses, analyzer)
}

// NewReceiverWithAnalyzer builds a Receiver using a caller-supplied
// analyzer (e.g. a GoertzelAnalyzer, for constant-memory operation).
func NewReceiverWithAnalyzer(profile protocol.Profile, spec protocol.AudioSpec, analyzer spectrum.Analyzer) *Receiver {
	pulses := profile.Pulses.IntoSized(spec)
	return newReceiver(profile, spec, pulses, analyzer)
}

func newReceiver(profile protocol.Profile, spec protocol.AudioSpec, pulses protocol.SizedPulses, analyzer spectrum.Analyzer) *Receiver {
	return &Receiver{
		profile:   profile,
		pulses:    pulses,
		spec:      spec,
		analyzer:  analyzer,
		threshold: DefaultThresholdDB,
		resolver:  NewResolver(),
	}
}

// SetThreshold overrides the default dB threshold (Θ).
func (r *Receiver) SetThreshold(db float64) { r.threshold = db }

// OnBit registers a callback invoked for each decoded bit.
func (r *Receiver) OnBit(f func(bit uint8)) { r.onBit = f }

// OnFrame registers a callback invoked with the decoded payload when a
// frame completes.
func (r *Receiver) OnFrame(f func(payload []byte)) { r.onFrame = f }

// OnError registers a callback invoked when the resolver reports a frame
// error (recovered locally; not surfaced as a failure per spec.md §7).
func (r *Receiver) OnError(f func()) { r.onError = f }

// AddSamples feeds a new chunk of normalized samples to the receiver: the
// chunk is independently floor-normalized to suppress silence, appended
// to the rolling buffer, and the buffer is then analyzed.
func (r *Receiver) AddSamples(chunk []float32) {
	gated := append([]float32(nil), chunk...)
	dsp.NewNormalizer(gated).NormalizeWithFloor(1.0, acquisitionFloor)

	r.buffer = append(r.buffer, gated...)
	r.analyzeBuffer()
}

// analyzeBuffer drives acquisition (when no start index is set) or
// per-tone stepping (once one is), alternating between the two as
// stepOnce's Resolve calls reset the start index on every End or Error.
// This lets a single AddSamples call carry the buffer through more than
// one frame.
func (r *Receiver) analyzeBuffer() {
	toneSize := r.pulses.ToneSize

	for {
		if r.startIdx != nil {
			if len(r.buffer) < *r.startIdx+toneSize {
				return
			}
			r.stepOnce()
			continue
		}

		if len(r.buffer) < toneSize*8 {
			return
		}

		idx, ok := r.findStartIdx()
		if !ok {
			r.resetAll()
			return
		}
		r.setStartIdx(idx)
	}
}

// stepOnce performs one per-tone step of spec.md §4.4.3: extract and
// re-normalize the tone-sized window at startIdx, compute the five
// magnitudes, feed the resolver, act on its output, and advance.
func (r *Receiver) stepOnce() {
	idx := *r.startIdx
	toneSize := r.pulses.ToneSize
	gapSize := r.pulses.GapSize

	r.renormalizeWindow(idx)
	samples := r.windowAt(idx)
	magnitudes := r.magnitudesFor(samples)

	result := r.resolver.Resolve(magnitudes)
	switch result.Output {
	case OutputBit:
		r.bits = append(r.bits, result.Bit)
		if r.onBit != nil {
			r.onBit(result.Bit)
		}
	case OutputEnd:
		payload := bitsToBytes(r.bits)
		r.resetAll()
		if r.onFrame != nil {
			r.onFrame(payload)
		}
		return
	case OutputError:
		r.resetAll()
		if r.onError != nil {
			r.onError()
		}
		return
	case OutputUndefined:
		// nothing to do; the window was a spacer or marker.
	}

	next := idx + toneSize + gapSize
	r.setStartIdx(next)
}

// findStartIdx implements the sliding start-marker search of
// spec.md §4.4.2.
func (r *Receiver) findStartIdx() (int, bool) {
	toneSize := r.pulses.ToneSize
	startFreq := r.profile.Markers.Start.Hz()

	var bestIdx int
	var bestDB float64
	haveBest := false
	consecutiveFails := 0

	idx := 0
	for idx < len(r.buffer)-toneSize {
		r.renormalizeWindow(idx)
		samples := r.windowAt(idx)
		db := r.analyzer.GetMagnitude(samples, startFreq)

		if haveBest {
			if db >= bestDB && db <= r.threshold {
				consecutiveFails = 0
				bestIdx = idx
				bestDB = db
			} else {
				if consecutiveFails == maxConsecutiveFails {
					return bestIdx, true
				}
				consecutiveFails++
			}
		} else {
			if db >= -r.threshold && db <= r.threshold {
				haveBest = true
				bestIdx = idx
				bestDB = db
			}
		}

		if !haveBest {
			idx += r.minimumChunkSize(startFreq, 8)
		} else {
			idx++
		}
	}

	return bestIdx, haveBest
}

// minimumChunkSize returns the number of samples spanning `cycles` full
// periods of freq at the receiver's sample rate, rounded up.
func (r *Receiver) minimumChunkSize(freq float64, cycles int) int {
	cycleTime := 1.0 / freq
	chunkTime := float64(cycles) * cycleTime
	return int(math.Ceil(chunkTime * float64(r.spec.SampleRate)))
}

// magnitudesFor computes the five profile-tone magnitudes for a window.
func (r *Receiver) magnitudesFor(samples []float32) Magnitudes {
	return Magnitudes{
		Start:     r.analyzer.GetMagnitude(samples, r.profile.Markers.Start.Hz()),
		End:       r.analyzer.GetMagnitude(samples, r.profile.Markers.End.Hz()),
		Next:      r.analyzer.GetMagnitude(samples, r.profile.Markers.Next.Hz()),
		High:      r.analyzer.GetMagnitude(samples, r.profile.Bits.High.Hz()),
		Low:       r.analyzer.GetMagnitude(samples, r.profile.Bits.Low.Hz()),
		Threshold: r.threshold,
	}
}

// renormalizeWindow re-normalizes the tone-sized window at idx in place
// with the acquisition floor. The buffer already holds the chunk-level
// normalized samples from AddSamples, so this is a second scaling on top
// of that one; findStartIdx calls it at every candidate offset and
// stepOnce at every step, so overlapping samples can be rescaled more
// than once.
func (r *Receiver) renormalizeWindow(idx int) {
	window := r.mutableWindowAt(idx)
	dsp.NewNormalizer(window).NormalizeWithFloor(1.0, acquisitionFloor)
}

func (r *Receiver) windowAt(idx int) []float32 {
	end := r.windowEnd(idx)
	return r.buffer[idx:end]
}

func (r *Receiver) mutableWindowAt(idx int) []float32 {
	end := r.windowEnd(idx)
	return r.buffer[idx:end]
}

func (r *Receiver) windowEnd(idx int) int {
	end := idx + r.pulses.ToneSize
	if end > len(r.buffer) {
		return len(r.buffer)
	}
	return end
}

func (r *Receiver) setStartIdx(idx int) {
	r.startIdx = &idx
}

func (r *Receiver) unsetStartIdx() {
	r.startIdx = nil
}

// resetAll implements spec.md §4.4.5's buffer compaction: drain the
// buffer up to the current start index (or the last 8*tone_size samples
// if none was ever set), clear the bit accumulator, and reset the
// resolver.
func (r *Receiver) resetAll() {
	r.compactBuffer()
	r.bits = r.bits[:0]
	r.resolver.Reset()
	r.unsetStartIdx()
}

func (r *Receiver) compactBuffer() {
	var idx int
	if r.startIdx != nil {
		idx = *r.startIdx
	} else {
		idx = len(r.buffer) - r.pulses.ToneSize*8
	}
	r.drainTo(idx)
}

func (r *Receiver) drainTo(idx int) {
	if idx < 0 {
		return
	}
	if idx < len(r.buffer) {
		r.buffer = append([]float32(nil), r.buffer[idx:]...)
	} else {
		r.buffer = r.buffer[:0]
	}
}

// Bits returns the bit accumulator's current contents (useful for tests
// and diagnostics; a live caller should prefer OnBit/OnFrame).
func (r *Receiver) Bits() []uint8 {
	return append([]uint8(nil), r.bits...)
}

// bitsToBytes converts an MSB-first bit vector into bytes. Trailing
// partial groups of fewer than 8 bits are dropped, per spec.md §3.
func bitsToBytes(bits []uint8) []byte {
	n := len(bits) / 8
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		var b byte
		for j := 0; j < 8; j++ {
			b = (b << 1) | bits[i*8+j]
		}
		out[i] = b
	}
	return out
}
