package device

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Player drains a SampleQueue to the default output device. Mono and
// stereo streams are supported: on a stereo stream each mono sample is
// written to both channels. A stream with more than two channels gets
// silence and its queue is never drained. Grounded on
// original_source/wavetrx/src/audio/player.rs's OutputPlayer.
type Player struct {
	stream   *portaudio.Stream
	queue    *SampleQueue
	channels int
}

// NewPlayer opens (but does not start) an output stream at sampleRate
// with the given channel count.
func NewPlayer(sampleRate float64, channels, framesPerBuffer int) (*Player, error) {
	queue := NewSampleQueue()
	p := &Player{queue: queue, channels: channels}

	callback := func(out []float32) {
		p.fill(out)
	}

	stream, err := portaudio.OpenDefaultStream(0, channels, sampleRate, framesPerBuffer, callback)
	if err != nil {
		return nil, fmt.Errorf("wavetrx: open output stream: %w", err)
	}
	p.stream = stream

	return p, nil
}

// Start begins playback.
func (p *Player) Start() error {
	if err := p.stream.Start(); err != nil {
		return fmt.Errorf("wavetrx: start output stream: %w", err)
	}
	return nil
}

// Stop ends playback and closes the underlying stream.
func (p *Player) Stop() error {
	if err := p.stream.Stop(); err != nil {
		return fmt.Errorf("wavetrx: stop output stream: %w", err)
	}
	return p.stream.Close()
}

// Enqueue appends samples to be played out.
func (p *Player) Enqueue(samples []float32) {
	p.queue.Push(samples)
}

// Drained reports whether every enqueued sample has been played.
func (p *Player) Drained() bool {
	return p.queue.Empty()
}

// fill is the output-stream callback: it zeroes any stale frame content,
// then copies queued mono samples out, duplicated onto both channels for
// stereo. Other channel counts are left silent.
func (p *Player) fill(out []float32) {
	for i := range out {
		out[i] = 0
	}

	if p.queue.Empty() {
		return
	}

	switch p.channels {
	case 1:
		p.fillMono(out)
	case 2:
		p.fillStereo(out)
	default:
	}
}

func (p *Player) fillMono(out []float32) {
	pending := p.queue.TakeAll()
	n := len(pending)
	if n > len(out) {
		n = len(out)
	}
	copy(out, pending[:n])
	if n < len(pending) {
		p.queue.Push(pending[n:])
	}
}

func (p *Player) fillStereo(out []float32) {
	pending := p.queue.TakeAll()
	count := 0
	idx := 0
	for count < len(out) && idx < len(pending) {
		out[count] = pending[idx]
		out[count+1] = pending[idx]
		count += 2
		idx++
	}
	if idx < len(pending) {
		p.queue.Push(pending[idx:])
	}
}
