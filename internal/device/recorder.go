package device

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Recorder captures normalized float32 samples from the default input
// device into a SampleQueue. Grounded on
// original_source/wavetrx/src/audio/recorder.rs's InputRecorder; cpal's
// callback-driven Stream maps onto portaudio's identical callback-stream
// model.
type Recorder struct {
	stream *portaudio.Stream
	queue  *SampleQueue
}

// NewRecorder opens (but does not start) an input stream at sampleRate
// with one channel, delivering framesPerBuffer samples per callback.
func NewRecorder(sampleRate float64, framesPerBuffer int) (*Recorder, error) {
	queue := NewSampleQueue()

	callback := func(in []float32) {
		queue.Push(in)
	}

	stream, err := portaudio.OpenDefaultStream(1, 0, sampleRate, framesPerBuffer, callback)
	if err != nil {
		return nil, fmt.Errorf("wavetrx: open input stream: %w", err)
	}

	return &Recorder{stream: stream, queue: queue}, nil
}

// Start begins capture.
func (r *Recorder) Start() error {
	if err := r.stream.Start(); err != nil {
		return fmt.Errorf("wavetrx: start input stream: %w", err)
	}
	return nil
}

// Stop ends capture and closes the underlying stream.
func (r *Recorder) Stop() error {
	if err := r.stream.Stop(); err != nil {
		return fmt.Errorf("wavetrx: stop input stream: %w", err)
	}
	return r.stream.Close()
}

// TakeSamples drains every sample captured since the last call.
func (r *Recorder) TakeSamples() []float32 {
	return r.queue.TakeAll()
}
