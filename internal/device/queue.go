// Package device wraps the host audio input/output streams used to carry
// FSK tones to and from a speaker/microphone.
package device

import "sync"

// SampleQueue is a mutex-guarded FIFO of normalized float32 samples.
// Grounded on original_source/wavetrx/src/audio/types.rs's FrameBuffer
// and SampleBuffer, which use a RwLock<LinkedList<...>>; the redesign
// here replaces the linked list with one growable slice behind a single
// mutex, so there is no node allocation per sample (or per frame). Push
// appends to the slice; TakeAll hands the whole slice to the caller and
// the next Push starts a new one.
type SampleQueue struct {
	mu     sync.Mutex
	buffer []float32
}

// NewSampleQueue returns an empty queue.
func NewSampleQueue() *SampleQueue {
	return &SampleQueue{}
}

// Push appends samples to the back of the queue.
func (q *SampleQueue) Push(samples []float32) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.buffer = append(q.buffer, samples...)
}

// TakeAll removes and returns every sample currently queued, or nil if
// the queue is empty.
func (q *SampleQueue) TakeAll() []float32 {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.buffer) == 0 {
		return nil
	}
	out := q.buffer
	q.buffer = nil
	return out
}

// Len reports the number of samples currently queued.
func (q *SampleQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buffer)
}

// Empty reports whether the queue currently holds no samples.
func (q *SampleQueue) Empty() bool {
	return q.Len() == 0
}
