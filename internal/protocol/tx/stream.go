package tx

import "github.com/syn-chromatic/wavetrx-go/internal/protocol"

type streamStage int

const (
	stageStart streamStage = iota
	stageData
	stageEnd
)

// StreamTransmitter is a pull-iterator over a frame's samples that yields
// fixed-size chunks of N samples, so a caller can stream playback bounded
// by the output device's period size instead of holding the whole frame
// in memory. Grounded on
// original_source/wavetrx/src/protocol/tx/transmitter.rs's
// StreamTransmitter.
type StreamTransmitter struct {
	tx        *Transmitter
	tone      *ToneGenerator
	stage     streamStage
	data      []byte
	pos       int
	fade      float64
	chunkSize int
	consumed  int
	finished  bool
	done      bool
}

// NewStreamTransmitter returns a StreamTransmitter over data that yields
// chunkSize-sample chunks (the final chunk may be shorter), using the
// same default fade as Transmitter.Create.
func NewStreamTransmitter(profile protocol.Profile, spec protocol.AudioSpec, data []byte, chunkSize int) *StreamTransmitter {
	return &StreamTransmitter{
		tx:        NewTransmitter(profile, spec),
		tone:      NewToneGenerator(spec.SampleRate),
		data:      data,
		fade:      defaultFade,
		chunkSize: chunkSize,
	}
}

// SetFade overrides the fade fraction applied to every marker and bit
// tone.
func (s *StreamTransmitter) SetFade(fade float64) {
	s.fade = fade
}

// Next advances the stage machine by as many steps as it takes to
// accumulate chunkSize samples and returns exactly that many; only the
// final chunk may be shorter. It returns (nil, false) once every sample
// has been yielded.
//
// The stage machine is {Leading -> Start -> Next -> Data(byte) -> ... ->
// End -> Next -> Trailing -> Done}: Start emits leading silence plus the
// start marker and its spacer, each Data step emits one byte's eight
// bit+spacer pulses, and End emits the end marker, its spacer, and
// trailing silence. These stage boundaries do not need to land on a
// chunkSize boundary: Next keeps advancing the stage machine until it
// has at least chunkSize samples buffered (or the machine is exhausted),
// then slices off exactly chunkSize of them, carrying any remainder into
// the next call.
func (s *StreamTransmitter) Next() ([]float32, bool) {
	if s.done {
		return nil, false
	}

	for !s.finished && len(s.tone.Samples())-s.consumed < s.chunkSize {
		switch s.stage {
		case stageStart:
			s.tx.appendSilence(s.tone)
			s.tx.appendStart(s.tone, s.fade)
			s.tx.appendNext(s.tone, s.fade)
			s.stage = stageData

		case stageData:
			if s.pos < len(s.data) {
				s.tx.appendByte(s.tone, s.data[s.pos], s.fade)
				s.pos++
			} else {
				s.stage = stageEnd
			}

		case stageEnd:
			s.tx.appendEnd(s.tone, s.fade)
			s.tx.appendNext(s.tone, s.fade)
			s.tx.appendSilence(s.tone)
			s.finished = true
		}
	}

	available := len(s.tone.Samples()) - s.consumed
	if available >= s.chunkSize {
		chunk := s.tone.Samples()[s.consumed : s.consumed+s.chunkSize]
		s.consumed += s.chunkSize
		return chunk, true
	}

	s.done = true
	if available == 0 {
		return nil, false
	}

	chunk := s.tone.Samples()[s.consumed:]
	s.consumed = len(s.tone.Samples())
	return chunk, true
}
