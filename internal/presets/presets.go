// Package presets holds the default FSK profile and filter constants,
// grounded on original_source/wavetrx/src/consts.rs's DefaultProfile.
package presets

import "github.com/syn-chromatic/wavetrx-go/internal/protocol"

const (
	MarkerToneStart protocol.Frequency = 7000
	MarkerToneEnd   protocol.Frequency = 9000
	MarkerToneNext  protocol.Frequency = 3000

	BitToneHigh protocol.Frequency = 5000
	BitToneLow  protocol.Frequency = 1000

	PulseToneMicros = 1000
	PulseGapMicros  = 2000
)

// Filter cutoffs and detection threshold shared by the default profile.
const (
	LowpassCutoffHz  = 18000.0
	HighpassCutoffHz = 200.0
	ThresholdDB      = 8.0
)

// DefaultProfile returns the out-of-the-box tone layout: a 7/9/3 kHz
// marker set and a 5/1 kHz bit set, with 1ms tones separated by 2ms gaps.
func DefaultProfile() protocol.Profile {
	markers := protocol.Markers{
		Start: MarkerToneStart,
		End:   MarkerToneEnd,
		Next:  MarkerToneNext,
	}
	bits := protocol.Bits{
		High: BitToneHigh,
		Low:  BitToneLow,
	}
	pulses := protocol.Pulses{
		Tone: protocol.FromMicros(PulseToneMicros),
		Gap:  protocol.FromMicros(PulseGapMicros),
	}
	return protocol.NewProfile(markers, bits, pulses)
}
