package presets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/syn-chromatic/wavetrx-go/internal/protocol"
)

func TestDefaultProfileIsValidAt48kHz(t *testing.T) {
	spec := protocol.NewAudioSpec(48000, 32, 1, protocol.EncodingFloat)
	err := DefaultProfile().Validate(spec, HighpassCutoffHz, LowpassCutoffHz)
	assert.NoError(t, err)
}
