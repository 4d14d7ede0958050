// Package config parses the command-line flags shared by the
// transmitter and receiver binaries. Grounded on
// doismellburning-samoyed/src/appserver.go's AppServerMain, which builds
// its flag set with spf13/pflag and reports errors via pflag.Usage.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/syn-chromatic/wavetrx-go/internal/protocol"
)

// Shared holds the audio-format and detection flags common to both the
// transmitter and the receiver.
type Shared struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
	Highpass      float64
	Lowpass       float64
	Threshold     float64
	LogLevel      string
}

// RegisterShared adds the common flag set to fs.
func RegisterShared(fs *pflag.FlagSet) *Shared {
	s := &Shared{}
	fs.IntVar(&s.SampleRate, "sample-rate", 48000, "audio sample rate in Hz")
	fs.IntVar(&s.Channels, "channels", 1, "number of audio channels")
	fs.IntVar(&s.BitsPerSample, "bits-per-sample", 32, "PCM bit depth for file I/O")
	fs.Float64Var(&s.Highpass, "highpass", 200.0, "highpass filter cutoff in Hz")
	fs.Float64Var(&s.Lowpass, "lowpass", 18000.0, "lowpass filter cutoff in Hz")
	fs.Float64Var(&s.Threshold, "threshold", 8.0, "detection threshold in dB")
	fs.StringVar(&s.LogLevel, "log-level", "info", "log level: debug, info, warn, error")
	return s
}

// AudioSpec builds the protocol.AudioSpec implied by the parsed flags.
func (s *Shared) AudioSpec() protocol.AudioSpec {
	return protocol.NewAudioSpec(s.SampleRate, s.BitsPerSample, s.Channels, protocol.EncodingFloat)
}

// TxConfig holds the transmitter binary's flags.
type TxConfig struct {
	*Shared
	Output    string
	Fade      float64
	ChunkSize int
	Payload   string
}

// ParseTx parses os.Args for the transmitter binary.
func ParseTx(args []string) (*TxConfig, error) {
	fs := pflag.NewFlagSet("wavetrx-tx", pflag.ContinueOnError)
	shared := RegisterShared(fs)

	cfg := &TxConfig{Shared: shared}
	fs.StringVarP(&cfg.Output, "output", "o", "", "write the encoded frame to this WAV file instead of playing it")
	fs.Float64Var(&cfg.Fade, "fade", 0.1, "fraction of each tone spent fading in/out during device playback; --output files always use 0.1")
	fs.IntVar(&cfg.ChunkSize, "chunk-size", 512, "samples per streamed playback chunk, bounded by the output device's period size")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "wavetrx-tx - transmit a payload as an acoustic FSK frame\n\n")
		fmt.Fprintf(os.Stderr, "Usage: wavetrx-tx [OPTIONS] <payload>\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if len(fs.Args()) != 1 {
		return nil, fmt.Errorf("wavetrx-tx: exactly one payload argument required, got %d", len(fs.Args()))
	}

	cfg.Payload = fs.Args()[0]
	return cfg, nil
}

// RxConfig holds the receiver binary's flags.
type RxConfig struct {
	*Shared
	Input string
}

// ParseRx parses os.Args for the receiver binary.
func ParseRx(args []string) (*RxConfig, error) {
	fs := pflag.NewFlagSet("wavetrx-rx", pflag.ContinueOnError)
	shared := RegisterShared(fs)

	cfg := &RxConfig{Shared: shared}
	fs.StringVarP(&cfg.Input, "input", "i", "", "read samples from this WAV file instead of the microphone")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "wavetrx-rx - receive an acoustic FSK frame\n\n")
		fmt.Fprintf(os.Stderr, "Usage: wavetrx-rx [OPTIONS]\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return cfg, nil
}
