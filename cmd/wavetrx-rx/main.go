// Command wavetrx-rx listens for an acoustic FSK frame, either from the
// default input device or a WAV file, and prints the decoded payload.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gordonklaus/portaudio"

	"github.com/syn-chromatic/wavetrx-go/internal/applog"
	"github.com/syn-chromatic/wavetrx-go/internal/audioio"
	"github.com/syn-chromatic/wavetrx-go/internal/config"
	"github.com/syn-chromatic/wavetrx-go/internal/device"
	"github.com/syn-chromatic/wavetrx-go/internal/presets"
	"github.com/syn-chromatic/wavetrx-go/internal/protocol"
	"github.com/syn-chromatic/wavetrx-go/internal/protocol/rx"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.ParseRx(args)
	if err != nil {
		return 2
	}

	logger := applog.New(os.Stderr, applog.ParseLevel(cfg.LogLevel), "wavetrx-rx")

	profile := presets.DefaultProfile()
	spec := cfg.AudioSpec()

	if err := profile.Validate(spec, cfg.Highpass, cfg.Lowpass); err != nil {
		logger.Error("invalid profile for spec", "err", err)
		return 2
	}

	receiver := rx.NewReceiver(profile, spec)
	receiver.SetThreshold(cfg.Threshold)

	var gotFrame bool
	receiver.OnFrame(func(payload []byte) {
		gotFrame = true
		logger.Info("received frame", "payload", string(payload), "bytes", len(payload))
	})
	receiver.OnError(func() {
		logger.Warn("frame error, resynchronizing")
	})

	if cfg.Input != "" {
		return receiveFromFile(logger, receiver, cfg.Input)
	}
	return receiveFromDevice(logger, receiver, spec, &gotFrame)
}

func receiveFromFile(logger *log.Logger, receiver *rx.Receiver, path string) int {
	f, err := os.Open(path)
	if err != nil {
		logger.Error("open input file", "err", err)
		return 1
	}
	defer f.Close()

	samples, _, err := audioio.Decode(f)
	if err != nil {
		logger.Error("decode wav", "err", err)
		return 1
	}

	const chunkSize = 4096
	for i := 0; i < len(samples); i += chunkSize {
		end := i + chunkSize
		if end > len(samples) {
			end = len(samples)
		}
		receiver.AddSamples(samples[i:end])
	}

	return 0
}

func receiveFromDevice(logger *log.Logger, receiver *rx.Receiver, spec protocol.AudioSpec, gotFrame *bool) int {
	if err := portaudio.Initialize(); err != nil {
		logger.Error("initialize portaudio", "err", err)
		return 2
	}
	defer portaudio.Terminate()

	recorder, err := device.NewRecorder(float64(spec.SampleRate), 512)
	if err != nil {
		logger.Error("open input stream", "err", err)
		return 2
	}

	if err := recorder.Start(); err != nil {
		logger.Error("start capture", "err", err)
		return 2
	}
	defer recorder.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("listening", "sample_rate", spec.SampleRate)

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return 0
		case <-ticker.C:
			if chunk := recorder.TakeSamples(); chunk != nil {
				receiver.AddSamples(chunk)
			}
			if *gotFrame {
				return 0
			}
		}
	}
}
