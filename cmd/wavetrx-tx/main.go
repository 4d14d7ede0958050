// Command wavetrx-tx encodes a payload as an acoustic FSK frame and
// either plays it through the default output device or writes it to a
// WAV file.
package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gordonklaus/portaudio"

	"github.com/syn-chromatic/wavetrx-go/internal/applog"
	"github.com/syn-chromatic/wavetrx-go/internal/audioio"
	"github.com/syn-chromatic/wavetrx-go/internal/config"
	"github.com/syn-chromatic/wavetrx-go/internal/device"
	"github.com/syn-chromatic/wavetrx-go/internal/presets"
	"github.com/syn-chromatic/wavetrx-go/internal/protocol"
	"github.com/syn-chromatic/wavetrx-go/internal/protocol/tx"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.ParseTx(args)
	if err != nil {
		return 2
	}

	logger := applog.New(os.Stderr, applog.ParseLevel(cfg.LogLevel), "wavetrx-tx")

	profile := presets.DefaultProfile()
	spec := cfg.AudioSpec()

	if err := profile.Validate(spec, cfg.Highpass, cfg.Lowpass); err != nil {
		logger.Error("invalid profile for spec", "err", err)
		return 2
	}

	payload := []byte(cfg.Payload)

	if cfg.Output != "" {
		samples := tx.NewTransmitter(profile, spec).Create(payload)
		logger.Info("encoded frame", "bytes", len(payload), "samples", len(samples))
		return writeToFile(logger, cfg.Output, spec, samples)
	}

	logger.Info("encoding frame", "bytes", len(payload), "chunk_size", cfg.ChunkSize)
	return playSamples(logger, profile, spec, payload, cfg.ChunkSize, cfg.Fade)
}

func writeToFile(logger *log.Logger, path string, spec protocol.AudioSpec, samples []float32) int {
	f, err := os.Create(path)
	if err != nil {
		logger.Error("create output file", "err", err)
		return 1
	}
	defer f.Close()

	if err := audioio.Encode(f, spec, samples); err != nil {
		logger.Error("encode wav", "err", err)
		return 1
	}

	logger.Info("wrote frame", "path", path)
	return 0
}

func playSamples(logger *log.Logger, profile protocol.Profile, spec protocol.AudioSpec, payload []byte, chunkSize int, fade float64) int {
	if err := portaudio.Initialize(); err != nil {
		logger.Error("initialize portaudio", "err", err)
		return 2
	}
	defer portaudio.Terminate()

	player, err := device.NewPlayer(float64(spec.SampleRate), spec.Channels, 512)
	if err != nil {
		logger.Error("open output stream", "err", err)
		return 2
	}

	if err := player.Start(); err != nil {
		logger.Error("start playback", "err", err)
		return 2
	}
	defer player.Stop()

	stream := tx.NewStreamTransmitter(profile, spec, payload, chunkSize)
	stream.SetFade(fade)
	for {
		chunk, ok := stream.Next()
		if !ok {
			break
		}
		player.Enqueue(chunk)
	}

	for !player.Drained() {
		time.Sleep(10 * time.Millisecond)
	}

	logger.Info("playback complete")
	return 0
}
