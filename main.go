package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"golang.org/x/term"

	"github.com/d1nch8g/visynth/camera"
	"github.com/d1nch8g/visynth/config"
	"github.com/d1nch8g/visynth/engine"
	"github.com/d1nch8g/visynth/sound"
	"github.com/d1nch8g/visynth/vision"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Open the capture device
	cam, err := camera.OpenWebcam(cfg.Camera.Device)
	if err != nil {
		log.Fatalf("Failed to open camera %d: %v", cfg.Camera.Device, err)
	}

	source := vision.NewCameraSource(cam, vision.NewExtractor(cfg.Camera.AnalysisSize))
	defer source.Close()

	var player sound.Player
	switch cfg.Audio.Backend {
	case "oto":
		player = sound.NewOtoPlayer()
	case "portaudio":
		player = sound.NewPortaudioPlayer()
	default:
		log.Fatalf("Unknown audio backend %q (want portaudio or oto)", cfg.Audio.Backend)
	}

	eng := engine.NewEngine(engine.Config{
		SampleRate:   cfg.Audio.SampleRate,
		Channels:     cfg.Audio.Channels,
		PeriodFrames: cfg.Audio.PeriodFrames,
		TickInterval: time.Duration(cfg.Camera.TickMillis) * time.Millisecond,
		BarSeconds:   cfg.Synth.BarSeconds,
		SubBeats:     cfg.Synth.SubBeats,
		DelaySeconds: cfg.Synth.DelaySeconds,
		ObjectCap:    cfg.Synth.ObjectCap,
		PopChance:    cfg.Synth.PopChance,
		Seed:         cfg.Synth.Seed,
	}, source, player)

	// Setup signal handling
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fmt.Println("visynth running. Press any key or Ctrl-C to stop.")

	keys, restore := watchKeypress()
	go func() {
		select {
		case <-sig:
		case <-keys:
		case <-ctx.Done():
		}
		cancel()
	}()

	err = eng.Run(ctx)
	restore()
	if err != nil {
		log.Printf("Engine stopped with error: %v", err)
		os.Exit(1)
	}
	fmt.Println("\nStopped.")
}

// watchKeypress puts the terminal into raw mode and signals the returned
// channel on the first byte read from stdin. In raw mode Ctrl-C arrives
// as a byte rather than a signal, so it stops the process through the
// same path. The restore function must run before the process exits.
func watchKeypress() (<-chan struct{}, func()) {
	ch := make(chan struct{})
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return ch, func() {}
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		log.Printf("Failed to set raw terminal mode: %v", err)
		return ch, func() {}
	}
	go func() {
		var b [1]byte
		os.Stdin.Read(b[:])
		close(ch)
	}()
	return ch, func() { term.Restore(fd, state) }
}
