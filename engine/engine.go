package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/d1nch8g/visynth/sound"
	"github.com/d1nch8g/visynth/synth"
	"github.com/d1nch8g/visynth/vision"
)

// Config holds the configuration for the synthesis engine
type Config struct {
	SampleRate   int
	Channels     int
	PeriodFrames int
	TickInterval time.Duration
	BarSeconds   float64
	SubBeats     int
	DelaySeconds float64
	ObjectCap    int
	PopChance    float64
	Seed         int64
}

// Engine runs the perception and synthesis loops concurrently. The loops
// share nothing but the feature bus and never block each other: capture
// blocks only the perception goroutine, the device write blocks only the
// synthesis goroutine.
type Engine struct {
	config Config
	source vision.Source
	player sound.Player

	bus        *vision.Bus
	sequencer  *synth.Sequencer
	oscillator *synth.Oscillator
	delay      *synth.Delay
	rng        *rand.Rand
}

// NewEngine creates a new synthesis engine instance
func NewEngine(config Config, source vision.Source, player sound.Player) *Engine {
	if config.SampleRate == 0 {
		config.SampleRate = 44100
	}
	if config.Channels == 0 {
		config.Channels = 2
	}
	if config.PeriodFrames == 0 {
		config.PeriodFrames = 1024
	}
	if config.TickInterval == 0 {
		config.TickInterval = 50 * time.Millisecond
	}
	if config.BarSeconds == 0 {
		config.BarSeconds = 4.0
	}
	if config.SubBeats == 0 {
		config.SubBeats = 6
	}
	if config.DelaySeconds == 0 {
		config.DelaySeconds = 0.35
	}
	if config.ObjectCap == 0 {
		config.ObjectCap = 8
	}

	return &Engine{
		config:     config,
		source:     source,
		player:     player,
		bus:        vision.NewBus(),
		sequencer:  synth.NewSequencer(config.Seed),
		oscillator: synth.NewOscillator(config.SampleRate),
		delay:      synth.NewDelay(config.SampleRate, config.DelaySeconds),
		rng:        rand.New(rand.NewSource(config.Seed)),
	}
}

// Run starts both loops and blocks until the context is cancelled or the
// synthesis loop hits a fatal playback error. A fatal error cancels the
// sibling loop before Run returns it.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.player.Configure(e.config.SampleRate, e.config.Channels, e.config.PeriodFrames); err != nil {
		return fmt.Errorf("failed to configure playback: %w", err)
	}
	defer e.player.DrainAndClose()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		e.perceptionLoop(ctx)
	}()
	go func() {
		defer wg.Done()
		if err := e.synthesisLoop(ctx); err != nil {
			errCh <- err
			cancel()
		}
	}()
	wg.Wait()

	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}

// perceptionLoop captures a frame per tick, extracts features and
// publishes them. A failed capture skips the tick; the previous snapshot
// stays current, which beats blocking the synthesis loop.
func (e *Engine) perceptionLoop(ctx context.Context) {
	ticker := time.NewTicker(e.config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap, err := e.source.Sample()
			if err != nil {
				log.Printf("Frame unavailable, keeping previous features: %v", err)
				continue
			}
			e.bus.Publish(snap)
		}
	}
}

// synthesisLoop renders fixed-size periods and writes them to the device.
// Bar and sub-beat boundaries are counted in rendered frames, so timing is
// sample-accurate regardless of period size.
func (e *Engine) synthesisLoop(ctx context.Context) error {
	barFrames := int(e.config.BarSeconds * float64(e.config.SampleRate))
	subFrames := barFrames / e.config.SubBeats
	period := make([]int16, e.config.PeriodFrames*e.config.Channels)

	var frame, nextBar, nextSub int

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		// one consistent snapshot per period decision
		snap := e.bus.Load()
		shape := synth.ChooseWaveform(snap.Texture, e.config.PopChance, e.rng)
		e.delay.SetMix(synth.MixForObjects(snap.Objects, e.config.ObjectCap))

		for i := 0; i < e.config.PeriodFrames; i++ {
			if frame >= nextBar {
				note := e.sequencer.RebuildBar(snap.Warmth, snap.Brightness)
				e.oscillator.Init(synth.Freq(note))
				nextBar = frame + barFrames
				nextSub = frame + subFrames
			} else if frame >= nextSub {
				note := e.sequencer.StepSubBeat()
				e.oscillator.Init(synth.Freq(note))
				nextSub += subFrames
			}

			var v float64
			switch shape {
			case synth.WaveTriangle:
				v = e.oscillator.Triangle()
			case synth.WaveSquare:
				v = e.oscillator.Square()
			default:
				v = e.oscillator.Sine()
			}
			v = e.delay.Process(v)
			if v > 1 {
				v = 1
			} else if v < -1 {
				v = -1
			}

			s := int16(v * math.MaxInt16)
			for c := 0; c < e.config.Channels; c++ {
				period[i*e.config.Channels+c] = s
			}
			frame++
		}

		if err := e.player.WriteInterleaved(period); err != nil {
			if errors.Is(err, sound.ErrUnderrun) {
				log.Printf("Playback underrun, re-preparing device")
				if rerr := e.player.Recover(); rerr != nil {
					return fmt.Errorf("failed to recover from underrun: %w", rerr)
				}
				continue
			}
			return fmt.Errorf("failed to write audio period: %w", err)
		}
	}
}
