package sound

import (
	"errors"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

type PortaudioPlayer struct {
	stream *portaudio.Stream
	buffer []int16
}

// Ensure PortaudioPlayer implements Player interface
var _ Player = (*PortaudioPlayer)(nil)

func NewPortaudioPlayer() *PortaudioPlayer {
	return &PortaudioPlayer{}
}

func (p *PortaudioPlayer) Configure(sampleRate, channels, periodFrames int) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	p.buffer = make([]int16, periodFrames*channels)
	stream, err := portaudio.OpenDefaultStream(0, channels, float64(sampleRate), periodFrames, p.buffer)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("failed to open output stream: %w", err)
	}
	p.stream = stream

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("failed to start output stream: %w", err)
	}
	return nil
}

func (p *PortaudioPlayer) WriteInterleaved(buf []int16) error {
	if p.stream == nil {
		return errors.New("stream not configured")
	}
	copy(p.buffer, buf)
	if err := p.stream.Write(); err != nil {
		if errors.Is(err, portaudio.OutputUnderflowed) {
			return ErrUnderrun
		}
		return err
	}
	return nil
}

func (p *PortaudioPlayer) Recover() error {
	if p.stream == nil {
		return errors.New("stream not configured")
	}
	if err := p.stream.Abort(); err != nil {
		return fmt.Errorf("failed to abort underrun stream: %w", err)
	}
	if err := p.stream.Start(); err != nil {
		return fmt.Errorf("failed to restart stream: %w", err)
	}
	return nil
}

func (p *PortaudioPlayer) DrainAndClose() error {
	if p.stream != nil {
		p.stream.Stop()
		p.stream.Close()
		p.stream = nil
	}
	portaudio.Terminate()
	return nil
}
