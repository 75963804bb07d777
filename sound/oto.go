package sound

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/ebitengine/oto/v3"
)

// OtoPlayer adapts the pull-based oto context to the push-based Player
// interface. Written periods queue on a small channel; the device-side
// Read drains it, and the bounded queue is what paces the synthesis loop.
// When the queue runs empty the device gets silence instead of an
// underrun error, so Recover is a no-op here.
type OtoPlayer struct {
	context *oto.Context
	player  *oto.Player
	pcm     chan []byte
	pending []byte
}

// Ensure OtoPlayer implements Player interface
var _ Player = (*OtoPlayer)(nil)

func NewOtoPlayer() *OtoPlayer {
	return &OtoPlayer{}
}

func (o *OtoPlayer) Configure(sampleRate, channels, periodFrames int) error {
	options := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}
	context, ready, err := oto.NewContext(options)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}
	<-ready

	o.context = context
	o.pcm = make(chan []byte, 4)
	o.player = context.NewPlayer(o)
	o.player.Play()
	return nil
}

// Read feeds the device. It runs on oto's playback goroutine.
func (o *OtoPlayer) Read(p []byte) (int, error) {
	if len(o.pending) == 0 {
		select {
		case chunk, ok := <-o.pcm:
			if !ok {
				return 0, io.EOF
			}
			o.pending = chunk
		default:
			// starved: play silence rather than stall the device
			for i := range p {
				p[i] = 0
			}
			return len(p), nil
		}
	}
	n := copy(p, o.pending)
	o.pending = o.pending[n:]
	return n, nil
}

func (o *OtoPlayer) WriteInterleaved(buf []int16) error {
	if o.pcm == nil {
		return errors.New("player not configured")
	}
	chunk := make([]byte, len(buf)*2)
	for i, sample := range buf {
		binary.LittleEndian.PutUint16(chunk[i*2:], uint16(sample))
	}
	o.pcm <- chunk
	return nil
}

func (o *OtoPlayer) Recover() error {
	return nil
}

func (o *OtoPlayer) DrainAndClose() error {
	if o.pcm != nil {
		close(o.pcm)
	}
	if o.player != nil {
		return o.player.Close()
	}
	return nil
}
