package liveplay

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate matches the DSP's fixed output rate.
const SampleRate = 32000

// Player wraps an ebiten audio.Player over a Stream, applying the
// teacher's applyPlayerBufferSize idiom: a small buffer for low
// latency, a larger one otherwise.
type Player struct {
	stream *Stream
	player *audio.Player
}

// NewPlayer creates a Player pulling from stream via ctx, and starts
// playback immediately.
func NewPlayer(ctx *audio.Context, stream *Stream, lowLatency bool) (*Player, error) {
	p, err := ctx.NewPlayer(stream)
	if err != nil {
		return nil, err
	}

	bufMs := 40
	if lowLatency {
		bufMs = 20
	}
	p.SetBufferSize(time.Duration(bufMs) * time.Millisecond)
	p.Play()

	return &Player{stream: stream, player: p}, nil
}

// Close stops playback and the underlying stream.
func (p *Player) Close() error {
	if err := p.player.Close(); err != nil {
		return err
	}
	return p.stream.Close()
}

// Underruns reports how many silence-padded reads the stream has
// served, for diagnostics.
func (p *Player) Underruns() int {
	return p.stream.Underruns
}
