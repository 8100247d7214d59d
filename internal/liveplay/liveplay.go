// Package liveplay adapts the core's DSP sample stream onto an
// ebiten/v2/audio player for optional real-time preview while
// rendering (spckit's --live flag), per SPEC_FULL.md §4.13. Grounded
// on the teacher's internal/ui/audio.go apuStream: an io.Reader that
// pulls buffered stereo frames, converts them to 16-bit little-endian
// PCM, and falls back to silence (counted as an underrun) rather than
// blocking the audio callback when the emulator hasn't produced enough
// data yet.
package liveplay

import (
	"encoding/binary"
	"io"

	"github.com/giannitedesco/spu-kit/internal/dsp"
)

// frameBytes is one stereo int16 sample pair, little-endian.
const frameBytes = 4

// Stream is an io.Reader fed by Write(dsp.Sample) calls (satisfying
// clock.Sink), buffering frames in a bounded channel so the producer
// (running far faster than real time) blocks rather than growing
// memory without bound, mirroring the reference's ring-buffer
// backpressure.
type Stream struct {
	frames chan [2]int16

	// Underruns counts reads served as silence because no frame was
	// available, mirroring apuStream's underrun counter.
	Underruns int
}

// NewStream creates a Stream with the given frame-buffer capacity.
func NewStream(capacityFrames int) *Stream {
	if capacityFrames <= 0 {
		capacityFrames = 4096
	}
	return &Stream{frames: make(chan [2]int16, capacityFrames)}
}

// Write implements the sink contract clock.Driver expects, blocking
// once the buffer is full so the emulator naturally paces itself to
// playback speed.
func (s *Stream) Write(sample dsp.Sample) {
	s.frames <- [2]int16{sample.Left, sample.Right}
}

// Close signals no further samples will be written, letting Read
// return io.EOF once the buffer drains.
func (s *Stream) Close() error {
	close(s.frames)
	return nil
}

// Read implements io.Reader, filling p with as many whole stereo
// frames as are immediately available. If none are ready it pads with
// a single frame of silence and counts an underrun, rather than
// blocking the audio callback.
func (s *Stream) Read(p []byte) (int, error) {
	if len(p) < frameBytes {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	n := 0
	for n+frameBytes <= len(p) {
		select {
		case f, ok := <-s.frames:
			if !ok {
				if n == 0 {
					return 0, io.EOF
				}
				return n, nil
			}
			binary.LittleEndian.PutUint16(p[n:], uint16(f[0]))
			binary.LittleEndian.PutUint16(p[n+2:], uint16(f[1]))
			n += frameBytes
		default:
			if n > 0 {
				return n, nil
			}
			binary.LittleEndian.PutUint16(p[n:], 0)
			binary.LittleEndian.PutUint16(p[n+2:], 0)
			s.Underruns++
			return frameBytes, nil
		}
	}
	return n, nil
}
