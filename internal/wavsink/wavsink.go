// Package wavsink implements the required output sink from spec.md
// §6: write(samples) / close() onto a 32 kHz, 16-bit, stereo WAV file.
// Grounded on _examples/original_source/src/wav.c's hand-rolled
// RIFF/WAVE writer (HZ=32000, audio_fmt=1 PCM, 2 channels, 16-bit),
// reimplemented on top of the go-audio/wav + go-audio/audio stack per
// SPEC_FULL.md §4.12.
package wavsink

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/giannitedesco/spu-kit/internal/dsp"
)

// SampleRate is the fixed output rate, matching the reference's HZ.
const SampleRate = 32000

const (
	bitDepth    = 16
	numChannels = 2
	// pcmFormat is WAVE_FORMAT_PCM, matching wav.c's audio_fmt=1.
	pcmFormat = 1
)

// Sink writes a stream of stereo samples to an io.WriteSeeker as a
// canonical PCM WAV file.
type Sink struct {
	enc  *wav.Encoder
	buf  *audio.IntBuffer
	data []int
}

// New wraps w in a WAV encoder configured for 32 kHz/16-bit/stereo PCM.
func New(w io.WriteSeeker) *Sink {
	enc := wav.NewEncoder(w, SampleRate, bitDepth, numChannels, pcmFormat)
	return &Sink{
		enc: enc,
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: numChannels, SampleRate: SampleRate},
			SourceBitDepth: bitDepth,
		},
	}
}

// Write buffers a single stereo sample frame, matching the Sink
// contract clock.Sink expects. Buffered frames are encoded by the next
// Flush or Close.
func (s *Sink) Write(sample dsp.Sample) {
	s.data = append(s.data, int(sample.Left), int(sample.Right))
}

// Flush pushes any buffered frames through the encoder without closing
// the underlying file, so a long run doesn't hold every sample in
// memory until Close.
func (s *Sink) Flush() error {
	if len(s.data) == 0 {
		return nil
	}
	s.buf.Data = s.data
	if err := s.enc.Write(s.buf); err != nil {
		return fmt.Errorf("wavsink: write: %w", err)
	}
	s.data = s.data[:0]
	return nil
}

// Close flushes remaining samples and finalizes the RIFF header, the
// equivalent of the reference's rewrite_hdr/_wav_close.
func (s *Sink) Close() error {
	if err := s.Flush(); err != nil {
		return err
	}
	if err := s.enc.Close(); err != nil {
		return fmt.Errorf("wavsink: close: %w", err)
	}
	return nil
}
