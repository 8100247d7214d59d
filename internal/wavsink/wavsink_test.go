package wavsink

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/giannitedesco/spu-kit/internal/dsp"
)

// memFile is a minimal in-memory io.WriteSeeker, since *bytes.Buffer
// alone doesn't implement Seek and the WAV encoder rewrites its header
// on Close.
type memFile struct {
	data []byte
	pos  int64
}

func (f *memFile) Write(p []byte) (int, error) {
	end := f.pos + int64(len(p))
	if end > int64(len(f.data)) {
		grown := make([]byte, end)
		copy(grown, f.data)
		f.data = grown
	}
	copy(f.data[f.pos:end], p)
	f.pos = end
	return len(p), nil
}

func (f *memFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		f.pos = offset
	case io.SeekCurrent:
		f.pos += offset
	case io.SeekEnd:
		f.pos = int64(len(f.data)) + offset
	}
	return f.pos, nil
}

func TestSink_WriteAndCloseProducesRIFFHeader(t *testing.T) {
	f := &memFile{}
	s := New(f)

	for i := 0; i < 100; i++ {
		s.Write(dsp.Sample{Left: int16(i), Right: int16(-i)})
	}

	require.NoError(t, s.Close())
	require.True(t, len(f.data) > 44) // past the canonical 44-byte WAV header
	require.Equal(t, "RIFF", string(f.data[0:4]))
	require.Equal(t, "WAVE", string(f.data[8:12]))
}

func TestSink_FlushWithoutPendingSamplesIsNoop(t *testing.T) {
	f := &memFile{}
	s := New(f)
	require.NoError(t, s.Flush())
	require.NoError(t, s.Close())
}
